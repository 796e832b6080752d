package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/SscSPs/finova_ledger/internal/utils"
)

// newTokenCommand mints a bearer token for local development and testing.
func newTokenCommand(a *app) *cobra.Command {
	var userID, companyID string
	var perms []string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development JWT for a user and company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.IsProduction {
				return fmt.Errorf("token minting is disabled in production")
			}
			if _, err := uuid.Parse(companyID); err != nil {
				return fmt.Errorf("--company must be a UUID: %w", err)
			}
			if ttl <= 0 {
				ttl = a.cfg.JWTExpiryDuration
			}
			token, err := utils.GenerateJWT(userID, companyID, perms, a.cfg.JWTSecret, ttl, a.cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&companyID, "company", "", "company id (required)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().StringSliceVar(&perms, "perm", []string{domain.PermAll}, "permission codes to grant")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")

	return cmd
}
