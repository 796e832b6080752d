package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
)

// LedgerClaims are the JWT claims carried by API callers. The subject is the user id.
type LedgerClaims struct {
	CompanyID   string   `json:"cid"`
	Permissions []string `json:"perms,omitempty"`
	jwt.RegisteredClaims
}

// Scope converts the claims into the request scope passed to services.
func (c *LedgerClaims) Scope() domain.RequestScope {
	perms := make([]string, len(c.Permissions))
	copy(perms, c.Permissions)
	return domain.RequestScope{
		CompanyID:   c.CompanyID,
		UserID:      c.Subject,
		Permissions: perms,
	}
}

// GenerateJWT generates a new JWT token with the given parameters.
func GenerateJWT(userID, companyID string, permissions []string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := LedgerClaims{
		CompanyID:   companyID,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the LedgerClaims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*LedgerClaims, error) {
	claims := &LedgerClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err // expired, bad signature, malformed...
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
