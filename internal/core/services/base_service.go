package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/SscSPs/finova_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Now returns the current time; defaults to time.Now in UTC.
	Now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning, used for rejected business input.
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Authorize checks that scope names a company and user and grants perm.
func (s *BaseService) Authorize(ctx context.Context, scope domain.RequestScope, perm string) error {
	if scope.CompanyID == "" || scope.UserID == "" {
		s.LogWarn(ctx, "Request scope is incomplete", slog.String("permission", perm))
		return apperrors.NewAppError(403, "request scope is missing company or user", apperrors.ErrForbidden)
	}
	if !scope.Has(perm) {
		s.LogWarn(ctx, "Permission denied",
			slog.String("user_id", scope.UserID),
			slog.String("company_id", scope.CompanyID),
			slog.String("permission", perm))
		return apperrors.NewAppError(403, "missing permission "+perm, apperrors.ErrForbidden)
	}
	return nil
}

func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// dateOnly drops the clock part of t, keeping its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
