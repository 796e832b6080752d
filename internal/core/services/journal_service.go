package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finova_ledger/internal/core/ports/services"
	"github.com/SscSPs/finova_ledger/internal/utils/accounting"
)

var (
	ErrJournalEmpty       = errors.New("journal must contain at least one line")
	ErrJournalRequired    = errors.New("journal is required")
	ErrJournalNotFound    = errors.New("journal not found")
	ErrJournalInactive    = errors.New("journal is inactive")
	ErrInvalidLineNo      = errors.New("invalid line number")
	ErrInvalidFxRate      = errors.New("fx rate must be positive")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account inactive")
	ErrAccountNotPosting  = errors.New("cannot post to non-posting account")
	ErrJournalUnbalanced  = errors.New("unbalanced entry")
	ErrNoFiscalPeriod     = errors.New("no fiscal period")
	ErrFiscalPeriodClosed = errors.New("fiscal period is closed")
	ErrEntryHasNoLines    = errors.New("journal entry has no lines")
	ErrTotalsMismatch     = errors.New("journal entry totals do not match its lines")
)

// defaultSequencePrefix is used when a journal has no code.
const defaultSequencePrefix = "JE"

// journalService is the posting engine: it validates drafts against the chart of
// accounts and the fiscal calendar and persists them through the journal store.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	fiscalRepo  portsrepo.FiscalRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	fiscalRepo portsrepo.FiscalRepositoryFacade,
	options ...ServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		fiscalRepo:  fiscalRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// SaveDraft validates draft and, in a single transaction, allocates a sequence number and
// writes the header together with its lines. Any rejection leaves nothing behind.
func (s *journalService) SaveDraft(ctx context.Context, scope domain.RequestScope, draft domain.JournalDraft) (string, error) {
	logger := s.GetLogger(ctx).With(slog.String("journal_id", draft.JournalID))

	if err := s.Authorize(ctx, scope, domain.PermJournalCreate); err != nil {
		return "", err
	}
	if len(draft.Lines) == 0 {
		return "", s.reject(ctx, apperrors.NewValidationError(ErrJournalEmpty, "journal must contain at least one line"))
	}
	if draft.JournalID == "" {
		return "", s.reject(ctx, apperrors.NewValidationError(ErrJournalRequired, "journal is required"))
	}

	lines := domain.AssignLineNumbers(draft.Lines)
	totals, err := validateDraftLines(lines)
	if err != nil {
		return "", s.reject(ctx, err)
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	accounts, err := s.accountRepo.FindAccountsByIDsForShare(ctx, tx, scope.CompanyID, accountIDsOf(lines))
	if err != nil {
		logger.Error("Failed to fetch accounts for draft", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, line := range lines {
		if err := checkLineAccount(line.LineNo, accounts, line.AccountID); err != nil {
			return "", s.reject(ctx, err)
		}
	}

	if !totals.IsBalanced() {
		return "", s.reject(ctx, apperrors.NewValidationError(ErrJournalUnbalanced,
			"unbalanced entry: total debit=%s, total credit=%s",
			accounting.FormatAmount(totals.Debit), accounting.FormatAmount(totals.Credit)))
	}

	date := dateOnly(draft.Date)
	period, err := s.openPeriod(ctx, tx, scope.CompanyID, date)
	if err != nil {
		return "", err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, scope.CompanyID, draft.JournalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", s.reject(ctx, apperrors.NewValidationError(ErrJournalNotFound, "journal not found"))
		}
		return "", fmt.Errorf("failed to get journal %s: %w", draft.JournalID, err)
	}
	if !journal.IsActive {
		return "", s.reject(ctx, apperrors.NewValidationError(ErrJournalInactive, "journal %s is inactive", journal.Code))
	}

	seq, err := s.journalRepo.NextSequenceNo(ctx, tx, scope.CompanyID, journal.JournalID)
	if err != nil {
		logger.Error("Failed to allocate sequence number", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to allocate sequence number: %w", err)
	}

	now := s.now()
	header := domain.JournalHeader{
		HeaderID:         uuid.NewString(),
		CompanyID:        scope.CompanyID,
		JournalID:        journal.JournalID,
		SequenceNo:       FormatSequenceNo(journal.Code, seq),
		Date:             date,
		Description:      strings.TrimSpace(draft.Description),
		Status:           domain.StatusDraft,
		SourceModule:     draft.SourceModule,
		SourceType:       draft.SourceType,
		SourceDocumentID: draft.SourceDocumentID,
		FiscalYearID:     period.FiscalYearID,
		FiscalPeriodID:   period.FiscalPeriodID,
		TotalDebit:       totals.Debit,
		TotalCredit:      totals.Credit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     scope.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: scope.UserID,
		},
	}

	if err := s.journalRepo.InsertHeaderInTx(ctx, tx, scope.CompanyID, scope.UserID, header); err != nil {
		logger.Error("Failed to insert journal header", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to save journal entry: %w", err)
	}
	if err := s.journalRepo.InsertLinesInTx(ctx, tx, scope.CompanyID, scope.UserID, header.HeaderID, lines); err != nil {
		logger.Error("Failed to insert journal lines", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to save journal lines: %w", err)
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit journal entry", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to commit journal entry: %w", err)
	}

	logger.Info("Journal entry saved as draft",
		slog.String("header_id", header.HeaderID),
		slog.String("sequence_no", header.SequenceNo),
		slog.String("total", totals.Debit.String()))
	return header.HeaderID, nil
}

// Post re-validates a Draft entry under a row lock and marks it Posted. Missing and
// already-posted entries are reported through the result, not as errors.
func (s *journalService) Post(ctx context.Context, scope domain.RequestScope, headerID string) (*domain.PostResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("header_id", headerID))

	if err := s.Authorize(ctx, scope, domain.PermJournalPost); err != nil {
		return nil, err
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	header, err := s.journalRepo.FindHeaderForUpdate(ctx, tx, scope.CompanyID, headerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Post requested for unknown journal entry")
			return domain.NewPostResult(domain.PostOutcomeNotFound, headerID), nil
		}
		logger.Error("Failed to lock journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get journal entry %s: %w", headerID, err)
	}
	if header.Status == domain.StatusPosted {
		logger.Warn("Journal entry already posted")
		return domain.NewPostResult(domain.PostOutcomeAlreadyPosted, headerID), nil
	}

	lines, err := s.journalRepo.FindLinesInTx(ctx, tx, scope.CompanyID, headerID)
	if err != nil {
		logger.Error("Failed to load journal lines", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, s.reject(ctx, apperrors.NewValidationError(ErrEntryHasNoLines, "journal entry has no lines"))
	}

	accountIDs := make([]string, 0, len(lines))
	var totals accounting.Totals
	for _, l := range lines {
		accountIDs = append(accountIDs, l.AccountID)
		totals.Add(l.Debit, l.Credit)
	}
	accounts, err := s.accountRepo.FindAccountsByIDsForShare(ctx, tx, scope.CompanyID, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, l := range lines {
		if err := checkLineAccount(l.LineNo, accounts, l.AccountID); err != nil {
			return nil, s.reject(ctx, err)
		}
	}
	if !totals.IsBalanced() {
		return nil, s.reject(ctx, apperrors.NewValidationError(ErrJournalUnbalanced,
			"unbalanced entry: total debit=%s, total credit=%s",
			accounting.FormatAmount(totals.Debit), accounting.FormatAmount(totals.Credit)))
	}
	if !header.TotalDebit.Round(accounting.BalancePrecision).Equal(totals.Debit.Round(accounting.BalancePrecision)) {
		return nil, s.reject(ctx, apperrors.NewValidationError(ErrTotalsMismatch,
			"journal entry totals do not match its lines: header=%s, lines=%s",
			accounting.FormatAmount(header.TotalDebit), accounting.FormatAmount(totals.Debit)))
	}

	if _, err := s.openPeriod(ctx, tx, scope.CompanyID, header.Date); err != nil {
		return nil, err
	}

	outcome, err := s.journalRepo.MarkPostedInTx(ctx, tx, scope.CompanyID, scope.UserID, headerID, s.now())
	if err != nil {
		logger.Error("Failed to mark journal entry posted", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}
	if outcome != domain.PostOutcomePosted {
		return domain.NewPostResult(outcome, headerID), nil
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit posting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit posting: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("sequence_no", header.SequenceNo))
	return domain.NewPostResult(domain.PostOutcomePosted, headerID), nil
}

func (s *journalService) GetJournals(ctx context.Context, scope domain.RequestScope) ([]domain.Journal, error) {
	if err := s.Authorize(ctx, scope, domain.PermJournalView); err != nil {
		return nil, err
	}
	journals, err := s.journalRepo.ListJournals(ctx, scope.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, nil
}

func (s *journalService) ListHeaders(ctx context.Context, scope domain.RequestScope, filter domain.HeaderFilter) ([]domain.JournalHeader, error) {
	if err := s.Authorize(ctx, scope, domain.PermJournalView); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError(nil, "invalid status %q", *filter.Status)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.NewValidationError(nil, "from date must not be after to date")
	}
	headers, err := s.journalRepo.ListHeaders(ctx, scope.CompanyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return headers, nil
}

func (s *journalService) GetHeader(ctx context.Context, scope domain.RequestScope, headerID string) (*domain.JournalHeader, error) {
	if err := s.Authorize(ctx, scope, domain.PermJournalView); err != nil {
		return nil, err
	}
	header, err := s.journalRepo.FindHeaderByID(ctx, scope.CompanyID, headerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal entry not found")
		}
		s.LogError(ctx, err, "Failed to get journal entry", slog.String("header_id", headerID))
		return nil, fmt.Errorf("failed to get journal entry %s: %w", headerID, err)
	}
	return header, nil
}

func (s *journalService) GetLines(ctx context.Context, scope domain.RequestScope, headerID string) ([]domain.JournalLine, error) {
	if err := s.Authorize(ctx, scope, domain.PermJournalView); err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByHeaderID(ctx, scope.CompanyID, headerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get journal lines", slog.String("header_id", headerID))
		return nil, fmt.Errorf("failed to get journal lines: %w", err)
	}
	return lines, nil
}

// openPeriod resolves date inside tx and rejects dates outside any period or in a closed one.
func (s *journalService) openPeriod(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) (domain.PeriodResolution, error) {
	period, err := s.fiscalRepo.ResolvePeriodInTx(ctx, tx, companyID, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve fiscal period")
		return period, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}
	if !period.Found() {
		return period, s.reject(ctx, apperrors.NewValidationError(ErrNoFiscalPeriod,
			"no fiscal period found for %s", date.Format("2006-01-02")))
	}
	if period.IsClosed {
		return period, s.reject(ctx, apperrors.NewValidationError(ErrFiscalPeriodClosed,
			"fiscal period is closed for %s", date.Format("2006-01-02")))
	}
	return period, nil
}

// reject logs a business rejection at warn level and returns it unchanged.
func (s *journalService) reject(ctx context.Context, err error) error {
	s.LogWarn(ctx, "Journal entry rejected", slog.String("reason", err.Error()))
	return err
}

// validateDraftLines checks amounts, line numbers and fx rates in line order and returns
// the accumulated totals.
func validateDraftLines(lines []domain.JournalDraftLine) (accounting.Totals, error) {
	var totals accounting.Totals
	seen := make(map[int]bool, len(lines))
	for i, line := range lines {
		pos := i + 1
		if err := accounting.ValidateLineAmounts(line.Debit, line.Credit); err != nil {
			return totals, apperrors.NewValidationError(err, "line %d: %s", pos, err.Error())
		}
		if line.LineNo < 1 {
			return totals, apperrors.NewValidationError(ErrInvalidLineNo, "line %d: line number must be positive", pos)
		}
		if seen[line.LineNo] {
			return totals, apperrors.NewValidationError(ErrInvalidLineNo, "line %d: duplicate line number %d", pos, line.LineNo)
		}
		seen[line.LineNo] = true
		if line.FxRate != nil && !line.FxRate.IsPositive() {
			return totals, apperrors.NewValidationError(ErrInvalidFxRate, "line %d: fx rate must be positive", pos)
		}
		if line.FxRate != nil && accounting.ExceedsPrecision(*line.FxRate, accounting.FxRatePrecision) {
			return totals, apperrors.NewValidationError(accounting.ErrTooPrecise,
				"line %d: fx rate is limited to %d decimal places", pos, accounting.FxRatePrecision)
		}
		if line.ForeignAmount != nil && accounting.ExceedsPrecision(*line.ForeignAmount, accounting.BalancePrecision) {
			return totals, apperrors.NewValidationError(accounting.ErrTooPrecise,
				"line %d: foreign amount is limited to %d decimal places", pos, accounting.BalancePrecision)
		}
		totals.Add(line.Debit, line.Credit)
	}
	return totals, nil
}

// checkLineAccount verifies that the line's account exists, is active and accepts postings.
func checkLineAccount(lineNo int, accounts map[string]domain.Account, accountID string) error {
	acc, ok := accounts[accountID]
	if !ok {
		return apperrors.NewValidationError(ErrAccountNotFound, "line %d: account not found", lineNo)
	}
	if !acc.IsActive {
		return apperrors.NewValidationError(ErrAccountInactive, "line %d: account inactive: %s", lineNo, acc.Label())
	}
	if !acc.IsPosting {
		return apperrors.NewValidationError(ErrAccountNotPosting, "line %d: cannot post to non-posting account: %s", lineNo, acc.Label())
	}
	return nil
}

// FormatSequenceNo renders a journal entry number such as "GJ-000042".
func FormatSequenceNo(journalCode string, seq int64) string {
	prefix := strings.ToUpper(strings.TrimSpace(journalCode))
	if prefix == "" {
		prefix = defaultSequencePrefix
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

func accountIDsOf(lines []domain.JournalDraftLine) []string {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.AccountID
	}
	return uniqueStrings(ids)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
