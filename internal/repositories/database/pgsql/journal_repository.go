package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finova_ledger/internal/models"
	"github.com/SscSPs/finova_ledger/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const headerColumns = `journal_header_id, company_id, journal_id, je_no, je_date, description, status,
		source_module, source_type, source_document_id, fiscal_year_id, fiscal_period_id,
		total_debit, total_credit, posted_at, posted_by, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `journal_line_id, company_id, journal_header_id, line_no, account_id, debit, credit,
		currency_id, fx_rate, amount_fc, cost_center_id, notes, created_at, created_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journals, headers and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// --- Journals (books) ---

// ListJournals returns active, non-deleted journals ordered by code.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string) ([]domain.Journal, error) {
	query := `
		SELECT journal_id, company_id, journal_code, journal_name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE company_id = $1 AND is_active = TRUE AND is_deleted = FALSE
		ORDER BY journal_code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals for company %s: %w", companyID, err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}

// FindJournalByID retrieves a non-deleted journal, active or not.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	if !isRowID(journalID) {
		return nil, apperrors.ErrNotFound
	}
	query := `
		SELECT journal_id, company_id, journal_code, journal_name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE company_id = $1 AND journal_id = $2 AND is_deleted = FALSE;
	`
	j, err := scanJournal(r.Pool.QueryRow(ctx, query, companyID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	return &j, nil
}

func scanJournal(row pgx.Row) (domain.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Journal{}, err
	}
	return mapping.ToDomainJournal(m), nil
}

// --- Headers ---

// InsertHeader persists a header in its own transaction.
func (r *PgxJournalRepository) InsertHeader(ctx context.Context, companyID, userID string, header domain.JournalHeader) (string, error) {
	if header.HeaderID == "" {
		header.HeaderID = uuid.NewString()
	}
	// Insert the header within its own transaction
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		return r.InsertHeaderInTx(ctx, tx, companyID, userID, header)
	})
	if err != nil {
		return "", err
	}
	return header.HeaderID, nil
}

// InsertHeaderInTx persists a header within tx. Audit fields default to now and userID.
func (r *PgxJournalRepository) InsertHeaderInTx(ctx context.Context, tx pgx.Tx, companyID, userID string, header domain.JournalHeader) error {
	// Fill audit fields not set by the caller
	now := time.Now().UTC()
	if header.CreatedAt.IsZero() {
		header.CreatedAt = now
	}
	if header.LastUpdatedAt.IsZero() {
		header.LastUpdatedAt = header.CreatedAt
	}
	header.CompanyID = companyID
	header.CreatedBy = userID
	header.LastUpdatedBy = userID
	if header.Status == "" {
		header.Status = domain.StatusDraft
	}

	m := mapping.ToModelJournalHeader(header)
	query := `
		INSERT INTO journal_headers (` + headerColumns + `, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, FALSE);
	`
	_, err := tx.Exec(ctx, query,
		m.HeaderID,
		m.CompanyID,
		m.JournalID,
		m.JeNo,
		m.JeDate,
		m.Description,
		m.Status,
		m.SourceModule,
		m.SourceType,
		m.SourceDocumentID,
		m.FiscalYearID,
		m.FiscalPeriodID,
		m.TotalDebit,
		m.TotalCredit,
		m.PostedAt,
		m.PostedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		// Map unique constraint on je_no to application error
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry number %s already exists", apperrors.ErrDuplicate, m.JeNo)
		}
		return apperrors.NewAppError(500, "failed to insert journal header "+m.HeaderID, err)
	}
	return nil
}

// FindHeaderByID retrieves a non-deleted header.
func (r *PgxJournalRepository) FindHeaderByID(ctx context.Context, companyID, headerID string) (*domain.JournalHeader, error) {
	return r.findHeader(ctx, r.Pool, companyID, headerID, "")
}

// FindHeaderForUpdate retrieves a non-deleted header and locks it until tx ends.
func (r *PgxJournalRepository) FindHeaderForUpdate(ctx context.Context, tx pgx.Tx, companyID, headerID string) (*domain.JournalHeader, error) {
	return r.findHeader(ctx, tx, companyID, headerID, "FOR UPDATE")
}

func (r *PgxJournalRepository) findHeader(ctx context.Context, q querier, companyID, headerID, lockClause string) (*domain.JournalHeader, error) {
	if !isRowID(headerID) {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + headerColumns + `
		FROM journal_headers
		WHERE company_id = $1 AND journal_header_id = $2 AND is_deleted = FALSE ` + lockClause + `;`

	h, err := scanHeader(q.QueryRow(ctx, query, companyID, headerID))
	if err != nil {
		// Map db not found error to application specific error
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal header %s: %w", headerID, err)
	}
	return &h, nil
}

// ListHeaders returns up to domain.MaxListedHeaders headers matching filter, newest first.
// Ties on date are broken by je_no as a string.
func (r *PgxJournalRepository) ListHeaders(ctx context.Context, companyID string, filter domain.HeaderFilter) ([]domain.JournalHeader, error) {
	query := `SELECT ` + headerColumns + `
		FROM journal_headers
		WHERE company_id = $1 AND is_deleted = FALSE
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::date IS NULL OR je_date >= $3)
		  AND ($4::date IS NULL OR je_date <= $4)
		ORDER BY je_date DESC, je_no DESC
		LIMIT $5;`

	// Nil filters are passed as NULL and match everything
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	rows, err := r.Pool.Query(ctx, query, companyID, status, filter.From, filter.To, domain.MaxListedHeaders)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal headers for company %s: %w", companyID, err)
	}
	defer rows.Close()

	headers := []domain.JournalHeader{}
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal header row: %w", err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal header rows: %w", err)
	}
	return headers, nil
}

func scanHeader(row pgx.Row) (domain.JournalHeader, error) {
	var m models.JournalHeader
	err := row.Scan(
		&m.HeaderID,
		&m.CompanyID,
		&m.JournalID,
		&m.JeNo,
		&m.JeDate,
		&m.Description,
		&m.Status,
		&m.SourceModule,
		&m.SourceType,
		&m.SourceDocumentID,
		&m.FiscalYearID,
		&m.FiscalPeriodID,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.PostedAt,
		&m.PostedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalHeader{}, err
	}
	return mapping.ToDomainJournalHeader(m), nil
}

// --- Lines ---

// InsertLines persists all lines of a header in one transaction: either every line is
// written or none is.
func (r *PgxJournalRepository) InsertLines(ctx context.Context, companyID, userID, headerID string, lines []domain.JournalDraftLine) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return r.InsertLinesInTx(ctx, tx, companyID, userID, headerID, lines)
	})
}

// InsertLinesInTx queues one insert per line and sends them as a single batch within tx.
func (r *PgxJournalRepository) InsertLinesInTx(ctx context.Context, tx pgx.Tx, companyID, userID, headerID string, lines []domain.JournalDraftLine) error {
	if len(lines) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := mapping.ToModelJournalLines(companyID, headerID, domain.AssignLineNumbers(lines), uuid.NewString)

	// Prepare one insert per line
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE);
	`
	for _, m := range rows {
		batch.Queue(lineQuery,
			m.LineID,
			m.CompanyID,
			m.HeaderID,
			m.LineNo,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.CurrencyID,
			m.FxRate,
			m.AmountFC,
			m.CostCenterID,
			m.Notes,
			now,
			userID,
		)
	}

	// Send the batch of line inserts
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate line number in journal entry %s", apperrors.ErrDuplicate, headerID)
		}
		return apperrors.NewAppError(500, "failed to execute line batch for journal entry "+headerID, err)
	}
	return nil
}

// FindLinesByHeaderID returns the non-deleted lines of a header ordered by line number.
func (r *PgxJournalRepository) FindLinesByHeaderID(ctx context.Context, companyID, headerID string) ([]domain.JournalLine, error) {
	return r.findLines(ctx, r.Pool, companyID, headerID)
}

// FindLinesInTx is FindLinesByHeaderID within tx.
func (r *PgxJournalRepository) FindLinesInTx(ctx context.Context, tx pgx.Tx, companyID, headerID string) ([]domain.JournalLine, error) {
	return r.findLines(ctx, tx, companyID, headerID)
}

func (r *PgxJournalRepository) findLines(ctx context.Context, q querier, companyID, headerID string) ([]domain.JournalLine, error) {
	if !isRowID(headerID) {
		return []domain.JournalLine{}, nil
	}
	query := `SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE company_id = $1 AND journal_header_id = $2 AND is_deleted = FALSE
		ORDER BY line_no;`

	rows, err := q.Query(ctx, query, companyID, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal entry %s: %w", headerID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.CompanyID,
			&m.HeaderID,
			&m.LineNo,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.CurrencyID,
			&m.FxRate,
			&m.AmountFC,
			&m.CostCenterID,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	// Check for errors during row iteration
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return lines, nil
}

// --- Sequencing and posting ---

// NextSequenceNo increments the (company, journal) counter and returns the new value.
// The counter row stays locked until tx ends, so concurrent savers queue behind it and a
// rolled-back save leaves no gap.
func (r *PgxJournalRepository) NextSequenceNo(ctx context.Context, tx pgx.Tx, companyID, journalID string) (int64, error) {
	query := `
		INSERT INTO journal_sequences (company_id, journal_id, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, journal_id)
		DO UPDATE SET last_value = journal_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := tx.QueryRow(ctx, query, companyID, journalID).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to allocate sequence number for journal %s: %w", journalID, err)
	}
	return next, nil
}

// MarkPosted flips a Draft header to Posted in its own transaction.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, companyID, userID, headerID string) (domain.PostOutcome, error) {
	if !isRowID(headerID) {
		return domain.PostOutcomeNotFound, nil
	}
	var outcome domain.PostOutcome
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		outcome, err = r.MarkPostedInTx(ctx, tx, companyID, userID, headerID, time.Now().UTC())
		return err
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// MarkPostedInTx flips a Draft header to Posted within tx. When nothing was updated it
// tells a missing (or deleted) header apart from one that is already posted.
func (r *PgxJournalRepository) MarkPostedInTx(ctx context.Context, tx pgx.Tx, companyID, userID, headerID string, postedAt time.Time) (domain.PostOutcome, error) {
	if !isRowID(headerID) {
		return domain.PostOutcomeNotFound, nil
	}
	query := `
		UPDATE journal_headers
		SET status = $3, posted_at = $5, posted_by = $4, last_updated_at = $5, last_updated_by = $4
		WHERE company_id = $1 AND journal_header_id = $2 AND is_deleted = FALSE AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query, companyID, headerID, string(domain.StatusPosted), userID, postedAt, string(domain.StatusDraft))
	if err != nil {
		return "", fmt.Errorf("failed to mark journal entry %s posted: %w", headerID, err)
	}
	// Check if any row was updated
	if cmdTag.RowsAffected() > 0 {
		return domain.PostOutcomePosted, nil
	}

	// Nothing updated: find out whether the header exists at all
	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM journal_headers WHERE company_id = $1 AND journal_header_id = $2 AND is_deleted = FALSE;`,
		companyID, headerID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PostOutcomeNotFound, nil
		}
		return "", fmt.Errorf("failed to check status of journal entry %s: %w", headerID, err)
	}
	return domain.PostOutcomeAlreadyPosted, nil
}
