package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journals (books)
type JournalReader interface {
	// ListJournals returns active, non-deleted journals ordered by code.
	ListJournals(ctx context.Context, companyID string) ([]domain.Journal, error)

	// FindJournalByID retrieves a journal. Returns apperrors.ErrNotFound when absent.
	FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error)
}

// JournalEntryReader defines read operations for journal headers and lines
type JournalEntryReader interface {
	// ListHeaders returns up to domain.MaxListedHeaders headers, newest date first,
	// then by sequence number descending.
	ListHeaders(ctx context.Context, companyID string, filter domain.HeaderFilter) ([]domain.JournalHeader, error)

	// FindHeaderByID retrieves a non-deleted header. Returns apperrors.ErrNotFound when absent.
	FindHeaderByID(ctx context.Context, companyID, headerID string) (*domain.JournalHeader, error)

	// FindLinesByHeaderID returns the header's lines ordered by line number.
	FindLinesByHeaderID(ctx context.Context, companyID, headerID string) ([]domain.JournalLine, error)
}

// JournalEntryWriter defines self-contained write operations, each in its own transaction
type JournalEntryWriter interface {
	// InsertHeader persists header and returns its ID.
	InsertHeader(ctx context.Context, companyID, userID string, header domain.JournalHeader) (string, error)

	// InsertLines persists every line of a header or none of them.
	InsertLines(ctx context.Context, companyID, userID, headerID string, lines []domain.JournalDraftLine) error

	// MarkPosted flips a Draft header to Posted and reports which case applied.
	MarkPosted(ctx context.Context, companyID, userID, headerID string) (domain.PostOutcome, error)
}

// JournalTransactionSupport defines operations that run inside a caller-owned transaction
type JournalTransactionSupport interface {
	// NextSequenceNo increments and returns the per-company, per-journal counter.
	NextSequenceNo(ctx context.Context, tx pgx.Tx, companyID, journalID string) (int64, error)

	InsertHeaderInTx(ctx context.Context, tx pgx.Tx, companyID, userID string, header domain.JournalHeader) error
	InsertLinesInTx(ctx context.Context, tx pgx.Tx, companyID, userID, headerID string, lines []domain.JournalDraftLine) error

	// FindHeaderForUpdate reads a header and locks it until tx ends.
	FindHeaderForUpdate(ctx context.Context, tx pgx.Tx, companyID, headerID string) (*domain.JournalHeader, error)
	FindLinesInTx(ctx context.Context, tx pgx.Tx, companyID, headerID string) ([]domain.JournalLine, error)

	MarkPostedInTx(ctx context.Context, tx pgx.Tx, companyID, userID, headerID string, postedAt time.Time) (domain.PostOutcome, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalEntryReader
	JournalEntryWriter
	JournalTransactionSupport
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
