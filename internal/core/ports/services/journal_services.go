package services

import (
	"context"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
)

// JournalReaderSvc defines read operations for journals and journal entries
type JournalReaderSvc interface {
	// GetJournals lists the company's active journals (books).
	GetJournals(ctx context.Context, scope domain.RequestScope) ([]domain.Journal, error)

	// ListHeaders lists the most recent journal entries matching filter.
	ListHeaders(ctx context.Context, scope domain.RequestScope, filter domain.HeaderFilter) ([]domain.JournalHeader, error)

	// GetHeader retrieves a single journal entry header.
	GetHeader(ctx context.Context, scope domain.RequestScope, headerID string) (*domain.JournalHeader, error)

	// GetLines lists a journal entry's lines in line-number order.
	GetLines(ctx context.Context, scope domain.RequestScope, headerID string) ([]domain.JournalLine, error)
}

// JournalPostingSvc validates and persists journal entries
type JournalPostingSvc interface {
	// SaveDraft validates draft and persists it as a Draft entry, returning the new header ID.
	SaveDraft(ctx context.Context, scope domain.RequestScope, draft domain.JournalDraft) (string, error)

	// Post re-validates a Draft entry and marks it Posted.
	Post(ctx context.Context, scope domain.RequestScope, headerID string) (*domain.PostResult, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalPostingSvc
}
