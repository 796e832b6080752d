package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry. Draft transitions to
// Posted exactly once.
type JournalStatus string

const (
	StatusDraft  JournalStatus = "Draft"
	StatusPosted JournalStatus = "Posted"
)

// IsValid reports whether s is a known status.
func (s JournalStatus) IsValid() bool {
	return s == StatusDraft || s == StatusPosted
}

// Journal is a book that groups journal entries, e.g. "General Journal".
type Journal struct {
	JournalID string `json:"journalID"`
	CompanyID string `json:"companyID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// JournalHeader is a persisted journal entry. TotalDebit always equals TotalCredit.
type JournalHeader struct {
	HeaderID         string          `json:"headerID"`
	CompanyID        string          `json:"companyID"`
	JournalID        string          `json:"journalID"`
	SequenceNo       string          `json:"sequenceNo"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Status           JournalStatus   `json:"status"`
	SourceModule     string          `json:"sourceModule"`
	SourceType       string          `json:"sourceType"`
	SourceDocumentID *string         `json:"sourceDocumentID,omitempty"`
	FiscalYearID     *string         `json:"fiscalYearID,omitempty"`
	FiscalPeriodID   *string         `json:"fiscalPeriodID,omitempty"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	PostedAt         *time.Time      `json:"postedAt,omitempty"`
	PostedBy         *string         `json:"postedBy,omitempty"`
	AuditFields
}

// HeaderFilter narrows ListHeaders. Nil fields are not applied.
type HeaderFilter struct {
	Status *JournalStatus
	From   *time.Time
	To     *time.Time
}

// MaxListedHeaders caps the number of headers returned by a single listing.
const MaxListedHeaders = 500

// JournalDraft is an unsaved journal entry as submitted by a caller.
type JournalDraft struct {
	JournalID        string
	Date             time.Time
	Description      string
	SourceModule     string
	SourceType       string
	SourceDocumentID *string
	Lines            []JournalDraftLine
}

// PostOutcome tags the result of a Post call.
type PostOutcome string

const (
	PostOutcomePosted        PostOutcome = "POSTED"
	PostOutcomeNotFound      PostOutcome = "NOT_FOUND"
	PostOutcomeAlreadyPosted PostOutcome = "ALREADY_POSTED"
)

// PostResult is returned by Post for every outcome that is not an error.
type PostResult struct {
	Outcome  PostOutcome `json:"outcome"`
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	HeaderID string      `json:"headerID"`
}

// NewPostResult builds the result for outcome with its standard message.
func NewPostResult(outcome PostOutcome, headerID string) *PostResult {
	res := &PostResult{Outcome: outcome, HeaderID: headerID}
	switch outcome {
	case PostOutcomePosted:
		res.Success = true
		res.Message = "Journal entry posted"
	case PostOutcomeNotFound:
		res.Message = "Journal entry not found"
	case PostOutcomeAlreadyPosted:
		res.Message = "Journal entry is already posted"
	}
	return res
}
