package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is a row of the journals table.
type Journal struct {
	JournalID string `db:"journal_id"`
	CompanyID string `db:"company_id"`
	Code      string `db:"journal_code"`
	Name      string `db:"journal_name"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}

// JournalHeader is a row of the journal_headers table.
type JournalHeader struct {
	HeaderID         string          `db:"journal_header_id"`
	CompanyID        string          `db:"company_id"`
	JournalID        string          `db:"journal_id"`
	JeNo             string          `db:"je_no"`
	JeDate           time.Time       `db:"je_date"`
	Description      *string         `db:"description"` // Nullable
	Status           string          `db:"status"`
	SourceModule     *string         `db:"source_module"`
	SourceType       *string         `db:"source_type"`
	SourceDocumentID *string         `db:"source_document_id"`
	FiscalYearID     *string         `db:"fiscal_year_id"`
	FiscalPeriodID   *string         `db:"fiscal_period_id"`
	TotalDebit       decimal.Decimal `db:"total_debit"`
	TotalCredit      decimal.Decimal `db:"total_credit"`
	PostedAt         *time.Time      `db:"posted_at"`
	PostedBy         *string         `db:"posted_by"`
	IsDeleted        bool            `db:"is_deleted"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID       string           `db:"journal_line_id"`
	CompanyID    string           `db:"company_id"`
	HeaderID     string           `db:"journal_header_id"`
	LineNo       int32            `db:"line_no"`
	AccountID    string           `db:"account_id"`
	Debit        decimal.Decimal  `db:"debit"`
	Credit       decimal.Decimal  `db:"credit"`
	CurrencyID   *string          `db:"currency_id"`
	FxRate       *decimal.Decimal `db:"fx_rate"`
	AmountFC     *decimal.Decimal `db:"amount_fc"`
	CostCenterID *string          `db:"cost_center_id"`
	Notes        *string          `db:"notes"`
	CreatedAt    time.Time        `db:"created_at"`
	CreatedBy    string           `db:"created_by"`
}
