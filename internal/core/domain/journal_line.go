package domain

import "github.com/shopspring/decimal"

// JournalLine is a single debit or credit against one account within a header.
type JournalLine struct {
	LineID        string           `json:"lineID"`
	CompanyID     string           `json:"companyID"`
	HeaderID      string           `json:"headerID"`
	LineNo        int              `json:"lineNo"` // 1-based, unique within the header
	AccountID     string           `json:"accountID"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	CurrencyID    *string          `json:"currencyID,omitempty"`
	FxRate        *decimal.Decimal `json:"fxRate,omitempty"`
	ForeignAmount *decimal.Decimal `json:"foreignAmount,omitempty"`
	CostCenterID  *string          `json:"costCenterID,omitempty"`
	Notes         string           `json:"notes"`
	AuditFields
}

// IsMultiCurrency reports whether the line carries a full foreign-currency triple.
func (l JournalLine) IsMultiCurrency() bool {
	return l.CurrencyID != nil && l.FxRate != nil && l.ForeignAmount != nil
}

// JournalDraftLine is one line of a JournalDraft. LineNo 0 means "use the line's position".
type JournalDraftLine struct {
	LineNo        int
	AccountID     string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Notes         string
	CurrencyID    *string
	FxRate        *decimal.Decimal
	ForeignAmount *decimal.Decimal
	CostCenterID  *string
}

// AssignLineNumbers returns a copy of lines where every zero LineNo is replaced by the
// line's 1-based position.
func AssignLineNumbers(lines []JournalDraftLine) []JournalDraftLine {
	out := make([]JournalDraftLine, len(lines))
	for i, l := range lines {
		if l.LineNo == 0 {
			l.LineNo = i + 1
		}
		out[i] = l
	}
	return out
}
