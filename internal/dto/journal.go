package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// SaveDraftRequest is the payload for creating a Draft journal entry.
type SaveDraftRequest struct {
	JournalID        string             `json:"journalID" binding:"required,uuid"`
	Date             string             `json:"date" binding:"required,datetime=2006-01-02"`
	Description      string             `json:"description" binding:"max=500"`
	SourceModule     string             `json:"sourceModule" binding:"max=50"`
	SourceType       string             `json:"sourceType" binding:"max=50"`
	SourceDocumentID *string            `json:"sourceDocumentID" binding:"omitempty,uuid"`
	Lines            []DraftLineRequest `json:"lines" binding:"dive"`
}

// DraftLineRequest is one line of a SaveDraftRequest.
type DraftLineRequest struct {
	LineNo        int              `json:"lineNo" binding:"min=0"`
	AccountID     string           `json:"accountID" binding:"required,uuid"`
	Debit         decimal.Decimal  `json:"debit" binding:"dscale=4"`
	Credit        decimal.Decimal  `json:"credit" binding:"dscale=4"`
	Notes         string           `json:"notes" binding:"max=500"`
	CurrencyID    *string          `json:"currencyID" binding:"omitempty,uuid"`
	FxRate        *decimal.Decimal `json:"fxRate" binding:"omitempty,dscale=8"`
	ForeignAmount *decimal.Decimal `json:"foreignAmount" binding:"omitempty,dscale=4"`
	CostCenterID  *string          `json:"costCenterID" binding:"omitempty,uuid"`
}

// ToJournalDraft converts the request into a domain draft.
func (r SaveDraftRequest) ToJournalDraft() (domain.JournalDraft, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return domain.JournalDraft{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	lines := make([]domain.JournalDraftLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalDraftLine{
			LineNo:        l.LineNo,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Notes:         l.Notes,
			CurrencyID:    l.CurrencyID,
			FxRate:        l.FxRate,
			ForeignAmount: l.ForeignAmount,
			CostCenterID:  l.CostCenterID,
		}
	}
	return domain.JournalDraft{
		JournalID:        r.JournalID,
		Date:             date,
		Description:      r.Description,
		SourceModule:     r.SourceModule,
		SourceType:       r.SourceType,
		SourceDocumentID: r.SourceDocumentID,
		Lines:            lines,
	}, nil
}

// SaveDraftResponse returns the ID of the saved entry.
type SaveDraftResponse struct {
	HeaderID string `json:"headerID"`
}

// ListHeadersParams defines query parameters for listing journal entries.
type ListHeadersParams struct {
	Status string `form:"status" binding:"omitempty,oneof=Draft Posted"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ToHeaderFilter converts bound query parameters into a domain filter.
func (p ListHeadersParams) ToHeaderFilter() (domain.HeaderFilter, error) {
	var f domain.HeaderFilter
	if p.Status != "" {
		status := domain.JournalStatus(p.Status)
		f.Status = &status
	}
	if p.From != "" {
		from, err := time.Parse(DateLayout, p.From)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q: %w", p.From, err)
		}
		f.From = &from
	}
	if p.To != "" {
		to, err := time.Parse(DateLayout, p.To)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q: %w", p.To, err)
		}
		f.To = &to
	}
	return f, nil
}

// JournalResponse describes a journal (book).
type JournalResponse struct {
	JournalID string `json:"journalID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
}

// ToListJournalResponse converts journals to their response DTOs.
func ToListJournalResponse(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i, j := range journals {
		res[i] = JournalResponse{JournalID: j.JournalID, Code: j.Code, Name: j.Name}
	}
	return res
}

// JournalHeaderResponse describes a journal entry header.
type JournalHeaderResponse struct {
	HeaderID         string               `json:"headerID"`
	JournalID        string               `json:"journalID"`
	SequenceNo       string               `json:"sequenceNo"`
	Date             string               `json:"date"`
	Description      string               `json:"description"`
	Status           domain.JournalStatus `json:"status"`
	SourceModule     string               `json:"sourceModule,omitempty"`
	SourceType       string               `json:"sourceType,omitempty"`
	SourceDocumentID *string              `json:"sourceDocumentID,omitempty"`
	FiscalYearID     *string              `json:"fiscalYearID,omitempty"`
	FiscalPeriodID   *string              `json:"fiscalPeriodID,omitempty"`
	TotalDebit       decimal.Decimal      `json:"totalDebit"`
	TotalCredit      decimal.Decimal      `json:"totalCredit"`
	PostedAt         *time.Time           `json:"postedAt,omitempty"`
	PostedBy         *string              `json:"postedBy,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"`
}

// ToJournalHeaderResponse converts a header to its response DTO.
func ToJournalHeaderResponse(h *domain.JournalHeader) JournalHeaderResponse {
	return JournalHeaderResponse{
		HeaderID:         h.HeaderID,
		JournalID:        h.JournalID,
		SequenceNo:       h.SequenceNo,
		Date:             h.Date.Format(DateLayout),
		Description:      h.Description,
		Status:           h.Status,
		SourceModule:     h.SourceModule,
		SourceType:       h.SourceType,
		SourceDocumentID: h.SourceDocumentID,
		FiscalYearID:     h.FiscalYearID,
		FiscalPeriodID:   h.FiscalPeriodID,
		TotalDebit:       h.TotalDebit,
		TotalCredit:      h.TotalCredit,
		PostedAt:         h.PostedAt,
		PostedBy:         h.PostedBy,
		CreatedAt:        h.CreatedAt,
		CreatedBy:        h.CreatedBy,
	}
}

// ToListJournalHeaderResponse converts headers to their response DTOs.
func ToListJournalHeaderResponse(headers []domain.JournalHeader) []JournalHeaderResponse {
	res := make([]JournalHeaderResponse, len(headers))
	for i := range headers {
		res[i] = ToJournalHeaderResponse(&headers[i])
	}
	return res
}

// JournalLineResponse describes a journal entry line.
type JournalLineResponse struct {
	LineID        string           `json:"lineID"`
	LineNo        int              `json:"lineNo"`
	AccountID     string           `json:"accountID"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	CurrencyID    *string          `json:"currencyID,omitempty"`
	FxRate        *decimal.Decimal `json:"fxRate,omitempty"`
	ForeignAmount *decimal.Decimal `json:"foreignAmount,omitempty"`
	CostCenterID  *string          `json:"costCenterID,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// ToListJournalLineResponse converts lines to their response DTOs.
func ToListJournalLineResponse(lines []domain.JournalLine) []JournalLineResponse {
	res := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		res[i] = JournalLineResponse{
			LineID:        l.LineID,
			LineNo:        l.LineNo,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			CurrencyID:    l.CurrencyID,
			FxRate:        l.FxRate,
			ForeignAmount: l.ForeignAmount,
			CostCenterID:  l.CostCenterID,
			Notes:         l.Notes,
		}
	}
	return res
}

// JournalEntryURI binds the journal entry id path parameter.
type JournalEntryURI struct {
	HeaderID string `uri:"headerID" binding:"required,uuid"`
}

// PostResultResponse is returned by the post endpoint.
type PostResultResponse struct {
	Outcome  domain.PostOutcome `json:"outcome"`
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	HeaderID string             `json:"headerID"`
}

// ToPostResultResponse converts a post result to its response DTO.
func ToPostResultResponse(r *domain.PostResult) PostResultResponse {
	return PostResultResponse{Outcome: r.Outcome, Success: r.Success, Message: r.Message, HeaderID: r.HeaderID}
}
