package mapping

import (
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/SscSPs/finova_ledger/internal/models"
)

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:   m.JournalID,
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalHeader converts a domain JournalHeader to a model JournalHeader
func ToModelJournalHeader(d domain.JournalHeader) models.JournalHeader {
	return models.JournalHeader{
		HeaderID:         d.HeaderID,
		CompanyID:        d.CompanyID,
		JournalID:        d.JournalID,
		JeNo:             d.SequenceNo,
		JeDate:           d.Date,
		Description:      nullIfEmpty(d.Description),
		Status:           string(d.Status),
		SourceModule:     nullIfEmpty(d.SourceModule),
		SourceType:       nullIfEmpty(d.SourceType),
		SourceDocumentID: d.SourceDocumentID,
		FiscalYearID:     d.FiscalYearID,
		FiscalPeriodID:   d.FiscalPeriodID,
		TotalDebit:       d.TotalDebit,
		TotalCredit:      d.TotalCredit,
		PostedAt:         d.PostedAt,
		PostedBy:         d.PostedBy,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalHeader converts a model JournalHeader to a domain JournalHeader
func ToDomainJournalHeader(m models.JournalHeader) domain.JournalHeader {
	return domain.JournalHeader{
		HeaderID:         m.HeaderID,
		CompanyID:        m.CompanyID,
		JournalID:        m.JournalID,
		SequenceNo:       m.JeNo,
		Date:             m.JeDate,
		Description:      derefString(m.Description),
		Status:           domain.JournalStatus(m.Status),
		SourceModule:     derefString(m.SourceModule),
		SourceType:       derefString(m.SourceType),
		SourceDocumentID: m.SourceDocumentID,
		FiscalYearID:     m.FiscalYearID,
		FiscalPeriodID:   m.FiscalPeriodID,
		TotalDebit:       m.TotalDebit,
		TotalCredit:      m.TotalCredit,
		PostedAt:         m.PostedAt,
		PostedBy:         m.PostedBy,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLines converts draft lines into rows for headerID. Line numbers must
// already be assigned.
func ToModelJournalLines(companyID, headerID string, lines []domain.JournalDraftLine, newID func() string) []models.JournalLine {
	ms := make([]models.JournalLine, len(lines))
	for i, l := range lines {
		ms[i] = models.JournalLine{
			LineID:       newID(),
			CompanyID:    companyID,
			HeaderID:     headerID,
			LineNo:       int32(l.LineNo),
			AccountID:    l.AccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			CurrencyID:   l.CurrencyID,
			FxRate:       l.FxRate,
			AmountFC:     l.ForeignAmount,
			CostCenterID: l.CostCenterID,
			Notes:        nullIfEmpty(l.Notes),
		}
	}
	return ms
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:        m.LineID,
		CompanyID:     m.CompanyID,
		HeaderID:      m.HeaderID,
		LineNo:        int(m.LineNo),
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		CurrencyID:    m.CurrencyID,
		FxRate:        m.FxRate,
		ForeignAmount: m.AmountFC,
		CostCenterID:  m.CostCenterID,
		Notes:         derefString(m.Notes),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		},
	}
}

// ToDomainPeriodResolution converts a period lookup row. A closed fiscal year closes its periods.
func ToDomainPeriodResolution(m models.PeriodResolution) domain.PeriodResolution {
	periodID, yearID := m.FiscalPeriodID, m.FiscalYearID
	return domain.PeriodResolution{
		FiscalPeriodID: &periodID,
		FiscalYearID:   &yearID,
		IsClosed:       m.PeriodClosed || m.YearClosed,
	}
}
