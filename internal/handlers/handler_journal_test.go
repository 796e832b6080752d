package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/SscSPs/finova_ledger/internal/core/services"
	"github.com/SscSPs/finova_ledger/internal/dto"
)

func (suite *HandlerTestSuite) draftBody() map[string]any {
	return map[string]any{
		"journalID":   uuid.NewString(),
		"date":        "2025-03-15",
		"description": "Cash sale",
		"lines": []map[string]any{
			{"accountID": uuid.NewString(), "debit": "100.25", "credit": "0"},
			{"accountID": uuid.NewString(), "debit": "0", "credit": "100.25", "notes": "sale"},
		},
	}
}

func (suite *HandlerTestSuite) TestSaveDraft_Created() {
	body := suite.draftBody()
	headerID := uuid.NewString()
	suite.mockJournalService.On("SaveDraft", mock.Anything, suite.scope, mock.MatchedBy(func(d domain.JournalDraft) bool {
		return d.JournalID == body["journalID"] &&
			d.Date.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) &&
			len(d.Lines) == 2 &&
			d.Lines[0].Debit.Equal(decimal.RequireFromString("100.25")) &&
			d.Lines[1].Credit.Equal(decimal.RequireFromString("100.25")) &&
			d.Lines[1].Notes == "sale"
	})).Return(headerID, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SaveDraftResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(headerID, resp.HeaderID)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestSaveDraft_RejectedWithVerbatimReason() {
	reason := "unbalanced entry: total debit=100, total credit=90"
	suite.mockJournalService.On("SaveDraft", mock.Anything, suite.scope, mock.Anything).
		Return("", apperrors.NewValidationError(services.ErrJournalUnbalanced, "%s", reason)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", suite.draftBody())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(reason, suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestSaveDraft_BindingErrors() {
	testCases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing journal", func(b map[string]any) { delete(b, "journalID") }},
		{"bad date", func(b map[string]any) { b["date"] = "15/03/2025" }},
		{"too many decimals", func(b map[string]any) {
			b["lines"].([]map[string]any)[0]["debit"] = "1.00001"
		}},
		{"line account not a uuid", func(b map[string]any) {
			b["lines"].([]map[string]any)[1]["accountID"] = "cash"
		}},
		{"negative line number", func(b map[string]any) {
			b["lines"].([]map[string]any)[0]["lineNo"] = -1
		}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			body := suite.draftBody()
			tc.mutate(body)

			w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockJournalService.AssertNotCalled(suite.T(), "SaveDraft", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestSaveDraft_InternalErrorHidesCause() {
	suite.mockJournalService.On("SaveDraft", mock.Anything, suite.scope, mock.Anything).
		Return("", errors.New("failed to commit journal entry: connection reset")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", suite.draftBody())

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to save journal entry", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestPostEntry_Outcomes() {
	testCases := []struct {
		outcome    domain.PostOutcome
		wantStatus int
	}{
		{domain.PostOutcomePosted, http.StatusOK},
		{domain.PostOutcomeNotFound, http.StatusNotFound},
		{domain.PostOutcomeAlreadyPosted, http.StatusConflict},
	}
	for _, tc := range testCases {
		suite.Run(string(tc.outcome), func() {
			headerID := uuid.NewString()
			suite.mockJournalService.On("Post", mock.Anything, suite.scope, headerID).
				Return(domain.NewPostResult(tc.outcome, headerID), nil).Once()

			w := suite.do(http.MethodPost, "/api/v1/journal-entries/"+headerID+"/post", nil)

			suite.Equal(tc.wantStatus, w.Code)
			var resp dto.PostResultResponse
			suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			suite.Equal(tc.outcome, resp.Outcome)
			suite.Equal(headerID, resp.HeaderID)
			suite.Equal(tc.outcome == domain.PostOutcomePosted, resp.Success)
		})
	}
}

func (suite *HandlerTestSuite) TestPostEntry_MalformedIDIsNotFound() {
	w := suite.do(http.MethodPost, "/api/v1/journal-entries/not-a-uuid/post", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	var resp dto.PostResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.PostOutcomeNotFound, resp.Outcome)
	suite.False(resp.Success)
	suite.Equal("not-a-uuid", resp.HeaderID)
	suite.mockJournalService.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestEntryReads_MalformedIDIsNotFound() {
	for _, url := range []string{
		"/api/v1/journal-entries/not-a-uuid",
		"/api/v1/journal-entries/not-a-uuid/lines",
	} {
		suite.Run(url, func() {
			w := suite.do(http.MethodGet, url, nil)

			suite.Equal(http.StatusNotFound, w.Code)
			suite.Equal("journal entry not found", suite.errorMessage(w))
		})
	}
	suite.mockJournalService.AssertNotCalled(suite.T(), "GetHeader", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalService.AssertNotCalled(suite.T(), "GetLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostEntry_ClosedPeriod() {
	headerID := uuid.NewString()
	suite.mockJournalService.On("Post", mock.Anything, suite.scope, headerID).
		Return(nil, apperrors.NewValidationError(services.ErrFiscalPeriodClosed, "fiscal period is closed for 2025-03-15")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/"+headerID+"/post", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("fiscal period is closed for 2025-03-15", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestListEntries_Filters() {
	status := domain.StatusPosted
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	headers := []domain.JournalHeader{{
		HeaderID: uuid.NewString(), SequenceNo: "GJ-000003", Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Status: domain.StatusPosted, TotalDebit: decimal.NewFromInt(5), TotalCredit: decimal.NewFromInt(5),
	}}
	suite.mockJournalService.On("ListHeaders", mock.Anything, suite.scope, domain.HeaderFilter{Status: &status, From: &from, To: &to}).
		Return(headers, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?status=Posted&from=2025-01-01&to=2025-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.JournalHeaderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("2025-03-02", resp[0].Date)
	suite.Equal("GJ-000003", resp[0].SequenceNo)
}

func (suite *HandlerTestSuite) TestListEntries_InvalidStatus() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?status=Void", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListHeaders", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetEntry_NotFound() {
	headerID := uuid.NewString()
	suite.mockJournalService.On("GetHeader", mock.Anything, suite.scope, headerID).
		Return(nil, apperrors.NewNotFoundError("journal entry not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries/"+headerID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("journal entry not found", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestGetEntryLines() {
	headerID := uuid.NewString()
	lines := []domain.JournalLine{
		{LineID: "l1", LineNo: 1, AccountID: "a1", Debit: decimal.NewFromInt(5), Credit: decimal.Zero},
		{LineID: "l2", LineNo: 2, AccountID: "a2", Debit: decimal.Zero, Credit: decimal.NewFromInt(5)},
	}
	suite.mockJournalService.On("GetLines", mock.Anything, suite.scope, headerID).Return(lines, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries/"+headerID+"/lines", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.JournalLineResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal(1, resp[0].LineNo)
	suite.True(resp[1].Credit.Equal(decimal.NewFromInt(5)))
}

func (suite *HandlerTestSuite) TestListJournals() {
	journals := []domain.Journal{{JournalID: uuid.NewString(), Code: "GJ", Name: "General", IsActive: true}}
	suite.mockJournalService.On("GetJournals", mock.Anything, suite.scope).Return(journals, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"code":"GJ"`)
}
