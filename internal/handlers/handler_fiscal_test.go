package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/SscSPs/finova_ledger/internal/dto"
)

func (suite *HandlerTestSuite) TestResolvePeriod_Found() {
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	periodID, yearID := "p-03", "fy-25"
	suite.mockFiscalService.On("ResolvePeriod", mock.Anything, suite.scope, day).
		Return(domain.PeriodResolution{FiscalPeriodID: &periodID, FiscalYearID: &yearID, IsClosed: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/fiscal-periods/resolve?date=2025-03-15", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.PeriodResolutionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Found)
	suite.True(body.IsClosed)
	suite.Equal("p-03", *body.FiscalPeriodID)
	suite.Equal("2025-03-15", body.Date)
}

func (suite *HandlerTestSuite) TestResolvePeriod_NoPeriod() {
	suite.mockFiscalService.On("ResolvePeriod", mock.Anything, suite.scope, mock.Anything).
		Return(domain.PeriodResolution{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/fiscal-periods/resolve?date=1999-01-01", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.PeriodResolutionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.False(body.Found)
	suite.Nil(body.FiscalPeriodID)
}

func (suite *HandlerTestSuite) TestResolvePeriod_BadDate() {
	for _, url := range []string{
		"/api/v1/fiscal-periods/resolve",
		"/api/v1/fiscal-periods/resolve?date=15-03-2025",
	} {
		w := suite.do(http.MethodGet, url, nil)
		suite.Equal(http.StatusBadRequest, w.Code, url)
	}
	suite.mockFiscalService.AssertNotCalled(suite.T(), "ResolvePeriod", mock.Anything, mock.Anything, mock.Anything)
}
