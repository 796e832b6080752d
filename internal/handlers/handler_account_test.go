package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/finova_ledger/internal/apperrors"
	"github.com/SscSPs/finova_ledger/internal/core/domain"
	"github.com/SscSPs/finova_ledger/internal/dto"
	"github.com/SscSPs/finova_ledger/internal/utils"
)

func (suite *HandlerTestSuite) TestListAccounts_IncludeInactive() {
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.NormalDebit, IsActive: true},
		{AccountID: uuid.NewString(), Code: "1900", Name: "Old bank", AccountType: domain.Asset, NormalBalance: domain.NormalDebit, IsActive: false},
	}
	suite.mockAccountService.On("GetChart", mock.Anything, suite.scope, true).Return(accounts, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?includeInactive=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 2)
	suite.Equal("1000", body[0].Code)
	suite.False(body[1].IsActive)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListAccounts_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetChart", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.NormalDebit}
	created := &domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset,
		NormalBalance: domain.NormalDebit, IsPosting: true, IsActive: true, Level: 1}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.scope, req).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(created.AccountID, body.AccountID)
	suite.True(body.IsPosting)
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingErrors() {
	testCases := []struct {
		name string
		body map[string]any
	}{
		{"missing code", map[string]any{"name": "Cash", "accountType": "ASSET", "normalBalance": "DR"}},
		{"unknown type", map[string]any{"code": "1", "name": "Cash", "accountType": "REVENUE", "normalBalance": "DR"}},
		{"bad normal balance", map[string]any{"code": "1", "name": "Cash", "accountType": "ASSET", "normalBalance": "D"}},
		{"parent not a uuid", map[string]any{"code": "1", "name": "Cash", "accountType": "ASSET", "normalBalance": "DR", "parentAccountID": "x"}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounts", tc.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Duplicate() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.NormalDebit}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.scope, req).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_ErrorMapping() {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.NewNotFoundError("account not found"), http.StatusNotFound},
		{"forbidden", apperrors.NewAppError(http.StatusForbidden, "missing permission ACC.COA.VIEW", apperrors.ErrForbidden), http.StatusForbidden},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			accountID := uuid.NewString()
			suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.scope, accountID).Return(nil, tc.err).Once()

			w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

			suite.Equal(tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusInternalServerError {
				suite.Equal("Failed to retrieve account", suite.errorMessage(w))
			}
		})
	}
}

func (suite *HandlerTestSuite) TestAccountRoutes_MalformedIDIsNotFound() {
	inactive := false
	testCases := []struct {
		name   string
		method string
		body   any
	}{
		{"get", http.MethodGet, nil},
		{"update", http.MethodPut, dto.UpdateAccountRequest{IsActive: &inactive}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.do(tc.method, "/api/v1/accounts/1000", tc.body)

			suite.Equal(http.StatusNotFound, w.Code)
			suite.Equal("account not found", suite.errorMessage(w))
		})
	}
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountService.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRequests_NonUUIDCompanyClaimRejected() {
	token, err := utils.GenerateJWT(suite.scope.UserID, "acme", suite.scope.Permissions,
		suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := suite.serve(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetChart", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestUpdateAccount_DuplicateCode() {
	accountID := uuid.NewString()
	code := "4000"
	req := dto.UpdateAccountRequest{Code: &code}
	suite.mockAccountService.On("UpdateAccount", mock.Anything, suite.scope, accountID, req).
		Return(nil, fmt.Errorf("%w: account code 4000 already exists", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/"+accountID, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.errorMessage(w), "account code 4000 already exists")
}

func (suite *HandlerTestSuite) TestUpdateAccount_Deactivate() {
	accountID := uuid.NewString()
	inactive := false
	req := dto.UpdateAccountRequest{IsActive: &inactive}
	updated := &domain.Account{AccountID: accountID, Code: "1000", Name: "Cash", IsActive: false}
	suite.mockAccountService.On("UpdateAccount", mock.Anything, suite.scope, accountID, req).Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/"+accountID, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.False(body.IsActive)
}
