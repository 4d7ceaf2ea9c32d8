package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/dto"
	"github.com/schoolerp/ledger_backend/internal/handlers"
	"github.com/schoolerp/ledger_backend/internal/middleware"
)

type AccountHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockAccountSvc *MockAccountService
	mockBalanceSvc  *MockBalanceService
	mockJournalSvc  *MockJournalService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	container, accountSvc, journalSvc, balanceSvc, _, _, _ := newTestContainer()
	suite.mockAccountSvc = accountSvc
	suite.mockJournalSvc = journalSvc
	suite.mockBalanceSvc = balanceSvc

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.ActorMiddleware())
	handlers.RegisterAccountRoutes(v1, container)
}

func (suite *AccountHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, "bursar-1")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleAccount() *domain.Account {
	return &domain.Account{
		AccountID:   "acc-uuid-1",
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			CreatedBy: "system",
		},
	}
}

func (suite *AccountHandlerTestSuite) TestCreateAccountSuccess() {
	account := sampleAccount()
	suite.mockAccountSvc.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), "bursar-1").
		Return(account, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "acc-uuid-1", resp.AccountID)
	assert.Equal(suite.T(), "1000", resp.Code)
	assert.Equal(suite.T(), "ASSET", resp.AccountType)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccountDuplicateCode() {
	suite.mockAccountSvc.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), "bursar-1").
		Return(nil, fmt.Errorf("%w: account code 1000 already in use", apperrors.ErrDuplicate)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash Again",
		AccountType: domain.Asset,
	})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccountInvalidJSON() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(`{"code":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccountNotFound() {
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, "missing-id").
		Return(nil, fmt.Errorf("%w: account missing-id", apperrors.ErrNotFound)).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/missing-id", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccountByCode() {
	account := sampleAccount()
	suite.mockAccountSvc.On("GetAccountByCode", mock.Anything, "1000").Return(account, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/code/1000", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.AccountResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "Cash", resp.Name)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccountsFilteredByType() {
	accounts := []domain.Account{*sampleAccount()}
	suite.mockAccountSvc.On("ListAccounts", mock.Anything, mock.MatchedBy(func(p dto.ListAccountsParams) bool {
		return p.AccountType == "ASSET"
	})).Return(accounts, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts?type=ASSET", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(suite.T(), resp, 1)
	assert.Equal(suite.T(), "1000", resp[0].Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccountSuccess() {
	suite.mockAccountSvc.On("DeactivateAccount", mock.Anything, "acc-uuid-1", "bursar-1").Return(nil).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/accounts/acc-uuid-1", nil)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccountWithActivity() {
	suite.mockAccountSvc.On("DeactivateAccount", mock.Anything, "acc-uuid-1", "bursar-1").
		Return(fmt.Errorf("%w: account has posted lines", apperrors.ErrConflict)).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/accounts/acc-uuid-1", nil)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalanceWithExplicitDate() {
	balance := &domain.AccountBalance{
		AccountID:    "acc-uuid-1",
		CurrencyCode: "USD",
		Balance:      decimal.RequireFromString("1500.00"),
		AsOfDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	suite.mockBalanceSvc.On("GetBalance", mock.Anything, "acc-uuid-1", "USD",
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)).Return(balance, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/acc-uuid-1/balance?currency=USD&asOf=2024-03-31", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(suite.T(), resp.Balance.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(suite.T(), "2024-03-31", resp.AsOfDate)
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalanceRejectsBadDate() {
	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/acc-uuid-1/balance?asOf=31-03-2024", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "GetBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestSetBalanceSuccess() {
	updated := &domain.AccountBalance{
		AccountID:    "acc-uuid-1",
		CurrencyCode: "USD",
		Balance:      decimal.RequireFromString("2000"),
		AsOfDate:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.mockBalanceSvc.On("SetBalance", mock.Anything, "acc-uuid-1", mock.AnythingOfType("dto.SetBalanceRequest"), "bursar-1").
		Return(updated, nil).Once()

	w := suite.performRequest(http.MethodPut, "/api/v1/accounts/acc-uuid-1/balance", dto.SetBalanceRequest{
		Balance:      decimal.RequireFromString("2000"),
		AsOfDate:     "2024-04-01",
		CurrencyCode: "USD",
		Reason:       "physical count correction",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(suite.T(), resp.Balance.Equal(decimal.RequireFromString("2000")))
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccountLines() {
	page := &dto.AccountLedgerResponse{
		AccountID: "acc-uuid-1",
		Lines: []dto.JournalLineResponse{
			{LineID: "line-1", AccountID: "acc-uuid-1", Debit: decimal.RequireFromString("500"), EntryDate: "2024-03-10"},
		},
		Page:  1,
		Limit: 20,
		Total: 1,
	}
	suite.mockJournalSvc.On("ListAccountLines", mock.Anything, "acc-uuid-1", mock.MatchedBy(func(p dto.ListAccountLinesParams) bool {
		return p.Search == "fees" && p.Page == 1
	})).Return(page, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/acc-uuid-1/ledger?search=fees&page=1&limit=20", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.AccountLedgerResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(suite.T(), resp.Lines, 1)
	assert.Equal(suite.T(), "line-1", resp.Lines[0].LineID)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
