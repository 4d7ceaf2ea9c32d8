package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
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

type CurrencyHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCurrencySvc *MockCurrencyService
}

func (suite *CurrencyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	container, _, _, _, _, _, currencySvc := newTestContainer()
	suite.mockCurrencySvc = currencySvc

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.ActorMiddleware())
	handlers.RegisterCurrencyRoutes(v1, container)
}

func (suite *CurrencyHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *CurrencyHandlerTestSuite) TestCreateCurrencySuccess() {
	created := &domain.Currency{CurrencyCode: "UGX", Name: "Ugandan Shilling", Symbol: "USh", IsActive: true}
	suite.mockCurrencySvc.On("CreateCurrency", mock.Anything, mock.AnythingOfType("dto.CreateCurrencyRequest"), "system").
		Return(created, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/currencies", dto.CreateCurrencyRequest{
		CurrencyCode: "UGX",
		Name:         "Ugandan Shilling",
		Symbol:       "USh",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	var resp dto.CurrencyResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "UGX", resp.CurrencyCode)
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestCreateCurrencyRejectsLowercaseCode() {
	w := suite.performRequest(http.MethodPost, "/api/v1/currencies", dto.CreateCurrencyRequest{
		CurrencyCode: "ugx",
		Name:         "Ugandan Shilling",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockCurrencySvc.AssertNotCalled(suite.T(), "CreateCurrency", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyHandlerTestSuite) TestCreateSecondBaseCurrencyConflicts() {
	suite.mockCurrencySvc.On("CreateCurrency", mock.Anything, mock.AnythingOfType("dto.CreateCurrencyRequest"), "system").
		Return(nil, fmt.Errorf("%w: base currency already set", apperrors.ErrConflict)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/currencies", dto.CreateCurrencyRequest{
		CurrencyCode: "EUR",
		Name:         "Euro",
		IsBase:       true,
	})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestListCurrencies() {
	currencies := []domain.Currency{
		{CurrencyCode: "USD", Name: "US Dollar", Symbol: "$", IsActive: true, IsBase: true},
		{CurrencyCode: "UGX", Name: "Ugandan Shilling", Symbol: "USh", IsActive: true},
	}
	suite.mockCurrencySvc.On("ListCurrencies", mock.Anything).Return(currencies, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/currencies", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp []dto.CurrencyResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(suite.T(), resp, 2)
	assert.True(suite.T(), resp[0].IsBase)
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestGetCurrencyNotFound() {
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "XXX").
		Return(nil, fmt.Errorf("%w: currency XXX", apperrors.ErrNotFound)).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/currencies/XXX", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func TestCurrencyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyHandlerTestSuite))
}
