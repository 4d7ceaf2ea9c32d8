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

type PeriodHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockPeriodSvc *MockPeriodService
}

func (suite *PeriodHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	container, _, _, _, _, periodSvc, _ := newTestContainer()
	suite.mockPeriodSvc = periodSvc

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.ActorMiddleware())
	handlers.RegisterPeriodRoutes(v1, container)
}

func (suite *PeriodHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, "head-teacher")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func marchPeriod() *domain.AccountingPeriod {
	return &domain.AccountingPeriod{
		PeriodID:   "period-1",
		Name:       "March 2024",
		PeriodType: domain.Monthly,
		StartDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:     domain.PeriodOpen,
	}
}

func (suite *PeriodHandlerTestSuite) TestCreatePeriodSuccess() {
	suite.mockPeriodSvc.On("CreatePeriod", mock.Anything, mock.AnythingOfType("dto.CreatePeriodRequest"), "head-teacher").
		Return(marchPeriod(), nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/periods", dto.CreatePeriodRequest{
		Name:       "March 2024",
		PeriodType: "MONTHLY",
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-31",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	var resp dto.PeriodResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "period-1", resp.PeriodID)
	assert.Equal(suite.T(), "OPEN", resp.Status)
	assert.Equal(suite.T(), "2024-03-31", resp.EndDate)
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestCreatePeriodOverlap() {
	suite.mockPeriodSvc.On("CreatePeriod", mock.Anything, mock.AnythingOfType("dto.CreatePeriodRequest"), "head-teacher").
		Return(nil, fmt.Errorf("%w: range overlaps period period-0", apperrors.ErrConflict)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/periods", dto.CreatePeriodRequest{
		Name:       "March again",
		PeriodType: "MONTHLY",
		StartDate:  "2024-03-15",
		EndDate:    "2024-04-14",
	})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestCreatePeriodRejectsBadType() {
	w := suite.performRequest(http.MethodPost, "/api/v1/periods", dto.CreatePeriodRequest{
		Name:       "Weekly?",
		PeriodType: "WEEKLY",
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-07",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockPeriodSvc.AssertNotCalled(suite.T(), "CreatePeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodHandlerTestSuite) TestListPeriodsByStatus() {
	suite.mockPeriodSvc.On("ListPeriods", mock.Anything, mock.MatchedBy(func(p dto.ListPeriodsParams) bool {
		return p.Status == "OPEN"
	})).Return([]domain.AccountingPeriod{*marchPeriod()}, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/periods?status=OPEN", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp []dto.PeriodResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(suite.T(), resp, 1)
	assert.Equal(suite.T(), "March 2024", resp[0].Name)
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestClosePeriodSuccess() {
	result := &dto.ClosePeriodResponse{
		PeriodID:        "period-1",
		ClosingEntryIDs: []string{"entry-close-1", "entry-close-2"},
		NetIncome:       decimal.RequireFromString("5000"),
	}
	suite.mockPeriodSvc.On("ClosePeriod", mock.Anything, "period-1", "head-teacher").
		Return(result, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/periods/period-1/close", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp dto.ClosePeriodResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "period-1", resp.PeriodID)
	require.Len(suite.T(), resp.ClosingEntryIDs, 2)
	assert.True(suite.T(), resp.NetIncome.Equal(decimal.RequireFromString("5000")))
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestClosePeriodAlreadyClosed() {
	suite.mockPeriodSvc.On("ClosePeriod", mock.Anything, "period-1", "head-teacher").
		Return(nil, fmt.Errorf("%w: period period-1 is already CLOSED", apperrors.ErrConflict)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/periods/period-1/close", nil)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *PeriodHandlerTestSuite) TestClosePeriodDriftSurfaces() {
	suite.mockPeriodSvc.On("ClosePeriod", mock.Anything, "period-1", "head-teacher").
		Return(nil, fmt.Errorf("%w: income summary residue 0.03", apperrors.ErrDataIntegrity)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/periods/period-1/close", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(suite.T(), resp["error"], "income summary residue")
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func TestPeriodHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodHandlerTestSuite))
}
