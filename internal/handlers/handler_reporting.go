package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
	"github.com/schoolerp/ledger_backend/internal/middleware"
	"github.com/schoolerp/ledger_backend/internal/utils/dates"
)

// reportingHandler serves the derived financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	periodService    portssvc.PeriodSvcFacade
	currencyService  portssvc.CurrencySvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade, periodService portssvc.PeriodSvcFacade, currencyService portssvc.CurrencySvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
		periodService:    periodService,
		currencyService:  currencyService,
	}
}

// resolveRange extracts the report date range from one of the three accepted
// query forms: explicit fromDate/toDate, month/year, or periodID.
func (h *reportingHandler) resolveRange(c *gin.Context) (time.Time, time.Time, error) {
	if periodID := c.Query("periodID"); periodID != "" {
		period, err := h.periodService.GetPeriodByID(c.Request.Context(), periodID)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return period.StartDate, period.EndDate, nil
	}

	if monthStr := c.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, monthStr)
		}
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid year %q", apperrors.ErrValidation, c.Query("year"))
		}
		return dates.MonthRange(month, year)
	}

	from, err := dates.ParseISO(c.Query("fromDate"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := dates.ParseISO(c.Query("toDate"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// resolveAsOf extracts the snapshot date from asOf, month/year or periodID,
// defaulting to today. Month and period forms resolve to the range's end.
func (h *reportingHandler) resolveAsOf(c *gin.Context) (time.Time, error) {
	if asOf := c.Query("asOf"); asOf != "" {
		return dates.ParseISO(asOf)
	}
	if c.Query("periodID") != "" || c.Query("month") != "" {
		_, to, err := h.resolveRange(c)
		return to, err
	}
	return time.Now().UTC(), nil
}

func (h *reportingHandler) baseCurrencyCode(c *gin.Context) string {
	currency, err := h.currencyService.GetBaseCurrency(c.Request.Context())
	if err != nil {
		return ""
	}
	return currency.CurrencyCode
}

// getIncomeStatement godoc
// @Summary Income statement
// @Description Revenue and expense flows over a date range, month or period
// @Tags reports
// @Produce json
// @Param fromDate query string false "From date YYYY-MM-DD"
// @Param toDate query string false "To date YYYY-MM-DD"
// @Param month query int false "Month 1-12 (with year)"
// @Param year query int false "Year"
// @Param periodID query string false "Accounting period ID"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := h.resolveRange(c)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	report, err := h.reportingService.GetIncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report, h.baseCurrencyCode(c)))
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Description Classified asset, liability and equity positions as of a date
// @Tags reports
// @Produce json
// @Param asOf query string false "Snapshot date YYYY-MM-DD (defaults to today)"
// @Param month query int false "Month 1-12 (with year)"
// @Param year query int false "Year"
// @Param periodID query string false "Accounting period ID"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := h.resolveAsOf(c)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, h.baseCurrencyCode(c)))
}

// getCashFlow godoc
// @Summary Cash flow statement
// @Description Cash movements bucketed by contra account over a date range, month or period
// @Tags reports
// @Produce json
// @Param fromDate query string false "From date YYYY-MM-DD"
// @Param toDate query string false "To date YYYY-MM-DD"
// @Param month query int false "Month 1-12 (with year)"
// @Param year query int false "Year"
// @Param periodID query string false "Accounting period ID"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := h.resolveRange(c)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	report, err := h.reportingService.GetCashFlowStatement(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report, h.baseCurrencyCode(c)))
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Total debits and credits per account up to a date
// @Tags reports
// @Produce json
// @Param asOf query string false "Snapshot date YYYY-MM-DD (defaults to today)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if q := c.Query("asOf"); q != "" {
		parsed, err := dates.ParseISO(q)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		asOf = parsed
	}

	rows, err := h.reportingService.GetTrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, asOf.Format(dates.ISO)))
}

// getGeneralLedger godoc
// @Summary General ledger for one account
// @Description Unified view across journal lines and balance adjustments, newest first
// @Tags reports
// @Produce json
// @Param accountID path string true "Account ID"
// @Param search query string false "Match against descriptions"
// @Param from query string false "From date YYYY-MM-DD"
// @Param to query string false "To date YYYY-MM-DD"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /reports/general-ledger/{accountID} [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid general ledger params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.reportingService.GetGeneralLedger(c.Request.Context(), c.Param("accountID"), params)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// RegisterReportingRoutes registers report routes.
func RegisterReportingRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newReportingHandler(services.Reporting, services.Period, services.Currency)

	reports := group.Group("/reports")
	{
		reports.GET("/income-statement", handler.getIncomeStatement)
		reports.GET("/balance-sheet", handler.getBalanceSheet)
		reports.GET("/cash-flow", handler.getCashFlow)
		reports.GET("/trial-balance", handler.getTrialBalance)
		reports.GET("/general-ledger/:accountID", handler.getGeneralLedger)
	}
}
