package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
	"github.com/schoolerp/ledger_backend/internal/middleware"
)

// periodHandler handles accounting period management and the period close.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Tags periods
// @Accept json
// @Produce json
// @Param period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Range already covered"
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List accounting periods
// @Tags periods
// @Produce json
// @Param status query string false "Period status" Enums(OPEN, CLOSED)
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.PeriodResponse
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPeriodsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid period listing params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriod godoc
// @Summary Get an accounting period
// @Tags periods
// @Produce json
// @Param periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Zeroes revenue and expense accounts into the income summary, transfers the result to retained earnings and marks the period CLOSED. Atomic.
// @Tags periods
// @Produce json
// @Param periodID path string true "Period ID"
// @Success 200 {object} dto.ClosePeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed"
// @Failure 500 {object} map[string]string "Bookkeeping drift detected"
// @Router /periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	actor := middleware.GetActorFromContext(c)
	result, err := h.periodService.ClosePeriod(c.Request.Context(), periodID, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Period closed",
		slog.String("period_id", periodID),
		slog.Int("closing_entries", len(result.ClosingEntryIDs)),
		slog.String("actor", actor))
	c.JSON(http.StatusOK, result)
}

// RegisterPeriodRoutes registers period specific routes.
func RegisterPeriodRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newPeriodHandler(services.Period)

	periods := group.Group("/periods")
	{
		periods.POST("", handler.createPeriod)
		periods.GET("", handler.listPeriods)
		periods.GET("/:periodID", handler.getPeriod)
		periods.POST("/:periodID/close", handler.closePeriod)
	}
}
