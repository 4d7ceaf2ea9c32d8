package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
	"github.com/schoolerp/ledger_backend/internal/middleware"
)

// currencyHandler handles currency registry requests.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(currencyService portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: currencyService}
}

// createCurrency godoc
// @Summary Register a currency
// @Tags currencies
// @Accept json
// @Produce json
// @Param currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Code already registered or base already set"
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Currency registered", slog.String("currency_code", currency.CurrencyCode))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List currencies
// @Tags currencies
// @Produce json
// @Success 200 {array} dto.CurrencyResponse
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponses(currencies))
}

// getCurrency godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce json
// @Param currencyCode path string true "ISO 4217 code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Router /currencies/{currencyCode} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), c.Param("currencyCode"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// RegisterCurrencyRoutes registers currency specific routes.
func RegisterCurrencyRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newCurrencyHandler(services.Currency)

	currencies := group.Group("/currencies")
	{
		currencies.POST("", handler.createCurrency)
		currencies.GET("", handler.listCurrencies)
		currencies.GET("/:currencyCode", handler.getCurrency)
	}
}
