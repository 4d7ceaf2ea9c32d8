package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
	"github.com/schoolerp/ledger_backend/internal/middleware"
	"github.com/schoolerp/ledger_backend/internal/utils/dates"
)

// accountHandler handles chart-of-accounts and balance requests.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	balanceService portssvc.BalanceSvcFacade
	journalService portssvc.JournalSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade, balanceService portssvc.BalanceSvcFacade, journalService portssvc.JournalSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
		balanceService: balanceService,
		journalService: journalService,
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Adds an account to the chart of accounts
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Code already in use"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	account, err := h.accountService.CreateAccount(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists chart-of-accounts entries, optionally filtered by type and active flag
// @Tags accounts
// @Produce json
// @Param type query string false "Account type" Enums(ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)
// @Param isActive query bool false "Active flag"
// @Success 200 {array} dto.AccountResponse
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid account listing params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByCode godoc
// @Summary Get an account by its chart code
// @Tags accounts
// @Produce json
// @Param code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/code/{code} [get]
func (h *accountHandler) getAccountByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.accountService.GetAccountByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account inactive. Posted history is never deleted.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Already inactive or still carries a balance"
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	actor := middleware.GetActorFromContext(c)
	if err := h.accountService.DeactivateAccount(c.Request.Context(), accountID, actor); err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get an account balance snapshot
// @Description Returns the latest snapshot at or before asOf, or a zero row when none exists
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Param currency query string false "Currency code (defaults to base currency)"
// @Param asOf query string false "Snapshot date YYYY-MM-DD (defaults to today)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.GetBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid balance params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != "" {
		parsed, err := dates.ParseISO(params.AsOf)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		asOf = parsed
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), accountID, params.CurrencyCode, asOf)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// setBalance godoc
// @Summary Override an account balance
// @Description Administrative escape hatch. The override bypasses the journal and is recorded as an adjustment.
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param balance body dto.SetBalanceRequest true "New balance"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/balance [put]
func (h *accountHandler) setBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	balance, err := h.balanceService.SetBalance(c.Request.Context(), accountID, req, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Account balance overridden",
		slog.String("account_id", accountID),
		slog.String("balance", balance.Balance.String()),
		slog.String("actor", actor))
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// listAccountLines godoc
// @Summary List an account's journal lines
// @Description Paginated ledger lines for one account with optional search, date range and side filters
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Param search query string false "Match against line, entry and reference text"
// @Param from query string false "From date YYYY-MM-DD"
// @Param to query string false "To date YYYY-MM-DD"
// @Param side query string false "Line side" Enums(DEBIT, CREDIT)
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/ledger [get]
func (h *accountHandler) listAccountLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ListAccountLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid ledger params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.journalService.ListAccountLines(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// RegisterAccountRoutes registers account specific routes.
func RegisterAccountRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newAccountHandler(services.Account, services.Balance, services.Journal)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", handler.createAccount)
		accounts.GET("", handler.listAccounts)
		accounts.GET("/code/:code", handler.getAccountByCode)
		accounts.GET("/:accountID", handler.getAccount)
		accounts.DELETE("/:accountID", handler.deactivateAccount)
		accounts.GET("/:accountID/balance", handler.getBalance)
		accounts.PUT("/:accountID/balance", handler.setBalance)
		accounts.GET("/:accountID/ledger", handler.listAccountLines)
	}
}
