package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/schoolerp/ledger_backend/internal/core/ports/services"
	"github.com/schoolerp/ledger_backend/internal/dto"
	"github.com/schoolerp/ledger_backend/internal/middleware"
)

// journalHandler handles journal entry posting and retrieval.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Creates a balanced journal entry and updates account balances atomically
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.PostEntryRequest true "Entry with its lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unbalanced, invalid, or referencing an unknown or inactive account"
// @Router /journal-entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	entry, err := h.journalService.PostEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.Int("lines", len(entry.Lines)),
		slog.String("actor", actor))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal-entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Pages through entries newest first using an opaque cursor token
// @Tags journal-entries
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid cursor"
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid entry listing params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// RegisterJournalRoutes registers journal entry routes.
func RegisterJournalRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newJournalHandler(services.Journal)

	entries := group.Group("/journal-entries")
	{
		entries.POST("", handler.postEntry)
		entries.GET("", handler.listEntries)
		entries.GET("/:entryID", handler.getEntry)
	}
}
