package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/finova_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/finova_ledger/internal/core/ports/services"
	"github.com/SscSPs/finova_ledger/internal/dto"
	"github.com/SscSPs/finova_ledger/internal/middleware"
	"github.com/SscSPs/finova_ledger/internal/utils"
)

// journalHandler handles HTTP requests for journals and journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	analytics      utils.AnalyticsClient
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade, analytics utils.AnalyticsClient) *journalHandler {
	return &journalHandler{
		journalService: journalService,
		analytics:      analytics,
	}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, analytics utils.AnalyticsClient) {
	h := newJournalHandler(journalService, analytics)

	rg.GET("/journals", h.listJournals)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", h.saveDraft)
		entries.GET("/:headerID", h.getEntry)
		entries.GET("/:headerID/lines", h.getEntryLines)
		entries.POST("/:headerID/post", h.postEntry)
	}
}

// listJournals godoc
// @Summary List journals
// @Description Returns the company's active journals (books) ordered by code
// @Tags journals
// @Produce  json
// @Success 200 {array} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := requireScope(c, logger)
	if !ok {
		return
	}

	journals, err := h.journalService.GetJournals(c.Request.Context(), scope)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalResponse(journals))
}

// listEntries godoc
// @Summary List journal entries
// @Description Returns at most 500 entry headers, newest date first, optionally filtered by status and date range
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "Draft or Posted"
// @Param   from query string false "Earliest date (YYYY-MM-DD)"
// @Param   to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {array} dto.JournalHeaderResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := requireScope(c, logger)
	if !ok {
		return
	}

	var params dto.ListHeadersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListHeaders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := params.ToHeaderFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	headers, err := h.journalService.ListHeaders(c.Request.Context(), scope, filter)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalHeaderResponse(headers))
}

// saveDraft godoc
// @Summary Save a journal entry as Draft
// @Description Validates the lines against the chart of accounts and the fiscal calendar and stores a balanced Draft entry
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.SaveDraftRequest true "Journal entry"
// @Success 201 {object} dto.SaveDraftResponse
// @Failure 400 {object} map[string]string "Invalid input or rejected entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to save journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) saveDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := requireScope(c, logger)
	if !ok {
		return
	}

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	draft, err := req.ToJournalDraft()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	headerID, err := h.journalService.SaveDraft(c.Request.Context(), scope, draft)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to save journal entry")
		return
	}

	middleware.PosthogEvent(c, h.analytics, "journal_entry_drafted", map[string]any{
		"header_id":  headerID,
		"journal_id": draft.JournalID,
		"line_count": len(draft.Lines),
	})
	c.JSON(http.StatusCreated, dto.SaveDraftResponse{HeaderID: headerID})
}

// getEntry godoc
// @Summary Get a journal entry header
// @Tags journal-entries
// @Produce  json
// @Param   headerID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalHeaderResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{headerID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := requireScope(c, logger)
	if !ok {
		return
	}
	var uri dto.JournalEntryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		// not a uuid, so no entry can carry it
		logger.Warn("Malformed journal entry ID", slog.String("header_id", c.Param("headerID")))
		c.JSON(http.StatusNotFound, gin.H{"error": "journal entry not found"})
		return
	}
	headerID := uri.HeaderID

	header, err := h.journalService.GetHeader(c.Request.Context(), scope, headerID)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("header_id", headerID)), err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalHeaderResponse(header))
}

// getEntryLines godoc
// @Summary Get the lines of a journal entry
// @Description Lines are returned in line-number order; an unknown entry yields an empty list
// @Tags journal-entries
// @Produce  json
// @Param   headerID path string true "Journal entry ID"
// @Success 200 {array} dto.JournalLineResponse
// @Failure 404 {object} map[string]string "Malformed journal entry ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to retrieve journal lines"
// @Security BearerAuth
// @Router /journal-entries/{headerID}/lines [get]
func (h *journalHandler) getEntryLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := requireScope(c, logger)
	if !ok {
		return
	}
	var uri dto.JournalEntryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		logger.Warn("Malformed journal entry ID", slog.String("header_id", c.Param("headerID")))
		c.JSON(http.StatusNotFound, gin.H{"error": "journal entry not found"})
		return
	}
	headerID := uri.HeaderID

	lines, err := h.journalService.GetLines(c.Request.Context(), scope, headerID)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("header_id", headerID)), err, "Failed to retrieve journal lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalLineResponse(lines))
}

// postEntry godoc
// @Summary Post a Draft journal entry
// @Description Re-validates the entry and marks it Posted. The outcome field tells POSTED, NOT_FOUND and ALREADY_POSTED apart.
// @Tags journal-entries
// @Produce  json
// @Param   headerID path string true "Journal entry ID"
// @Success 200 {object} dto.PostResultResponse
// @Failure 400 {object} map[string]string "Entry no longer valid (closed period, inactive account...)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} dto.PostResultResponse "Journal entry not found"
// @Failure 409 {object} dto.PostResultResponse "Journal entry already posted"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries/{headerID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, ok := requireScope(c, logger)
	if !ok {
		return
	}
	var uri dto.JournalEntryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		// Same answer as a well-formed id that matches nothing.
		headerID := c.Param("headerID")
		logger.Warn("Malformed journal entry ID", slog.String("header_id", headerID))
		c.JSON(http.StatusNotFound, dto.ToPostResultResponse(domain.NewPostResult(domain.PostOutcomeNotFound, headerID)))
		return
	}
	headerID := uri.HeaderID

	result, err := h.journalService.Post(c.Request.Context(), scope, headerID)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("header_id", headerID)), err, "Failed to post journal entry")
		return
	}

	status := http.StatusOK
	switch result.Outcome {
	case domain.PostOutcomeNotFound:
		status = http.StatusNotFound
	case domain.PostOutcomeAlreadyPosted:
		status = http.StatusConflict
	case domain.PostOutcomePosted:
		middleware.PosthogEvent(c, h.analytics, "journal_entry_posted", map[string]any{"header_id": headerID})
	}
	c.JSON(status, dto.ToPostResultResponse(result))
}
