package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/dto"
	"github.com/unionbooks/chapter_ledger/internal/middleware"
)

// statementHandler handles HTTP requests for statement reports.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

func newStatementHandler(ss portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{statementService: ss}
}

// RegisterStatementRoutes registers the statement reporting routes.
func RegisterStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade, documentLimiter *limiter.Limiter) {
	h := newStatementHandler(statementService)

	statements := rg.Group("/statements")
	{
		statements.GET("", h.buildStatement)
		statements.GET("/last", h.lastStatement)
		statements.GET("/csv", middleware.RateLimit(documentLimiter), h.statementCSV)
		statements.GET("/pdf", middleware.RateLimit(documentLimiter), h.statementPDF)
	}
}

// bindStatementRequest binds and parses the statement query string, writing
// the error response itself when binding fails.
func bindStatementRequest(c *gin.Context) (dto.StatementRequest, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind statement query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return dto.StatementRequest{}, false
	}
	return req, true
}

// buildStatement godoc
// @Summary Build a statement
// @Description Queries the ledger with the given filter and returns the computed statement table
// @Tags statements
// @Produce  json
// @Param   dateFrom query string true "Start date (inclusive, YYYY-MM-DD)"
// @Param   dateTo query string true "End date (inclusive, YYYY-MM-DD)"
// @Param   kind query string false "Kind filter" Enums(ALL, INCOME, EXPENSE)
// @Param   divisionID query []string false "Division ids (repeatable)"
// @Param   area query []string false "Area labels (repeatable)"
// @Param   personID query []string false "Person ids (repeatable)"
// @Param   groupID query []string false "Group ids (repeatable)"
// @Param   categoryID query []string false "Category ids (repeatable)"
// @Param   twoSided query bool false "Two-sided income/expense layout"
// @Param   showRunningBalance query bool false "Include the running balance column"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Ledger query failed"
// @Security BearerAuth
// @Router /statements [get]
func (h *statementHandler) buildStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req, ok := bindStatementRequest(c)
	if !ok {
		return
	}
	filter, opts, err := req.ToFilter()
	if err != nil {
		logger.Warn("Invalid statement filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rep, err := h.statementService.BuildStatement(c.Request.Context(), userID, filter, opts)
	if err != nil {
		h.writeStatementError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(rep))
}

// lastStatement godoc
// @Summary Get the last successfully built statement
// @Description Returns the caller's most recent successfully computed statement; a failed build never evicts it
// @Tags statements
// @Produce  json
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} map[string]string "No statement built yet"
// @Security BearerAuth
// @Router /statements/last [get]
func (h *statementHandler) lastStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rep := h.statementService.LastStatement(c.Request.Context(), userID)
	if rep == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No statement has been built yet"})
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(rep))
}

// statementCSV godoc
// @Summary Export a statement as CSV
// @Description Builds the statement and streams it as a CSV download; totals match the table and PDF sinks exactly
// @Tags statements
// @Produce  text/csv
// @Param   dateFrom query string true "Start date (inclusive, YYYY-MM-DD)"
// @Param   dateTo query string true "End date (inclusive, YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Security BearerAuth
// @Router /statements/csv [get]
func (h *statementHandler) statementCSV(c *gin.Context) {
	req, ok := bindStatementRequest(c)
	if !ok {
		return
	}
	filter, opts, err := req.ToFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payload, filename, err := h.statementService.StatementCSV(c.Request.Context(), userID, filter, opts)
	if err != nil {
		h.writeStatementError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

// statementPDF godoc
// @Summary Export a statement as PDF
// @Description Builds the statement and streams the paginated PDF document
// @Tags statements
// @Produce  application/pdf
// @Param   dateFrom query string true "Start date (inclusive, YYYY-MM-DD)"
// @Param   dateTo query string true "End date (inclusive, YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Security BearerAuth
// @Router /statements/pdf [get]
func (h *statementHandler) statementPDF(c *gin.Context) {
	req, ok := bindStatementRequest(c)
	if !ok {
		return
	}
	filter, opts, err := req.ToFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payload, filename, err := h.statementService.StatementPDF(c.Request.Context(), userID, filter, opts)
	if err != nil {
		h.writeStatementError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// writeStatementError maps service failures to HTTP responses. A ledger
// query failure is surfaced distinctly so the dashboard can show its error
// banner instead of an empty table.
func (h *statementHandler) writeStatementError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Statement request validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrQueryFailed):
		logger.Error("Statement ledger query failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Ledger query failed, statement not built"})
	default:
		logger.Error("Failed to build statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
	}
}
