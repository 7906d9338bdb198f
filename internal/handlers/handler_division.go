package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/dto"
	"github.com/unionbooks/chapter_ledger/internal/middleware"
)

// divisionHandler handles HTTP requests for divisions.
type divisionHandler struct {
	referenceService portssvc.ReferenceSvcFacade
}

// registerDivisionRoutes registers routes related to divisions.
func registerDivisionRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvcFacade) {
	h := &divisionHandler{referenceService: referenceService}

	divisions := rg.Group("/divisions")
	{
		divisions.POST("", h.createDivision)
		divisions.GET("", h.listDivisions)
		divisions.DELETE("/:id", h.deleteDivision)
	}
}

// createDivision godoc
// @Summary Create a division
// @Tags divisions
// @Accept  json
// @Produce  json
// @Param   division body dto.CreateDivisionRequest true "Division details"
// @Success 201 {object} dto.DivisionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Division already exists"
// @Security BearerAuth
// @Router /divisions [post]
func (h *divisionHandler) createDivision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDivision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	division, err := h.referenceService.CreateDivision(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create division", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create division"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToDivisionResponse(division))
}

// listDivisions godoc
// @Summary List divisions
// @Description Lists divisions, optionally ranked by a fuzzy picker search term
// @Tags divisions
// @Produce  json
// @Param   q query string false "Picker search term"
// @Success 200 {array} dto.DivisionResponse
// @Security BearerAuth
// @Router /divisions [get]
func (h *divisionHandler) listDivisions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	divisions, err := h.referenceService.ListDivisions(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Error("Failed to list divisions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list divisions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDivisionResponses(divisions))
}

// deleteDivision godoc
// @Summary Delete a division
// @Tags divisions
// @Param   id path string true "Division ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Division not found"
// @Security BearerAuth
// @Router /divisions/{id} [delete]
func (h *divisionHandler) deleteDivision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.referenceService.DeleteDivision(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Division not found"})
		} else {
			logger.Error("Failed to delete division", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete division"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
