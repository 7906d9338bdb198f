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

type personHandler struct {
	referenceService portssvc.ReferenceSvcFacade
}

// registerPersonRoutes registers routes related to persons.
func registerPersonRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvcFacade) {
	h := &personHandler{referenceService: referenceService}

	persons := rg.Group("/persons")
	{
		persons.POST("", h.createPerson)
		persons.GET("", h.listPersons)
		persons.DELETE("/:id", h.deletePerson)
	}
}

// createPerson godoc
// @Summary Create a person
// @Tags persons
// @Accept  json
// @Produce  json
// @Param   person body dto.CreatePersonRequest true "Person details"
// @Success 201 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Person already exists"
// @Security BearerAuth
// @Router /persons [post]
func (h *personHandler) createPerson(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePerson", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	person, err := h.referenceService.CreatePerson(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create person", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create person"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPersonResponse(person))
}

// listPersons godoc
// @Summary List persons
// @Tags persons
// @Produce  json
// @Param   q query string false "Picker search term"
// @Success 200 {array} dto.PersonResponse
// @Security BearerAuth
// @Router /persons [get]
func (h *personHandler) listPersons(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	persons, err := h.referenceService.ListPersons(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Error("Failed to list persons", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list persons"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPersonResponses(persons))
}

// deletePerson godoc
// @Summary Delete a person
// @Tags persons
// @Param   id path string true "Person ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Person not found"
// @Security BearerAuth
// @Router /persons/{id} [delete]
func (h *personHandler) deletePerson(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.referenceService.DeletePerson(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		} else {
			logger.Error("Failed to delete person", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete person"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
