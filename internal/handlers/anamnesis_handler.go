package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/services"
	"github.com/fitcoach/coaching-service/internal/utils"
)

type AnamnesisHandler struct {
	BaseHandler
	anamnesisService services.AnamnesisService
}

func NewAnamnesisHandler(anamnesisService services.AnamnesisService, logger utils.Logger) *AnamnesisHandler {
	return &AnamnesisHandler{
		BaseHandler:      NewBaseHandler(logger),
		anamnesisService: anamnesisService,
	}
}

// GetAnamnesis returns an intake questionnaire: the caller's own, or a linked
// student's when a trainer passes ?student_id.
func (h *AnamnesisHandler) GetAnamnesis(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if studentID := c.Query("student_id"); studentID != "" {
		record, err := h.anamnesisService.GetForTrainer(c.Request.Context(), userID, studentID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
		return
	}

	record, err := h.anamnesisService.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpsertAnamnesis applies a partial questionnaire submission for the caller.
func (h *AnamnesisHandler) UpsertAnamnesis(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.UpsertAnamnesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Upserting anamnesis")

	record, err := h.anamnesisService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}
