package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/services"
	"github.com/fitcoach/coaching-service/internal/utils"
)

type MeasurementHandler struct {
	BaseHandler
	measurementService services.MeasurementService
}

func NewMeasurementHandler(measurementService services.MeasurementService, logger utils.Logger) *MeasurementHandler {
	return &MeasurementHandler{
		BaseHandler:        NewBaseHandler(logger),
		measurementService: measurementService,
	}
}

// CreateMeasurement records a check-in for the calling student.
func (h *MeasurementHandler) CreateMeasurement(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Recording measurement")

	measurement, err := h.measurementService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, measurement)
}

// ListMeasurements returns measurement history, newest first: the caller's
// own, or a linked student's when a trainer passes ?student_id.
func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if studentID := c.Query("student_id"); studentID != "" {
		measurements, err := h.measurementService.ListForTrainer(c.Request.Context(), userID, studentID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"measurements": measurements})
		return
	}

	measurements, err := h.measurementService.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": measurements})
}
