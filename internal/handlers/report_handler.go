package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/services"
	"github.com/fitcoach/coaching-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// ExportMeasurements streams a student's measurement history as xlsx. With
// no ?student_id the caller exports their own history.
func (h *ReportHandler) ExportMeasurements(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	studentID := c.Query("student_id")
	if studentID == "" {
		studentID = userID
	}

	h.LogRequest(c, "Exporting measurement report", "student_id", studentID)

	data, filename, err := h.reportService.ExportMeasurements(c.Request.Context(), userID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, data)
}
