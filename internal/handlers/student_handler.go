package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/services"
	"github.com/fitcoach/coaching-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
	}
}

// GetStudent returns a coaching record: the caller's own by default, or a
// linked student's when a trainer passes ?student_id.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if studentID := c.Query("student_id"); studentID != "" {
		student, err := h.studentService.GetForTrainer(c.Request.Context(), userID, studentID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, student)
		return
	}

	student, err := h.studentService.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// ListStudents returns the calling trainer's roster.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	roster, err := h.studentService.ListForTrainer(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": roster})
}

// UpdateTrainer switches or clears the calling student's trainer link.
func (h *StudentHandler) UpdateTrainer(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating trainer link")

	student, err := h.studentService.UpdateTrainer(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}
