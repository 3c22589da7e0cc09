package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/services"
	"github.com/fitcoach/coaching-service/internal/utils"
)

type DietPlanHandler struct {
	BaseHandler
	dietPlanService services.DietPlanService
}

func NewDietPlanHandler(dietPlanService services.DietPlanService, logger utils.Logger) *DietPlanHandler {
	return &DietPlanHandler{
		BaseHandler:     NewBaseHandler(logger),
		dietPlanService: dietPlanService,
	}
}

// CreateDietPlan publishes a plan for one of the calling trainer's students.
func (h *DietPlanHandler) CreateDietPlan(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating diet plan", "title", req.Title)

	plan, err := h.dietPlanService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// ListDietPlans returns the plans visible to the caller by role.
func (h *DietPlanHandler) ListDietPlans(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	plans, err := h.dietPlanService.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}
