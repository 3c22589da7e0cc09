package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/services"
	"github.com/fitcoach/coaching-service/internal/utils"
)

type MaterialHandler struct {
	BaseHandler
	materialService services.MaterialService
}

func NewMaterialHandler(materialService services.MaterialService, logger utils.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler:     NewBaseHandler(logger),
		materialService: materialService,
	}
}

// CreateMaterial registers a material with its initial access grants.
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating material", "title", req.Title)

	material, err := h.materialService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

// ListMaterials returns the materials visible to the caller by role.
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	materials, err := h.materialService.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

// ReplaceAccess swaps a material's entire grant set.
func (h *MaterialHandler) ReplaceAccess(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	materialID := ParseUintIDParam(c, "id")
	if materialID == 0 {
		return
	}

	var req services.ReplaceAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Replacing material access", "material_id", materialID)

	material, err := h.materialService.ReplaceAccess(c.Request.Context(), userID, materialID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}
