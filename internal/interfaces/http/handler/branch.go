package handler

import (
	"github.com/gin-gonic/gin"

	appbranch "github.com/laundrypos/backend/internal/application/branch"
)

// BranchHandler handles branch management endpoints
type BranchHandler struct {
	BaseHandler
	service *appbranch.Service
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(service *appbranch.Service) *BranchHandler {
	return &BranchHandler{service: service}
}

// Create opens a new branch
func (h *BranchHandler) Create(c *gin.Context) {
	var req appbranch.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update edits branch details
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	var req appbranch.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns one branch
func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns all branches
func (h *BranchHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate closes a branch to new activity
func (h *BranchHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	resp, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
