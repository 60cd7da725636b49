package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appdeposit "github.com/laundrypos/backend/internal/application/deposit"
)

// DepositTypeHandler handles deposit plan management endpoints
type DepositTypeHandler struct {
	BaseHandler
	service *appdeposit.DepositTypeService
}

// NewDepositTypeHandler creates a new DepositTypeHandler
func NewDepositTypeHandler(service *appdeposit.DepositTypeService) *DepositTypeHandler {
	return &DepositTypeHandler{service: service}
}

// Create registers a new deposit plan
func (h *DepositTypeHandler) Create(c *gin.Context) {
	var req appdeposit.CreateDepositTypeRequest
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

// Update edits a deposit plan's terms. Existing customer balances keep the
// terms they were purchased under.
func (h *DepositTypeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid deposit type ID format")
		return
	}

	var req appdeposit.UpdateDepositTypeRequest
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

// Get returns one deposit plan
func (h *DepositTypeHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid deposit type ID format")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns deposit plans, optionally restricted to one branch or to
// active plans only.
func (h *DepositTypeHandler) List(c *gin.Context) {
	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID format")
			return
		}
		branchID = &id
	}

	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "false"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	types, total, err := h.service.List(c.Request.Context(), branchID, activeOnly, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, types, total, page, pageSize)
}

// Deactivate retires a deposit plan from sale
func (h *DepositTypeHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid deposit type ID format")
		return
	}

	resp, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate puts a retired deposit plan back on sale
func (h *DepositTypeHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid deposit type ID format")
		return
	}

	resp, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
