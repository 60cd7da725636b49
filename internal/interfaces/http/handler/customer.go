package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcustomer "github.com/laundrypos/backend/internal/application/customer"
)

// CustomerHandler handles customer management endpoints
type CustomerHandler struct {
	BaseHandler
	service *appcustomer.Service
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(service *appcustomer.Service) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Register creates a new customer
func (h *CustomerHandler) Register(c *gin.Context) {
	var req appcustomer.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update edits a customer's profile
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req appcustomer.UpdateCustomerRequest
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

// Get returns one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByPhone looks a customer up by phone within a branch, for the cashier
// flow where the customer is identified at the counter.
func (h *CustomerHandler) GetByPhone(c *gin.Context) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}
	phone := c.Query("phone")
	if phone == "" {
		h.BadRequest(c, "Phone is required")
		return
	}

	resp, err := h.service.GetByPhone(c.Request.Context(), branchID, phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a filtered page of customers
func (h *CustomerHandler) List(c *gin.Context) {
	var req appcustomer.ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Customers, resp.Total, resp.Page, resp.PageSize)
}

// Deactivate marks a customer inactive; the ledger and any remaining
// balance are kept.
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate re-enables an inactive customer
func (h *CustomerHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
