package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	appdeposit "github.com/laundrypos/backend/internal/application/deposit"
)

// DepositTransactionHandler handles deposit purchase, laundry payment and
// cancellation endpoints.
type DepositTransactionHandler struct {
	BaseHandler
	engine *appdeposit.Engine
}

// NewDepositTransactionHandler creates a new DepositTransactionHandler
func NewDepositTransactionHandler(engine *appdeposit.Engine) *DepositTransactionHandler {
	return &DepositTransactionHandler{engine: engine}
}

// PurchaseDeposit credits a customer with deposit balance from a plan purchase
func (h *DepositTransactionHandler) PurchaseDeposit(c *gin.Context) {
	var req appdeposit.PurchaseDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.ProcessedBy = processedBy(c)

	resp, err := h.engine.PurchaseDeposit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// PayLaundry settles a laundry order with deposit, cash, transfer, qris or a
// mixed deposit/cash split.
func (h *DepositTransactionHandler) PayLaundry(c *gin.Context) {
	var req appdeposit.PayLaundryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.ProcessedBy = processedBy(c)

	resp, err := h.engine.PayLaundry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// CancelTransaction cancels a ledger entry and reverses its balance effect
func (h *DepositTransactionHandler) CancelTransaction(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	// Reason and body are optional; an absent body cancels without a reason.
	var req appdeposit.CancelTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindingError(c, err)
		return
	}
	req.ProcessedBy = processedBy(c)

	resp, err := h.engine.CancelTransaction(c.Request.Context(), entryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetTransaction returns one ledger entry
func (h *DepositTransactionHandler) GetTransaction(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	resp, err := h.engine.GetTransaction(c.Request.Context(), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListTransactions returns a filtered page of ledger entries, newest first
func (h *DepositTransactionHandler) ListTransactions(c *gin.Context) {
	var req appdeposit.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.engine.ListTransactions(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Transactions, resp.Total, resp.Page, resp.PageSize)
}

// GetCustomerBalance returns a customer's deposit position
func (h *DepositTransactionHandler) GetCustomerBalance(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.engine.GetCustomerBalance(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ReconcileCustomer replays a customer's ledger and reports whether the
// stored balance matches.
func (h *DepositTransactionHandler) ReconcileCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.engine.Reconcile(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
