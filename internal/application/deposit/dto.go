package deposit

import (
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/ledger"
)

// PurchaseDepositRequest represents a request to buy deposit credit
type PurchaseDepositRequest struct {
	CustomerID    uuid.UUID  `json:"customer_id" binding:"required"`
	DepositTypeID uuid.UUID  `json:"deposit_type_id" binding:"required"`
	Description   string     `json:"description" binding:"max=500"`
	ProcessedBy   *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// PayLaundryRequest represents a request to pay for a laundry order
type PayLaundryRequest struct {
	CustomerID    uuid.UUID  `json:"customer_id" binding:"required"`
	OrderID       *uuid.UUID `json:"order_id"`
	Amount        int64      `json:"amount" binding:"required,gt=0"`
	PaymentMethod string     `json:"payment_method" binding:"required,oneof=deposit cash transfer qris mixed"`
	// DepositAmount and CashAmount are only read for mixed payments; for the
	// single-instrument methods the split is derived from the method itself.
	DepositAmount int64      `json:"deposit_amount" binding:"gte=0"`
	CashAmount    int64      `json:"cash_amount" binding:"gte=0"`
	Description   string     `json:"description" binding:"max=500"`
	ProcessedBy   *uuid.UUID `json:"-"`
}

// CancelTransactionRequest represents a request to cancel a ledger entry
type CancelTransactionRequest struct {
	Reason      string     `json:"reason" binding:"max=500"`
	ProcessedBy *uuid.UUID `json:"-"`
}

// ListTransactionsRequest represents query filters for the transaction list
type ListTransactionsRequest struct {
	BranchID   *uuid.UUID `form:"branch_id"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Type       string     `form:"type"`
	Status     string     `form:"status"`
	DateFrom   *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID              uuid.UUID  `json:"id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	BranchID        uuid.UUID  `json:"branch_id"`
	OrderID         *uuid.UUID `json:"order_id,omitempty"`
	Type            string     `json:"type"`
	Amount          int64      `json:"amount"`
	PaymentMethod   string     `json:"payment_method"`
	DepositAmount   int64      `json:"deposit_amount"`
	CashAmount      int64      `json:"cash_amount"`
	Status          string     `json:"status"`
	Description     string     `json:"description,omitempty"`
	ReferenceID     string     `json:"reference_id"`
	ProcessedBy     *uuid.UUID `json:"processed_by,omitempty"`
	TransactionDate time.Time  `json:"transaction_date"`
	CreatedAt       time.Time  `json:"created_at"`
	// CustomerName is joined in from the customer row for display
	CustomerName string `json:"customer_name,omitempty"`
}

// PaymentBreakdown itemizes how a laundry payment was settled
type PaymentBreakdown struct {
	Total                   int64 `json:"total"`
	DepositUsed             int64 `json:"deposit_used"`
	CashPaid                int64 `json:"cash_paid"`
	RemainingDepositBalance int64 `json:"remaining_deposit_balance"`
}

// PurchaseDepositResponse carries the recorded purchase, the customer's
// updated deposit position and the plan that was sold.
type PurchaseDepositResponse struct {
	Transaction TransactionResponse     `json:"transaction"`
	Customer    CustomerBalanceResponse `json:"customer"`
	DepositType DepositTypeResponse     `json:"deposit_type"`
}

// PayLaundryResponse carries the recorded payment, the customer's updated
// deposit position and the settlement breakdown.
type PayLaundryResponse struct {
	Transaction TransactionResponse     `json:"transaction"`
	Customer    CustomerBalanceResponse `json:"customer"`
	Breakdown   PaymentBreakdown        `json:"breakdown"`
}

// CancelTransactionResponse carries the cancelled entry, the amount returned
// to the customer and the customer's rolled-back deposit position.
type CancelTransactionResponse struct {
	CancelledTransaction TransactionResponse     `json:"cancelled_transaction"`
	RefundAmount         int64                   `json:"refund_amount"`
	Customer             CustomerBalanceResponse `json:"customer"`
}

// TransactionListResponse wraps a page of transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}

// ReconcileResponse reports a balance replay against the stored projection
type ReconcileResponse struct {
	CustomerID      uuid.UUID `json:"customer_id"`
	StoredBalance   int64     `json:"stored_balance"`
	ReplayedBalance int64     `json:"replayed_balance"`
	Consistent      bool      `json:"consistent"`
	EntryCount      int       `json:"entry_count"`
}

// CustomerBalanceResponse summarizes a customer's deposit position
type CustomerBalanceResponse struct {
	CustomerID      uuid.UUID  `json:"customer_id"`
	CustomerName    string     `json:"customer_name"`
	DepositBalance  int64      `json:"deposit_balance"`
	TotalDeposit    int64      `json:"total_deposit"`
	TotalOrders     int64      `json:"total_orders"`
	TotalSpent      int64      `json:"total_spent"`
	DepositTypeName string     `json:"deposit_type_name,omitempty"`
	HasExpiry       bool       `json:"has_expiry"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
}

// CreateDepositTypeRequest represents a request to create a deposit plan
type CreateDepositTypeRequest struct {
	BranchID      uuid.UUID `json:"branch_id" binding:"required"`
	Name          string    `json:"name" binding:"required,min=1,max=100"`
	Description   string    `json:"description" binding:"max=500"`
	PurchasePrice int64     `json:"purchase_price" binding:"required,gt=0"`
	DepositValue  int64     `json:"deposit_value" binding:"required,gt=0"`
	ValidityDays  int       `json:"validity_days" binding:"gte=0"`
}

// UpdateDepositTypeRequest represents a request to edit a deposit plan
type UpdateDepositTypeRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Description   string `json:"description" binding:"max=500"`
	PurchasePrice int64  `json:"purchase_price" binding:"required,gt=0"`
	DepositValue  int64  `json:"deposit_value" binding:"required,gt=0"`
	ValidityDays  int    `json:"validity_days" binding:"gte=0"`
}

// DepositTypeResponse represents a deposit plan in API responses
type DepositTypeResponse struct {
	ID            uuid.UUID `json:"id"`
	BranchID      uuid.UUID `json:"branch_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	PurchasePrice int64     `json:"purchase_price"`
	DepositValue  int64     `json:"deposit_value"`
	ValidityDays  int       `json:"validity_days"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToTransactionResponse converts a domain Entry to TransactionResponse
func ToTransactionResponse(e *ledger.Entry) TransactionResponse {
	return TransactionResponse{
		ID:              e.ID,
		CustomerID:      e.CustomerID,
		BranchID:        e.BranchID,
		OrderID:         e.OrderID,
		Type:            e.Type.String(),
		Amount:          e.Amount,
		PaymentMethod:   e.PaymentMethod.String(),
		DepositAmount:   e.DepositAmount,
		CashAmount:      e.CashAmount,
		Status:          e.Status.String(),
		Description:     e.Description,
		ReferenceID:     e.ReferenceID,
		ProcessedBy:     e.ProcessedBy,
		TransactionDate: e.TransactionDate,
		CreatedAt:       e.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain Entries
func ToTransactionResponses(entries []*ledger.Entry) []TransactionResponse {
	responses := make([]TransactionResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToTransactionResponse(e)
	}
	return responses
}

// ToCustomerBalanceResponse converts a domain Customer to CustomerBalanceResponse
func ToCustomerBalanceResponse(c *customer.Customer) CustomerBalanceResponse {
	return CustomerBalanceResponse{
		CustomerID:      c.ID,
		CustomerName:    c.Name,
		DepositBalance:  c.DepositBalance,
		TotalDeposit:    c.TotalDeposit,
		TotalOrders:     c.TotalOrders,
		TotalSpent:      c.TotalSpent,
		DepositTypeName: c.DepositTypeName,
		HasExpiry:       c.HasExpiry,
		ExpiryDate:      c.ExpiryDate,
	}
}
