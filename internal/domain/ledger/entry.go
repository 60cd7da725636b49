package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// EntryType represents the kind of monetary event a ledger entry records
type EntryType string

const (
	// EntryTypeLaundry represents payment for a laundry order
	EntryTypeLaundry EntryType = "laundry"
	// EntryTypeDepositPurchase represents a customer buying deposit credit
	EntryTypeDepositPurchase EntryType = "deposit_purchase"
	// EntryTypeRefund represents money returned to the customer
	EntryTypeRefund EntryType = "refund"
	// EntryTypeAdjustment represents a manual or system balance correction
	EntryTypeAdjustment EntryType = "adjustment"
)

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeLaundry, EntryTypeDepositPurchase, EntryTypeRefund, EntryTypeAdjustment:
		return true
	}
	return false
}

// Cancellable returns true if entries of this type support cancellation.
// Refunds and adjustments have no defined reversal, so cancelling them is
// rejected rather than silently flipping status.
func (t EntryType) Cancellable() bool {
	switch t {
	case EntryTypeLaundry, EntryTypeDepositPurchase:
		return true
	}
	return false
}

// PaymentMethod represents how a transaction was paid
type PaymentMethod string

const (
	PaymentMethodDeposit  PaymentMethod = "deposit"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodQRIS     PaymentMethod = "qris"
	PaymentMethodMixed    PaymentMethod = "mixed"
)

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid returns true if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodDeposit, PaymentMethodCash, PaymentMethodTransfer, PaymentMethodQRIS, PaymentMethodMixed:
		return true
	}
	return false
}

// UsesDeposit returns true if the method draws on the customer's deposit balance
func (m PaymentMethod) UsesDeposit() bool {
	return m == PaymentMethodDeposit || m == PaymentMethodMixed
}

// EntryStatus represents the lifecycle state of a ledger entry
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusCancelled EntryStatus = "cancelled"
)

// String returns the string representation of EntryStatus
func (s EntryStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPending, EntryStatusCompleted, EntryStatusCancelled:
		return true
	}
	return false
}

// Entry represents one immutable monetary event in the customer deposit ledger.
// Monetary fields are never mutated after creation; corrections happen through
// cancellation (status flip plus reversal on the customer projection) or through
// new adjustment entries. All amounts are integers in the smallest currency unit.
type Entry struct {
	shared.BaseEntity
	CustomerID      uuid.UUID
	BranchID        uuid.UUID
	OrderID         *uuid.UUID
	Type            EntryType
	Amount          int64 // always positive, meaning depends on Type
	PaymentMethod   PaymentMethod
	DepositAmount   int64 // portion settled from deposit balance
	CashAmount      int64 // portion settled with cash/transfer/qris
	Status          EntryStatus
	Description     string
	ReferenceID     string
	ProcessedBy     *uuid.UUID
	TransactionDate time.Time
}

// NewDepositPurchaseEntry creates a completed ledger entry for a deposit purchase.
// Amount carries the credit granted; CashAmount carries the price actually paid,
// so the original purchase terms survive later edits to the deposit type.
func NewDepositPurchaseEntry(customerID, branchID uuid.UUID, depositValue, purchasePrice int64, description string) (*Entry, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Branch ID cannot be empty")
	}
	if depositValue <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Deposit value must be positive")
	}
	if purchasePrice <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Purchase price must be positive")
	}

	now := time.Now()
	return &Entry{
		BaseEntity:      shared.NewBaseEntity(),
		CustomerID:      customerID,
		BranchID:        branchID,
		Type:            EntryTypeDepositPurchase,
		Amount:          depositValue,
		PaymentMethod:   PaymentMethodCash,
		CashAmount:      purchasePrice,
		Status:          EntryStatusCompleted,
		Description:     description,
		ReferenceID:     newReferenceID("DEP", now),
		TransactionDate: now,
	}, nil
}

// NewLaundryPaymentEntry creates a completed ledger entry for a laundry payment.
// depositAmount is the portion drawn from the customer's balance and cashAmount
// the portion paid with another instrument; for mixed payments they must add up
// to the total exactly.
func NewLaundryPaymentEntry(customerID, branchID uuid.UUID, orderID *uuid.UUID, amount int64, method PaymentMethod, depositAmount, cashAmount int64, description string) (*Entry, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Branch ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Invalid payment method %q", method))
	}
	if depositAmount < 0 || cashAmount < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment portions cannot be negative")
	}

	switch method {
	case PaymentMethodDeposit:
		if depositAmount != amount {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Deposit payment must be settled entirely from balance")
		}
	case PaymentMethodMixed:
		if depositAmount+cashAmount != amount {
			return nil, shared.ErrAmountMismatch
		}
	default:
		if depositAmount != 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Non-deposit payment cannot draw on balance")
		}
		cashAmount = amount
	}

	now := time.Now()
	return &Entry{
		BaseEntity:      shared.NewBaseEntity(),
		CustomerID:      customerID,
		BranchID:        branchID,
		OrderID:         orderID,
		Type:            EntryTypeLaundry,
		Amount:          amount,
		PaymentMethod:   method,
		DepositAmount:   depositAmount,
		CashAmount:      cashAmount,
		Status:          EntryStatusCompleted,
		Description:     description,
		ReferenceID:     newReferenceID("LAU", now),
		TransactionDate: now,
	}, nil
}

// NewAdjustmentEntry creates a completed ledger entry recording a balance
// deduction outside the payment flows, e.g. expiring unused deposit credit.
// depositAmount is the amount removed from the balance.
func NewAdjustmentEntry(customerID, branchID uuid.UUID, depositAmount int64, description string) (*Entry, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer ID cannot be empty")
	}
	if depositAmount <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Adjustment amount must be positive")
	}

	now := time.Now()
	return &Entry{
		BaseEntity:      shared.NewBaseEntity(),
		CustomerID:      customerID,
		BranchID:        branchID,
		Type:            EntryTypeAdjustment,
		Amount:          depositAmount,
		PaymentMethod:   PaymentMethodDeposit,
		DepositAmount:   depositAmount,
		Status:          EntryStatusCompleted,
		Description:     description,
		ReferenceID:     newReferenceID("ADJ", now),
		TransactionDate: now,
	}, nil
}

// WithProcessedBy sets the staff member who processed the entry
func (e *Entry) WithProcessedBy(staffID uuid.UUID) *Entry {
	e.ProcessedBy = &staffID
	return e
}

// IsCancelled returns true if the entry has been cancelled
func (e *Entry) IsCancelled() bool {
	return e.Status == EntryStatusCancelled
}

// Cancel flips the entry to cancelled and appends the reason to its description.
// The transition is one-way; cancelling twice fails. Original monetary fields
// are left untouched for audit.
func (e *Entry) Cancel(reason string) error {
	if e.Status == EntryStatusCancelled {
		return shared.ErrAlreadyCancelled
	}
	if !e.Type.Cancellable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Entries of type %q cannot be cancelled", e.Type))
	}

	e.Status = EntryStatusCancelled
	if reason == "" {
		reason = "no reason given"
	}
	if e.Description != "" {
		e.Description = e.Description + " | cancelled: " + reason
	} else {
		e.Description = "cancelled: " + reason
	}
	e.UpdatedAt = time.Now()
	return nil
}

// BalanceEffect returns the signed effect of this entry on the customer's
// deposit balance. Cancelled entries have no effect; replaying BalanceEffect
// over a customer's entries must reproduce the live DepositBalance field.
func (e *Entry) BalanceEffect() int64 {
	if e.Status == EntryStatusCancelled {
		return 0
	}
	switch e.Type {
	case EntryTypeDepositPurchase:
		return e.Amount
	case EntryTypeLaundry:
		return -e.DepositAmount
	case EntryTypeAdjustment:
		return -e.DepositAmount
	case EntryTypeRefund:
		return e.DepositAmount
	}
	return 0
}

// DepositRestoredOnCancel returns the amount put back on the customer's
// balance when this entry is cancelled.
func (e *Entry) DepositRestoredOnCancel() int64 {
	switch e.Type {
	case EntryTypeLaundry:
		return e.DepositAmount
	case EntryTypeDepositPurchase:
		// Cancelling a purchase removes the granted credit, nothing is restored.
		return 0
	}
	return 0
}

// RefundedOnCancel returns the total handed back to the customer when this
// entry is cancelled: a laundry payment is returned in full (deposit portion
// to the balance, the rest in cash), a deposit purchase refunds the price
// that was paid for the credit.
func (e *Entry) RefundedOnCancel() int64 {
	switch e.Type {
	case EntryTypeLaundry:
		return e.Amount
	case EntryTypeDepositPurchase:
		return e.CashAmount
	}
	return 0
}

func newReferenceID(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, t.UnixMilli())
}
