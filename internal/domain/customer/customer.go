package customer

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// Status represents the status of a customer
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer is the aggregate root for customer-related operations. The deposit
// fields are a materialized projection of the customer's ledger entries: the
// balance must always equal the replay of non-cancelled entries, and must
// never go negative. Only the transaction engine mutates these fields.
type Customer struct {
	shared.BaseAggregateRoot
	BranchID uuid.UUID
	Name     string
	Phone    string
	Email    string
	Address  string
	Status   Status

	DepositBalance  int64 // spendable prepaid credit
	TotalDeposit    int64 // lifetime cash paid for deposit credit
	TotalOrders     int64
	TotalSpent      int64
	DepositTypeID   *uuid.UUID
	DepositTypeName string
	HasExpiry       bool
	ExpiryDate      *time.Time
}

// New creates a new active customer with a zero balance
func New(branchID uuid.UUID, name, phone string) (*Customer, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Branch ID cannot be empty")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		Name:              name,
		Phone:             phone,
		Status:            StatusActive,
	}, nil
}

// SetContact updates contact details
func (c *Customer) SetContact(phone, email, address string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.touch()
	return nil
}

// Rename updates the customer name
func (c *Customer) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = name
	c.touch()
	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Deactivate soft-deactivates the customer. Customers are never deleted while
// ledger entries reference them.
func (c *Customer) Deactivate() error {
	if c.Status == StatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already inactive")
	}
	c.Status = StatusInactive
	c.touch()
	return nil
}

// Activate re-activates the customer
func (c *Customer) Activate() error {
	if c.Status == StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already active")
	}
	c.Status = StatusActive
	c.touch()
	return nil
}

// ApplyDepositPurchase credits the balance with the purchased deposit value,
// records the cash paid, and pins the plan the customer is now on.
func (c *Customer) ApplyDepositPurchase(depositTypeID uuid.UUID, depositTypeName string, depositValue, purchasePrice int64, hasExpiry bool, expiryDate *time.Time) error {
	if depositValue <= 0 || purchasePrice <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Deposit value and purchase price must be positive")
	}
	if hasExpiry && expiryDate == nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Expiry date is required when the deposit expires")
	}

	c.DepositBalance += depositValue
	c.TotalDeposit += purchasePrice
	c.DepositTypeID = &depositTypeID
	c.DepositTypeName = depositTypeName
	c.HasExpiry = hasExpiry
	if hasExpiry {
		c.ExpiryDate = expiryDate
	} else {
		c.ExpiryDate = nil
	}
	c.touch()
	return nil
}

// ApplyLaundryPayment records a paid order: the deposit portion is deducted
// from the balance and the order counters advance. Fails without mutating if
// the balance cannot cover the deposit portion.
func (c *Customer) ApplyLaundryPayment(amount, depositUsed int64) error {
	if amount <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Amount must be positive")
	}
	if depositUsed < 0 || depositUsed > amount {
		return shared.NewDomainError("VALIDATION_ERROR", "Deposit portion must be between zero and the total amount")
	}
	if depositUsed > c.DepositBalance {
		return shared.ErrInsufficientBalance
	}

	c.DepositBalance -= depositUsed
	c.TotalOrders++
	c.TotalSpent += amount
	c.touch()
	return nil
}

// ReverseLaundryPayment undoes ApplyLaundryPayment when the entry is cancelled.
func (c *Customer) ReverseLaundryPayment(amount, depositUsed int64) error {
	if amount <= 0 || depositUsed < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid reversal amounts")
	}

	c.DepositBalance += depositUsed
	if c.TotalOrders > 0 {
		c.TotalOrders--
	}
	c.TotalSpent -= amount
	if c.TotalSpent < 0 {
		c.TotalSpent = 0
	}
	c.touch()
	return nil
}

// ReverseDepositPurchase undoes ApplyDepositPurchase when the purchase entry is
// cancelled. The granted credit must still be unspent; otherwise reversing
// would drive the balance negative and the cancellation is rejected.
func (c *Customer) ReverseDepositPurchase(depositValue, purchasePrice int64) error {
	if depositValue <= 0 || purchasePrice <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid reversal amounts")
	}
	if c.DepositBalance < depositValue {
		return shared.NewDomainError("INSUFFICIENT_BALANCE", "Deposit credit has already been spent and cannot be reversed")
	}

	c.DepositBalance -= depositValue
	c.TotalDeposit -= purchasePrice
	if c.TotalDeposit < 0 {
		c.TotalDeposit = 0
	}
	c.DepositTypeID = nil
	c.DepositTypeName = ""
	c.HasExpiry = false
	c.ExpiryDate = nil
	c.touch()
	return nil
}

// ExpireDeposit zeroes the balance of an expired deposit and clears the expiry
// marker. Returns the amount removed.
func (c *Customer) ExpireDeposit(now time.Time) (int64, error) {
	if !c.HasExpiry || c.ExpiryDate == nil {
		return 0, shared.NewDomainError("INVALID_STATE", "Customer has no expiring deposit")
	}
	if now.Before(*c.ExpiryDate) {
		return 0, shared.NewDomainError("INVALID_STATE", "Deposit has not expired yet")
	}

	expired := c.DepositBalance
	c.DepositBalance = 0
	c.HasExpiry = false
	c.ExpiryDate = nil
	c.touch()
	return expired, nil
}

// DepositExpiringBy returns true if the customer holds expiring credit whose
// expiry date falls on or before the deadline.
func (c *Customer) DepositExpiringBy(deadline time.Time) bool {
	return c.HasExpiry && c.ExpiryDate != nil && c.DepositBalance > 0 && !c.ExpiryDate.After(deadline)
}

func (c *Customer) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer name cannot exceed 200 characters")
	}
	return nil
}

var phoneRe = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Phone number cannot exceed 50 characters")
	}
	if !phoneRe.MatchString(phone) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid phone number format")
	}
	return nil
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Email cannot exceed 200 characters")
	}
	if !emailRe.MatchString(email) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid email format")
	}
	return nil
}
