package deposit

import (
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// DepositType is a purchasable deposit plan: the customer pays PurchasePrice
// and receives DepositValue in spendable credit. Ledger entries snapshot both
// amounts at purchase time, so editing a plan never rewrites history.
type DepositType struct {
	shared.BaseAggregateRoot
	BranchID      uuid.UUID
	Name          string
	Description   string
	PurchasePrice int64
	DepositValue  int64
	// ValidityDays controls credit expiry; zero means the credit never expires.
	ValidityDays int
	IsActive     bool
}

// New creates an active deposit type
func New(branchID uuid.UUID, name, description string, purchasePrice, depositValue int64, validityDays int) (*DepositType, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Branch ID cannot be empty")
	}
	if err := validate(name, purchasePrice, depositValue, validityDays); err != nil {
		return nil, err
	}

	return &DepositType{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		Name:              name,
		Description:       description,
		PurchasePrice:     purchasePrice,
		DepositValue:      depositValue,
		ValidityDays:      validityDays,
		IsActive:          true,
	}, nil
}

// Update edits the plan in place. Past purchases are unaffected because entries
// snapshot the price and value.
func (d *DepositType) Update(name, description string, purchasePrice, depositValue int64, validityDays int) error {
	if err := validate(name, purchasePrice, depositValue, validityDays); err != nil {
		return err
	}
	d.Name = name
	d.Description = description
	d.PurchasePrice = purchasePrice
	d.DepositValue = depositValue
	d.ValidityDays = validityDays
	d.touch()
	return nil
}

// Deactivate retires the plan from sale
func (d *DepositType) Deactivate() error {
	if !d.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Deposit type is already inactive")
	}
	d.IsActive = false
	d.touch()
	return nil
}

// Activate puts the plan back on sale
func (d *DepositType) Activate() error {
	if d.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Deposit type is already active")
	}
	d.IsActive = true
	d.touch()
	return nil
}

// HasExpiry returns true if credit bought under this plan expires
func (d *DepositType) HasExpiry() bool {
	return d.ValidityDays > 0
}

// ExpiryFrom returns the expiry date for credit purchased at the given time,
// or nil for non-expiring plans.
func (d *DepositType) ExpiryFrom(purchasedAt time.Time) *time.Time {
	if !d.HasExpiry() {
		return nil
	}
	exp := purchasedAt.AddDate(0, 0, d.ValidityDays)
	return &exp
}

func (d *DepositType) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

func validate(name string, purchasePrice, depositValue int64, validityDays int) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Deposit type name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Deposit type name cannot exceed 100 characters")
	}
	if purchasePrice <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Purchase price must be positive")
	}
	if depositValue <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Deposit value must be positive")
	}
	if validityDays < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Validity days cannot be negative")
	}
	return nil
}
