package branch

import (
	"time"

	"github.com/laundrypos/backend/internal/domain/shared"
)

// Branch represents a physical laundry outlet. Every customer, deposit plan,
// and ledger entry is scoped to a branch; reports never mix branches.
type Branch struct {
	shared.BaseAggregateRoot
	Name     string
	Address  string
	Phone    string
	IsActive bool
}

// New creates an active branch
func New(name, address, phone string) (*Branch, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Branch name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Branch name cannot exceed 100 characters")
	}

	return &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		Phone:             phone,
		IsActive:          true,
	}, nil
}

// Update edits branch details
func (b *Branch) Update(name, address, phone string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Branch name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Branch name cannot exceed 100 characters")
	}
	b.Name = name
	b.Address = address
	b.Phone = phone
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Deactivate closes the branch to new activity
func (b *Branch) Deactivate() error {
	if !b.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Branch is already inactive")
	}
	b.IsActive = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}
