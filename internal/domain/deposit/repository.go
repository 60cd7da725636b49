package deposit

import (
	"context"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// Filter holds query options for listing deposit types.
type Filter struct {
	BranchID   *uuid.UUID
	ActiveOnly bool
	shared.Filter
}

// Repository is the persistence contract for deposit types.
type Repository interface {
	Create(ctx context.Context, d *DepositType) error
	FindByID(ctx context.Context, id uuid.UUID) (*DepositType, error)
	// FindActiveByID returns the deposit type only if it is active.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*DepositType, error)
	// ExistsActiveByName reports whether another active plan in the branch
	// already uses the name. excludeID skips the plan being edited.
	ExistsActiveByName(ctx context.Context, branchID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, filter Filter) ([]*DepositType, int64, error)
	Save(ctx context.Context, d *DepositType) error
}
