package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// Filter holds query options for listing customers.
type Filter struct {
	BranchID *uuid.UUID
	Status   *Status
	Search   string
	shared.Filter
}

// Repository is the persistence contract for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByPhone(ctx context.Context, branchID uuid.UUID, phone string) (*Customer, error)
	List(ctx context.Context, filter Filter) ([]*Customer, int64, error)
	Save(ctx context.Context, c *Customer) error
	// SaveWithVersion persists the customer only if no concurrent write has
	// advanced its version; returns shared.ErrConcurrencyConflict otherwise.
	SaveWithVersion(ctx context.Context, c *Customer) error
	// TotalOutstandingBalance sums DepositBalance over active customers of a branch.
	TotalOutstandingBalance(ctx context.Context, branchID uuid.UUID) (int64, error)
	// ListExpiringBetween returns customers with positive balance whose deposit
	// expires within the window.
	ListExpiringBetween(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*Customer, error)
	// ListExpiredWithBalance returns customers across branches whose expiring
	// deposit has lapsed but still carries balance (expiry sweep input).
	ListExpiredWithBalance(ctx context.Context, asOf time.Time) ([]*Customer, error)
}
