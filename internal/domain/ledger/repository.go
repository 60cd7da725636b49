package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// Filter holds query options for listing ledger entries.
type Filter struct {
	BranchID   *uuid.UUID
	CustomerID *uuid.UUID
	Type       *EntryType
	Status     *EntryStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	shared.Filter
}

// Repository is the persistence contract for ledger entries. Entries are
// append-mostly: Update exists solely to persist the cancellation status flip.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	Update(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// List returns entries newest-first together with the total row count.
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
	// ListByCustomer returns all non-deleted entries for a customer, oldest
	// first, for balance replay.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Entry, error)
	// SumDepositPurchases sums granted credit over non-cancelled purchase
	// entries for a branch within a date range.
	SumDepositPurchases(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, error)
	// SumDepositUsage sums deposit portions of non-cancelled laundry entries
	// for a branch within a date range.
	SumDepositUsage(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, error)
	// CountInRange counts non-cancelled entries for a branch within a range.
	CountInRange(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, error)
	// LatestByCustomerAndType returns the most recent non-cancelled entry of
	// the given type for a customer, or shared.ErrNotFound.
	LatestByCustomerAndType(ctx context.Context, customerID uuid.UUID, entryType EntryType) (*Entry, error)
}
