package deposit

import (
	"context"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/deposit"
	"github.com/laundrypos/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories the
// deposit engine writes. When a function is executed within a scope, all
// repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories participating
// in one deposit transaction. All repositories share the same underlying
// database transaction.
//
// Aggregate boundary notes:
//   - Customers: the Customer aggregate carries the materialized deposit
//     balance; every balance change goes through SaveWithVersion so two
//     concurrent writers cannot both commit against the same snapshot.
//   - Entries: append-mostly ledger entry store; Update exists only to flip
//     an entry to cancelled.
//   - DepositTypes: read within the transaction so the purchased plan cannot
//     be deactivated between validation and commit.
type TransactionalRepositories interface {
	Customers() customer.Repository
	Entries() ledger.Repository
	DepositTypes() deposit.Repository
}

// NoOpTransactionScope runs functions without a real transaction. Useful in
// tests or against repositories that handle atomicity themselves.
type NoOpTransactionScope struct {
	customers    customer.Repository
	entries      ledger.Repository
	depositTypes deposit.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	customers customer.Repository,
	entries ledger.Repository,
	depositTypes deposit.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		customers:    customers,
		entries:      entries,
		depositTypes: depositTypes,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Customers returns the customer repository.
func (s *NoOpTransactionScope) Customers() customer.Repository {
	return s.customers
}

// Entries returns the ledger entry repository.
func (s *NoOpTransactionScope) Entries() ledger.Repository {
	return s.entries
}

// DepositTypes returns the deposit type repository.
func (s *NoOpTransactionScope) DepositTypes() deposit.Repository {
	return s.depositTypes
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
