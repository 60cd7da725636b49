package persistence

import (
	"context"

	"gorm.io/gorm"

	appdeposit "github.com/laundrypos/backend/internal/application/deposit"
	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/deposit"
	"github.com/laundrypos/backend/internal/domain/ledger"
)

// GormTransactionScope implements the deposit engine's TransactionScope using
// GORM transactions, so the ledger entry and the balance projection commit
// atomically.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appdeposit.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Customers returns the customer repository scoped to the current transaction
func (r *gormTransactionalRepositories) Customers() customer.Repository {
	return NewGormCustomerRepository(r.tx)
}

// Entries returns the ledger repository scoped to the current transaction
func (r *gormTransactionalRepositories) Entries() ledger.Repository {
	return NewGormLedgerRepository(r.tx)
}

// DepositTypes returns the deposit type repository scoped to the current transaction
func (r *gormTransactionalRepositories) DepositTypes() deposit.Repository {
	return NewGormDepositTypeRepository(r.tx)
}

var _ appdeposit.TransactionScope = (*GormTransactionScope)(nil)
var _ appdeposit.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
