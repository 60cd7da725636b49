package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/laundrypos/backend/internal/domain/ledger"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/infrastructure/persistence/models"
)

// GormLedgerRepository implements ledger.Repository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Create inserts a new ledger entry
func (r *GormLedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists an entry's status flip. Monetary columns are deliberately
// not in the update set; once written they never change.
func (r *GormLedgerRepository) Update(ctx context.Context, entry *ledger.Entry) error {
	result := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"status":      entry.Status,
			"description": entry.Description,
			"updated_at":  entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID returns a ledger entry by ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var model models.LedgerEntryModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns entries matching the filter, newest first, with the total count
func (r *GormLedgerRepository) List(ctx context.Context, filter ledger.Filter) ([]*ledger.Entry, int64, error) {
	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("transaction_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("transaction_date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entryModels []models.LedgerEntryModel
	err := query.
		Order("transaction_date DESC, created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&entryModels).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*ledger.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// ListByCustomer returns all entries for a customer, oldest first, for balance replay
func (r *GormLedgerRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ledger.Entry, error) {
	var entryModels []models.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("transaction_date ASC, created_at ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// SumDepositPurchases sums granted credit over non-cancelled purchase entries
func (r *GormLedgerRepository) SumDepositPurchases(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, error) {
	return r.sumColumn(ctx, branchID, from, to, "amount", ledger.EntryTypeDepositPurchase)
}

// SumDepositUsage sums deposit portions of non-cancelled laundry entries
func (r *GormLedgerRepository) SumDepositUsage(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, error) {
	return r.sumColumn(ctx, branchID, from, to, "deposit_amount", ledger.EntryTypeLaundry)
}

func (r *GormLedgerRepository) sumColumn(ctx context.Context, branchID uuid.UUID, from, to time.Time, column string, entryType ledger.EntryType) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("branch_id = ? AND type = ? AND status <> ? AND transaction_date BETWEEN ? AND ?",
			branchID, entryType, ledger.EntryStatusCancelled, from, to).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	return total, err
}

// CountInRange counts non-cancelled entries for a branch within a range
func (r *GormLedgerRepository) CountInRange(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("branch_id = ? AND status <> ? AND transaction_date BETWEEN ? AND ?",
			branchID, ledger.EntryStatusCancelled, from, to).
		Count(&count).Error
	return count, err
}

// LatestByCustomerAndType returns the newest non-cancelled entry of a type for a customer
func (r *GormLedgerRepository) LatestByCustomerAndType(ctx context.Context, customerID uuid.UUID, entryType ledger.EntryType) (*ledger.Entry, error) {
	var model models.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND type = ? AND status <> ?", customerID, entryType, ledger.EntryStatusCancelled).
		Order("transaction_date DESC, created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ ledger.Repository = (*GormLedgerRepository)(nil)
