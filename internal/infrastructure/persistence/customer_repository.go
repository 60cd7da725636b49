package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Create inserts a new customer
func (r *GormCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID returns a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var model models.CustomerModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone returns a customer by phone within a branch
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, branchID uuid.UUID, phone string) (*customer.Customer, error) {
	var model models.CustomerModel
	err := r.db.WithContext(ctx).
		First(&model, "branch_id = ? AND phone = ?", branchID, phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns customers matching the filter with the total count
func (r *GormCustomerRepository) List(ctx context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.CustomerModel{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customerModels []models.CustomerModel
	err := query.
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&customerModels).Error
	if err != nil {
		return nil, 0, err
	}

	customers := make([]*customer.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers, total, nil
}

// Save creates or updates a customer without a version check
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithVersion saves a customer with optimistic locking. The update only
// lands if the stored version still matches the version the aggregate was
// loaded with; otherwise the caller must reload and retry.
func (r *GormCustomerRepository) SaveWithVersion(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// TotalOutstandingBalance sums the deposit balance over active customers of a branch
func (r *GormCustomerRepository) TotalOutstandingBalance(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("branch_id = ? AND status = ?", branchID, customer.StatusActive).
		Select("COALESCE(SUM(deposit_balance), 0)").
		Scan(&total).Error
	return total, err
}

// ListExpiringBetween returns customers with positive balance expiring in the window
func (r *GormCustomerRepository) ListExpiringBetween(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*customer.Customer, error) {
	var customerModels []models.CustomerModel
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND has_expiry = ? AND deposit_balance > 0 AND expiry_date BETWEEN ? AND ?",
			branchID, true, from, to).
		Order("expiry_date ASC").
		Find(&customerModels).Error
	if err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers, nil
}

// ListExpiredWithBalance returns customers whose expiring deposit has lapsed
// but still carries balance
func (r *GormCustomerRepository) ListExpiredWithBalance(ctx context.Context, asOf time.Time) ([]*customer.Customer, error) {
	var customerModels []models.CustomerModel
	err := r.db.WithContext(ctx).
		Where("has_expiry = ? AND deposit_balance > 0 AND expiry_date <= ?", true, asOf).
		Find(&customerModels).Error
	if err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers, nil
}

var _ customer.Repository = (*GormCustomerRepository)(nil)
