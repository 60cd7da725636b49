package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/laundrypos/backend/internal/domain/deposit"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/infrastructure/persistence/models"
)

// GormDepositTypeRepository implements deposit.Repository using GORM
type GormDepositTypeRepository struct {
	db *gorm.DB
}

// NewGormDepositTypeRepository creates a new GormDepositTypeRepository
func NewGormDepositTypeRepository(db *gorm.DB) *GormDepositTypeRepository {
	return &GormDepositTypeRepository{db: db}
}

// Create inserts a new deposit type
func (r *GormDepositTypeRepository) Create(ctx context.Context, d *deposit.DepositType) error {
	model := models.DepositTypeModelFromDomain(d)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID returns a deposit type by ID
func (r *GormDepositTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*deposit.DepositType, error) {
	var model models.DepositTypeModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByID returns the deposit type only if it is active
func (r *GormDepositTypeRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*deposit.DepositType, error) {
	var model models.DepositTypeModel
	err := r.db.WithContext(ctx).First(&model, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsActiveByName reports whether another active plan in the branch uses the name
func (r *GormDepositTypeRepository) ExistsActiveByName(ctx context.Context, branchID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.DepositTypeModel{}).
		Where("branch_id = ? AND is_active = ? AND LOWER(name) = LOWER(?)", branchID, true, name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns deposit types matching the filter with the total count
func (r *GormDepositTypeRepository) List(ctx context.Context, filter deposit.Filter) ([]*deposit.DepositType, int64, error) {
	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.DepositTypeModel{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var typeModels []models.DepositTypeModel
	err := query.
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&typeModels).Error
	if err != nil {
		return nil, 0, err
	}

	types := make([]*deposit.DepositType, len(typeModels))
	for i := range typeModels {
		types[i] = typeModels[i].ToDomain()
	}
	return types, total, nil
}

// Save creates or updates a deposit type
func (r *GormDepositTypeRepository) Save(ctx context.Context, d *deposit.DepositType) error {
	model := models.DepositTypeModelFromDomain(d)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ deposit.Repository = (*GormDepositTypeRepository)(nil)
