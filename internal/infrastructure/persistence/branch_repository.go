package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/laundrypos/backend/internal/domain/branch"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/infrastructure/persistence/models"
)

// GormBranchRepository implements branch.Repository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Create inserts a new branch
func (r *GormBranchRepository) Create(ctx context.Context, b *branch.Branch) error {
	model := models.BranchModelFromDomain(b)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID returns a branch by ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*branch.Branch, error) {
	var model models.BranchModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns all branches
func (r *GormBranchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	var branchModels []models.BranchModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&branchModels).Error; err != nil {
		return nil, err
	}

	branches := make([]*branch.Branch, len(branchModels))
	for i := range branchModels {
		branches[i] = branchModels[i].ToDomain()
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, b *branch.Branch) error {
	model := models.BranchModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ branch.Repository = (*GormBranchRepository)(nil)
