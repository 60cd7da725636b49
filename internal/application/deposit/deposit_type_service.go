package deposit

import (
	"context"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/deposit"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// DepositTypeService manages the catalog of purchasable deposit plans
type DepositTypeService struct {
	depositTypes deposit.Repository
}

// NewDepositTypeService creates a new DepositTypeService
func NewDepositTypeService(depositTypes deposit.Repository) *DepositTypeService {
	return &DepositTypeService{depositTypes: depositTypes}
}

// Create adds a new deposit plan. Names must be unique among active plans of
// the branch.
func (s *DepositTypeService) Create(ctx context.Context, req CreateDepositTypeRequest) (*DepositTypeResponse, error) {
	exists, err := s.depositTypes.ExistsActiveByName(ctx, req.BranchID, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An active deposit type with this name already exists")
	}

	plan, err := deposit.New(req.BranchID, req.Name, req.Description, req.PurchasePrice, req.DepositValue, req.ValidityDays)
	if err != nil {
		return nil, err
	}

	if err := s.depositTypes.Create(ctx, plan); err != nil {
		return nil, err
	}

	resp := ToDepositTypeResponse(plan)
	return &resp, nil
}

// Update edits a deposit plan. Past purchases keep their snapshotted terms.
func (s *DepositTypeService) Update(ctx context.Context, id uuid.UUID, req UpdateDepositTypeRequest) (*DepositTypeResponse, error) {
	plan, err := s.depositTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != plan.Name {
		exists, err := s.depositTypes.ExistsActiveByName(ctx, plan.BranchID, req.Name, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An active deposit type with this name already exists")
		}
	}

	if err := plan.Update(req.Name, req.Description, req.PurchasePrice, req.DepositValue, req.ValidityDays); err != nil {
		return nil, err
	}

	if err := s.depositTypes.Save(ctx, plan); err != nil {
		return nil, err
	}

	resp := ToDepositTypeResponse(plan)
	return &resp, nil
}

// Deactivate retires a plan from sale. Existing customer balances bought under
// the plan are unaffected.
func (s *DepositTypeService) Deactivate(ctx context.Context, id uuid.UUID) (*DepositTypeResponse, error) {
	plan, err := s.depositTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := plan.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.depositTypes.Save(ctx, plan); err != nil {
		return nil, err
	}
	resp := ToDepositTypeResponse(plan)
	return &resp, nil
}

// Activate puts a plan back on sale, re-checking the name against other
// active plans.
func (s *DepositTypeService) Activate(ctx context.Context, id uuid.UUID) (*DepositTypeResponse, error) {
	plan, err := s.depositTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.depositTypes.ExistsActiveByName(ctx, plan.BranchID, plan.Name, &id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An active deposit type with this name already exists")
	}

	if err := plan.Activate(); err != nil {
		return nil, err
	}
	if err := s.depositTypes.Save(ctx, plan); err != nil {
		return nil, err
	}
	resp := ToDepositTypeResponse(plan)
	return &resp, nil
}

// Get returns a single deposit plan
func (s *DepositTypeService) Get(ctx context.Context, id uuid.UUID) (*DepositTypeResponse, error) {
	plan, err := s.depositTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDepositTypeResponse(plan)
	return &resp, nil
}

// List returns deposit plans matching the filter
func (s *DepositTypeService) List(ctx context.Context, branchID *uuid.UUID, activeOnly bool, page, pageSize int) ([]DepositTypeResponse, int64, error) {
	filter := deposit.Filter{
		BranchID:   branchID,
		ActiveOnly: activeOnly,
	}
	filter.Page = page
	filter.PageSize = pageSize
	filter.Normalize()

	plans, total, err := s.depositTypes.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DepositTypeResponse, len(plans))
	for i, plan := range plans {
		responses[i] = ToDepositTypeResponse(plan)
	}
	return responses, total, nil
}

// ToDepositTypeResponse converts a domain DepositType to DepositTypeResponse
func ToDepositTypeResponse(d *deposit.DepositType) DepositTypeResponse {
	return DepositTypeResponse{
		ID:            d.ID,
		BranchID:      d.BranchID,
		Name:          d.Name,
		Description:   d.Description,
		PurchasePrice: d.PurchasePrice,
		DepositValue:  d.DepositValue,
		ValidityDays:  d.ValidityDays,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
