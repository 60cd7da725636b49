package branch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/branch"
)

// CreateBranchRequest represents a request to open a branch
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Address string `json:"address" binding:"max=500"`
	Phone   string `json:"phone" binding:"max=50"`
}

// UpdateBranchRequest represents a request to edit branch details
type UpdateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Address string `json:"address" binding:"max=500"`
	Phone   string `json:"phone" binding:"max=50"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service provides branch management use cases
type Service struct {
	branches branch.Repository
}

// NewService creates a new branch Service
func NewService(branches branch.Repository) *Service {
	return &Service{branches: branches}
}

// Create opens a new branch
func (s *Service) Create(ctx context.Context, req CreateBranchRequest) (*BranchResponse, error) {
	b, err := branch.New(req.Name, req.Address, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.branches.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// Update edits branch details
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	b, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Update(req.Name, req.Address, req.Phone); err != nil {
		return nil, err
	}
	if err := s.branches.Save(ctx, b); err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// Get returns one branch
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*BranchResponse, error) {
	b, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// List returns all branches
func (s *Service) List(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.branches.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]BranchResponse, len(branches))
	for i, b := range branches {
		responses[i] = *toBranchResponse(b)
	}
	return responses, nil
}

// Deactivate closes a branch to new activity
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*BranchResponse, error) {
	b, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.branches.Save(ctx, b); err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

func toBranchResponse(b *branch.Branch) *BranchResponse {
	return &BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
