package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// Service handles customer registration and profile management. Deposit
// balance changes never go through this service; only the transaction engine
// moves money.
type Service struct {
	customers customer.Repository
}

// NewService creates a new customer service
func NewService(customers customer.Repository) *Service {
	return &Service{customers: customers}
}

// Register creates a new customer. Phone numbers are unique per branch so the
// counter can look customers up by phone.
func (s *Service) Register(ctx context.Context, req RegisterCustomerRequest) (*CustomerResponse, error) {
	if req.Phone != "" {
		existing, err := s.customers.FindByPhone(ctx, req.BranchID, req.Phone)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer with this phone number already exists")
		}
	}

	cust, err := customer.New(req.BranchID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if req.Email != "" || req.Address != "" {
		if err := cust.SetContact(req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.customers.Create(ctx, cust); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(cust)
	return &resp, nil
}

// Update edits a customer's profile
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	cust, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		if err := cust.Rename(req.Name); err != nil {
			return nil, err
		}
	}
	if err := cust.SetContact(req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}

	if err := s.customers.Save(ctx, cust); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(cust)
	return &resp, nil
}

// Get returns a single customer
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	cust, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(cust)
	return &resp, nil
}

// GetByPhone looks a customer up by phone within a branch
func (s *Service) GetByPhone(ctx context.Context, branchID uuid.UUID, phone string) (*CustomerResponse, error) {
	cust, err := s.customers.FindByPhone(ctx, branchID, phone)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(cust)
	return &resp, nil
}

// List returns customers matching the filter
func (s *Service) List(ctx context.Context, req ListCustomersRequest) (*CustomerListResponse, error) {
	filter := customer.Filter{
		BranchID: req.BranchID,
		Search:   req.Search,
	}
	if req.Status != "" {
		st := customer.Status(req.Status)
		if st != customer.StatusActive && st != customer.StatusInactive {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid customer status")
		}
		filter.Status = &st
	}
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Normalize()

	customers, total, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = ToCustomerResponse(c)
	}
	return &CustomerListResponse{
		Customers: responses,
		Total:     total,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}, nil
}

// Deactivate soft-deactivates a customer. The ledger and any remaining balance
// are kept; an inactive customer simply cannot transact.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	cust, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := cust.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, cust); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(cust)
	return &resp, nil
}

// Activate re-activates a customer
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	cust, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := cust.Activate(); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, cust); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(cust)
	return &resp, nil
}
