package customer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// MockCustomerRepository is a mock implementation of customer.Repository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, branchID uuid.UUID, phone string) (*customer.Customer, error) {
	args := m.Called(ctx, branchID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*customer.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithVersion(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) TotalOutstandingBalance(ctx context.Context, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ListExpiringBetween(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*customer.Customer, error) {
	args := m.Called(ctx, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListExpiredWithBalance(ctx context.Context, asOf time.Time) ([]*customer.Customer, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customer.Customer), args.Error(1)
}

func mustCustomer(t *testing.T, branchID uuid.UUID, name, phone string) *customer.Customer {
	t.Helper()
	c, err := customer.New(branchID, name, phone)
	require.NoError(t, err)
	return c
}

func TestCustomerServiceRegister(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()

	t.Run("registers a customer with zero balance", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		repo.On("FindByPhone", ctx, branchID, "0812-1111-2222").Return(nil, shared.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil)

		svc := NewService(repo)
		resp, err := svc.Register(ctx, RegisterCustomerRequest{
			BranchID: branchID,
			Name:     "Budi Santoso",
			Phone:    "0812-1111-2222",
		})
		require.NoError(t, err)

		assert.Equal(t, "Budi Santoso", resp.Name)
		assert.Equal(t, int64(0), resp.DepositBalance)
		assert.Equal(t, string(customer.StatusActive), resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a phone number already registered in the branch", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		existing := mustCustomer(t, branchID, "Siti Rahayu", "0812-1111-2222")
		repo.On("FindByPhone", ctx, branchID, "0812-1111-2222").Return(existing, nil)

		svc := NewService(repo)
		_, err := svc.Register(ctx, RegisterCustomerRequest{
			BranchID: branchID,
			Name:     "Budi Santoso",
			Phone:    "0812-1111-2222",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("skips the phone lookup when no phone is given", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil)

		svc := NewService(repo)
		resp, err := svc.Register(ctx, RegisterCustomerRequest{
			BranchID: branchID,
			Name:     "Walk-in",
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Phone)
		repo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()

	t.Run("updates the profile without touching the balance", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		cust := mustCustomer(t, branchID, "Budi Santoso", "0812-1111-2222")
		cust.DepositBalance = 50000
		repo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		repo.On("Save", ctx, cust).Return(nil)

		svc := NewService(repo)
		resp, err := svc.Update(ctx, cust.ID, UpdateCustomerRequest{
			Name:    "Budi S.",
			Phone:   "0812-1111-2222",
			Address: "Jl. Melati 5",
		})
		require.NoError(t, err)

		assert.Equal(t, "Budi S.", resp.Name)
		assert.Equal(t, "Jl. Melati 5", resp.Address)
		assert.Equal(t, int64(50000), resp.DepositBalance)
		repo.AssertExpectations(t)
	})

	t.Run("unknown customer surfaces not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		svc := NewService(repo)
		_, err := svc.Update(ctx, id, UpdateCustomerRequest{Name: "X"})
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestCustomerServiceList(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()

	t.Run("passes the normalized filter through", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		cust := mustCustomer(t, branchID, "Budi Santoso", "")
		repo.On("List", ctx, mock.MatchedBy(func(f customer.Filter) bool {
			return f.BranchID != nil && *f.BranchID == branchID && f.Page == 1 && f.PageSize == 20
		})).Return([]*customer.Customer{cust}, int64(1), nil)

		svc := NewService(repo)
		resp, err := svc.List(ctx, ListCustomersRequest{BranchID: &branchID})
		require.NoError(t, err)

		assert.Len(t, resp.Customers, 1)
		assert.Equal(t, int64(1), resp.Total)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown status value", func(t *testing.T) {
		repo := new(MockCustomerRepository)

		svc := NewService(repo)
		_, err := svc.List(ctx, ListCustomersRequest{Status: "archived"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceDeactivate(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()

	t.Run("deactivation keeps the remaining balance", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		cust := mustCustomer(t, branchID, "Budi Santoso", "")
		cust.DepositBalance = 15000
		repo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		repo.On("Save", ctx, cust).Return(nil)

		svc := NewService(repo)
		resp, err := svc.Deactivate(ctx, cust.ID)
		require.NoError(t, err)

		assert.Equal(t, string(customer.StatusInactive), resp.Status)
		assert.Equal(t, int64(15000), resp.DepositBalance)
	})

	t.Run("activate restores an inactive customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		cust := mustCustomer(t, branchID, "Budi Santoso", "")
		require.NoError(t, cust.Deactivate())
		repo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		repo.On("Save", ctx, cust).Return(nil)

		svc := NewService(repo)
		resp, err := svc.Activate(ctx, cust.ID)
		require.NoError(t, err)
		assert.Equal(t, string(customer.StatusActive), resp.Status)
	})
}
