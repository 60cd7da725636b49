package deposit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/laundrypos/backend/internal/domain/deposit"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// MockDepositTypeRepository is a mock implementation of deposit.Repository
type MockDepositTypeRepository struct {
	mock.Mock
}

func (m *MockDepositTypeRepository) Create(ctx context.Context, d *deposit.DepositType) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDepositTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*deposit.DepositType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deposit.DepositType), args.Error(1)
}

func (m *MockDepositTypeRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*deposit.DepositType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deposit.DepositType), args.Error(1)
}

func (m *MockDepositTypeRepository) ExistsActiveByName(ctx context.Context, branchID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, branchID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepositTypeRepository) List(ctx context.Context, filter deposit.Filter) ([]*deposit.DepositType, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*deposit.DepositType), args.Get(1).(int64), args.Error(2)
}

func (m *MockDepositTypeRepository) Save(ctx context.Context, d *deposit.DepositType) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func TestDepositTypeServiceCreate(t *testing.T) {
	ctx := context.Background()
	branchID := uuid.New()

	t.Run("creates a plan with a unique name", func(t *testing.T) {
		repo := new(MockDepositTypeRepository)
		repo.On("ExistsActiveByName", ctx, branchID, "Paket Hemat", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*deposit.DepositType")).Return(nil)

		svc := NewDepositTypeService(repo)
		resp, err := svc.Create(ctx, CreateDepositTypeRequest{
			BranchID:      branchID,
			Name:          "Paket Hemat",
			PurchasePrice: 100000,
			DepositValue:  120000,
		})
		require.NoError(t, err)

		assert.Equal(t, "Paket Hemat", resp.Name)
		assert.True(t, resp.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		repo := new(MockDepositTypeRepository)
		repo.On("ExistsActiveByName", ctx, branchID, "Paket Hemat", (*uuid.UUID)(nil)).Return(true, nil)

		svc := NewDepositTypeService(repo)
		_, err := svc.Create(ctx, CreateDepositTypeRequest{
			BranchID:      branchID,
			Name:          "Paket Hemat",
			PurchasePrice: 100000,
			DepositValue:  120000,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects invalid amounts without hitting the repository", func(t *testing.T) {
		repo := new(MockDepositTypeRepository)
		repo.On("ExistsActiveByName", ctx, branchID, "Paket", (*uuid.UUID)(nil)).Return(false, nil)

		svc := NewDepositTypeService(repo)
		_, err := svc.Create(ctx, CreateDepositTypeRequest{
			BranchID:      branchID,
			Name:          "Paket",
			PurchasePrice: 0,
			DepositValue:  120000,
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestDepositTypeServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("edits a plan and checks the new name", func(t *testing.T) {
		plan, err := deposit.New(uuid.New(), "Paket Hemat", "", 100000, 120000, 0)
		require.NoError(t, err)

		repo := new(MockDepositTypeRepository)
		repo.On("FindByID", ctx, plan.ID).Return(plan, nil)
		repo.On("ExistsActiveByName", ctx, plan.BranchID, "Paket Super", &plan.ID).Return(false, nil)
		repo.On("Save", ctx, plan).Return(nil)

		svc := NewDepositTypeService(repo)
		resp, err := svc.Update(ctx, plan.ID, UpdateDepositTypeRequest{
			Name:          "Paket Super",
			PurchasePrice: 200000,
			DepositValue:  260000,
			ValidityDays:  90,
		})
		require.NoError(t, err)

		assert.Equal(t, "Paket Super", resp.Name)
		assert.Equal(t, int64(260000), resp.DepositValue)
		repo.AssertExpectations(t)
	})

	t.Run("keeping the same name skips the uniqueness check", func(t *testing.T) {
		plan, err := deposit.New(uuid.New(), "Paket Hemat", "", 100000, 120000, 0)
		require.NoError(t, err)

		repo := new(MockDepositTypeRepository)
		repo.On("FindByID", ctx, plan.ID).Return(plan, nil)
		repo.On("Save", ctx, plan).Return(nil)

		svc := NewDepositTypeService(repo)
		_, err = svc.Update(ctx, plan.ID, UpdateDepositTypeRequest{
			Name:          "Paket Hemat",
			PurchasePrice: 150000,
			DepositValue:  180000,
		})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsActiveByName")
	})

	t.Run("unknown plan fails", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockDepositTypeRepository)
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		svc := NewDepositTypeService(repo)
		_, err := svc.Update(ctx, id, UpdateDepositTypeRequest{
			Name:          "Paket",
			PurchasePrice: 100000,
			DepositValue:  120000,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDepositTypeServiceDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("retires an active plan", func(t *testing.T) {
		plan, err := deposit.New(uuid.New(), "Paket Hemat", "", 100000, 120000, 0)
		require.NoError(t, err)

		repo := new(MockDepositTypeRepository)
		repo.On("FindByID", ctx, plan.ID).Return(plan, nil)
		repo.On("Save", ctx, plan).Return(nil)

		svc := NewDepositTypeService(repo)
		resp, err := svc.Deactivate(ctx, plan.ID)
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("deactivating twice fails", func(t *testing.T) {
		plan, err := deposit.New(uuid.New(), "Paket Hemat", "", 100000, 120000, 0)
		require.NoError(t, err)
		require.NoError(t, plan.Deactivate())

		repo := new(MockDepositTypeRepository)
		repo.On("FindByID", ctx, plan.ID).Return(plan, nil)

		svc := NewDepositTypeService(repo)
		_, err = svc.Deactivate(ctx, plan.ID)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}
