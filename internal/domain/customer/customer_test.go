package customer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundrypos/backend/internal/domain/shared"
)

func TestNewCustomer(t *testing.T) {
	branchID := uuid.New()

	t.Run("creates active customer with zero balance", func(t *testing.T) {
		c, err := New(branchID, "Budi Santoso", "+62 812-3456-7890")
		require.NoError(t, err)

		assert.Equal(t, StatusActive, c.Status)
		assert.True(t, c.IsActive())
		assert.Equal(t, int64(0), c.DepositBalance)
		assert.Equal(t, int64(0), c.TotalDeposit)
		assert.Equal(t, 1, c.Version)
	})

	t.Run("rejects empty branch ID", func(t *testing.T) {
		_, err := New(uuid.Nil, "Budi", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := New(branchID, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		_, err := New(branchID, "Budi", "not-a-phone!")
		assert.Error(t, err)
	})
}

func TestApplyDepositPurchase(t *testing.T) {
	newCustomer := func(t *testing.T) *Customer {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)
		return c
	}

	t.Run("credits balance and records cash paid", func(t *testing.T) {
		c := newCustomer(t)
		typeID := uuid.New()

		err := c.ApplyDepositPurchase(typeID, "Paket Hemat", 120000, 100000, false, nil)
		require.NoError(t, err)

		assert.Equal(t, int64(120000), c.DepositBalance)
		assert.Equal(t, int64(100000), c.TotalDeposit)
		assert.Equal(t, &typeID, c.DepositTypeID)
		assert.Equal(t, "Paket Hemat", c.DepositTypeName)
		assert.False(t, c.HasExpiry)
		assert.Nil(t, c.ExpiryDate)
	})

	t.Run("repeat purchases accumulate", func(t *testing.T) {
		c := newCustomer(t)

		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket A", 120000, 100000, false, nil))
		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket B", 260000, 200000, false, nil))

		assert.Equal(t, int64(380000), c.DepositBalance)
		assert.Equal(t, int64(300000), c.TotalDeposit)
		assert.Equal(t, "Paket B", c.DepositTypeName)
	})

	t.Run("sets expiry when the plan expires", func(t *testing.T) {
		c := newCustomer(t)
		exp := time.Now().AddDate(0, 0, 90)

		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket 90 Hari", 120000, 100000, true, &exp))

		assert.True(t, c.HasExpiry)
		require.NotNil(t, c.ExpiryDate)
		assert.True(t, c.ExpiryDate.Equal(exp))
	})

	t.Run("requires expiry date for expiring plans", func(t *testing.T) {
		c := newCustomer(t)
		err := c.ApplyDepositPurchase(uuid.New(), "Paket", 120000, 100000, true, nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		c := newCustomer(t)
		assert.Error(t, c.ApplyDepositPurchase(uuid.New(), "Paket", 0, 100000, false, nil))
		assert.Error(t, c.ApplyDepositPurchase(uuid.New(), "Paket", 120000, -5, false, nil))
	})

	t.Run("bumps version for optimistic locking", func(t *testing.T) {
		c := newCustomer(t)
		before := c.Version
		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket", 120000, 100000, false, nil))
		assert.Equal(t, before+1, c.Version)
	})
}

func TestApplyLaundryPayment(t *testing.T) {
	newFunded := func(t *testing.T, balance int64) *Customer {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)
		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket", balance, balance, false, nil))
		return c
	}

	t.Run("deducts deposit portion and advances counters", func(t *testing.T) {
		c := newFunded(t, 120000)

		err := c.ApplyLaundryPayment(35000, 35000)
		require.NoError(t, err)

		assert.Equal(t, int64(85000), c.DepositBalance)
		assert.Equal(t, int64(1), c.TotalOrders)
		assert.Equal(t, int64(35000), c.TotalSpent)
	})

	t.Run("cash payment leaves balance alone", func(t *testing.T) {
		c := newFunded(t, 120000)

		require.NoError(t, c.ApplyLaundryPayment(35000, 0))

		assert.Equal(t, int64(120000), c.DepositBalance)
		assert.Equal(t, int64(1), c.TotalOrders)
	})

	t.Run("mixed payment deducts only the deposit portion", func(t *testing.T) {
		c := newFunded(t, 30000)

		require.NoError(t, c.ApplyLaundryPayment(50000, 30000))

		assert.Equal(t, int64(0), c.DepositBalance)
		assert.Equal(t, int64(50000), c.TotalSpent)
	})

	t.Run("insufficient balance fails without mutating", func(t *testing.T) {
		c := newFunded(t, 20000)

		err := c.ApplyLaundryPayment(35000, 35000)
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.Equal(t, int64(20000), c.DepositBalance)
		assert.Equal(t, int64(0), c.TotalOrders)
		assert.Equal(t, int64(0), c.TotalSpent)
	})

	t.Run("exact balance is spendable", func(t *testing.T) {
		c := newFunded(t, 35000)

		require.NoError(t, c.ApplyLaundryPayment(35000, 35000))
		assert.Equal(t, int64(0), c.DepositBalance)
	})

	t.Run("deposit portion cannot exceed total", func(t *testing.T) {
		c := newFunded(t, 120000)
		assert.Error(t, c.ApplyLaundryPayment(35000, 40000))
	})
}

func TestReverseLaundryPayment(t *testing.T) {
	t.Run("restores balance and rolls back counters", func(t *testing.T) {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)
		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket", 120000, 100000, false, nil))
		require.NoError(t, c.ApplyLaundryPayment(35000, 35000))

		require.NoError(t, c.ReverseLaundryPayment(35000, 35000))

		assert.Equal(t, int64(120000), c.DepositBalance)
		assert.Equal(t, int64(0), c.TotalOrders)
		assert.Equal(t, int64(0), c.TotalSpent)
	})
}

func TestReverseDepositPurchase(t *testing.T) {
	t.Run("removes unspent credit", func(t *testing.T) {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)
		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket", 120000, 100000, false, nil))

		require.NoError(t, c.ReverseDepositPurchase(120000, 100000))

		assert.Equal(t, int64(0), c.DepositBalance)
		assert.Equal(t, int64(0), c.TotalDeposit)
		assert.Nil(t, c.DepositTypeID)
		assert.Empty(t, c.DepositTypeName)
	})

	t.Run("fails when credit has been spent", func(t *testing.T) {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)
		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket", 120000, 100000, false, nil))
		require.NoError(t, c.ApplyLaundryPayment(35000, 35000))

		err = c.ReverseDepositPurchase(120000, 100000)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
		// Balance is untouched on failure
		assert.Equal(t, int64(85000), c.DepositBalance)
	})
}

func TestExpireDeposit(t *testing.T) {
	newExpiring := func(t *testing.T, expiry time.Time) *Customer {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)
		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket 30 Hari", 120000, 100000, true, &expiry))
		return c
	}

	t.Run("zeroes expired balance and returns the amount", func(t *testing.T) {
		c := newExpiring(t, time.Now().Add(-time.Hour))

		expired, err := c.ExpireDeposit(time.Now())
		require.NoError(t, err)

		assert.Equal(t, int64(120000), expired)
		assert.Equal(t, int64(0), c.DepositBalance)
		assert.False(t, c.HasExpiry)
		assert.Nil(t, c.ExpiryDate)
	})

	t.Run("fails before the expiry date", func(t *testing.T) {
		c := newExpiring(t, time.Now().Add(24*time.Hour))

		_, err := c.ExpireDeposit(time.Now())
		assert.Error(t, err)
		assert.Equal(t, int64(120000), c.DepositBalance)
	})

	t.Run("fails without an expiring deposit", func(t *testing.T) {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)

		_, err = c.ExpireDeposit(time.Now())
		assert.Error(t, err)
	})
}

func TestDepositExpiringBy(t *testing.T) {
	t.Run("true within the window with positive balance", func(t *testing.T) {
		exp := time.Now().AddDate(0, 0, 7)
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)
		require.NoError(t, c.ApplyDepositPurchase(uuid.New(), "Paket", 120000, 100000, true, &exp))

		assert.True(t, c.DepositExpiringBy(time.Now().AddDate(0, 0, 14)))
		assert.False(t, c.DepositExpiringBy(time.Now().AddDate(0, 0, 3)))
	})

	t.Run("false without expiring credit", func(t *testing.T) {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)
		assert.False(t, c.DepositExpiringBy(time.Now().AddDate(0, 0, 14)))
	})
}

func TestCustomerStatus(t *testing.T) {
	t.Run("deactivate and reactivate", func(t *testing.T) {
		c, err := New(uuid.New(), "Siti", "")
		require.NoError(t, err)

		require.NoError(t, c.Deactivate())
		assert.False(t, c.IsActive())
		assert.Error(t, c.Deactivate())

		require.NoError(t, c.Activate())
		assert.True(t, c.IsActive())
		assert.Error(t, c.Activate())
	})
}
