package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/ledger"
	"github.com/laundrypos/backend/internal/domain/report"
)

// GormReportRepository implements report.Repository with aggregate SQL over
// the customer and ledger tables. It is read-only.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// ExpiringDeposits returns the count and total value of balances expiring in the window
func (r *GormReportRepository) ExpiringDeposits(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, int64, error) {
	var row struct {
		Count int64
		Value int64
	}
	err := r.db.WithContext(ctx).
		Table("customers").
		Where("branch_id = ? AND status = ? AND has_expiry = ? AND deposit_balance > 0 AND expiry_date BETWEEN ? AND ?",
			branchID, customer.StatusActive, true, from, to).
		Select("COUNT(*) AS count, COALESCE(SUM(deposit_balance), 0) AS value").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Value, nil
}

// CustomerRows lists customers with deposit activity, highest balance first,
// with their latest top-up and payment timestamps pulled from the ledger.
func (r *GormReportRepository) CustomerRows(ctx context.Context, branchID uuid.UUID, limit int) ([]report.CustomerRow, error) {
	var rows []struct {
		CustomerID     uuid.UUID
		CustomerName   string
		Phone          string
		DepositBalance int64
		TotalDeposit   int64
		LastTopUpAt    *time.Time
		LastPaymentAt  *time.Time
		ExpiryDate     *time.Time
	}

	err := r.db.WithContext(ctx).
		Table("customers AS c").
		Where("c.branch_id = ? AND c.total_deposit > 0", branchID).
		Select(`c.id AS customer_id,
			c.name AS customer_name,
			c.phone,
			c.deposit_balance,
			c.total_deposit,
			c.expiry_date,
			(SELECT MAX(l.transaction_date) FROM ledger_entries l
				WHERE l.customer_id = c.id AND l.type = ? AND l.status <> ?) AS last_top_up_at,
			(SELECT MAX(l.transaction_date) FROM ledger_entries l
				WHERE l.customer_id = c.id AND l.type = ? AND l.status <> ?) AS last_payment_at`,
			ledger.EntryTypeDepositPurchase, ledger.EntryStatusCancelled,
			ledger.EntryTypeLaundry, ledger.EntryStatusCancelled).
		Order("c.deposit_balance DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.CustomerRow, len(rows))
	for i, row := range rows {
		out[i] = report.CustomerRow{
			CustomerID:     row.CustomerID,
			CustomerName:   row.CustomerName,
			Phone:          row.Phone,
			DepositBalance: row.DepositBalance,
			TotalDeposit:   row.TotalDeposit,
			LastTopUpAt:    row.LastTopUpAt,
			LastPaymentAt:  row.LastPaymentAt,
			ExpiryDate:     row.ExpiryDate,
		}
	}
	return out, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
