package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DepositSummary aggregates deposit activity for one branch over a period.
// Monetary figures are integers in the smallest currency unit; UsageRate is
// computed by the service layer from Purchased and Used.
type DepositSummary struct {
	BranchID           uuid.UUID
	From               time.Time
	To                 time.Time
	TotalPurchased     int64 // credit granted in the period
	TotalUsed          int64 // credit spent on laundry in the period
	OutstandingBalance int64 // live balance across active customers, as of now
	TransactionCount   int64
	ExpiringSoonCount  int64
	ExpiringSoonValue  int64
}

// CustomerRow is one line of the per-customer deposit report.
type CustomerRow struct {
	CustomerID     uuid.UUID
	CustomerName   string
	Phone          string
	DepositBalance int64
	TotalDeposit   int64
	LastTopUpAt    *time.Time
	LastPaymentAt  *time.Time
	ExpiryDate     *time.Time
}

// Repository answers the read-side queries behind deposit reports. It is
// separate from the transactional repositories so the report side can use
// aggregate SQL without touching aggregates.
type Repository interface {
	// ExpiringDeposits returns the count and total value of customer balances
	// whose deposits expire within the window.
	ExpiringDeposits(ctx context.Context, branchID uuid.UUID, from, to time.Time) (count int64, value int64, err error)
	// CustomerRows lists customers with deposit activity in a branch, highest
	// balance first, with their latest top-up and payment timestamps.
	CustomerRows(ctx context.Context, branchID uuid.UUID, limit int) ([]CustomerRow, error)
}
