package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/ledger"
	"github.com/laundrypos/backend/internal/domain/report"
)

// expiringSoonWindow is how far ahead the summary looks for deposits about to lapse.
const expiringSoonWindow = 14 * 24 * time.Hour

// summaryCacheTTL bounds how stale a cached branch summary may get.
const summaryCacheTTL = 5 * time.Minute

// Cache is the byte-level cache the report service reads through. A miss is
// (nil, false, nil); cache failures must not fail the report.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DepositReportService builds the deposit reconciliation reports owners use to
// check how much customer money is outstanding per branch.
type DepositReportService struct {
	customers customer.Repository
	entries   ledger.Repository
	reports   report.Repository
	cache     Cache
	logger    *zap.Logger
}

// NewDepositReportService creates a new DepositReportService
func NewDepositReportService(
	customers customer.Repository,
	entries ledger.Repository,
	reports report.Repository,
	cache Cache,
	logger *zap.Logger,
) *DepositReportService {
	return &DepositReportService{
		customers: customers,
		entries:   entries,
		reports:   reports,
		cache:     cache,
		logger:    logger,
	}
}

// DepositSummaryResponse represents the branch deposit summary in API responses
type DepositSummaryResponse struct {
	BranchID           uuid.UUID       `json:"branch_id"`
	From               time.Time       `json:"from"`
	To                 time.Time       `json:"to"`
	TotalPurchased     int64           `json:"total_purchased"`
	TotalUsed          int64           `json:"total_used"`
	OutstandingBalance int64           `json:"outstanding_balance"`
	TransactionCount   int64           `json:"transaction_count"`
	ExpiringSoonCount  int64           `json:"expiring_soon_count"`
	ExpiringSoonValue  int64           `json:"expiring_soon_value"`
	UsageRate          decimal.Decimal `json:"usage_rate"`
}

// CustomerRowResponse represents one customer line in the deposit report
type CustomerRowResponse struct {
	CustomerID     uuid.UUID  `json:"customer_id"`
	CustomerName   string     `json:"customer_name"`
	Phone          string     `json:"phone,omitempty"`
	DepositBalance int64      `json:"deposit_balance"`
	TotalDeposit   int64      `json:"total_deposit"`
	LastTopUpAt    *time.Time `json:"last_top_up_at,omitempty"`
	LastPaymentAt  *time.Time `json:"last_payment_at,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
}

// GetDepositSummary aggregates deposit activity for a branch over a period.
// A branch with no activity yields a zero summary, not an error. Summaries are
// cached briefly because owners poll them from dashboards.
func (s *DepositReportService) GetDepositSummary(ctx context.Context, branchID uuid.UUID, from, to time.Time) (*DepositSummaryResponse, error) {
	key := summaryCacheKey(branchID, from, to)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	purchased, err := s.entries.SumDepositPurchases(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}
	used, err := s.entries.SumDepositUsage(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.customers.TotalOutstandingBalance(ctx, branchID)
	if err != nil {
		return nil, err
	}
	count, err := s.entries.CountInRange(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expCount, expValue, err := s.reports.ExpiringDeposits(ctx, branchID, now, now.Add(expiringSoonWindow))
	if err != nil {
		return nil, err
	}

	resp := &DepositSummaryResponse{
		BranchID:           branchID,
		From:               from,
		To:                 to,
		TotalPurchased:     purchased,
		TotalUsed:          used,
		OutstandingBalance: outstanding,
		TransactionCount:   count,
		ExpiringSoonCount:  expCount,
		ExpiringSoonValue:  expValue,
		UsageRate:          usageRate(purchased, used),
	}

	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// GetCustomerRows lists customers with deposit activity, highest balance first
func (s *DepositReportService) GetCustomerRows(ctx context.Context, branchID uuid.UUID, limit int) ([]CustomerRowResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.reports.CustomerRows(ctx, branchID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerRowResponse, len(rows))
	for i, row := range rows {
		responses[i] = CustomerRowResponse{
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
	return responses, nil
}

// usageRate returns used/purchased rounded to 4 places, zero when nothing was
// purchased in the period.
func usageRate(purchased, used int64) decimal.Decimal {
	if purchased <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(used).
		Div(decimal.NewFromInt(purchased)).
		Round(4)
}

func summaryCacheKey(branchID uuid.UUID, from, to time.Time) string {
	return fmt.Sprintf("report:deposit:%s:%d:%d", branchID, from.Unix(), to.Unix())
}

func (s *DepositReportService) cacheGet(ctx context.Context, key string) (*DepositSummaryResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp DepositSummaryResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (s *DepositReportService) cacheSet(ctx context.Context, key string, resp *DepositSummaryResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, summaryCacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
