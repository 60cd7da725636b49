package deposit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/ledger"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// ExpiryService sweeps lapsed deposits. Expired credit is removed through an
// adjustment entry rather than a silent balance edit, so replaying the ledger
// still reproduces the projected balance after a sweep.
type ExpiryService struct {
	scope     TransactionScope
	customers customer.Repository
	logger    *zap.Logger
}

// NewExpiryService creates a new ExpiryService
func NewExpiryService(scope TransactionScope, customers customer.Repository, logger *zap.Logger) *ExpiryService {
	return &ExpiryService{
		scope:     scope,
		customers: customers,
		logger:    logger,
	}
}

// SweepResult summarizes one expiry sweep run
type SweepResult struct {
	Swept        int
	Skipped      int
	TotalExpired int64
	Failed       int
}

// errAlreadySwept marks a candidate another writer expired between the
// listing and the per-customer transaction.
var errAlreadySwept = errors.New("deposit already expired by another writer")

// Sweep expires every lapsed deposit still carrying balance. Each customer is
// processed in its own transaction so one failure does not roll back the rest;
// customers modified mid-sweep are skipped and picked up on the next run.
func (s *ExpiryService) Sweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	expired, err := s.customers.ListExpiredWithBalance(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, candidate := range expired {
		amount, err := s.expireOne(ctx, candidate.ID, now)
		switch {
		case errors.Is(err, errAlreadySwept):
			result.Skipped++
		case err != nil:
			result.Failed++
			s.logger.Warn("failed to expire deposit",
				zap.String("customer_id", candidate.ID.String()),
				zap.Error(err))
		default:
			result.Swept++
			result.TotalExpired += amount
		}
	}

	if result.Swept > 0 || result.Skipped > 0 || result.Failed > 0 {
		s.logger.Info("deposit expiry sweep finished",
			zap.Int("swept", result.Swept),
			zap.Int("skipped", result.Skipped),
			zap.Int64("total_expired", result.TotalExpired),
			zap.Int("failed", result.Failed))
	}
	return result, nil
}

func (s *ExpiryService) expireOne(ctx context.Context, customerID uuid.UUID, now time.Time) (int64, error) {
	var amount int64

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		cust, err := repos.Customers().FindByID(ctx, customerID)
		if err != nil {
			return err
		}

		expired, err := cust.ExpireDeposit(now)
		if err != nil {
			return err
		}
		if expired == 0 {
			// Nothing left to remove, just clear the expiry marker.
			amount = 0
			return repos.Customers().SaveWithVersion(ctx, cust)
		}

		entry, err := ledger.NewAdjustmentEntry(cust.ID, cust.BranchID, expired,
			fmt.Sprintf("Deposit expired on %s", now.Format("2006-01-02")))
		if err != nil {
			return err
		}

		if err := repos.Customers().SaveWithVersion(ctx, cust); err != nil {
			return err
		}
		if err := repos.Entries().Create(ctx, entry); err != nil {
			return err
		}

		amount = expired
		return nil
	})
	if err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) && de.Code == "INVALID_STATE" {
			return 0, errAlreadySwept
		}
		return 0, err
	}
	return amount, nil
}
