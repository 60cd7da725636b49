package deposit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/ledger"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// maxConflictRetries bounds how often a write is retried after losing an
// optimistic-lock race before the conflict is surfaced to the caller.
const maxConflictRetries = 3

// Engine executes every operation that moves money through the customer
// deposit ledger. Each write runs inside a transaction scope: the ledger entry
// and the customer's balance projection commit together or not at all, and the
// customer row is saved with a version check so concurrent writers cannot both
// apply against the same balance snapshot.
type Engine struct {
	scope     TransactionScope
	customers customer.Repository
	entries   ledger.Repository
	logger    *zap.Logger
}

// NewEngine creates a new deposit transaction engine
func NewEngine(
	scope TransactionScope,
	customers customer.Repository,
	entries ledger.Repository,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		scope:     scope,
		customers: customers,
		entries:   entries,
		logger:    logger,
	}
}

// PurchaseDeposit sells deposit credit to a customer. The plan's price and
// granted value are snapshotted into the ledger entry, the customer's balance
// is credited, and an expiry date is pinned when the plan has one.
func (e *Engine) PurchaseDeposit(ctx context.Context, req PurchaseDepositRequest) (*PurchaseDepositResponse, error) {
	var resp *PurchaseDepositResponse

	err := e.withConflictRetry(ctx, func(repos TransactionalRepositories) error {
		cust, err := repos.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !cust.IsActive() {
			return shared.NewDomainError("INVALID_STATE", "Customer is inactive")
		}

		plan, err := repos.DepositTypes().FindActiveByID(ctx, req.DepositTypeID)
		if err != nil {
			return err
		}
		if plan.BranchID != cust.BranchID {
			return shared.NewDomainError("VALIDATION_ERROR", "Deposit type belongs to a different branch")
		}

		description := req.Description
		if description == "" {
			description = fmt.Sprintf("Deposit purchase: %s", plan.Name)
		}

		entry, err := ledger.NewDepositPurchaseEntry(cust.ID, cust.BranchID, plan.DepositValue, plan.PurchasePrice, description)
		if err != nil {
			return err
		}
		if req.ProcessedBy != nil {
			entry.WithProcessedBy(*req.ProcessedBy)
		}

		expiry := plan.ExpiryFrom(entry.TransactionDate)
		if err := cust.ApplyDepositPurchase(plan.ID, plan.Name, plan.DepositValue, plan.PurchasePrice, plan.HasExpiry(), expiry); err != nil {
			return err
		}

		if err := repos.Customers().SaveWithVersion(ctx, cust); err != nil {
			return err
		}
		if err := repos.Entries().Create(ctx, entry); err != nil {
			return err
		}

		tr := ToTransactionResponse(entry)
		tr.CustomerName = cust.Name
		resp = &PurchaseDepositResponse{
			Transaction: tr,
			Customer:    ToCustomerBalanceResponse(cust),
			DepositType: ToDepositTypeResponse(plan),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("deposit purchased",
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("deposit_type_id", req.DepositTypeID.String()),
		zap.Int64("balance_after", resp.Customer.DepositBalance))
	return resp, nil
}

// PayLaundry settles a laundry order. The deposit portion is derived from the
// payment method: deposit pays everything from balance, mixed uses the split
// from the request, and the cash-like methods never touch the balance.
func (e *Engine) PayLaundry(ctx context.Context, req PayLaundryRequest) (*PayLaundryResponse, error) {
	method := ledger.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Invalid payment method %q", req.PaymentMethod))
	}

	depositAmount, cashAmount := paymentSplit(method, req)

	var resp *PayLaundryResponse

	err := e.withConflictRetry(ctx, func(repos TransactionalRepositories) error {
		cust, err := repos.Customers().FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !cust.IsActive() {
			return shared.NewDomainError("INVALID_STATE", "Customer is inactive")
		}

		entry, err := ledger.NewLaundryPaymentEntry(cust.ID, cust.BranchID, req.OrderID, req.Amount, method, depositAmount, cashAmount, req.Description)
		if err != nil {
			return err
		}
		if req.ProcessedBy != nil {
			entry.WithProcessedBy(*req.ProcessedBy)
		}

		if err := cust.ApplyLaundryPayment(entry.Amount, entry.DepositAmount); err != nil {
			return err
		}

		if err := repos.Customers().SaveWithVersion(ctx, cust); err != nil {
			return err
		}
		if err := repos.Entries().Create(ctx, entry); err != nil {
			return err
		}

		tr := ToTransactionResponse(entry)
		tr.CustomerName = cust.Name
		resp = &PayLaundryResponse{
			Transaction: tr,
			Customer:    ToCustomerBalanceResponse(cust),
			Breakdown: PaymentBreakdown{
				Total:                   entry.Amount,
				DepositUsed:             entry.DepositAmount,
				CashPaid:                entry.CashAmount,
				RemainingDepositBalance: cust.DepositBalance,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("laundry payment recorded",
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("method", req.PaymentMethod),
		zap.Int64("amount", req.Amount),
		zap.Int64("deposit_used", depositAmount))
	return resp, nil
}

// CancelTransaction reverses a ledger entry. The entry flips to cancelled and
// the customer's projection is rolled back by exactly what the entry applied:
// a cancelled laundry payment restores its deposit portion, a cancelled
// purchase removes the granted credit. A purchase whose credit has already
// been spent cannot be cancelled, otherwise the balance would go negative.
func (e *Engine) CancelTransaction(ctx context.Context, entryID uuid.UUID, req CancelTransactionRequest) (*CancelTransactionResponse, error) {
	var resp *CancelTransactionResponse

	err := e.withConflictRetry(ctx, func(repos TransactionalRepositories) error {
		entry, err := repos.Entries().FindByID(ctx, entryID)
		if err != nil {
			return err
		}

		if err := entry.Cancel(req.Reason); err != nil {
			return err
		}

		cust, err := repos.Customers().FindByID(ctx, entry.CustomerID)
		if err != nil {
			return err
		}

		switch entry.Type {
		case ledger.EntryTypeLaundry:
			if err := cust.ReverseLaundryPayment(entry.Amount, entry.DepositRestoredOnCancel()); err != nil {
				return err
			}
		case ledger.EntryTypeDepositPurchase:
			if err := cust.ReverseDepositPurchase(entry.Amount, entry.CashAmount); err != nil {
				return err
			}
		}

		if err := repos.Customers().SaveWithVersion(ctx, cust); err != nil {
			return err
		}
		if err := repos.Entries().Update(ctx, entry); err != nil {
			return err
		}

		tr := ToTransactionResponse(entry)
		tr.CustomerName = cust.Name
		resp = &CancelTransactionResponse{
			CancelledTransaction: tr,
			RefundAmount:         entry.RefundedOnCancel(),
			Customer:             ToCustomerBalanceResponse(cust),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("transaction cancelled",
		zap.String("entry_id", entryID.String()),
		zap.Int64("refund_amount", resp.RefundAmount),
		zap.String("reason", req.Reason))
	return resp, nil
}

// GetTransaction returns a single ledger entry with its customer's name joined in
func (e *Engine) GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	entry, err := e.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(entry)
	if err := e.joinCustomerNames(ctx, []*TransactionResponse{&resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTransactions returns a filtered page of ledger entries, newest first
func (e *Engine) ListTransactions(ctx context.Context, req ListTransactionsRequest) (*TransactionListResponse, error) {
	filter := ledger.Filter{
		BranchID:   req.BranchID,
		CustomerID: req.CustomerID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	}
	if req.Type != "" {
		t := ledger.EntryType(req.Type)
		if !t.IsValid() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Invalid transaction type %q", req.Type))
		}
		filter.Type = &t
	}
	if req.Status != "" {
		s := ledger.EntryStatus(req.Status)
		if !s.IsValid() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Invalid transaction status %q", req.Status))
		}
		filter.Status = &s
	}
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Normalize()

	entries, total, err := e.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := ToTransactionResponses(entries)
	refs := make([]*TransactionResponse, len(responses))
	for i := range responses {
		refs[i] = &responses[i]
	}
	if err := e.joinCustomerNames(ctx, refs); err != nil {
		return nil, err
	}

	return &TransactionListResponse{
		Transactions: responses,
		Total:        total,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}, nil
}

// joinCustomerNames fills CustomerName on each response, reading every
// distinct customer once. Rows whose customer row is gone keep an empty name
// rather than failing the query.
func (e *Engine) joinCustomerNames(ctx context.Context, responses []*TransactionResponse) error {
	names := make(map[uuid.UUID]string)
	for _, r := range responses {
		name, ok := names[r.CustomerID]
		if !ok {
			cust, err := e.customers.FindByID(ctx, r.CustomerID)
			switch {
			case shared.IsNotFound(err):
				name = ""
			case err != nil:
				return err
			default:
				name = cust.Name
			}
			names[r.CustomerID] = name
		}
		r.CustomerName = name
	}
	return nil
}

// GetCustomerBalance returns a customer's current deposit position
func (e *Engine) GetCustomerBalance(ctx context.Context, customerID uuid.UUID) (*CustomerBalanceResponse, error) {
	cust, err := e.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerBalanceResponse(cust)
	return &resp, nil
}

// ReplayBalance recomputes a customer's balance from the ledger by summing the
// effect of every non-cancelled entry in order.
func (e *Engine) ReplayBalance(ctx context.Context, customerID uuid.UUID) (int64, error) {
	entries, err := e.entries.ListByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}

	var balance int64
	for _, entry := range entries {
		balance += entry.BalanceEffect()
	}
	return balance, nil
}

// Reconcile replays a customer's ledger and compares the result against the
// stored balance projection. The two must agree; a mismatch means an invariant
// was broken and is reported rather than silently repaired.
func (e *Engine) Reconcile(ctx context.Context, customerID uuid.UUID) (*ReconcileResponse, error) {
	cust, err := e.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries, err := e.entries.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var replayed int64
	for _, entry := range entries {
		replayed += entry.BalanceEffect()
	}

	consistent := replayed == cust.DepositBalance
	if !consistent {
		e.logger.Warn("balance mismatch detected",
			zap.String("customer_id", customerID.String()),
			zap.Int64("stored", cust.DepositBalance),
			zap.Int64("replayed", replayed))
	}

	return &ReconcileResponse{
		CustomerID:      customerID,
		StoredBalance:   cust.DepositBalance,
		ReplayedBalance: replayed,
		Consistent:      consistent,
		EntryCount:      len(entries),
	}, nil
}

// withConflictRetry executes fn in a transaction scope, retrying the whole
// scope when the customer row was modified concurrently. Each retry re-reads
// the customer, so the balance check runs against fresh state.
func (e *Engine) withConflictRetry(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = e.scope.Execute(ctx, fn)
		if err == nil || !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
		e.logger.Debug("optimistic lock conflict, retrying", zap.Int("attempt", attempt+1))
	}
	return err
}

// paymentSplit derives the deposit and cash portions for a payment method.
func paymentSplit(method ledger.PaymentMethod, req PayLaundryRequest) (int64, int64) {
	switch method {
	case ledger.PaymentMethodDeposit:
		return req.Amount, 0
	case ledger.PaymentMethodMixed:
		return req.DepositAmount, req.CashAmount
	default:
		return 0, req.Amount
	}
}
