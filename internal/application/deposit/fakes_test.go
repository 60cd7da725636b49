package deposit

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/customer"
	"github.com/laundrypos/backend/internal/domain/deposit"
	"github.com/laundrypos/backend/internal/domain/ledger"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// fakeStore is an in-memory backing store shared by the fake repositories and
// the fake transaction scope. Aggregates are stored by value so callers only
// see changes that were committed.
type fakeStore struct {
	mu           sync.Mutex
	customers    map[uuid.UUID]customer.Customer
	entries      map[uuid.UUID]ledger.Entry
	entryOrder   []uuid.UUID
	depositTypes map[uuid.UUID]deposit.DepositType
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:    make(map[uuid.UUID]customer.Customer),
		entries:      make(map[uuid.UUID]ledger.Entry),
		depositTypes: make(map[uuid.UUID]deposit.DepositType),
	}
}

func (s *fakeStore) putCustomer(c *customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = *c
}

func (s *fakeStore) putDepositType(d *deposit.DepositType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depositTypes[d.ID] = *d
}

func (s *fakeStore) customerByID(id uuid.UUID) customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers[id]
}

// fakeScope executes functions against a working copy of the store and commits
// the copy only when the function succeeds. The store mutex serializes
// transactions, so two concurrent calls observe each other's committed state.
type fakeScope struct {
	store *fakeStore
}

func newFakeScope(store *fakeStore) *fakeScope {
	return &fakeScope{store: store}
}

func (s *fakeScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	tx := &fakeTx{
		customers:    make(map[uuid.UUID]customer.Customer, len(s.store.customers)),
		entries:      make(map[uuid.UUID]ledger.Entry, len(s.store.entries)),
		entryOrder:   append([]uuid.UUID(nil), s.store.entryOrder...),
		depositTypes: make(map[uuid.UUID]deposit.DepositType, len(s.store.depositTypes)),
	}
	for id, c := range s.store.customers {
		tx.customers[id] = c
	}
	for id, e := range s.store.entries {
		tx.entries[id] = e
	}
	for id, d := range s.store.depositTypes {
		tx.depositTypes[id] = d
	}

	if err := fn(tx); err != nil {
		return err
	}

	s.store.customers = tx.customers
	s.store.entries = tx.entries
	s.store.entryOrder = tx.entryOrder
	s.store.depositTypes = tx.depositTypes
	return nil
}

var _ TransactionScope = (*fakeScope)(nil)

// fakeTx is one transaction's working copy of the store.
type fakeTx struct {
	customers    map[uuid.UUID]customer.Customer
	entries      map[uuid.UUID]ledger.Entry
	entryOrder   []uuid.UUID
	depositTypes map[uuid.UUID]deposit.DepositType
}

func (t *fakeTx) Customers() customer.Repository   { return &fakeCustomerRepo{tx: t} }
func (t *fakeTx) Entries() ledger.Repository       { return &fakeLedgerRepo{tx: t} }
func (t *fakeTx) DepositTypes() deposit.Repository { return &fakeDepositTypeRepo{tx: t} }

var _ TransactionalRepositories = (*fakeTx)(nil)

// directRepos exposes the committed store for the engine's read-side queries.
// Each call takes the store mutex so reads never observe a half-open
// transaction.
func directRepos(store *fakeStore) (customer.Repository, ledger.Repository, deposit.Repository) {
	tx := &storeView{store: store}
	return &fakeCustomerRepo{tx: tx}, &fakeLedgerRepo{tx: tx}, &fakeDepositTypeRepo{tx: tx}
}

type txView interface {
	view() *fakeTx
	done()
}

func (t *fakeTx) view() *fakeTx { return t }
func (t *fakeTx) done()         {}

type storeView struct {
	store *fakeStore
}

func (v *storeView) view() *fakeTx {
	v.store.mu.Lock()
	return &fakeTx{
		customers:    v.store.customers,
		entries:      v.store.entries,
		entryOrder:   v.store.entryOrder,
		depositTypes: v.store.depositTypes,
	}
}

func (v *storeView) done() { v.store.mu.Unlock() }

type fakeCustomerRepo struct {
	tx txView
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	t := r.tx.view()
	defer r.tx.done()
	if _, ok := t.customers[c.ID]; ok {
		return shared.ErrAlreadyExists
	}
	t.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	t := r.tx.view()
	defer r.tx.done()
	c, ok := t.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) FindByPhone(_ context.Context, branchID uuid.UUID, phone string) (*customer.Customer, error) {
	t := r.tx.view()
	defer r.tx.done()
	for _, c := range t.customers {
		if c.BranchID == branchID && c.Phone == phone {
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerRepo) List(_ context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	t := r.tx.view()
	defer r.tx.done()
	var out []*customer.Customer
	for _, c := range t.customers {
		if filter.BranchID != nil && c.BranchID != *filter.BranchID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		cc := c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Save(_ context.Context, c *customer.Customer) error {
	t := r.tx.view()
	defer r.tx.done()
	t.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) SaveWithVersion(_ context.Context, c *customer.Customer) error {
	t := r.tx.view()
	defer r.tx.done()
	stored, ok := t.customers[c.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != c.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	t.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) TotalOutstandingBalance(_ context.Context, branchID uuid.UUID) (int64, error) {
	t := r.tx.view()
	defer r.tx.done()
	var total int64
	for _, c := range t.customers {
		if c.BranchID == branchID && c.IsActive() {
			total += c.DepositBalance
		}
	}
	return total, nil
}

func (r *fakeCustomerRepo) ListExpiringBetween(_ context.Context, branchID uuid.UUID, from, to time.Time) ([]*customer.Customer, error) {
	t := r.tx.view()
	defer r.tx.done()
	var out []*customer.Customer
	for _, c := range t.customers {
		if c.BranchID != branchID || !c.HasExpiry || c.ExpiryDate == nil || c.DepositBalance <= 0 {
			continue
		}
		if c.ExpiryDate.Before(from) || c.ExpiryDate.After(to) {
			continue
		}
		cc := c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *fakeCustomerRepo) ListExpiredWithBalance(_ context.Context, asOf time.Time) ([]*customer.Customer, error) {
	t := r.tx.view()
	defer r.tx.done()
	var out []*customer.Customer
	for _, c := range t.customers {
		if c.HasExpiry && c.ExpiryDate != nil && c.DepositBalance > 0 && !c.ExpiryDate.After(asOf) {
			cc := c
			out = append(out, &cc)
		}
	}
	return out, nil
}

var _ customer.Repository = (*fakeCustomerRepo)(nil)

type fakeLedgerRepo struct {
	tx txView
}

func (r *fakeLedgerRepo) Create(_ context.Context, entry *ledger.Entry) error {
	t := r.tx.view()
	defer r.tx.done()
	if _, ok := t.entries[entry.ID]; ok {
		return shared.ErrAlreadyExists
	}
	t.entries[entry.ID] = *entry
	t.entryOrder = append(t.entryOrder, entry.ID)
	return nil
}

func (r *fakeLedgerRepo) Update(_ context.Context, entry *ledger.Entry) error {
	t := r.tx.view()
	defer r.tx.done()
	if _, ok := t.entries[entry.ID]; !ok {
		return shared.ErrNotFound
	}
	t.entries[entry.ID] = *entry
	return nil
}

func (r *fakeLedgerRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Entry, error) {
	t := r.tx.view()
	defer r.tx.done()
	e, ok := t.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

func (r *fakeLedgerRepo) List(_ context.Context, filter ledger.Filter) ([]*ledger.Entry, int64, error) {
	t := r.tx.view()
	defer r.tx.done()
	var matched []*ledger.Entry
	for _, id := range t.entryOrder {
		e := t.entries[id]
		if filter.BranchID != nil && e.BranchID != *filter.BranchID {
			continue
		}
		if filter.CustomerID != nil && e.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Type != nil && e.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && e.TransactionDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.TransactionDate.After(*filter.DateTo) {
			continue
		}
		ee := e
		matched = append(matched, &ee)
	}
	// Newest first
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	total := int64(len(matched))
	offset := filter.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + filter.PageSize
	if filter.PageSize <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeLedgerRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]*ledger.Entry, error) {
	t := r.tx.view()
	defer r.tx.done()
	var out []*ledger.Entry
	for _, id := range t.entryOrder {
		e := t.entries[id]
		if e.CustomerID == customerID {
			ee := e
			out = append(out, &ee)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) SumDepositPurchases(_ context.Context, branchID uuid.UUID, from, to time.Time) (int64, error) {
	t := r.tx.view()
	defer r.tx.done()
	var sum int64
	for _, e := range t.entries {
		if e.BranchID == branchID && e.Type == ledger.EntryTypeDepositPurchase && !e.IsCancelled() && inRange(e.TransactionDate, from, to) {
			sum += e.Amount
		}
	}
	return sum, nil
}

func (r *fakeLedgerRepo) SumDepositUsage(_ context.Context, branchID uuid.UUID, from, to time.Time) (int64, error) {
	t := r.tx.view()
	defer r.tx.done()
	var sum int64
	for _, e := range t.entries {
		if e.BranchID == branchID && e.Type == ledger.EntryTypeLaundry && !e.IsCancelled() && inRange(e.TransactionDate, from, to) {
			sum += e.DepositAmount
		}
	}
	return sum, nil
}

func (r *fakeLedgerRepo) CountInRange(_ context.Context, branchID uuid.UUID, from, to time.Time) (int64, error) {
	t := r.tx.view()
	defer r.tx.done()
	var count int64
	for _, e := range t.entries {
		if e.BranchID == branchID && !e.IsCancelled() && inRange(e.TransactionDate, from, to) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLedgerRepo) LatestByCustomerAndType(_ context.Context, customerID uuid.UUID, entryType ledger.EntryType) (*ledger.Entry, error) {
	t := r.tx.view()
	defer r.tx.done()
	for i := len(t.entryOrder) - 1; i >= 0; i-- {
		e := t.entries[t.entryOrder[i]]
		if e.CustomerID == customerID && e.Type == entryType && !e.IsCancelled() {
			ee := e
			return &ee, nil
		}
	}
	return nil, shared.ErrNotFound
}

var _ ledger.Repository = (*fakeLedgerRepo)(nil)

type fakeDepositTypeRepo struct {
	tx txView
}

func (r *fakeDepositTypeRepo) Create(_ context.Context, d *deposit.DepositType) error {
	t := r.tx.view()
	defer r.tx.done()
	t.depositTypes[d.ID] = *d
	return nil
}

func (r *fakeDepositTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*deposit.DepositType, error) {
	t := r.tx.view()
	defer r.tx.done()
	d, ok := t.depositTypes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDepositTypeRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*deposit.DepositType, error) {
	t := r.tx.view()
	defer r.tx.done()
	d, ok := t.depositTypes[id]
	if !ok || !d.IsActive {
		return nil, shared.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDepositTypeRepo) ExistsActiveByName(_ context.Context, branchID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	t := r.tx.view()
	defer r.tx.done()
	for _, d := range t.depositTypes {
		if excludeID != nil && d.ID == *excludeID {
			continue
		}
		if d.BranchID == branchID && d.IsActive && strings.EqualFold(d.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDepositTypeRepo) List(_ context.Context, filter deposit.Filter) ([]*deposit.DepositType, int64, error) {
	t := r.tx.view()
	defer r.tx.done()
	var out []*deposit.DepositType
	for _, d := range t.depositTypes {
		if filter.BranchID != nil && d.BranchID != *filter.BranchID {
			continue
		}
		if filter.ActiveOnly && !d.IsActive {
			continue
		}
		dd := d
		out = append(out, &dd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *fakeDepositTypeRepo) Save(_ context.Context, d *deposit.DepositType) error {
	t := r.tx.view()
	defer r.tx.done()
	t.depositTypes[d.ID] = *d
	return nil
}

var _ deposit.Repository = (*fakeDepositTypeRepo)(nil)

// conflictScope injects optimistic-lock conflicts before delegating, to
// exercise the engine's retry loop.
type conflictScope struct {
	inner     TransactionScope
	conflicts int
	attempts  int
}

func (s *conflictScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.attempts++
	if s.attempts <= s.conflicts {
		return shared.ErrConcurrencyConflict
	}
	return s.inner.Execute(ctx, fn)
}

func inRange(ts, from, to time.Time) bool {
	return !ts.Before(from) && !ts.After(to)
}
