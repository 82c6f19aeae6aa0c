// Package appstate holds client-side application state for the finance
// tracker: the account list, the record list for the selected account and
// viewed month, and the current selection. State changes are pushed to
// subscribers, so UI layers can re-render from snapshots instead of polling.
package appstate

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/fintrackr/finance_tracker_app/pkg/apiclient"
)

// API is the slice of the REST client the store drives. *apiclient.Client
// satisfies it.
type API interface {
	ListAccounts(ctx context.Context) ([]apiclient.AccountWithTotals, error)
	CreateAccount(ctx context.Context, body apiclient.NewAccount) (*apiclient.AccountWithTotals, error)
	ListRecords(ctx context.Context, q apiclient.RecordsQuery) ([]apiclient.Record, error)
	CreateRecord(ctx context.Context, body apiclient.NewRecord) (*apiclient.Record, error)
	UpdateRecord(ctx context.Context, id string, body apiclient.RecordUpdate) (*apiclient.Record, error)
	DeleteRecord(ctx context.Context, id string) error
}

// Snapshot is an immutable copy of the store's state at one point in time.
type Snapshot struct {
	Accounts          []apiclient.AccountWithTotals
	Records           []apiclient.Record
	SelectedAccountID int64
	Year              int
	Month             int
	Loading           bool
}

// Store is a process-wide state container with subscribe/notify semantics.
// The mutex guards state only; it is never held across a network call, so a
// slow in-flight fetch can race a newer one and apply a stale result last.
type Store struct {
	api    API
	logger *slog.Logger

	mu                sync.Mutex
	accounts          []apiclient.AccountWithTotals
	records           []apiclient.Record
	selectedAccountID int64
	year              int
	month             int
	loading           bool

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewStore returns a store viewing the current calendar month. logger may be
// nil, in which case slog.Default() is used.
func NewStore(api API, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now().UTC()
	return &Store{
		api:    api,
		logger: logger,
		year:   now.Year(),
		month:  int(now.Month()),
		subs:   make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn to be called after every state change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Snapshot returns a copy of the current state. Slices are copied so callers
// can hold them across later mutations.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Accounts:          append([]apiclient.AccountWithTotals(nil), s.accounts...),
		Records:           append([]apiclient.Record(nil), s.records...),
		SelectedAccountID: s.selectedAccountID,
		Year:              s.year,
		Month:             s.month,
		Loading:           s.loading,
	}
}

func (s *Store) notify() {
	snap := s.Snapshot()

	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Init loads the account list and selects the first account, if any.
func (s *Store) Init(ctx context.Context) error {
	if err := s.FetchAccounts(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	var first int64
	if len(s.accounts) > 0 {
		first = s.accounts[0].ID
	}
	s.mu.Unlock()

	if first != 0 {
		return s.SelectAccount(ctx, first)
	}
	return nil
}

// FetchAccounts replaces the account list with the server's, sorted by id.
// On failure the previous list is kept.
func (s *Store) FetchAccounts(ctx context.Context) error {
	accounts, err := s.api.ListAccounts(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch accounts", slog.String("error", err.Error()))
		return err
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()
	s.notify()
	return nil
}

// CreateAccount creates an account and appends it to the list. On failure the
// state is left untouched.
func (s *Store) CreateAccount(ctx context.Context, body apiclient.NewAccount) error {
	created, err := s.api.CreateAccount(ctx, body)
	if err != nil {
		s.logger.Error("Failed to create account", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.accounts = append(s.accounts, *created)
	s.mu.Unlock()
	s.notify()
	return nil
}

// SelectAccount changes the selected account and refetches its records for
// the viewed month. Selecting 0 clears the selection and the record list
// without a network call.
func (s *Store) SelectAccount(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.selectedAccountID = id
	if id == 0 {
		s.records = nil
		s.mu.Unlock()
		s.notify()
		return nil
	}
	s.mu.Unlock()
	s.notify()

	return s.fetchRecords(ctx)
}

// ShiftMonth moves the viewed month by offset (negative for past months) and
// refetches records for the selected account.
func (s *Store) ShiftMonth(ctx context.Context, offset int) error {
	s.mu.Lock()
	shifted := time.Date(s.year, time.Month(s.month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	s.year = shifted.Year()
	s.month = int(shifted.Month())
	s.mu.Unlock()
	s.notify()

	return s.fetchRecords(ctx)
}

// fetchRecords loads records for the current (account, year, month) triple.
// Without a selected account it is a no-op.
func (s *Store) fetchRecords(ctx context.Context) error {
	s.mu.Lock()
	accountID := s.selectedAccountID
	year, month := s.year, s.month
	if accountID == 0 {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()
	s.notify()

	records, err := s.api.ListRecords(ctx, apiclient.RecordsQuery{
		Year:      year,
		Month:     month,
		AccountID: accountID,
	})

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.records = records
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.logger.Error("Failed to fetch records", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// AddRecord creates a record, prepends it to the list and refetches accounts
// so derived totals stay current. On failure the state is left untouched.
func (s *Store) AddRecord(ctx context.Context, body apiclient.NewRecord) error {
	created, err := s.api.CreateRecord(ctx, body)
	if err != nil {
		s.logger.Error("Failed to create record", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.records = append([]apiclient.Record{*created}, s.records...)
	s.mu.Unlock()
	s.notify()

	return s.FetchAccounts(ctx)
}

// UpdateRecord applies a partial update, replaces the stored record and
// refetches accounts. On failure the state is left untouched.
func (s *Store) UpdateRecord(ctx context.Context, id string, body apiclient.RecordUpdate) error {
	updated, err := s.api.UpdateRecord(ctx, id, body)
	if err != nil {
		s.logger.Error("Failed to update record", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	s.notify()

	return s.FetchAccounts(ctx)
}

// DeleteRecord removes a record and refetches accounts. On failure the state
// is left untouched.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	if err := s.api.DeleteRecord(ctx, id); err != nil {
		s.logger.Error("Failed to delete record", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	kept := s.records[:0:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	s.mu.Unlock()
	s.notify()

	return s.FetchAccounts(ctx)
}

// SortedRecords returns a fresh copy of the record list sorted by date
// descending. The sort is recomputed on every call and never reorders the
// stored list.
func (s *Store) SortedRecords() []apiclient.Record {
	s.mu.Lock()
	out := append([]apiclient.Record(nil), s.records...)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		ti, erri := time.Parse(time.RFC3339, out[i].Date)
		tj, errj := time.Parse(time.RFC3339, out[j].Date)
		if erri != nil || errj != nil {
			return out[i].Date > out[j].Date
		}
		return ti.After(tj)
	})
	return out
}
