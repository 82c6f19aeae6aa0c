package appstate_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fintrackr/finance_tracker_app/pkg/apiclient"
	"github.com/fintrackr/finance_tracker_app/pkg/appstate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned data and counts calls; failNext makes the next call
// return an error.
type fakeAPI struct {
	mu       sync.Mutex
	accounts []apiclient.AccountWithTotals
	records  []apiclient.Record

	listAccountsCalls int
	listRecordsCalls  int
	lastQuery         apiclient.RecordsQuery
	failNext          bool
}

func (f *fakeAPI) fail() error {
	if f.failNext {
		f.failNext = false
		return errors.New("network down")
	}
	return nil
}

func (f *fakeAPI) ListAccounts(_ context.Context) ([]apiclient.AccountWithTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listAccountsCalls++
	if err := f.fail(); err != nil {
		return nil, err
	}
	return append([]apiclient.AccountWithTotals(nil), f.accounts...), nil
}

func (f *fakeAPI) CreateAccount(_ context.Context, body apiclient.NewAccount) (*apiclient.AccountWithTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	created := apiclient.AccountWithTotals{
		Account: apiclient.Account{ID: int64(len(f.accounts) + 1), Name: body.Name, DefaultBalance: body.DefaultBalance},
	}
	f.accounts = append(f.accounts, created)
	return &created, nil
}

func (f *fakeAPI) ListRecords(_ context.Context, q apiclient.RecordsQuery) ([]apiclient.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listRecordsCalls++
	f.lastQuery = q
	if err := f.fail(); err != nil {
		return nil, err
	}
	return append([]apiclient.Record(nil), f.records...), nil
}

func (f *fakeAPI) CreateRecord(_ context.Context, body apiclient.NewRecord) (*apiclient.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	created := apiclient.Record{ID: "100", Type: body.Type, AccountID: body.AccountID, Amount: body.Amount, Date: body.Date}
	f.records = append(f.records, created)
	return &created, nil
}

func (f *fakeAPI) UpdateRecord(_ context.Context, id string, body apiclient.RecordUpdate) (*apiclient.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	for i := range f.records {
		if f.records[i].ID == id {
			if body.Amount != nil {
				f.records[i].Amount = *body.Amount
			}
			updated := f.records[i]
			return &updated, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAPI) DeleteRecord(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func someAccounts() []apiclient.AccountWithTotals {
	return []apiclient.AccountWithTotals{
		{Account: apiclient.Account{ID: 2, Name: "Savings", DefaultBalance: decimal.Zero}},
		{Account: apiclient.Account{ID: 1, Name: "Checking", DefaultBalance: decimal.Zero}},
	}
}

func TestInit_SelectsFirstAccount(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts()}
	store := appstate.NewStore(api, nil)

	require.NoError(t, store.Init(context.Background()))

	snap := store.Snapshot()
	require.Len(t, snap.Accounts, 2)
	// Accounts come back sorted by id; the first one gets selected.
	assert.Equal(t, int64(1), snap.Accounts[0].ID)
	assert.Equal(t, int64(1), snap.SelectedAccountID)
	assert.Equal(t, 1, api.listRecordsCalls)
}

func TestSelectAccount_RefetchesRecords(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts(), records: []apiclient.Record{
		{ID: "1", Type: "INCOME", AccountID: 2, Amount: decimal.RequireFromString("50"), Date: "2024-03-15T10:00:00.000Z"},
	}}
	store := appstate.NewStore(api, nil)

	require.NoError(t, store.SelectAccount(context.Background(), 2))

	snap := store.Snapshot()
	assert.Equal(t, int64(2), snap.SelectedAccountID)
	assert.Len(t, snap.Records, 1)
	assert.Equal(t, int64(2), api.lastQuery.AccountID)
	assert.Equal(t, snap.Year, api.lastQuery.Year)
	assert.Equal(t, snap.Month, api.lastQuery.Month)
}

func TestSelectAccount_UnsetClearsWithoutFetch(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts(), records: []apiclient.Record{
		{ID: "1", Type: "INCOME", AccountID: 2, Amount: decimal.Zero, Date: "2024-03-15T10:00:00.000Z"},
	}}
	store := appstate.NewStore(api, nil)
	require.NoError(t, store.SelectAccount(context.Background(), 2))
	fetchesBefore := api.listRecordsCalls

	require.NoError(t, store.SelectAccount(context.Background(), 0))

	snap := store.Snapshot()
	assert.Zero(t, snap.SelectedAccountID)
	assert.Empty(t, snap.Records)
	assert.Equal(t, fetchesBefore, api.listRecordsCalls)
}

func TestShiftMonth_MovesWindowAndRefetches(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts()}
	store := appstate.NewStore(api, nil)
	require.NoError(t, store.SelectAccount(context.Background(), 1))

	before := store.Snapshot()
	require.NoError(t, store.ShiftMonth(context.Background(), -1))

	after := store.Snapshot()
	expected := before.Month - 1
	expectedYear := before.Year
	if expected == 0 {
		expected = 12
		expectedYear--
	}
	assert.Equal(t, expected, after.Month)
	assert.Equal(t, expectedYear, after.Year)
	assert.Equal(t, expected, api.lastQuery.Month)
}

func TestAddRecord_RefetchesAccounts(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts()}
	store := appstate.NewStore(api, nil)
	callsBefore := api.listAccountsCalls

	err := store.AddRecord(context.Background(), apiclient.NewRecord{
		Type: "INCOME", AccountID: 1, Amount: decimal.RequireFromString("50"), Date: "2024-03-15T10:00:00Z",
	})

	require.NoError(t, err)
	snap := store.Snapshot()
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "100", snap.Records[0].ID)
	// Totals are derived server-side, so the account list gets refreshed.
	assert.Equal(t, callsBefore+1, api.listAccountsCalls)
}

func TestDeleteRecord_RemovesAndRefetches(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts(), records: []apiclient.Record{
		{ID: "1", Type: "INCOME", AccountID: 1, Amount: decimal.Zero, Date: "2024-03-15T10:00:00.000Z"},
		{ID: "2", Type: "EXPENSE", AccountID: 1, Amount: decimal.Zero, Date: "2024-03-16T10:00:00.000Z"},
	}}
	store := appstate.NewStore(api, nil)
	require.NoError(t, store.SelectAccount(context.Background(), 1))

	require.NoError(t, store.DeleteRecord(context.Background(), "1"))

	snap := store.Snapshot()
	require.Len(t, snap.Records, 1)
	assert.Equal(t, "2", snap.Records[0].ID)
}

func TestFailedFetch_LeavesStateIntact(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts(), records: []apiclient.Record{
		{ID: "1", Type: "INCOME", AccountID: 1, Amount: decimal.Zero, Date: "2024-03-15T10:00:00.000Z"},
	}}
	store := appstate.NewStore(api, nil)
	require.NoError(t, store.SelectAccount(context.Background(), 1))
	before := store.Snapshot()

	api.failNext = true
	err := store.ShiftMonth(context.Background(), 1)

	require.Error(t, err)
	after := store.Snapshot()
	assert.Equal(t, before.Records, after.Records)
	assert.False(t, after.Loading)
}

func TestFailedAddRecord_NoOptimisticApply(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts()}
	store := appstate.NewStore(api, nil)

	api.failNext = true
	err := store.AddRecord(context.Background(), apiclient.NewRecord{
		Type: "INCOME", AccountID: 1, Amount: decimal.RequireFromString("50"), Date: "2024-03-15T10:00:00Z",
	})

	require.Error(t, err)
	assert.Empty(t, store.Snapshot().Records)
}

func TestSortedRecords_DateDescendingFreshCopy(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts(), records: []apiclient.Record{
		{ID: "1", Type: "INCOME", AccountID: 1, Amount: decimal.Zero, Date: "2024-03-10T10:00:00Z"},
		{ID: "2", Type: "EXPENSE", AccountID: 1, Amount: decimal.Zero, Date: "2024-03-20T10:00:00Z"},
		{ID: "3", Type: "INCOME", AccountID: 1, Amount: decimal.Zero, Date: "2024-03-15T10:00:00Z"},
	}}
	store := appstate.NewStore(api, nil)
	require.NoError(t, store.SelectAccount(context.Background(), 1))

	sorted := store.SortedRecords()

	require.Len(t, sorted, 3)
	assert.Equal(t, "2", sorted[0].ID)
	assert.Equal(t, "3", sorted[1].ID)
	assert.Equal(t, "1", sorted[2].ID)

	// Stored order is untouched.
	snap := store.Snapshot()
	assert.Equal(t, "1", snap.Records[0].ID)

	// Mutating the returned slice must not leak back into the store.
	sorted[0].ID = "mutated"
	assert.Equal(t, "2", store.SortedRecords()[0].ID)
}

func TestSubscribe_NotifiesAndUnsubscribes(t *testing.T) {
	api := &fakeAPI{accounts: someAccounts()}
	store := appstate.NewStore(api, nil)

	var mu sync.Mutex
	count := 0
	cancel := store.Subscribe(func(appstate.Snapshot) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	require.NoError(t, store.FetchAccounts(context.Background()))
	mu.Lock()
	after := count
	mu.Unlock()
	assert.Equal(t, 1, after)

	cancel()
	require.NoError(t, store.FetchAccounts(context.Background()))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, count)
}
