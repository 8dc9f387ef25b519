package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bank-ledger/bank"
	"github.com/warp/bank-ledger/scenario"
	"github.com/warp/bank-ledger/store/jsonfile"
	"github.com/warp/bank-ledger/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	// GIVEN: A retail snapshot enriched with a settled payment and a dispute
	// WHEN: Saving to SQLite and loading back
	// THEN: The canonical byte form is unchanged

	clock := bank.NewManualClock(time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC))
	ledger := bank.NewLedger(bank.LoadSnapshot(scenario.Retail()), clock)
	payee, err := ledger.AddPayee("CUST_1", "Riverbend Insurance", "electronic")
	require.NoError(t, err)
	receipt, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payee.PayeeID, bank.MustUSD("120.00"), nil)
	require.NoError(t, err)
	_, err = ledger.AuthorizePaymentRequest(receipt.RequestID)
	require.NoError(t, err)
	_, err = ledger.MakePayment(receipt.RequestID)
	require.NoError(t, err)
	_, err = ledger.FileDispute("ACC_1", "TX_2", "amount_mismatch")
	require.NoError(t, err)
	snap := ledger.Snapshot()

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)

	before, err := jsonfile.Marshal(snap)
	require.NoError(t, err)
	after, err := jsonfile.Marshal(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSaveSnapshot_OverwritesPreviousState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, scenario.Retail()))
	require.NoError(t, store.SaveSnapshot(ctx, scenario.Minimal()))

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Customers, 1)
	assert.Equal(t, "CUST_1", loaded.Customers[0].CustomerID)
	assert.Equal(t, "Dana Whitfield", loaded.Customers[0].FullName)
}

func TestLoadSnapshot_EmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Customers)
	assert.Empty(t, loaded.Transactions)
	assert.NotNil(t, loaded.Accounts, "collections are initialized, never nil")
}
