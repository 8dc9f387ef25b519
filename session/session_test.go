package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bank-ledger/bank"
	"github.com/warp/bank-ledger/scenario"
	"github.com/warp/bank-ledger/session"
)

func newLedger(t *testing.T) *bank.Ledger {
	t.Helper()
	clock := bank.NewManualClock(time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC))
	return bank.NewLedger(bank.LoadSnapshot(scenario.Retail()), clock)
}

func TestProject_SyncedView(t *testing.T) {
	ledger := newLedger(t)

	result := session.Project(ledger, "+1-555-0101")
	require.Equal(t, session.StatusSynced, result.Status)
	require.NotNil(t, result.View)
	assert.Equal(t, "CUST_1", result.View.CustomerID)

	require.NotNil(t, result.View.Account)
	assert.Equal(t, "ACC_1", result.View.Account.AccountID, "primary account is the first back-reference")
	assert.True(t, result.View.Account.Active)
	assert.True(t, result.View.Account.CurrentBalance.Equal(bank.MustUSD("2450.75")))

	require.NotNil(t, result.View.Card)
	assert.Equal(t, "CARD_1", result.View.Card.CardID)
	assert.True(t, result.View.Card.Active)
}

func TestProject_ReflectsLedgerChanges(t *testing.T) {
	ledger := newLedger(t)

	_, err := ledger.LockCard("CARD_1", "reported lost")
	require.NoError(t, err)

	result := session.Project(ledger, "+1-555-0101")
	require.Equal(t, session.StatusSynced, result.Status)
	assert.False(t, result.View.Card.Active, "locked card projects as inactive")
}

func TestProject_UnknownPhone_Unavailable(t *testing.T) {
	ledger := newLedger(t)

	result := session.Project(ledger, "+1-555-9999")
	assert.Equal(t, session.StatusUnavailable, result.Status)
	assert.NotEmpty(t, result.Reason)
	assert.Nil(t, result.View)
}

func TestProject_EmptyPhone_Unavailable(t *testing.T) {
	result := session.Project(newLedger(t), "")
	assert.Equal(t, session.StatusUnavailable, result.Status)
}
