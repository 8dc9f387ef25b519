package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bank-ledger/bank"
	"github.com/warp/bank-ledger/scenario"
)

func TestByName(t *testing.T) {
	assert.NotNil(t, scenario.ByName("retail"))
	assert.NotNil(t, scenario.ByName("minimal"))
	assert.Nil(t, scenario.ByName("nonexistent"))
}

func TestScenarios_DeterministicIDs(t *testing.T) {
	first := scenario.Retail()
	second := scenario.Retail()
	assert.Equal(t, first, second, "scenario builds are reproducible")
}

func TestRetail_BackReferencesConsistent(t *testing.T) {
	// Every id a customer references must resolve in the snapshot.
	snap := scenario.Retail()
	ledger := bank.NewLedger(bank.LoadSnapshot(snap), nil)

	for _, c := range snap.Customers {
		accounts, err := ledger.Accounts(c.CustomerID)
		require.NoError(t, err)
		assert.Len(t, accounts, len(c.AccountIDs))
		for _, cardID := range c.CardIDs {
			_, err := ledger.CardByID(cardID)
			assert.NoError(t, err)
		}
	}
}

func TestRetail_SeedsEveryCollectionTypeNeededForDemos(t *testing.T) {
	stats := bank.NewLedger(bank.LoadSnapshot(scenario.Retail()), nil).Statistics()

	assert.Equal(t, 2, stats.NumCustomers)
	assert.Equal(t, 4, stats.NumAccounts)
	assert.Equal(t, 2, stats.NumCards)
	assert.Equal(t, 2, stats.NumStatements)
	assert.Equal(t, 4, stats.NumTransactions)
	assert.Equal(t, 1, stats.NumPayees)
}

func TestMinimal_FundedAndActive(t *testing.T) {
	ledger := bank.NewLedger(bank.LoadSnapshot(scenario.Minimal()), nil)

	account, err := ledger.AccountByID("ACC_1")
	require.NoError(t, err)
	assert.Equal(t, bank.AccountActive, account.Status)
	assert.True(t, account.AvailableBalance.Equal(bank.MustUSD("100.00")))
}
