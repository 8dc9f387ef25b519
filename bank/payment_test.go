package bank_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bank-ledger/bank"
	"github.com/warp/bank-ledger/scenario"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var testNow = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func newMinimalLedger(t *testing.T) (*bank.Ledger, *bank.ManualClock) {
	t.Helper()
	clock := bank.NewManualClock(testNow)
	return bank.NewLedger(bank.LoadSnapshot(scenario.Minimal()), clock), clock
}

func newRetailLedger(t *testing.T) (*bank.Ledger, *bank.ManualClock) {
	t.Helper()
	clock := bank.NewManualClock(testNow)
	return bank.NewLedger(bank.LoadSnapshot(scenario.Retail()), clock), clock
}

func usd(s string) decimal.Decimal { return bank.MustUSD(s) }

// addPayee registers a payee and returns its id.
func addPayee(t *testing.T, l *bank.Ledger, customerID string) string {
	t.Helper()
	receipt, err := l.AddPayee(customerID, "City Water Utility", "electronic")
	require.NoError(t, err)
	return receipt.PayeeID
}

// authorizedRequest walks a fresh request to Authorized and returns its id.
func authorizedRequest(t *testing.T, l *bank.Ledger, customerID, accountID, payeeID, amount string) string {
	t.Helper()
	receipt, err := l.CreatePaymentRequest(customerID, accountID, payeeID, usd(amount), nil)
	require.NoError(t, err)
	_, err = l.AuthorizePaymentRequest(receipt.RequestID)
	require.NoError(t, err)
	return receipt.RequestID
}

// =============================================================================
// CREATE TESTS
// =============================================================================

func TestCreatePaymentRequest_OpensAwaiting(t *testing.T) {
	// GIVEN: A customer with an active checking account and a payee
	// WHEN: Creating a payment request
	// THEN: The request is Awaiting Payment and back-referenced on the customer

	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")

	receipt, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("25.00"), nil)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentAwaiting, receipt.Status)

	pr, err := ledger.CheckPaymentRequest(receipt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, bank.OriginAgent, pr.Origin)
	assert.Equal(t, "CUST_1", pr.CustomerID)
	assert.Equal(t, "ACC_1", pr.FromAccountID)
	assert.Equal(t, payeeID, pr.ToPayeeID)
	assert.True(t, pr.Amount.Equal(usd("25.00")))
	assert.Equal(t, testNow, pr.CreatedAt)

	customer, err := ledger.CustomerByID("CUST_1")
	require.NoError(t, err)
	assert.Contains(t, customer.PaymentRequestIDs, receipt.RequestID)
}

func TestCreatePaymentRequest_SecondAwaiting_Rejected(t *testing.T) {
	// GIVEN: A customer who already has a request Awaiting Payment
	// WHEN: Creating another request
	// THEN: Rejected with a precondition failure and nothing is stored

	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")

	_, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("25.00"), nil)
	require.NoError(t, err)
	before := ledger.Statistics()

	_, err = ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("10.00"), nil)
	assert.True(t, bank.IsPreconditionFailed(err), "second awaiting request should be rejected")
	assert.Equal(t, before, ledger.Statistics(), "failed create must not mutate the ledger")
}

func TestCreatePaymentRequest_UnownedAccount_NotFound(t *testing.T) {
	// GIVEN: An account that exists but belongs to another customer
	// WHEN: Creating a request from it
	// THEN: NotFound scoped to the customer, not precondition

	ledger, _ := newRetailLedger(t)

	// ACC_3 belongs to CUST_2; PY_1 belongs to CUST_1.
	_, err := ledger.CreatePaymentRequest("CUST_1", "ACC_3", "PY_1", usd("5.00"), nil)
	assert.True(t, bank.IsNotFound(err))

	var nf *bank.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, bank.KindAccount, nf.Kind)
	assert.Equal(t, "ACC_3", nf.ID)
}

func TestCreatePaymentRequest_UnownedPayee_NotFound(t *testing.T) {
	ledger, _ := newRetailLedger(t)

	_, err := ledger.CreatePaymentRequest("CUST_2", "ACC_3", "PY_1", usd("5.00"), nil)
	assert.True(t, bank.IsNotFound(err))

	var nf *bank.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, bank.KindPayee, nf.Kind)
}

func TestCreatePaymentRequest_FrozenAccount_Rejected(t *testing.T) {
	// GIVEN: CUST_2's credit account ACC_4 is Frozen
	ledger, _ := newRetailLedger(t)
	payeeID := addPayee(t, ledger, "CUST_2")

	_, err := ledger.CreatePaymentRequest("CUST_2", "ACC_4", payeeID, usd("20.00"), nil)
	assert.True(t, bank.IsPreconditionFailed(err))

	var pe *bank.PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, string(bank.AccountFrozen), pe.Current)
}

func TestCreatePaymentRequest_NonPositiveAmount_Rejected(t *testing.T) {
	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")

	for _, amount := range []string{"0.00", "-5.00"} {
		_, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd(amount), nil)
		assert.True(t, bank.IsInvalidArgument(err), "amount %s should be rejected", amount)
	}
}

// =============================================================================
// SETTLEMENT TESTS
// =============================================================================

func TestPaymentLifecycle_Settles(t *testing.T) {
	// GIVEN: A $100.00 checking account and an authorized $50.00 request
	// WHEN: Making the payment
	// THEN: Both balances drop to $50.00 and a Posted billpay transaction
	//       referencing the request is appended

	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")
	requestID := authorizedRequest(t, ledger, "CUST_1", "ACC_1", payeeID, "50.00")

	result, err := ledger.MakePayment(requestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentSettled, result.Status)
	assert.NotEmpty(t, result.TxID)
	assert.Empty(t, result.Reason)

	account, err := ledger.AccountByID("ACC_1")
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(usd("50.00")), "current balance: %s", account.CurrentBalance)
	assert.True(t, account.AvailableBalance.Equal(usd("50.00")), "available balance: %s", account.AvailableBalance)

	txs := ledger.Transactions("ACC_1", nil, nil, 0)
	require.Len(t, txs, 1)
	tx := txs[0]
	assert.Equal(t, result.TxID, tx.TxID)
	assert.Equal(t, bank.TxBillPay, tx.Type)
	assert.Equal(t, bank.TxPosted, tx.Status)
	assert.True(t, tx.Amount.Equal(usd("-50.00")), "transaction amount: %s", tx.Amount)
	require.NotNil(t, tx.MerchantOrPayee)
	assert.Equal(t, "City Water Utility", *tx.MerchantOrPayee)
	require.NotNil(t, tx.Reference)
	assert.Equal(t, requestID, *tx.Reference)

	pr, err := ledger.CheckPaymentRequest(requestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentSettled, pr.Status)
}

func TestMakePayment_InsufficientFunds_FailsAsOutcome(t *testing.T) {
	// GIVEN: A $100.00 account and an authorized $150.00 request
	// WHEN: Making the payment
	// THEN: Outcome is Failed with reason insufficient_funds (NOT an error),
	//       balances are untouched and no transaction is appended

	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")
	requestID := authorizedRequest(t, ledger, "CUST_1", "ACC_1", payeeID, "150.00")

	result, err := ledger.MakePayment(requestID)
	require.NoError(t, err, "insufficient funds is a business outcome, not an error")
	assert.Equal(t, bank.PaymentFailed, result.Status)
	assert.Equal(t, bank.ReasonInsufficientFunds, result.Reason)
	assert.Empty(t, result.TxID)

	account, err := ledger.AccountByID("ACC_1")
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(usd("100.00")))
	assert.True(t, account.AvailableBalance.Equal(usd("100.00")))
	assert.Empty(t, ledger.Transactions("ACC_1", nil, nil, 0))

	pr, err := ledger.CheckPaymentRequest(requestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentFailed, pr.Status)
}

func TestMakePayment_ExactBalance_Settles(t *testing.T) {
	// Boundary: available == amount settles and leaves a zero balance.
	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")
	requestID := authorizedRequest(t, ledger, "CUST_1", "ACC_1", payeeID, "100.00")

	result, err := ledger.MakePayment(requestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentSettled, result.Status)

	account, err := ledger.AccountByID("ACC_1")
	require.NoError(t, err)
	assert.True(t, account.AvailableBalance.IsZero())
}

func TestMakePayment_NotAuthorized_Rejected(t *testing.T) {
	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")

	receipt, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("25.00"), nil)
	require.NoError(t, err)

	_, err = ledger.MakePayment(receipt.RequestID)
	assert.True(t, bank.IsPreconditionFailed(err), "paying an Awaiting request should fail")
}

// =============================================================================
// AUTHORIZE / CANCEL / EXPIRE TESTS
// =============================================================================

func TestAuthorizePaymentRequest_OnlyFromAwaiting(t *testing.T) {
	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")

	receipt, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("10.00"), nil)
	require.NoError(t, err)

	auth, err := ledger.AuthorizePaymentRequest(receipt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentAuthorized, auth.Status)

	// Second authorize: no longer Awaiting Payment.
	_, err = ledger.AuthorizePaymentRequest(receipt.RequestID)
	assert.True(t, bank.IsPreconditionFailed(err))
}

func TestCancelPaymentRequest_Settled_Rejected(t *testing.T) {
	// GIVEN: A settled payment
	// WHEN: Canceling it
	// THEN: Rejected; status stays Settled and balances stay debited

	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")
	requestID := authorizedRequest(t, ledger, "CUST_1", "ACC_1", payeeID, "50.00")

	_, err := ledger.MakePayment(requestID)
	require.NoError(t, err)

	_, err = ledger.CancelPaymentRequest(requestID)
	assert.True(t, bank.IsPreconditionFailed(err), "settled payments cannot be canceled")

	pr, err := ledger.CheckPaymentRequest(requestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentSettled, pr.Status)

	account, err := ledger.AccountByID("ACC_1")
	require.NoError(t, err)
	assert.True(t, account.CurrentBalance.Equal(usd("50.00")), "cancel must not restore balances")
}

func TestCancelPaymentRequest_Idempotent(t *testing.T) {
	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")

	receipt, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("25.00"), nil)
	require.NoError(t, err)

	first, err := ledger.CancelPaymentRequest(receipt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentCanceled, first.Status)

	second, err := ledger.CancelPaymentRequest(receipt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentCanceled, second.Status)
}

func TestCancelPaymentRequest_FromAuthorized(t *testing.T) {
	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")
	requestID := authorizedRequest(t, ledger, "CUST_1", "ACC_1", payeeID, "25.00")

	receipt, err := ledger.CancelPaymentRequest(requestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentCanceled, receipt.Status)
}

func TestCancelPaymentRequest_FreesAwaitingSlot(t *testing.T) {
	// Canceling the in-flight request lets the customer open a new one.
	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")

	receipt, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("25.00"), nil)
	require.NoError(t, err)
	_, err = ledger.CancelPaymentRequest(receipt.RequestID)
	require.NoError(t, err)

	_, err = ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("30.00"), nil)
	assert.NoError(t, err)
}

func TestExpirePaymentRequest(t *testing.T) {
	ledger, _ := newMinimalLedger(t)
	payeeID := addPayee(t, ledger, "CUST_1")

	expiry := testNow.Add(24 * time.Hour)
	receipt, err := ledger.CreatePaymentRequest("CUST_1", "ACC_1", payeeID, usd("25.00"), &expiry)
	require.NoError(t, err)

	expired, err := ledger.ExpirePaymentRequest(receipt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentExpired, expired.Status)

	// Expire is idempotent; a settled request can never expire.
	again, err := ledger.ExpirePaymentRequest(receipt.RequestID)
	require.NoError(t, err)
	assert.Equal(t, bank.PaymentExpired, again.Status)
}
