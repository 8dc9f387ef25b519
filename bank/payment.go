/*
payment.go - Payment-request state machine

STATES AND TRANSITIONS (initial: Awaiting Payment; terminals: Settled,
Canceled, Expired, Failed):

  Awaiting Payment --authorize--------------------> Authorized
  Authorized       --make_payment (funds ok)------> Settled
  Authorized       --make_payment (short funds)---> Failed
  Awaiting Payment | Authorized | Failed | Canceled --cancel--> Canceled
  any non-Settled  --expire (external trigger)----> Expired
  Settled          --cancel--> rejected: cannot cancel a settled payment

  MakePayment is the single place balances change as a result of bill pay:
  it debits available and current balance by the same magnitude in the same
  call and appends a Posted billpay transaction referencing the request.

  Insufficient funds is a reported outcome, not an error: the caller
  receives status Failed with reason "insufficient_funds".
*/
package bank

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// ReasonInsufficientFunds is the business outcome reason carried on an
// unfunded settlement.
const ReasonInsufficientFunds = "insufficient_funds"

// PaymentReceipt reports a request's id and status after a transition.
type PaymentReceipt struct {
	RequestID string               `json:"request_id"`
	Status    PaymentRequestStatus `json:"status"`
}

// PaymentResult is the outcome of MakePayment. On settlement TxID names the
// new billpay transaction; on a Failed outcome Reason is set instead.
type PaymentResult struct {
	RequestID string               `json:"request_id"`
	Status    PaymentRequestStatus `json:"status"`
	TxID      string               `json:"tx_id,omitempty"`
	Reason    string               `json:"reason,omitempty"`
}

// CreatePaymentRequest opens a bill-pay request in Awaiting Payment.
//
// Preconditions, all checked before any mutation:
//   - customer owns the source account and the payee (back-reference check)
//   - source account status is Active
//   - amount > 0
//   - no other request for this customer is currently Awaiting Payment
func (l *Ledger) CreatePaymentRequest(customerID, fromAccountID, toPayeeID string, amount decimal.Decimal, expiresAt *time.Time) (*PaymentReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.store.Customer(customerID)
	if err != nil {
		return nil, err
	}
	if err := l.assertOwnsAccount(c, fromAccountID); err != nil {
		return nil, err
	}
	if err := l.assertOwnsPayee(c, toPayeeID); err != nil {
		return nil, err
	}
	acct, err := l.store.Account(fromAccountID)
	if err != nil {
		return nil, err
	}
	if acct.Status != AccountActive {
		return nil, &PreconditionError{
			Entity:  "account " + fromAccountID,
			Current: string(acct.Status),
			Message: "source account must be Active",
		}
	}
	if !amount.IsPositive() {
		return nil, &InvalidArgumentError{Argument: "amount", Reason: "must be positive"}
	}

	// One in-flight request per customer.
	awaiting := l.store.FindPaymentRequests(func(r *PaymentRequest) bool {
		return r.CustomerID == customerID && r.Status == PaymentAwaiting
	})
	if len(awaiting) > 0 {
		return nil, &PreconditionError{
			Entity:  "customer " + customerID,
			Current: string(PaymentAwaiting),
			Message: "another payment request is already Awaiting Payment for this customer",
		}
	}

	requestID := l.ids.Token("PR")
	l.store.InsertPaymentRequest(&PaymentRequest{
		RequestID:     requestID,
		Origin:        OriginAgent,
		CustomerID:    customerID,
		FromAccountID: fromAccountID,
		ToPayeeID:     toPayeeID,
		Amount:        amount,
		Status:        PaymentAwaiting,
		CreatedAt:     l.clock.Now(),
		ExpiresAt:     expiresAt,
	})
	c.PaymentRequestIDs = append(c.PaymentRequestIDs, requestID)

	log.Printf("payment request created %s amount $%s", requestID, amount.StringFixed(2))
	return &PaymentReceipt{RequestID: requestID, Status: PaymentAwaiting}, nil
}

// AuthorizePaymentRequest moves Awaiting Payment to Authorized.
func (l *Ledger) AuthorizePaymentRequest(requestID string) (*PaymentReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, err := l.store.PaymentRequest(requestID)
	if err != nil {
		return nil, err
	}
	switch r.Status {
	case PaymentAwaiting:
		r.Status = PaymentAuthorized
		log.Printf("payment request %s authorized", requestID)
		return &PaymentReceipt{RequestID: requestID, Status: r.Status}, nil
	case PaymentAuthorized, PaymentSettled, PaymentCanceled, PaymentExpired, PaymentFailed:
		return nil, &PreconditionError{
			Entity:  "payment request " + requestID,
			Current: string(r.Status),
			Message: "request is not Awaiting Payment",
		}
	}
	return nil, &PreconditionError{
		Entity:  "payment request " + requestID,
		Current: string(r.Status),
		Message: "unknown request status",
	}
}

// MakePayment settles an Authorized request. Total on (Authorized request,
// account): it always ends in Settled-with-transaction or Failed-with-reason,
// never stays Authorized.
func (l *Ledger) MakePayment(requestID string) (*PaymentResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, err := l.store.PaymentRequest(requestID)
	if err != nil {
		return nil, err
	}
	if r.Status != PaymentAuthorized {
		return nil, &PreconditionError{
			Entity:  "payment request " + requestID,
			Current: string(r.Status),
			Message: "request must be Authorized before payment",
		}
	}
	acct, err := l.store.Account(r.FromAccountID)
	if err != nil {
		return nil, err
	}
	payee, err := l.store.Payee(r.ToPayeeID)
	if err != nil {
		return nil, err
	}

	if acct.AvailableBalance.LessThan(r.Amount) {
		r.Status = PaymentFailed
		log.Printf("payment %s failed: insufficient funds", requestID)
		return &PaymentResult{
			RequestID: requestID,
			Status:    PaymentFailed,
			Reason:    ReasonInsufficientFunds,
		}, nil
	}

	// Everything is validated; build the full mutation set, then commit.
	txID := l.ids.Token("TX")
	merchant := payee.Name
	reference := requestID
	tx := &Transaction{
		TxID:            txID,
		AccountID:       acct.AccountID,
		Timestamp:       l.clock.Now(),
		Type:            TxBillPay,
		Amount:          r.Amount.Abs().Neg(),
		MerchantOrPayee: &merchant,
		Status:          TxPosted,
		Reference:       &reference,
	}

	acct.AvailableBalance = acct.AvailableBalance.Sub(r.Amount)
	acct.CurrentBalance = acct.CurrentBalance.Sub(r.Amount)
	l.store.InsertTransaction(tx)
	r.Status = PaymentSettled

	log.Printf("payment %s settled, tx %s", requestID, txID)
	return &PaymentResult{RequestID: requestID, Status: PaymentSettled, TxID: txID}, nil
}

// CancelPaymentRequest cancels a request if not settled. Idempotent: a
// request already in Canceled, Failed or Expired keeps its status and the
// store is untouched. Canceling a Settled request is rejected.
func (l *Ledger) CancelPaymentRequest(requestID string) (*PaymentReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, err := l.store.PaymentRequest(requestID)
	if err != nil {
		return nil, err
	}
	switch r.Status {
	case PaymentSettled:
		return nil, &PreconditionError{
			Entity:  "payment request " + requestID,
			Current: string(PaymentSettled),
			Message: "cannot cancel a settled payment",
		}
	case PaymentCanceled, PaymentFailed, PaymentExpired:
		return &PaymentReceipt{RequestID: requestID, Status: r.Status}, nil
	case PaymentAwaiting, PaymentAuthorized:
		r.Status = PaymentCanceled
		log.Printf("payment request %s canceled", requestID)
		return &PaymentReceipt{RequestID: requestID, Status: PaymentCanceled}, nil
	}
	return nil, &PreconditionError{
		Entity:  "payment request " + requestID,
		Current: string(r.Status),
		Message: "unknown request status",
	}
}

// ExpirePaymentRequest marks a non-Settled request Expired. Part of the
// declared state space; driven by an external trigger rather than the
// operation set exercised in conversation.
func (l *Ledger) ExpirePaymentRequest(requestID string) (*PaymentReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, err := l.store.PaymentRequest(requestID)
	if err != nil {
		return nil, err
	}
	switch r.Status {
	case PaymentSettled:
		return nil, &PreconditionError{
			Entity:  "payment request " + requestID,
			Current: string(PaymentSettled),
			Message: "cannot expire a settled payment",
		}
	case PaymentExpired:
		return &PaymentReceipt{RequestID: requestID, Status: r.Status}, nil
	case PaymentAwaiting, PaymentAuthorized, PaymentCanceled, PaymentFailed:
		r.Status = PaymentExpired
		log.Printf("payment request %s expired", requestID)
		return &PaymentReceipt{RequestID: requestID, Status: PaymentExpired}, nil
	}
	return nil, &PreconditionError{
		Entity:  "payment request " + requestID,
		Current: string(r.Status),
		Message: "unknown request status",
	}
}
