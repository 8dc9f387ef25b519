/*
Package bank implements the core ledger for a simulated retail-banking
back end.

PURPOSE:
  This package contains the entity model and the operations that mutate it
  under invariants: balance consistency, ownership checks, status-transition
  legality, the single in-flight payment request rule, and idempotency of
  terminal operations. Policy text, conversation driving, and durable
  persistence live outside this package; callers hand the ledger validated
  arguments and receive typed results or typed failures.

KEY CONCEPTS IN THIS FILE (types.go):
  - Entities: Customer, Account, Card, Statement, Transaction, Payee,
    PaymentRequest, Dispute
  - Status enums: closed sets of string values that are part of the
    snapshot compatibility surface and must round-trip byte-for-byte
  - Date: a calendar date that serializes as YYYY-MM-DD

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all USD amounts, never float64
  2. Closed enums: every status is a typed string with a Valid() check so
     transition switches stay exhaustive
  3. Audit: no entity is ever deleted; terminal states are retained

SEE ALSO:
  - store.go: entity collections and lookups
  - ledger.go: the operation layer that enforces invariants
  - snapshot.go: the eight-collection snapshot document
*/
package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENTITY KINDS - Used for id generation and NotFound errors
// =============================================================================

type EntityKind string

const (
	KindCustomer       EntityKind = "customer"
	KindAccount        EntityKind = "account"
	KindCard           EntityKind = "card"
	KindStatement      EntityKind = "statement"
	KindTransaction    EntityKind = "transaction"
	KindPayee          EntityKind = "payee"
	KindPaymentRequest EntityKind = "payment request"
	KindDispute        EntityKind = "dispute"
	KindParkedTask     EntityKind = "parked task"
)

// =============================================================================
// MONEY - Two-decimal USD semantics on top of decimal.Decimal
// =============================================================================

// MustUSD parses an amount string like "50.00". Intended for fixtures and
// tests; returns zero on parse failure.
func MustUSD(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// DATE - Calendar date serialized as YYYY-MM-DD
// =============================================================================

type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string { return d.Format("2006-01-02") }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 {
		return &InvalidArgumentError{Argument: "date", Reason: "malformed date literal"}
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CUSTOMER
// =============================================================================

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// Customer owns accounts, cards, statements, payment requests, disputes and
// payees via back-reference id lists. The ledger keeps both sides consistent:
// the id is appended in the same operation that creates the child entity.
type Customer struct {
	CustomerID        string    `json:"customer_id"`
	FullName          string    `json:"full_name"`
	DateOfBirth       string    `json:"date_of_birth"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phone_number"`
	Address           Address   `json:"address"`
	CreatedAt         time.Time `json:"created_at"`
	AccountIDs        []string  `json:"account_ids"`
	CardIDs           []string  `json:"card_ids"`
	StatementIDs      []string  `json:"statement_ids"`
	PaymentRequestIDs []string  `json:"payment_request_ids"`
	DisputeIDs        []string  `json:"dispute_ids"`
	PayeeIDs          []string  `json:"payee_ids"`
}

func (c *Customer) EntityID() string { return c.CustomerID }

func (c *Customer) OwnsAccount(accountID string) bool { return contains(c.AccountIDs, accountID) }
func (c *Customer) OwnsPayee(payeeID string) bool     { return contains(c.PayeeIDs, payeeID) }

// Clone returns a deep copy so read operations never leak mutable state.
func (c *Customer) Clone() *Customer {
	out := *c
	out.AccountIDs = cloneIDs(c.AccountIDs)
	out.CardIDs = cloneIDs(c.CardIDs)
	out.StatementIDs = cloneIDs(c.StatementIDs)
	out.PaymentRequestIDs = cloneIDs(c.PaymentRequestIDs)
	out.DisputeIDs = cloneIDs(c.DisputeIDs)
	out.PayeeIDs = cloneIDs(c.PayeeIDs)
	return &out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	return append([]string{}, ids...)
}

// =============================================================================
// ACCOUNT
// =============================================================================

type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
)

type AccountStatus string

const (
	AccountActive AccountStatus = "Active"
	AccountFrozen AccountStatus = "Frozen"
	AccountClosed AccountStatus = "Closed"
)

// Account carries both a ledger balance and an available balance. The model
// does not track holds explicitly; debits decrement both in the same call.
type Account struct {
	AccountID        string          `json:"account_id"`
	CustomerID       string          `json:"customer_id"`
	Type             AccountType     `json:"type"`
	MaskedNumber     string          `json:"masked_number"`
	Status           AccountStatus   `json:"status"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
}

func (a *Account) EntityID() string { return a.AccountID }

func (a *Account) Clone() *Account {
	out := *a
	return &out
}

// =============================================================================
// CARD
// =============================================================================

type CardType string

const (
	CardDebit  CardType = "debit"
	CardCredit CardType = "credit"
)

type CardStatus string

const (
	CardActive CardStatus = "Active"
	CardLocked CardStatus = "Locked"
)

type Card struct {
	CardID    string     `json:"card_id"`
	AccountID string     `json:"account_id"`
	Type      CardType   `json:"type"`
	Last4     string     `json:"last4"`
	Status    CardStatus `json:"status"`
}

func (c *Card) EntityID() string { return c.CardID }

func (c *Card) Clone() *Card {
	out := *c
	return &out
}

// =============================================================================
// STATEMENT
// =============================================================================

type StatementStatus string

const (
	StatementIssued  StatementStatus = "Issued"
	StatementOverdue StatementStatus = "Overdue"
	StatementPaid    StatementStatus = "Paid"
)

type Statement struct {
	StatementID string           `json:"statement_id"`
	AccountID   string           `json:"account_id"`
	PeriodStart Date             `json:"period_start"`
	PeriodEnd   Date             `json:"period_end"`
	IssueDate   Date             `json:"issue_date"`
	TotalDue    decimal.Decimal  `json:"total_due"`
	MinimumDue  *decimal.Decimal `json:"minimum_due,omitempty"`
	DueDate     *Date            `json:"due_date,omitempty"`
	Status      StatementStatus  `json:"status"`
}

func (s *Statement) EntityID() string { return s.StatementID }

func (s *Statement) Clone() *Statement {
	out := *s
	if s.MinimumDue != nil {
		v := *s.MinimumDue
		out.MinimumDue = &v
	}
	if s.DueDate != nil {
		v := *s.DueDate
		out.DueDate = &v
	}
	return &out
}

// =============================================================================
// TRANSACTION
// =============================================================================

type TransactionType string

const (
	TxDeposit       TransactionType = "deposit"
	TxWithdrawal    TransactionType = "withdrawal"
	TxTransferOut   TransactionType = "transfer_out"
	TxBillPay       TransactionType = "billpay"
	TxCardPurchase  TransactionType = "card_purchase"
	TxATMWithdrawal TransactionType = "atm_withdrawal"
	TxACHDebit      TransactionType = "ach_debit"
	TxACHCredit     TransactionType = "ach_credit"
)

type TransactionStatus string

const (
	TxPending  TransactionStatus = "Pending"
	TxPosted   TransactionStatus = "Posted"
	TxReversed TransactionStatus = "Reversed"
	TxDisputed TransactionStatus = "Disputed"
)

// Transaction is immutable once created except for status transitions driven
// by dispute filing or reversal.
type Transaction struct {
	TxID            string            `json:"tx_id"`
	AccountID       string            `json:"account_id"`
	Timestamp       time.Time         `json:"timestamp"`
	Type            TransactionType   `json:"type"`
	Amount          decimal.Decimal   `json:"amount"`
	MerchantOrPayee *string           `json:"merchant_or_payee,omitempty"`
	Status          TransactionStatus `json:"status"`
	Reference       *string           `json:"reference,omitempty"`
}

func (t *Transaction) EntityID() string { return t.TxID }

func (t *Transaction) Clone() *Transaction {
	out := *t
	if t.MerchantOrPayee != nil {
		v := *t.MerchantOrPayee
		out.MerchantOrPayee = &v
	}
	if t.Reference != nil {
		v := *t.Reference
		out.Reference = &v
	}
	return &out
}

// =============================================================================
// PAYEE
// =============================================================================

type DeliverType string

const (
	DeliverElectronic DeliverType = "electronic"
	DeliverCheck      DeliverType = "check"
)

func (d DeliverType) Valid() bool {
	switch d {
	case DeliverElectronic, DeliverCheck:
		return true
	}
	return false
}

type Payee struct {
	PayeeID     string      `json:"payee_id"`
	CustomerID  string      `json:"customer_id"`
	Name        string      `json:"name"`
	DeliverType DeliverType `json:"deliver_type"`
	Verified    bool        `json:"verified"`
}

func (p *Payee) EntityID() string { return p.PayeeID }

func (p *Payee) Clone() *Payee {
	out := *p
	return &out
}

// =============================================================================
// PAYMENT REQUEST
// =============================================================================

type RequestOrigin string

const (
	OriginAgent   RequestOrigin = "agent"
	OriginUser    RequestOrigin = "user"
	OriginAutopay RequestOrigin = "autopay"
)

type PaymentRequestStatus string

const (
	PaymentAwaiting   PaymentRequestStatus = "Awaiting Payment"
	PaymentAuthorized PaymentRequestStatus = "Authorized"
	PaymentSettled    PaymentRequestStatus = "Settled"
	PaymentCanceled   PaymentRequestStatus = "Canceled"
	PaymentExpired    PaymentRequestStatus = "Expired"
	PaymentFailed     PaymentRequestStatus = "Failed"
)

// Terminal reports whether the status is an end-state retained for audit.
func (s PaymentRequestStatus) Terminal() bool {
	switch s {
	case PaymentSettled, PaymentCanceled, PaymentExpired, PaymentFailed:
		return true
	case PaymentAwaiting, PaymentAuthorized:
		return false
	}
	return false
}

type PaymentRequest struct {
	RequestID     string               `json:"request_id"`
	Origin        RequestOrigin        `json:"origin"`
	CustomerID    string               `json:"customer_id"`
	FromAccountID string               `json:"from_account_id"`
	ToPayeeID     string               `json:"to_payee_id"`
	Amount        decimal.Decimal      `json:"amount"`
	Status        PaymentRequestStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	ExpiresAt     *time.Time           `json:"expires_at,omitempty"`
}

func (r *PaymentRequest) EntityID() string { return r.RequestID }

func (r *PaymentRequest) Clone() *PaymentRequest {
	out := *r
	if r.ExpiresAt != nil {
		v := *r.ExpiresAt
		out.ExpiresAt = &v
	}
	return &out
}

// =============================================================================
// DISPUTE
// =============================================================================

type DisputeStatus string

const (
	DisputeDraft                 DisputeStatus = "Draft"
	DisputeSubmitted             DisputeStatus = "Submitted"
	DisputeUnderReview           DisputeStatus = "Under Review"
	DisputeResolvedCustomerFavor DisputeStatus = "Resolved-Customer Favor"
	DisputeResolvedMerchantFavor DisputeStatus = "Resolved-Merchant Favor"
	DisputeClosed                DisputeStatus = "Closed"
)

type Dispute struct {
	DisputeID  string        `json:"dispute_id"`
	AccountID  string        `json:"account_id"`
	TxID       string        `json:"tx_id"`
	ReasonCode string        `json:"reason_code"`
	Status     DisputeStatus `json:"status"`
	OpenedAt   time.Time     `json:"opened_at"`
}

func (d *Dispute) EntityID() string { return d.DisputeID }

func (d *Dispute) Clone() *Dispute {
	out := *d
	return &out
}
