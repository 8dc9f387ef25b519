/*
ledger.go - The operation layer

PURPOSE:
  Ledger is the only component permitted to mutate the Store. Every
  operation is a function from (current state, validated arguments) to
  (new state, typed result or typed failure).

CRITICAL INVARIANTS:
  1. VALIDATE THEN MUTATE: all precondition checks complete before the
     first mutation; once an operation starts mutating, it cannot fail
  2. ATOMIC BACK-REFERENCES: the parent's id list is appended in the same
     operation that creates the child entity
  3. SINGLE WRITER: one mutex serializes every operation, preserving the
     "at most one Awaiting Payment request per customer" and "balance never
     goes negative from a covered payment" invariants under concurrency

  Reads take the same lock in shared mode and hand back clones; they never
  mutate.

SEE ALSO:
  - lookup.go: read operations
  - payee.go, payment.go, card.go, dispute.go: write operations
*/
package bank

import "sync"

type Ledger struct {
	mu    sync.RWMutex
	store *Store
	clock Clock
	ids   *IDGenerator
}

// NewLedger wraps a store. A nil clock defaults to the system clock.
func NewLedger(store *Store, clock Clock) *Ledger {
	if clock == nil {
		clock = SystemClock()
	}
	l := &Ledger{
		store: store,
		clock: clock,
		ids:   NewIDGenerator(),
	}
	l.reserveExistingIDs()
	return l
}

// reserveExistingIDs protects loaded snapshot ids from token collision.
func (l *Ledger) reserveExistingIDs() {
	for _, p := range l.store.payees.all() {
		l.ids.Reserve(p.PayeeID)
	}
	for _, r := range l.store.paymentRequests.all() {
		l.ids.Reserve(r.RequestID)
	}
	for _, t := range l.store.transactions.all() {
		l.ids.Reserve(t.TxID)
	}
	for _, d := range l.store.disputes.all() {
		l.ids.Reserve(d.DisputeID)
	}
}

// Snapshot serializes current state under the read lock.
func (l *Ledger) Snapshot() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Snapshot()
}

// Statistics reports collection sizes.
func (l *Ledger) Statistics() Statistics {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Snapshot().Statistics()
}

// assertOwnsAccount fails with a scoped NotFoundError when the account is
// not in the customer's back-reference list. A missing reference is treated
// the same as a missing entity so callers cannot probe other customers'
// accounts.
func (l *Ledger) assertOwnsAccount(c *Customer, accountID string) error {
	if !c.OwnsAccount(accountID) {
		return &NotFoundError{Kind: KindAccount, ID: accountID, Scope: "customer " + c.CustomerID}
	}
	return nil
}

func (l *Ledger) assertOwnsPayee(c *Customer, payeeID string) error {
	if !c.OwnsPayee(payeeID) {
		return &NotFoundError{Kind: KindPayee, ID: payeeID, Scope: "customer " + c.CustomerID}
	}
	return nil
}
