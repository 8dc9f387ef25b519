/*
lookup.go - Read-only operations

  All reads take the shared lock and return clones. Phone lookup fails with
  NotFound when absent; the name+DOB search returns an empty slice rather
  than failing.
*/
package bank

import (
	"sort"
	"strings"
	"time"
)

const (
	// DefaultStatementLimit caps get_statements when the caller passes no limit.
	DefaultStatementLimit = 12
	// DefaultTransactionLimit caps get_transactions when the caller passes no limit.
	DefaultTransactionLimit = 100
)

// CustomerByID retrieves a customer by id.
func (l *Ledger) CustomerByID(customerID string) (*Customer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, err := l.store.Customer(customerID)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// CustomerByPhone retrieves a customer by exact primary phone number.
func (l *Ledger) CustomerByPhone(phoneNumber string) (*Customer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	matches := l.store.FindCustomers(func(c *Customer) bool {
		return c.PhoneNumber == phoneNumber
	})
	if len(matches) == 0 {
		return nil, &NotFoundError{Kind: KindCustomer, ID: phoneNumber, Scope: "phone lookup"}
	}
	return matches[0].Clone(), nil
}

// CustomersByNameAndDOB searches by case-insensitive full name and exact DOB
// string (YYYY-MM-DD). Zero matches is an empty result, not an error.
func (l *Ledger) CustomersByNameAndDOB(fullName, dob string) []*Customer {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*Customer
	for _, c := range l.store.FindCustomers(nil) {
		if strings.EqualFold(c.FullName, fullName) && c.DateOfBirth == dob {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Accounts lists the accounts owned by the customer, in back-reference order.
func (l *Ledger) Accounts(customerID string) ([]*Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, err := l.store.Customer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*Account, 0, len(c.AccountIDs))
	for _, id := range c.AccountIDs {
		a, err := l.store.Account(id)
		if err != nil {
			return nil, err
		}
		out = append(out, a.Clone())
	}
	return out, nil
}

// AccountByID retrieves one account.
func (l *Ledger) AccountByID(accountID string) (*Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, err := l.store.Account(accountID)
	if err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// CardByID retrieves one card.
func (l *Ledger) CardByID(cardID string) (*Card, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, err := l.store.Card(cardID)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// Statements returns recent statements for an account, newest issue date
// first, truncated to limit (DefaultStatementLimit when limit <= 0).
func (l *Ledger) Statements(accountID string, limit int) []*Statement {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultStatementLimit
	}
	items := l.store.FindStatements(func(s *Statement) bool {
		return s.AccountID == accountID
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].IssueDate.After(items[j].IssueDate.Time)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]*Statement, len(items))
	for i, s := range items {
		out[i] = s.Clone()
	}
	return out
}

// Transactions returns transactions for an account filtered by inclusive
// time bounds when given, newest first, truncated to limit
// (DefaultTransactionLimit when limit <= 0).
func (l *Ledger) Transactions(accountID string, startTime, endTime *time.Time, limit int) []*Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	items := l.store.FindTransactions(func(t *Transaction) bool {
		if t.AccountID != accountID {
			return false
		}
		if startTime != nil && t.Timestamp.Before(*startTime) {
			return false
		}
		if endTime != nil && t.Timestamp.After(*endTime) {
			return false
		}
		return true
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]*Transaction, len(items))
	for i, t := range items {
		out[i] = t.Clone()
	}
	return out
}

// CheckPaymentRequest returns the current state of a payment request.
func (l *Ledger) CheckPaymentRequest(requestID string) (*PaymentRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r, err := l.store.PaymentRequest(requestID)
	if err != nil {
		return nil, err
	}
	return r.Clone(), nil
}

// DisputeByID returns dispute details.
func (l *Ledger) DisputeByID(disputeID string) (*Dispute, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	d, err := l.store.Dispute(disputeID)
	if err != nil {
		return nil, err
	}
	return d.Clone(), nil
}
