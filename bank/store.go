/*
store.go - In-memory entity store

PURPOSE:
  Holds the eight entity collections keyed by identifier, preserving
  insertion order so snapshots serialize deterministically. The store does
  lookup, predicate scans, insert, and replace-by-id. It performs NO
  cross-entity validation; that is the Ledger's responsibility.

CONTRACT:
  - Get fails with a NotFoundError carrying the kind and id
  - Insert appends; Update replaces by id
  - Entities are never physically deleted

CONCURRENCY:
  The store itself is not locked; the Ledger serializes access (see
  ledger.go). Anything handed back to callers is a clone.

SEE ALSO:
  - snapshot.go: loading and dumping the full entity set
  - lookup.go: the read operations built on these scans
*/
package bank

// collection is an ordered, id-indexed set of entities of one kind.
type collection[E interface{ EntityID() string }] struct {
	kind  EntityKind
	items []E
	index map[string]int
}

func newCollection[E interface{ EntityID() string }](kind EntityKind) *collection[E] {
	return &collection[E]{kind: kind, index: make(map[string]int)}
}

func (c *collection[E]) get(id string) (E, error) {
	if i, ok := c.index[id]; ok {
		return c.items[i], nil
	}
	var zero E
	return zero, notFound(c.kind, id)
}

func (c *collection[E]) insert(e E) {
	c.index[e.EntityID()] = len(c.items)
	c.items = append(c.items, e)
}

func (c *collection[E]) update(e E) error {
	i, ok := c.index[e.EntityID()]
	if !ok {
		return notFound(c.kind, e.EntityID())
	}
	c.items[i] = e
	return nil
}

func (c *collection[E]) list(keep func(E) bool) []E {
	var out []E
	for _, e := range c.items {
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (c *collection[E]) all() []E {
	return append([]E{}, c.items...)
}

// =============================================================================
// STORE
// =============================================================================

// Store is the single source of truth for entity state. Only the Ledger
// mutates it.
type Store struct {
	customers       *collection[*Customer]
	accounts        *collection[*Account]
	cards           *collection[*Card]
	statements      *collection[*Statement]
	transactions    *collection[*Transaction]
	payees          *collection[*Payee]
	paymentRequests *collection[*PaymentRequest]
	disputes        *collection[*Dispute]
}

func NewStore() *Store {
	return &Store{
		customers:       newCollection[*Customer](KindCustomer),
		accounts:        newCollection[*Account](KindAccount),
		cards:           newCollection[*Card](KindCard),
		statements:      newCollection[*Statement](KindStatement),
		transactions:    newCollection[*Transaction](KindTransaction),
		payees:          newCollection[*Payee](KindPayee),
		paymentRequests: newCollection[*PaymentRequest](KindPaymentRequest),
		disputes:        newCollection[*Dispute](KindDispute),
	}
}

// Lookup by id. Each fails with a NotFoundError carrying kind and id.

func (s *Store) Customer(id string) (*Customer, error)             { return s.customers.get(id) }
func (s *Store) Account(id string) (*Account, error)               { return s.accounts.get(id) }
func (s *Store) Card(id string) (*Card, error)                     { return s.cards.get(id) }
func (s *Store) Statement(id string) (*Statement, error)           { return s.statements.get(id) }
func (s *Store) Transaction(id string) (*Transaction, error)       { return s.transactions.get(id) }
func (s *Store) Payee(id string) (*Payee, error)                   { return s.payees.get(id) }
func (s *Store) PaymentRequest(id string) (*PaymentRequest, error) { return s.paymentRequests.get(id) }
func (s *Store) Dispute(id string) (*Dispute, error)               { return s.disputes.get(id) }

// Inserts. Append-ordered; back-reference maintenance is the Ledger's job.

func (s *Store) InsertCustomer(c *Customer)             { s.customers.insert(c) }
func (s *Store) InsertAccount(a *Account)               { s.accounts.insert(a) }
func (s *Store) InsertCard(c *Card)                     { s.cards.insert(c) }
func (s *Store) InsertStatement(st *Statement)          { s.statements.insert(st) }
func (s *Store) InsertTransaction(t *Transaction)       { s.transactions.insert(t) }
func (s *Store) InsertPayee(p *Payee)                   { s.payees.insert(p) }
func (s *Store) InsertPaymentRequest(r *PaymentRequest) { s.paymentRequests.insert(r) }
func (s *Store) InsertDispute(d *Dispute)               { s.disputes.insert(d) }

// Replace-by-id. Used when an operation commits a fully built mutation set.

func (s *Store) UpdateAccount(a *Account) error               { return s.accounts.update(a) }
func (s *Store) UpdateCard(c *Card) error                     { return s.cards.update(c) }
func (s *Store) UpdateTransaction(t *Transaction) error       { return s.transactions.update(t) }
func (s *Store) UpdatePaymentRequest(r *PaymentRequest) error { return s.paymentRequests.update(r) }

// Predicate scans.

func (s *Store) FindCustomers(keep func(*Customer) bool) []*Customer {
	return s.customers.list(keep)
}

func (s *Store) FindStatements(keep func(*Statement) bool) []*Statement {
	return s.statements.list(keep)
}

func (s *Store) FindTransactions(keep func(*Transaction) bool) []*Transaction {
	return s.transactions.list(keep)
}

func (s *Store) FindPaymentRequests(keep func(*PaymentRequest) bool) []*PaymentRequest {
	return s.paymentRequests.list(keep)
}
