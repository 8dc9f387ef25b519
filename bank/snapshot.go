/*
snapshot.go - The eight-collection snapshot document

PURPOSE:
  A Snapshot is the single structured document the ledger consumes and
  produces: customers, accounts, cards, statements, transactions, payees,
  payment requests, disputes. Loading a snapshot, performing no operations,
  and re-serializing must yield a byte-identical document; enum string
  values (e.g. "Awaiting Payment", "Resolved-Customer Favor") are part of
  the compatibility surface.

  Field order is fixed by the struct definitions, decimal amounts keep their
  scale, dates serialize as YYYY-MM-DD, and timestamps as RFC3339.

SEE ALSO:
  - store/jsonfile: file-backed load/save with atomic writes
  - store/sqlite: SQLite-backed persistence of the same document
*/
package bank

type Snapshot struct {
	Customers       []*Customer       `json:"customers"`
	Accounts        []*Account        `json:"accounts"`
	Cards           []*Card           `json:"cards"`
	Statements      []*Statement      `json:"statements"`
	Transactions    []*Transaction    `json:"transactions"`
	Payees          []*Payee          `json:"payees"`
	PaymentRequests []*PaymentRequest `json:"payment_requests"`
	Disputes        []*Dispute        `json:"disputes"`
}

// Statistics summarizes collection sizes, mirroring the shape operators see
// in logs and health output.
type Statistics struct {
	NumCustomers       int `json:"num_customers"`
	NumAccounts        int `json:"num_accounts"`
	NumCards           int `json:"num_cards"`
	NumStatements      int `json:"num_statements"`
	NumTransactions    int `json:"num_transactions"`
	NumPayees          int `json:"num_payees"`
	NumPaymentRequests int `json:"num_payment_requests"`
	NumDisputes        int `json:"num_disputes"`
}

func (s *Snapshot) Statistics() Statistics {
	return Statistics{
		NumCustomers:       len(s.Customers),
		NumAccounts:        len(s.Accounts),
		NumCards:           len(s.Cards),
		NumStatements:      len(s.Statements),
		NumTransactions:    len(s.Transactions),
		NumPayees:          len(s.Payees),
		NumPaymentRequests: len(s.PaymentRequests),
		NumDisputes:        len(s.Disputes),
	}
}

// LoadSnapshot materializes a snapshot into a fresh store, preserving
// collection order. Entities are cloned so the caller's snapshot stays
// detached from ledger state.
func LoadSnapshot(snap *Snapshot) *Store {
	s := NewStore()
	for _, c := range snap.Customers {
		s.InsertCustomer(c.Clone())
	}
	for _, a := range snap.Accounts {
		s.InsertAccount(a.Clone())
	}
	for _, c := range snap.Cards {
		s.InsertCard(c.Clone())
	}
	for _, st := range snap.Statements {
		s.InsertStatement(st.Clone())
	}
	for _, t := range snap.Transactions {
		s.InsertTransaction(t.Clone())
	}
	for _, p := range snap.Payees {
		s.InsertPayee(p.Clone())
	}
	for _, r := range snap.PaymentRequests {
		s.InsertPaymentRequest(r.Clone())
	}
	for _, d := range snap.Disputes {
		s.InsertDispute(d.Clone())
	}
	return s
}

// Snapshot serializes the store back to the document shape, in insertion
// order, cloning every entity.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		Customers:       []*Customer{},
		Accounts:        []*Account{},
		Cards:           []*Card{},
		Statements:      []*Statement{},
		Transactions:    []*Transaction{},
		Payees:          []*Payee{},
		PaymentRequests: []*PaymentRequest{},
		Disputes:        []*Dispute{},
	}
	for _, c := range s.customers.all() {
		snap.Customers = append(snap.Customers, c.Clone())
	}
	for _, a := range s.accounts.all() {
		snap.Accounts = append(snap.Accounts, a.Clone())
	}
	for _, c := range s.cards.all() {
		snap.Cards = append(snap.Cards, c.Clone())
	}
	for _, st := range s.statements.all() {
		snap.Statements = append(snap.Statements, st.Clone())
	}
	for _, t := range s.transactions.all() {
		snap.Transactions = append(snap.Transactions, t.Clone())
	}
	for _, p := range s.payees.all() {
		snap.Payees = append(snap.Payees, p.Clone())
	}
	for _, r := range s.paymentRequests.all() {
		snap.PaymentRequests = append(snap.PaymentRequests, r.Clone())
	}
	for _, d := range s.disputes.all() {
		snap.Disputes = append(snap.Disputes, d.Clone())
	}
	return snap
}
