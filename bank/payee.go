package bank

import "log"

// PayeeReceipt is the result of AddPayee.
type PayeeReceipt struct {
	PayeeID  string `json:"payee_id"`
	Verified bool   `json:"verified"`
}

// AddPayee registers a bill-pay payee for the customer. New payees are
// auto-verified in this simulated environment. The payee insert and the
// customer back-reference append happen in the same operation.
func (l *Ledger) AddPayee(customerID, name, deliverType string) (*PayeeReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.store.Customer(customerID)
	if err != nil {
		return nil, err
	}
	dt := DeliverType(deliverType)
	if !dt.Valid() {
		return nil, &InvalidArgumentError{
			Argument: "deliver_type",
			Reason:   "must be 'electronic' or 'check'",
		}
	}

	payeeID := l.ids.Token("PY")
	l.store.InsertPayee(&Payee{
		PayeeID:     payeeID,
		CustomerID:  customerID,
		Name:        name,
		DeliverType: dt,
		Verified:    true,
	})
	c.PayeeIDs = append(c.PayeeIDs, payeeID)

	log.Printf("payee added: %s for customer %s", payeeID, customerID)
	return &PayeeReceipt{PayeeID: payeeID, Verified: true}, nil
}
