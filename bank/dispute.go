package bank

import "log"

// DisputeReceipt is the result of FileDispute.
type DisputeReceipt struct {
	DisputeID string        `json:"dispute_id"`
	Status    DisputeStatus `json:"status"`
}

// FileDispute opens a dispute against a transaction on the named account.
// The transaction must exist AND belong to that account; a mismatched pair
// fails with a NotFoundError scoped to the pair so callers cannot dispute
// another account's transactions. The transaction is marked Disputed
// unconditionally, whatever status it held.
func (l *Ledger) FileDispute(accountID, txID, reasonCode string) (*DisputeReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.Account(accountID); err != nil {
		return nil, err
	}
	var tx *Transaction
	for _, t := range l.store.FindTransactions(func(t *Transaction) bool {
		return t.TxID == txID && t.AccountID == accountID
	}) {
		tx = t
		break
	}
	if tx == nil {
		return nil, &NotFoundError{Kind: KindTransaction, ID: txID, Scope: "account " + accountID}
	}

	tx.Status = TxDisputed

	disputeID := l.ids.Token("DP")
	l.store.InsertDispute(&Dispute{
		DisputeID:  disputeID,
		AccountID:  accountID,
		TxID:       txID,
		ReasonCode: reasonCode,
		Status:     DisputeSubmitted,
		OpenedAt:   l.clock.Now(),
	})

	log.Printf("dispute filed %s for tx %s", disputeID, txID)
	return &DisputeReceipt{DisputeID: disputeID, Status: DisputeSubmitted}, nil
}
