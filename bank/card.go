package bank

import "log"

// CardReceipt reports a card's status after a lock/unlock call.
type CardReceipt struct {
	CardID string     `json:"card_id"`
	Status CardStatus `json:"status"`
}

// LockCard transitions Active to Locked. Idempotent: an already-Locked card
// returns its current status with no mutation and no log side effect. The
// reason is recorded in the operational log only, never on the entity.
func (l *Ledger) LockCard(cardID, reason string) (*CardReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	card, err := l.store.Card(cardID)
	if err != nil {
		return nil, err
	}
	if card.Status == CardLocked {
		return &CardReceipt{CardID: cardID, Status: card.Status}, nil
	}
	card.Status = CardLocked
	if reason == "" {
		reason = "unspecified"
	}
	log.Printf("card %s locked, reason: %s", cardID, reason)
	return &CardReceipt{CardID: cardID, Status: card.Status}, nil
}

// UnlockCard transitions Locked to Active. Idempotent when not locked.
// Policy-level authorization is the caller's responsibility.
func (l *Ledger) UnlockCard(cardID string) (*CardReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	card, err := l.store.Card(cardID)
	if err != nil {
		return nil, err
	}
	if card.Status != CardLocked {
		return &CardReceipt{CardID: cardID, Status: card.Status}, nil
	}
	card.Status = CardActive
	log.Printf("card %s unlocked", cardID)
	return &CardReceipt{CardID: cardID, Status: card.Status}, nil
}
