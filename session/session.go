/*
Package session projects ledger state into the view a scripted user-side
counterpart sees: primary account status and balance, primary card status.

  The projection is explicit and enumerated - exactly these fields, typed
  end-to-end - and it either returns an updated view or a typed unavailable
  outcome. It never swallows an error and never copies fields by name.
*/
package session

import (
	"github.com/shopspring/decimal"

	"github.com/warp/bank-ledger/bank"
)

type Status string

const (
	// StatusSynced means the view reflects current ledger state.
	StatusSynced Status = "synced"
	// StatusUnavailable means no projection could be built; the view must
	// not be used.
	StatusUnavailable Status = "unavailable"
)

// AccountView is the slice of account state exposed to the user side.
type AccountView struct {
	AccountID      string          `json:"account_id"`
	Active         bool            `json:"active"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// CardView is the slice of card state exposed to the user side.
type CardView struct {
	CardID string `json:"card_id"`
	Active bool   `json:"active"`
}

// View is the user-side projection. Account and Card are nil when the
// customer has no accounts or cards; absence is explicit, never defaulted.
type View struct {
	CustomerID string       `json:"customer_id"`
	Account    *AccountView `json:"account,omitempty"`
	Card       *CardView    `json:"card,omitempty"`
}

// Result pairs a view with its outcome. Reason is set on unavailability.
type Result struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
	View   *View  `json:"view,omitempty"`
}

// Project builds the user view for the customer registered under the given
// phone number. The first account and card in the customer's back-reference
// lists are the primaries.
func Project(l *bank.Ledger, phoneNumber string) Result {
	if phoneNumber == "" {
		return Result{Status: StatusUnavailable, Reason: "no phone number on session"}
	}

	customer, err := l.CustomerByPhone(phoneNumber)
	if err != nil {
		return Result{Status: StatusUnavailable, Reason: err.Error()}
	}

	view := &View{CustomerID: customer.CustomerID}

	if len(customer.AccountIDs) > 0 {
		account, err := l.AccountByID(customer.AccountIDs[0])
		if err != nil {
			return Result{Status: StatusUnavailable, Reason: err.Error()}
		}
		view.Account = &AccountView{
			AccountID:      account.AccountID,
			Active:         account.Status == bank.AccountActive,
			CurrentBalance: account.CurrentBalance,
		}
	}

	if len(customer.CardIDs) > 0 {
		card, err := l.CardByID(customer.CardIDs[0])
		if err != nil {
			return Result{Status: StatusUnavailable, Reason: err.Error()}
		}
		view.Card = &CardView{
			CardID: card.CardID,
			Active: card.Status == bank.CardActive,
		}
	}

	return Result{Status: StatusSynced, View: view}
}
