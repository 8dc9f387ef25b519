/*
Package scenario builds seeded snapshots for demos and tests.

PURPOSE:

	Each scenario is a self-contained entity set built with the sequential
	id generator, so ids are deterministic across runs (CUST_1, ACC_1,
	TX_1, ...). Scenarios never touch a live ledger; they return a
	Snapshot the caller loads.

AVAILABLE SCENARIOS:

	retail:   two customers with checking/savings/credit accounts, cards,
	          statements, a posted transaction history, and a verified payee
	minimal:  one customer, one active checking account, one card

USAGE:

	store := bank.LoadSnapshot(scenario.Retail())
	ledger := bank.NewLedger(store, clock)
*/
package scenario

import (
	"time"

	"github.com/warp/bank-ledger/bank"
)

// Names of the built-in scenarios.
const (
	NameRetail  = "retail"
	NameMinimal = "minimal"
)

// ByName returns the named scenario snapshot, or nil for unknown names.
func ByName(name string) *bank.Snapshot {
	switch name {
	case NameRetail:
		return Retail()
	case NameMinimal:
		return Minimal()
	}
	return nil
}

// List enumerates the built-in scenario names.
func List() []string { return []string{NameRetail, NameMinimal} }

func emptySnapshot() *bank.Snapshot {
	return &bank.Snapshot{
		Customers:       []*bank.Customer{},
		Accounts:        []*bank.Account{},
		Cards:           []*bank.Card{},
		Statements:      []*bank.Statement{},
		Transactions:    []*bank.Transaction{},
		Payees:          []*bank.Payee{},
		PaymentRequests: []*bank.PaymentRequest{},
		Disputes:        []*bank.Dispute{},
	}
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// Minimal seeds one customer with a funded checking account and a debit card.
func Minimal() *bank.Snapshot {
	ids := bank.NewIDGenerator()
	snap := emptySnapshot()

	custID := ids.Next("CUST")
	acctID := ids.Next("ACC")
	cardID := ids.Next("CARD")

	snap.Customers = append(snap.Customers, &bank.Customer{
		CustomerID:  custID,
		FullName:    "Dana Whitfield",
		DateOfBirth: "1990-04-12",
		Email:       "dana.whitfield@example.com",
		PhoneNumber: "+1-555-0100",
		Address: bank.Address{
			Street:     "18 Mercer St",
			City:       "Albany",
			State:      "NY",
			PostalCode: "12207",
		},
		CreatedAt:         at(2025, time.January, 1, 0),
		AccountIDs:        []string{acctID},
		CardIDs:           []string{cardID},
		StatementIDs:      []string{},
		PaymentRequestIDs: []string{},
		DisputeIDs:        []string{},
		PayeeIDs:          []string{},
	})
	snap.Accounts = append(snap.Accounts, &bank.Account{
		AccountID:        acctID,
		CustomerID:       custID,
		Type:             bank.AccountChecking,
		MaskedNumber:     "••••4410",
		Status:           bank.AccountActive,
		CurrentBalance:   bank.MustUSD("100.00"),
		AvailableBalance: bank.MustUSD("100.00"),
	})
	snap.Cards = append(snap.Cards, &bank.Card{
		CardID:    cardID,
		AccountID: acctID,
		Type:      bank.CardDebit,
		Last4:     "4410",
		Status:    bank.CardActive,
	})
	return snap
}

// Retail seeds two customers with a realistic spread of accounts, cards,
// statements, transactions, and one pre-registered payee.
func Retail() *bank.Snapshot {
	ids := bank.NewIDGenerator()
	snap := emptySnapshot()

	// --- Customer 1: checking + savings, debit card, payee, history
	c1 := ids.Next("CUST")
	c1Checking := ids.Next("ACC")
	c1Savings := ids.Next("ACC")
	c1Card := ids.Next("CARD")
	c1Payee := ids.Next("PY")

	// --- Customer 2: checking + credit card account, credit card, history
	c2 := ids.Next("CUST")
	c2Checking := ids.Next("ACC")
	c2Credit := ids.Next("ACC")
	c2Card := ids.Next("CARD")

	snap.Customers = append(snap.Customers,
		&bank.Customer{
			CustomerID:  c1,
			FullName:    "Maya Okafor",
			DateOfBirth: "1987-09-23",
			Email:       "maya.okafor@example.com",
			PhoneNumber: "+1-555-0101",
			Address: bank.Address{
				Street:     "902 Fremont Ave",
				City:       "Portland",
				State:      "OR",
				PostalCode: "97212",
			},
			CreatedAt:         at(2025, time.January, 1, 0),
			AccountIDs:        []string{c1Checking, c1Savings},
			CardIDs:           []string{c1Card},
			StatementIDs:      []string{},
			PaymentRequestIDs: []string{},
			DisputeIDs:        []string{},
			PayeeIDs:          []string{c1Payee},
		},
		&bank.Customer{
			CustomerID:  c2,
			FullName:    "Ruben Castillo",
			DateOfBirth: "1979-02-02",
			Email:       "ruben.castillo@example.com",
			PhoneNumber: "+1-555-0102",
			Address: bank.Address{
				Street:     "47 Linden Ct",
				City:       "Austin",
				State:      "TX",
				PostalCode: "78745",
			},
			CreatedAt:         at(2025, time.January, 1, 0),
			AccountIDs:        []string{c2Checking, c2Credit},
			CardIDs:           []string{c2Card},
			StatementIDs:      []string{},
			PaymentRequestIDs: []string{},
			DisputeIDs:        []string{},
			PayeeIDs:          []string{},
		},
	)

	snap.Accounts = append(snap.Accounts,
		&bank.Account{
			AccountID:        c1Checking,
			CustomerID:       c1,
			Type:             bank.AccountChecking,
			MaskedNumber:     "••••6789",
			Status:           bank.AccountActive,
			CurrentBalance:   bank.MustUSD("2450.75"),
			AvailableBalance: bank.MustUSD("2450.75"),
		},
		&bank.Account{
			AccountID:        c1Savings,
			CustomerID:       c1,
			Type:             bank.AccountSavings,
			MaskedNumber:     "••••3321",
			Status:           bank.AccountActive,
			CurrentBalance:   bank.MustUSD("10200.00"),
			AvailableBalance: bank.MustUSD("10200.00"),
		},
		&bank.Account{
			AccountID:        c2Checking,
			CustomerID:       c2,
			Type:             bank.AccountChecking,
			MaskedNumber:     "••••1150",
			Status:           bank.AccountActive,
			CurrentBalance:   bank.MustUSD("310.40"),
			AvailableBalance: bank.MustUSD("310.40"),
		},
		&bank.Account{
			AccountID:        c2Credit,
			CustomerID:       c2,
			Type:             bank.AccountCreditCard,
			MaskedNumber:     "••••9034",
			Status:           bank.AccountFrozen,
			CurrentBalance:   bank.MustUSD("0.00"),
			AvailableBalance: bank.MustUSD("0.00"),
		},
	)

	snap.Cards = append(snap.Cards,
		&bank.Card{
			CardID:    c1Card,
			AccountID: c1Checking,
			Type:      bank.CardDebit,
			Last4:     "6789",
			Status:    bank.CardActive,
		},
		&bank.Card{
			CardID:    c2Card,
			AccountID: c2Credit,
			Type:      bank.CardCredit,
			Last4:     "9034",
			Status:    bank.CardActive,
		},
	)

	minDue := bank.MustUSD("35.00")
	dueDate := bank.NewDate(2025, time.March, 25)
	st1 := ids.Next("ST")
	st2 := ids.Next("ST")
	snap.Statements = append(snap.Statements,
		&bank.Statement{
			StatementID: st1,
			AccountID:   c1Checking,
			PeriodStart: bank.NewDate(2025, time.February, 1),
			PeriodEnd:   bank.NewDate(2025, time.February, 28),
			IssueDate:   bank.NewDate(2025, time.March, 1),
			TotalDue:    bank.MustUSD("0.00"),
			Status:      bank.StatementIssued,
		},
		&bank.Statement{
			StatementID: st2,
			AccountID:   c2Credit,
			PeriodStart: bank.NewDate(2025, time.February, 1),
			PeriodEnd:   bank.NewDate(2025, time.February, 28),
			IssueDate:   bank.NewDate(2025, time.March, 1),
			TotalDue:    bank.MustUSD("412.18"),
			MinimumDue:  &minDue,
			DueDate:     &dueDate,
			Status:      bank.StatementOverdue,
		},
	)
	for _, c := range snap.Customers {
		for _, s := range snap.Statements {
			if acctOwned(c, s.AccountID) {
				c.StatementIDs = append(c.StatementIDs, s.StatementID)
			}
		}
	}

	grocer := "Hollow Oak Grocery"
	atm := "Main St ATM"
	subscription := "Streamline Media"
	snap.Transactions = append(snap.Transactions,
		&bank.Transaction{
			TxID:            ids.Next("TX"),
			AccountID:       c1Checking,
			Timestamp:       at(2025, time.February, 10, 14),
			Type:            bank.TxCardPurchase,
			Amount:          bank.MustUSD("-54.23"),
			MerchantOrPayee: &grocer,
			Status:          bank.TxPosted,
		},
		&bank.Transaction{
			TxID:      ids.Next("TX"),
			AccountID: c1Checking,
			Timestamp: at(2025, time.February, 14, 9),
			Type:      bank.TxDeposit,
			Amount:    bank.MustUSD("1500.00"),
			Status:    bank.TxPosted,
		},
		&bank.Transaction{
			TxID:            ids.Next("TX"),
			AccountID:       c1Checking,
			Timestamp:       at(2025, time.February, 20, 18),
			Type:            bank.TxATMWithdrawal,
			Amount:          bank.MustUSD("-80.00"),
			MerchantOrPayee: &atm,
			Status:          bank.TxPosted,
		},
		&bank.Transaction{
			TxID:            ids.Next("TX"),
			AccountID:       c2Credit,
			Timestamp:       at(2025, time.February, 22, 21),
			Type:            bank.TxCardPurchase,
			Amount:          bank.MustUSD("-15.99"),
			MerchantOrPayee: &subscription,
			Status:          bank.TxPending,
		},
	)

	snap.Payees = append(snap.Payees, &bank.Payee{
		PayeeID:     c1Payee,
		CustomerID:  c1,
		Name:        "City Power & Light",
		DeliverType: bank.DeliverElectronic,
		Verified:    true,
	})

	return snap
}

func acctOwned(c *bank.Customer, accountID string) bool {
	for _, id := range c.AccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}
