/*
dto.go - Request and response types for the HTTP surface

NAMING CONVENTION:
  - *Request: request body types from clients
  - ErrorResponse: uniform error envelope

  Read responses reuse the bank entity types directly: their JSON tags are
  the snapshot compatibility surface, which is exactly the wire shape the
  calling agent expects. Write responses are the typed receipts the ledger
  already returns.

VALIDATION:
  Structural validation (required fields, parseable times) happens in
  handlers; semantic validation (ownership, status, funds) stays in the
  ledger.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AddPayeeRequest registers a bill-pay payee.
type AddPayeeRequest struct {
	Name        string `json:"name"`
	DeliverType string `json:"deliver_type"`
}

// CreatePaymentRequestRequest opens a bill-pay payment request.
type CreatePaymentRequestRequest struct {
	CustomerID    string          `json:"customer_id"`
	FromAccountID string          `json:"from_account_id"`
	ToPayeeID     string          `json:"to_payee_id"`
	Amount        decimal.Decimal `json:"amount"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
}

// LockCardRequest carries the optional lock reason.
type LockCardRequest struct {
	Reason string `json:"reason,omitempty"`
}

// FileDisputeRequest opens a dispute on a transaction.
type FileDisputeRequest struct {
	AccountID  string `json:"account_id"`
	TxID       string `json:"tx_id"`
	ReasonCode string `json:"reason_code"`
}

// ShiftEventRequest records a goal-shift detection.
type ShiftEventRequest struct {
	TurnNo         int      `json:"turn_no"`
	FromClass      string   `json:"from_class"`
	ToClass        string   `json:"to_class"`
	TriggerTerms   []string `json:"trigger_terms"`
	RequiresReauth bool     `json:"requires_reauth"`
}

// ShiftEventResponse reports the running event count.
type ShiftEventResponse struct {
	Logged bool `json:"logged"`
	Count  int  `json:"count"`
}

// ParkTaskRequest suspends caller-side workflow state.
type ParkTaskRequest struct {
	CurrentTaskID string `json:"current_task_id"`
	ResumeHint    string `json:"resume_hint,omitempty"`
}

// ParkTaskResponse returns the opaque resume handle.
type ParkTaskResponse struct {
	ParkedTaskID string `json:"parked_task_id"`
}

// HandoffRequest transfers the conversation to a human agent.
type HandoffRequest struct {
	Summary string `json:"summary"`
}

// HandoffResponse reports the handoff outcome.
type HandoffResponse struct {
	Result string `json:"result"`
}

// ResetRequest reloads a seed scenario.
type ResetRequest struct {
	Scenario string `json:"scenario"`
}
