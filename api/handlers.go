/*
handlers.go - HTTP handlers for the banking ledger

PURPOSE:
  Exposes every ledger operation over REST. Handlers parse and structurally
  validate the request, delegate to the ledger (or the instrumentation
  recorder), and serialize the typed result.

ENDPOINTS:
  Customers:
    GET  /api/customers/{id}                  Get customer
    GET  /api/customers?phone=...             Lookup by exact phone
    GET  /api/customers?full_name=...&dob=... Search by name and DOB
    GET  /api/customers/{id}/accounts         List owned accounts
    POST /api/customers/{id}/payees           Add bill-pay payee

  Accounts:
    GET  /api/accounts/{id}                   Get account
    GET  /api/accounts/{id}/statements        Recent statements
    GET  /api/accounts/{id}/transactions      Recent transactions

  Payment requests:
    POST /api/payment-requests                Create (Awaiting Payment)
    GET  /api/payment-requests/{id}           Check status
    POST /api/payment-requests/{id}/authorize Authorize
    POST /api/payment-requests/{id}/pay       Settle (or report Failed)
    POST /api/payment-requests/{id}/cancel    Cancel

  Cards:
    POST /api/cards/{id}/lock                 Lock (idempotent)
    POST /api/cards/{id}/unlock               Unlock (idempotent)

  Disputes:
    POST /api/disputes                        File dispute
    GET  /api/disputes/{id}                   Get dispute

  Instrumentation:
    POST /api/instrumentation/shift-events    Record goal-shift event
    GET  /api/instrumentation/shift-events    List recorded events
    POST /api/tasks/park                      Park caller-side task
    POST /api/tasks/{id}/resume               Resume parked task
    POST /api/handoff                         Transfer to human agents

  Session:
    GET  /api/session/view?phone=...          Typed user-side projection

  Admin:
    GET  /api/health                          Liveness + collection counts
    GET  /api/admin/snapshot                  Canonical snapshot document
    POST /api/admin/reset                     Reload a seed scenario

ERROR HANDLING:
  Ledger failures map onto HTTP status by taxonomy:
  - 400: InvalidArgument (and malformed request bodies)
  - 404: NotFound (including failed relational checks)
  - 409: PreconditionFailed (state already moved; retry won't help)
  - 500: anything else
  A Failed settlement is NOT an error: it returns 200 with status "Failed"
  and reason "insufficient_funds" in the body.

SEE ALSO:
  - dto.go: request/response types
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/bank-ledger/bank"
	"github.com/warp/bank-ledger/instrument"
	"github.com/warp/bank-ledger/scenario"
	"github.com/warp/bank-ledger/session"
	"github.com/warp/bank-ledger/store/jsonfile"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. Reset swaps the ledger,
// so access goes through ledger().
type Handler struct {
	current  *bank.Ledger
	Recorder *instrument.Recorder
	clock    bank.Clock
}

// NewHandler creates a handler around a ledger and recorder. A nil clock
// defaults to the system clock (used only when reseeding on reset).
func NewHandler(ledger *bank.Ledger, recorder *instrument.Recorder, clock bank.Clock) *Handler {
	if clock == nil {
		clock = bank.SystemClock()
	}
	return &Handler{current: ledger, Recorder: recorder, clock: clock}
}

func (h *Handler) ledger() *bank.Ledger { return h.current }

// Ledger exposes the active ledger, e.g. for shutdown persistence.
func (h *Handler) Ledger() *bank.Ledger { return h.current }

// =============================================================================
// CUSTOMER HANDLERS
// =============================================================================

// GetCustomer returns one customer by id.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.ledger().CustomerByID(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// LookupCustomer resolves ?phone= (exact, single result) or
// ?full_name=&dob= (case-insensitive name, possibly many results).
func (h *Handler) LookupCustomer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if phone := q.Get("phone"); phone != "" {
		c, err := h.ledger().CustomerByPhone(phone)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
		return
	}

	fullName := q.Get("full_name")
	dob := q.Get("dob")
	if fullName == "" || dob == "" {
		writeError(w, http.StatusBadRequest, "provide phone, or full_name and dob", nil)
		return
	}
	matches := h.ledger().CustomersByNameAndDOB(fullName, dob)
	if matches == nil {
		matches = []*bank.Customer{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// GetAccounts lists the customer's accounts.
func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledger().Accounts(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// AddPayee registers a bill-pay payee for the customer.
func (h *Handler) AddPayee(w http.ResponseWriter, r *http.Request) {
	var req AddPayeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	receipt, err := h.ledger().AddPayee(chi.URLParam(r, "id"), req.Name, req.DeliverType)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// GetAccount returns one account.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := h.ledger().AccountByID(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GetStatements returns recent statements, newest first. ?limit= caps the
// result (default 12).
func (h *Handler) GetStatements(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 0)
	statements := h.ledger().Statements(chi.URLParam(r, "id"), limit)
	writeJSON(w, http.StatusOK, statements)
}

// GetTransactions returns recent transactions, newest first.
// ?start_time= and ?end_time= are inclusive RFC3339 bounds; ?limit= caps
// the result (default 100).
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var startTime, endTime *time.Time
	if v := q.Get("start_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_time (use RFC3339)", err)
			return
		}
		startTime = &t
	}
	if v := q.Get("end_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_time (use RFC3339)", err)
			return
		}
		endTime = &t
	}
	txs := h.ledger().Transactions(chi.URLParam(r, "id"), startTime, endTime, parseLimit(r, 0))
	writeJSON(w, http.StatusOK, txs)
}

// =============================================================================
// PAYMENT REQUEST HANDLERS
// =============================================================================

// CreatePaymentRequest opens a request in Awaiting Payment.
func (h *Handler) CreatePaymentRequest(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	receipt, err := h.ledger().CreatePaymentRequest(
		req.CustomerID, req.FromAccountID, req.ToPayeeID, req.Amount, req.ExpiresAt)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// CheckPaymentRequest returns the current state of a request.
func (h *Handler) CheckPaymentRequest(w http.ResponseWriter, r *http.Request) {
	pr, err := h.ledger().CheckPaymentRequest(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

// AuthorizePaymentRequest moves Awaiting Payment to Authorized.
func (h *Handler) AuthorizePaymentRequest(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.ledger().AuthorizePaymentRequest(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// MakePayment settles an Authorized request. An insufficient-funds outcome
// is a 200 with status Failed, not an error.
func (h *Handler) MakePayment(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledger().MakePayment(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CancelPaymentRequest cancels a non-settled request; idempotent.
func (h *Handler) CancelPaymentRequest(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.ledger().CancelPaymentRequest(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// =============================================================================
// CARD HANDLERS
// =============================================================================

// LockCard locks a card, idempotently. Body is optional.
func (h *Handler) LockCard(w http.ResponseWriter, r *http.Request) {
	var req LockCardRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}
	receipt, err := h.ledger().LockCard(chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// UnlockCard unlocks a card, idempotently. Policy-level authorization is
// the caller's responsibility.
func (h *Handler) UnlockCard(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.ledger().UnlockCard(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// =============================================================================
// DISPUTE HANDLERS
// =============================================================================

// FileDispute opens a dispute on a transaction of the named account.
func (h *Handler) FileDispute(w http.ResponseWriter, r *http.Request) {
	var req FileDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	receipt, err := h.ledger().FileDispute(req.AccountID, req.TxID, req.ReasonCode)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// GetDispute returns dispute details.
func (h *Handler) GetDispute(w http.ResponseWriter, r *http.Request) {
	d, err := h.ledger().DisputeByID(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// =============================================================================
// INSTRUMENTATION HANDLERS
// =============================================================================

// LogShiftEvent appends a goal-shift record; always succeeds.
func (h *Handler) LogShiftEvent(w http.ResponseWriter, r *http.Request) {
	var req ShiftEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	count := h.Recorder.LogShiftEvent(req.TurnNo, req.FromClass, req.ToClass, req.TriggerTerms, req.RequiresReauth)
	writeJSON(w, http.StatusOK, ShiftEventResponse{Logged: true, Count: count})
}

// ListShiftEvents returns the recorded events.
func (h *Handler) ListShiftEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Recorder.ShiftEvents())
}

// ParkTask suspends caller-side workflow state under a fresh handle.
func (h *Handler) ParkTask(w http.ResponseWriter, r *http.Request) {
	var req ParkTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	handle := h.Recorder.ParkTask(req.CurrentTaskID, req.ResumeHint)
	writeJSON(w, http.StatusCreated, ParkTaskResponse{ParkedTaskID: handle})
}

// ResumeTask returns the metadata stored under a parked handle.
func (h *Handler) ResumeTask(w http.ResponseWriter, r *http.Request) {
	meta, err := h.Recorder.ResumeTask(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Status   string              `json:"status"`
		Metadata instrument.ParkedTask `json:"metadata"`
	}{Status: "Resumed", Metadata: meta})
}

// Handoff transfers the conversation to human agents; always succeeds.
func (h *Handler) Handoff(w http.ResponseWriter, r *http.Request) {
	var req HandoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	writeJSON(w, http.StatusOK, HandoffResponse{Result: h.Recorder.TransferToHumanAgents(req.Summary)})
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

// SessionView projects ledger state for the user-side counterpart.
func (h *Handler) SessionView(w http.ResponseWriter, r *http.Request) {
	result := session.Project(h.ledger(), r.URL.Query().Get("phone"))
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// Health reports liveness and collection counts.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status     string          `json:"status"`
		Statistics bank.Statistics `json:"statistics"`
	}{Status: "ok", Statistics: h.ledger().Statistics()})
}

// GetSnapshot streams the canonical snapshot document.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	body, err := jsonfile.Marshal(h.ledger().Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to serialize snapshot", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Reset reloads a seed scenario, replacing all ledger state. Dev only.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	snap := scenario.ByName(req.Scenario)
	if snap == nil {
		writeError(w, http.StatusBadRequest, "unknown scenario "+req.Scenario, nil)
		return
	}
	h.current = bank.NewLedger(bank.LoadSnapshot(snap), h.clock)
	writeJSON(w, http.StatusOK, struct {
		Scenario   string          `json:"scenario"`
		Statistics bank.Statistics `json:"statistics"`
	}{Scenario: req.Scenario, Statistics: h.current.Statistics()})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseLimit(r *http.Request, fallback int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeLedgerError maps the ledger failure taxonomy onto HTTP status codes.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case bank.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case bank.IsInvalidArgument(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case bank.IsPreconditionFailed(err):
		writeError(w, http.StatusConflict, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}
