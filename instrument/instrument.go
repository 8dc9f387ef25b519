/*
Package instrument records out-of-band events that do not participate in
financial invariants: goal-shift detections, parked/resumed task handles,
and human handoffs.

  The recorder is ephemeral by design - nothing here is ever persisted into
  the ledger snapshot - and it is guarded by its own lock since it shares no
  invariants with the ledger.
*/
package instrument

import (
	"log"
	"sync"
	"time"

	"github.com/warp/bank-ledger/bank"
)

// ShiftEvent is a goal-shift detection record.
type ShiftEvent struct {
	At             time.Time `json:"ts"`
	TurnNo         int       `json:"turn_no"`
	FromClass      string    `json:"from_class"`
	ToClass        string    `json:"to_class"`
	TriggerTerms   []string  `json:"trigger_terms"`
	RequiresReauth bool      `json:"requires_reauth"`
}

// ParkedTask is an opaque handle for suspended caller-side workflow state.
type ParkedTask struct {
	TaskID     string    `json:"task_id"`
	ResumeHint string    `json:"resume_hint,omitempty"`
	ParkedAt   time.Time `json:"parked_at"`
}

// Recorder holds the shift-event log and the parked-task table.
type Recorder struct {
	mu     sync.Mutex
	clock  bank.Clock
	ids    *bank.IDGenerator
	events []ShiftEvent
	parked map[string]ParkedTask
}

func NewRecorder(clock bank.Clock) *Recorder {
	if clock == nil {
		clock = bank.SystemClock()
	}
	return &Recorder{
		clock:  clock,
		ids:    bank.NewIDGenerator(),
		parked: make(map[string]ParkedTask),
	}
}

// LogShiftEvent appends a structured record and returns the running count.
// Always succeeds.
func (r *Recorder) LogShiftEvent(turnNo int, fromClass, toClass string, triggerTerms []string, requiresReauth bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evt := ShiftEvent{
		At:             r.clock.Now(),
		TurnNo:         turnNo,
		FromClass:      fromClass,
		ToClass:        toClass,
		TriggerTerms:   append([]string{}, triggerTerms...),
		RequiresReauth: requiresReauth,
	}
	r.events = append(r.events, evt)
	log.Printf("shift_event: turn=%d %s->%s reauth=%v", turnNo, fromClass, toClass, requiresReauth)
	return len(r.events)
}

// ShiftEvents returns a copy of the log.
func (r *Recorder) ShiftEvents() []ShiftEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ShiftEvent{}, r.events...)
}

// ParkTask stores the current task under a fresh random handle.
func (r *Recorder) ParkTask(currentTaskID, resumeHint string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := r.ids.Token("PT")
	r.parked[handle] = ParkedTask{
		TaskID:     currentTaskID,
		ResumeHint: resumeHint,
		ParkedAt:   r.clock.Now(),
	}
	log.Printf("task parked %s (task %s)", handle, currentTaskID)
	return handle
}

// ResumeTask returns the stored metadata for a handle. Unknown handles fail
// with NotFound.
func (r *Recorder) ResumeTask(parkedTaskID string) (ParkedTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta, ok := r.parked[parkedTaskID]
	if !ok {
		return ParkedTask{}, &bank.NotFoundError{Kind: bank.KindParkedTask, ID: parkedTaskID}
	}
	log.Printf("task resumed %s", parkedTaskID)
	return meta, nil
}

// TransferToHumanAgents is a terminal escape hatch. It always reports
// success and has no ledger effect.
func (r *Recorder) TransferToHumanAgents(summary string) string {
	log.Printf("transfer to human requested: %s", summary)
	return "Transfer successful"
}
