package instrument_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/bank-ledger/bank"
	"github.com/warp/bank-ledger/instrument"
)

var testNow = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func TestLogShiftEvent_ReturnsRunningCount(t *testing.T) {
	clock := bank.NewManualClock(testNow)
	recorder := instrument.NewRecorder(clock)

	count := recorder.LogShiftEvent(3, "balance_inquiry", "payment_request", []string{"pay", "bill"}, true)
	assert.Equal(t, 1, count)
	count = recorder.LogShiftEvent(5, "payment_request", "dispute", nil, false)
	assert.Equal(t, 2, count)

	events := recorder.ShiftEvents()
	require.Len(t, events, 2)
	assert.Equal(t, 3, events[0].TurnNo)
	assert.Equal(t, "balance_inquiry", events[0].FromClass)
	assert.Equal(t, []string{"pay", "bill"}, events[0].TriggerTerms)
	assert.True(t, events[0].RequiresReauth)
	assert.Equal(t, testNow, events[0].At)
}

func TestShiftEvents_ReturnsCopy(t *testing.T) {
	recorder := instrument.NewRecorder(bank.NewManualClock(testNow))
	recorder.LogShiftEvent(1, "a", "b", nil, false)

	events := recorder.ShiftEvents()
	events[0].FromClass = "tampered"

	assert.Equal(t, "a", recorder.ShiftEvents()[0].FromClass)
}

func TestParkResume_RoundTrip(t *testing.T) {
	// GIVEN: A parked task
	// WHEN: Resuming it by handle
	// THEN: The stored metadata comes back intact

	clock := bank.NewManualClock(testNow)
	recorder := instrument.NewRecorder(clock)

	handle := recorder.ParkTask("task-42", "resume after card unlock")
	assert.Regexp(t, `^PT_[0-9a-f]{8}$`, handle)

	meta, err := recorder.ResumeTask(handle)
	require.NoError(t, err)
	assert.Equal(t, "task-42", meta.TaskID)
	assert.Equal(t, "resume after card unlock", meta.ResumeHint)
	assert.Equal(t, testNow, meta.ParkedAt)
}

func TestResumeTask_UnknownHandle(t *testing.T) {
	recorder := instrument.NewRecorder(nil)

	_, err := recorder.ResumeTask("PT_00000000")
	assert.True(t, bank.IsNotFound(err))
}

func TestTransferToHumanAgents(t *testing.T) {
	recorder := instrument.NewRecorder(nil)
	assert.Equal(t, "Transfer successful", recorder.TransferToHumanAgents("caller requests escalation"))
}
