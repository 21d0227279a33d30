package sim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemove/lemove/sim/internal/testutil"
)

const eventually = time.Second

type sessionHarness struct {
	session *Session
	ticker  *testutil.ManualTicker
	draws   *testutil.Sequence
	created int
	mu      sync.Mutex
}

// newHarness builds a Session over records driven by a manual ticker and scripted draws.
func newHarness(t *testing.T, move MoveDetails, records []Record, draws []float64, opts ...SessionOption) *sessionHarness {
	t.Helper()
	h := &sessionHarness{
		ticker: testutil.NewManualTicker(DefaultTickPeriod),
		draws:  testutil.NewSequence(draws...),
	}
	base := []SessionOption{
		WithRandomSource(h.draws),
		WithIDGenerator(NewCounterGenerator("s")),
		WithTickerFactory(func(time.Duration) Ticker {
			h.mu.Lock()
			h.created++
			h.mu.Unlock()
			return h.ticker
		}),
	}
	h.session = NewSession(move, records, append(base, opts...)...)
	t.Cleanup(h.session.Close)
	return h
}

func (h *sessionHarness) tickersCreated() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created
}

func TestSession_StartDispatch_RequiresCompleteAddressesAndRecords(t *testing.T) {
	// GIVEN an incomplete move
	move := completeMove()
	move.OldAddress.Street = ""
	h := newHarness(t, move, pendingRecords(2), nil)

	// WHEN dispatch is requested
	started := h.session.StartDispatch()

	// THEN nothing happens: no state change, no timer
	assert.False(t, started)
	assert.False(t, h.session.Dispatching())
	assert.Zero(t, h.tickersCreated())
	for _, r := range h.session.Snapshot().Records {
		assert.Equal(t, StatusNotContacted, r.Status)
	}

	// AND an empty collection is refused too
	empty := newHarness(t, completeMove(), nil, nil)
	assert.False(t, empty.session.StartDispatch())
}

func TestSession_StopConditionEvaluatedAfterTickMutation(t *testing.T) {
	// GIVEN two records; tick 1 confirms the first, tick 2 the second
	records := []Record{
		{ID: "a", Name: "A", Status: StatusNotContacted},
		{ID: "b", Name: "B", Status: StatusNotContacted},
	}
	h := newHarness(t, completeMove(), records, []float64{0.1, 0.9, 0.1})

	// WHEN dispatch starts
	require.True(t, h.session.StartDispatch())
	snap := h.session.Snapshot()
	assert.True(t, snap.Dispatching)
	assert.Equal(t, StatusSent, snap.Records[0].Status)
	assert.Equal(t, StatusSent, snap.Records[1].Status)

	// AND the first tick fires
	require.True(t, h.ticker.Fire(time.Now()))
	require.Eventually(t, func() bool { return h.session.Ticks() == 1 }, eventually, time.Millisecond)
	snap = h.session.Snapshot()
	assert.Equal(t, StatusConfirmed, snap.Records[0].Status)
	assert.Equal(t, StatusSent, snap.Records[1].Status)
	assert.True(t, snap.Dispatching)

	// AND the second tick confirms the last record
	require.True(t, h.ticker.Fire(time.Now()))

	// THEN dispatch ends on that same tick and the timer is stopped
	require.Eventually(t, func() bool { return !h.session.Dispatching() }, eventually, time.Millisecond)
	assert.Equal(t, 2, h.session.Ticks())
	require.Eventually(t, h.ticker.Stopped, eventually, time.Millisecond)
	assert.False(t, h.ticker.Fire(time.Now()))
	assert.Equal(t, 3, h.draws.Calls())
}

func TestSession_ManualOverrideLetsNextTickSettle(t *testing.T) {
	// GIVEN a running dispatch whose draws never confirm
	records := []Record{{ID: "a", Name: "A", Status: StatusNotContacted}}
	obs := &recordingObserver{}
	h := newHarness(t, completeMove(), records, []float64{0.99}, WithObserver(obs))
	require.True(t, h.session.StartDispatch())

	// WHEN the user marks the only record done by hand
	status := StatusManualDone
	h.session.UpdateRecord("a", RecordPatch{Status: &status})

	// THEN the next tick draws nothing and stops the dispatch
	require.True(t, h.ticker.Fire(time.Now()))
	require.Eventually(t, func() bool { return !h.session.Dispatching() }, eventually, time.Millisecond)
	assert.Zero(t, h.draws.Calls())
	assert.Equal(t, StatusManualDone, h.session.Snapshot().Records[0].Status)

	require.Eventually(t, func() bool { return h.ticker.Stopped() }, eventually, time.Millisecond)
	assert.Equal(t, []int{1}, obs.started)
	assert.Equal(t, []int{1}, obs.settled)
	require.Len(t, obs.transitions, 2)
	assert.True(t, obs.transitions[1].Manual)
}

func TestSession_SecondStartSendsNewRecordsWithoutSecondTimer(t *testing.T) {
	// GIVEN a running dispatch
	records := []Record{{ID: "a", Name: "A", Status: StatusNotContacted}}
	h := newHarness(t, completeMove(), records, []float64{0.99})
	require.True(t, h.session.StartDispatch())

	// WHEN a record is added and dispatch is requested again
	id := h.session.AddRecord(RecordInput{Name: "B"})
	require.True(t, h.session.StartDispatch())

	// THEN the new record is sent and still only one ticker exists
	rec, ok := Find(h.session.Snapshot().Records, id)
	require.True(t, ok)
	assert.Equal(t, StatusSent, rec.Status)
	assert.Equal(t, 1, h.tickersCreated())
}

func TestSession_StartDispatchReportsRecordsAlreadySent(t *testing.T) {
	// GIVEN one record restored as sent and one not yet contacted
	records := []Record{
		{ID: "a", Name: "A", Status: StatusSent},
		{ID: "b", Name: "B", Status: StatusNotContacted},
	}
	obs := &recordingObserver{}
	h := newHarness(t, completeMove(), records, []float64{0.99, 0.99}, WithObserver(obs))

	// WHEN dispatch starts
	require.True(t, h.session.StartDispatch())

	// THEN one record is reported sent and one as already awaiting
	assert.Equal(t, []int{1}, obs.started)
	assert.Equal(t, []int{1}, obs.awaiting)
}

func TestSession_EditsAreNoOpForUnknownIDs(t *testing.T) {
	var changes int
	h := newHarness(t, completeMove(), pendingRecords(2), nil, WithChangeHook(func(Snapshot) { changes++ }))

	name := "x"
	h.session.UpdateRecord("zzz", RecordPatch{Name: &name})
	h.session.RemoveRecord("zzz")

	assert.Zero(t, changes)
	assert.Len(t, h.session.Snapshot().Records, 2)
}

func TestSession_ChangeHookReceivesSnapshots(t *testing.T) {
	// GIVEN a session with a change hook
	var snaps []Snapshot
	h := newHarness(t, MoveDetails{}, nil, nil, WithChangeHook(func(s Snapshot) { snaps = append(snaps, s) }))

	// WHEN the move and the records are edited
	addr := completeMove().OldAddress
	h.session.SetMove(MovePatch{OldAddress: &addr})
	id := h.session.AddRecord(RecordInput{Name: "DKB", ProviderID: "dkb"})
	h.session.AddSelection([]RecordInput{{ProviderID: "dkb", Name: "DKB"}, {ProviderID: "tk", Name: "TK"}})
	h.session.RemoveRecord(id)

	// THEN each edit produced a snapshot of the state after it
	require.Len(t, snaps, 4)
	assert.Equal(t, addr, snaps[0].Move.OldAddress)
	assert.Len(t, snaps[1].Records, 1)
	assert.Equal(t, "s1", id)
	assert.Len(t, snaps[2].Records, 2, "dkb is skipped, tk is added")
	assert.Len(t, snaps[3].Records, 1)
	assert.Equal(t, "tk", snaps[3].Records[0].ProviderID)

	// AND snapshots are copies
	snaps[3].Records[0].Name = "changed"
	assert.Equal(t, "TK", h.session.Snapshot().Records[0].Name)
}

func TestSession_CloseIsIdempotentAndStopsTimer(t *testing.T) {
	h := newHarness(t, completeMove(), pendingRecords(1), []float64{0.99})
	require.True(t, h.session.StartDispatch())

	h.session.Close()
	h.session.Close()

	assert.True(t, h.ticker.Stopped())
	assert.False(t, h.session.Dispatching())
	assert.False(t, h.session.StartDispatch(), "closed sessions refuse to dispatch")
}

func TestSession_WaitReturnsOnSettleOrContext(t *testing.T) {
	h := newHarness(t, completeMove(), pendingRecords(1), []float64{0})

	// no dispatch: returns immediately
	require.NoError(t, h.session.Wait(context.Background()))

	require.True(t, h.session.StartDispatch())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.session.Wait(ctx), context.DeadlineExceeded)

	require.True(t, h.ticker.Fire(time.Now()))
	require.NoError(t, h.session.Wait(context.Background()))
	assert.False(t, h.session.Dispatching())
}

func TestSession_WallClockDispatchSettles(t *testing.T) {
	// GIVEN a real ticker at a short period and certain confirmation
	s := NewSession(completeMove(), pendingRecords(3),
		WithDispatchConfig(NewDispatchConfig(1, 5*time.Millisecond)))
	defer s.Close()

	// WHEN dispatched
	require.True(t, s.StartDispatch())

	// THEN it settles after one tick
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
	assert.Equal(t, 1, s.Ticks())
	assert.Equal(t, 100, ComputeStats(s.Snapshot().Records).Progress())
}
