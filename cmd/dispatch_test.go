package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemove/lemove/sim"
	"github.com/lemove/lemove/sim/store"
)

func TestRunDispatch_ExplainsUnmetPreconditions(t *testing.T) {
	a := newTestApp(t, testConfig(), store.NewMemoryKV())
	defer a.Close()
	var out bytes.Buffer

	require.NoError(t, runDispatch(context.Background(), &out, a))
	assert.Contains(t, out.String(), "complete both addresses")

	move := completeMove()
	a.session.SetMove(sim.MovePatch{OldAddress: &move.OldAddress, NewAddress: &move.NewAddress})
	out.Reset()
	require.NoError(t, runDispatch(context.Background(), &out, a))
	assert.Contains(t, out.String(), "add providers")
	assert.False(t, a.session.Dispatching())
}

func TestRunDispatch_SettlesAndPersists(t *testing.T) {
	// GIVEN a fast, certain dispatch over a ready move
	cfg := testConfig()
	cfg.Dispatch = DispatchSection{ConfirmProbability: 1, TickPeriodMs: 5}
	kv := store.NewMemoryKV()
	a := newTestApp(t, cfg, kv)
	move := completeMove()
	a.session.SetMove(sim.MovePatch{OldAddress: &move.OldAddress, NewAddress: &move.NewAddress})
	require.NoError(t, runPick(&bytes.Buffer{}, a, []string{"dkb", "netflix"}))
	var out bytes.Buffer

	// WHEN dispatched
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runDispatch(ctx, &out, a))
	require.NoError(t, a.Close())

	// THEN everything is confirmed and saved
	assert.Contains(t, out.String(), "Progress: 100%")
	records, err := store.NewStatePersister(kv).LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, sim.StatusConfirmed, r.Status)
	}
}

func TestRunDispatch_InterruptKeepsProgress(t *testing.T) {
	// GIVEN a dispatch that never confirms
	cfg := testConfig()
	cfg.Dispatch = DispatchSection{ConfirmProbability: 0, TickPeriodMs: 5}
	kv := store.NewMemoryKV()
	a := newTestApp(t, cfg, kv)
	move := completeMove()
	a.session.SetMove(sim.MovePatch{OldAddress: &move.OldAddress, NewAddress: &move.NewAddress})
	require.NoError(t, runAdd(&bytes.Buffer{}, a, addOptions{Name: "Vermieter"}))
	var out bytes.Buffer

	// WHEN interrupted
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	require.NoError(t, runDispatch(ctx, &out, a))
	require.NoError(t, a.Close())

	// THEN the record stays sent and is saved as such
	assert.Contains(t, out.String(), "Interrupted")
	records, err := store.NewStatePersister(kv).LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, sim.StatusSent, records[0].Status)
}
