package telemetry

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemove/lemove/sim"
	simtest "github.com/lemove/lemove/sim/internal/testutil"
)

func TestRecorder_CountsDispatchLifecycle(t *testing.T) {
	// GIVEN a recorder on its own registry
	reg := prometheus.NewRegistry()
	r := New(reg)

	// WHEN a dispatch sends two records, confirms one, overrides the other and settles
	r.DispatchStarted(0, 2, 0)
	r.Transitioned(0, sim.Transition{RecordID: "a", From: sim.StatusNotContacted, To: sim.StatusSent})
	r.Transitioned(0, sim.Transition{RecordID: "b", From: sim.StatusNotContacted, To: sim.StatusSent})
	r.Transitioned(1200, sim.Transition{RecordID: "a", From: sim.StatusSent, To: sim.StatusConfirmed})
	r.Transitioned(1500, sim.Transition{RecordID: "b", From: sim.StatusSent, To: sim.StatusManualDone, Manual: true})
	r.DispatchSettled(2400, 2)

	// THEN the counters reflect each callback
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Started))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Settled))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.RecordsSent))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Transitions.WithLabelValues("not_contacted", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Transitions.WithLabelValues("sent", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Transitions.WithLabelValues("sent", "manual_done")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.PendingRecords))
	assert.Equal(t, 1, testutil.CollectAndCount(r.SettleTicks))
}

func TestRecorder_RegistersExpectedNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)
	r.Transitioned(0, sim.Transition{From: sim.StatusNotContacted, To: sim.StatusSent})
	r.DispatchSettled(0, 1)

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	for _, want := range []string{
		"lemove_dispatch_started_total",
		"lemove_dispatch_settled_total",
		"lemove_record_transitions_total",
		"lemove_settle_ticks",
		"lemove_records_pending",
	} {
		assert.Contains(t, names, want)
	}
}

func TestRecorder_ExpositionFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)
	r.DispatchStarted(0, 3, 0)

	expected := `
# HELP lemove_records_sent_total Total number of records moved from not_contacted to sent
# TYPE lemove_records_sent_total counter
lemove_records_sent_total 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "lemove_records_sent_total"))
}

func TestRecorder_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestRecorder_PendingGaugeCountsRecordsAlreadySent(t *testing.T) {
	// GIVEN a dispatch resumed with two records already sent and one new
	r := New(prometheus.NewRegistry())

	// WHEN it starts
	r.DispatchStarted(0, 1, 2)
	r.Transitioned(0, sim.Transition{RecordID: "c", From: sim.StatusNotContacted, To: sim.StatusSent})

	// THEN all three are pending
	assert.Equal(t, 3.0, testutil.ToFloat64(r.PendingRecords))
}

func TestRecorder_PendingGaugeSettlesAtZeroForRestoredRecords(t *testing.T) {
	// GIVEN two records restored as sent and draws that always confirm
	records := []sim.Record{
		{ID: "a", Name: "DKB", Category: sim.CategoryAccounts, Status: sim.StatusSent},
		{ID: "b", Name: "TK", Category: sim.CategoryInsurance, Status: sim.StatusSent},
	}
	move := sim.MoveDetails{
		OldAddress: sim.Address{Street: "Torstraße 1", PostalCode: "10119", City: "Berlin"},
		NewAddress: sim.Address{Street: "Marienplatz 8", PostalCode: "80331", City: "München"},
	}
	s := sim.NewSimulator(sim.DefaultDispatchConfig(), 60_000, sim.NewSimulationKey(1), move, records)
	s.Rand = simtest.Constant(0)
	r := New(prometheus.NewRegistry())
	s.SetObserver(r)

	// WHEN the dispatch runs to completion
	s.ScheduleDispatch(0)
	s.Run()

	// THEN the gauge never goes negative and ends at zero
	require.True(t, s.Metrics.Settled)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.PendingRecords))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.RecordsSent))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Transitions.WithLabelValues("sent", "confirmed")))
}
