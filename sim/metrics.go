// Tracks dashboard statistics over a record collection and run-level
// metrics of a dispatch simulation.

package sim

import (
	"fmt"
	"io"
)

// Stats are the dashboard figures for a record collection.
type Stats struct {
	Total     int // number of records
	Sent      int // sent, awaiting confirmation
	Confirmed int // confirmed by the provider or marked done manually
	Open      int // Total - Confirmed
}

// ComputeStats counts records per dashboard bucket.
func ComputeStats(records []Record) Stats {
	s := Stats{Total: len(records)}
	for i := range records {
		switch records[i].Status {
		case StatusSent:
			s.Sent++
		case StatusConfirmed, StatusManualDone:
			s.Confirmed++
		}
	}
	s.Open = s.Total - s.Confirmed
	return s
}

// Progress returns the confirmed share in percent, rounded down. Empty collections report 0.
func (s Stats) Progress() int {
	if s.Total == 0 {
		return 0
	}
	return s.Confirmed * 100 / s.Total
}

// Metrics aggregates statistics about a simulation run for final reporting.
type Metrics struct {
	RecordsSent     int   // records moved to sent by the dispatch
	Confirmations   int   // sent → confirmed transitions made by ticks
	ManualOverrides int   // status changes applied by override events
	TicksExecuted   int   // ticks run before settling or reaching the horizon
	Settled         bool  // true when no record was left pending
	SettledAt       int64 // clock (ms) of the tick that settled the run
	SimEndedTime    int64 // clock (ms) when the run ended
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Print writes the run summary followed by the dashboard figures of records.
func (m *Metrics) Print(w io.Writer, records []Record) {
	stats := ComputeStats(records)
	fmt.Fprintln(w, "=== Dispatch Metrics ===")
	fmt.Fprintf(w, "Records Sent         : %d\n", m.RecordsSent)
	fmt.Fprintf(w, "Ticks Executed       : %d\n", m.TicksExecuted)
	fmt.Fprintf(w, "Confirmations        : %d\n", m.Confirmations)
	fmt.Fprintf(w, "Manual Overrides     : %d\n", m.ManualOverrides)
	if m.Settled {
		fmt.Fprintf(w, "Settled After        : %d ms\n", m.SettledAt)
	} else {
		fmt.Fprintf(w, "Settled After        : not settled (ended at %d ms)\n", m.SimEndedTime)
	}
	fmt.Fprintf(w, "Total / Sent / Confirmed / Open : %d / %d / %d / %d (%d%%)\n",
		stats.Total, stats.Sent, stats.Confirmed, stats.Open, stats.Progress())
}
