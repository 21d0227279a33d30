package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTransitions int
	Dispatches       int
	ManualOverrides  int
	Confirmations    int
	MeanConfirmClock float64        // mean Clock of simulator confirmations (ms)
	MaxConfirmClock  int64          // latest simulator confirmation (ms)
	ByTarget         map[string]int // target status → count of transitions
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ByTarget: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.Dispatches = len(st.Dispatches)
	summary.TotalTransitions = len(st.Transitions)

	var clockSum int64
	for _, tr := range st.Transitions {
		summary.ByTarget[tr.To]++
		if tr.Manual {
			summary.ManualOverrides++
			continue
		}
		if tr.To == "confirmed" {
			summary.Confirmations++
			clockSum += tr.Clock
			if tr.Clock > summary.MaxConfirmClock {
				summary.MaxConfirmClock = tr.Clock
			}
		}
	}
	if summary.Confirmations > 0 {
		summary.MeanConfirmClock = float64(clockSum) / float64(summary.Confirmations)
	}

	return summary
}
