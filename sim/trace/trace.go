package trace

// TraceLevel controls the verbosity of transition tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransitions captures every dispatch start and status change.
	TraceLevelTransitions TraceLevel = "transitions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTransitions: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelTransitions
}

// SimulationTrace collects dispatch and transition records during a run.
type SimulationTrace struct {
	Config      TraceConfig
	Dispatches  []DispatchRecord
	Transitions []TransitionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Dispatches:  make([]DispatchRecord, 0),
		Transitions: make([]TransitionRecord, 0),
	}
}

// RecordDispatch appends a dispatch record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	st.Dispatches = append(st.Dispatches, record)
}

// RecordTransition appends a transition record.
func (st *SimulationTrace) RecordTransition(record TransitionRecord) {
	st.Transitions = append(st.Transitions, record)
}
