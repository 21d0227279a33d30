// Package trace provides transition recording for dispatch analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TransitionRecord captures a single status change of one provider record.
type TransitionRecord struct {
	RecordID string
	Clock    int64  // milliseconds since dispatch began
	From     string // previous status
	To       string // new status
	Manual   bool   // set by a user edit rather than a tick
}

// DispatchRecord captures one dispatch start.
type DispatchRecord struct {
	Clock    int64
	Sent     int // records moved from not_contacted to sent
	Awaiting int // records already sent when the dispatch began
}
