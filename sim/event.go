package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in ms of virtual time) and an Execute
// method that advances simulation state when invoked.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// DispatchEvent represents the user pressing "send" on the move.
type DispatchEvent struct {
	time int64 // Simulation time of the dispatch (in ms)
}

// Timestamp returns the scheduled time of the DispatchEvent.
func (e *DispatchEvent) Timestamp() int64 {
	return e.time
}

// Execute begins the dispatch and schedules the first TickEvent, unless the
// preconditions are unmet (silent no-op).
func (e *DispatchEvent) Execute(sim *Simulator) {
	logrus.Infof("<< Dispatch at %d ms", e.time)
	sim.BeginDispatch(e.time)
}

// TickEvent represents one periodic evaluation of the sent records.
type TickEvent struct {
	time int64 // Scheduled execution time (in ms)
}

// Timestamp returns the scheduled time of the TickEvent.
func (e *TickEvent) Timestamp() int64 {
	return e.time
}

// Execute runs the tick and schedules the next one while records are pending.
func (e *TickEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Tick at %d ms", e.time)
	sim.ProcessTick(e.time)
}

// OverrideEvent represents a user editing a record's status by hand.
type OverrideEvent struct {
	time     int64
	RecordID string
	Status   RecordStatus
}

// Timestamp returns the scheduled time of the OverrideEvent.
func (e *OverrideEvent) Timestamp() int64 {
	return e.time
}

// Execute applies the manual status change. Manual edits bypass the state machine.
func (e *OverrideEvent) Execute(sim *Simulator) {
	logrus.Infof("<< Override: %s -> %s at %d ms", e.RecordID, e.Status, e.time)
	sim.ApplyOverride(e.time, e.RecordID, e.Status)
}
