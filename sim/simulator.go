// sim/simulator.go
package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// queuedEvent pairs an event with its insertion order so that events sharing
// a timestamp execute first-in first-out.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp, then insertion.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator runs a dispatch in virtual time: no sleeping, fully reproducible
// for a given SimulationKey. It shares BeginDispatch/Tick with Session.
type Simulator struct {
	Clock   int64 // virtual time in ms
	Horizon int64 // the run ends once the clock passes this value
	// EventQueue has all pending events: dispatch, ticks and manual overrides
	EventQueue EventQueue
	Config     DispatchConfig
	Move       MoveDetails
	Records    []Record
	// Dispatching is the in-progress flag: set by a successful dispatch,
	// cleared by the tick that leaves no record pending.
	Dispatching bool
	// TickEvent is the next scheduled tick, nil when no dispatch is running.
	TickEvent Event
	// Rand supplies the confirmation draws; defaults to the dispatch subsystem of the key.
	Rand    RandomSource
	Metrics *Metrics

	rng      *PartitionedRNG
	observer Observer
	seq      uint64
}

// NewSimulator creates a Simulator over a copy of records.
func NewSimulator(config DispatchConfig, horizon int64, key SimulationKey, move MoveDetails, records []Record) *Simulator {
	rng := NewPartitionedRNG(key)
	owned := make([]Record, len(records))
	copy(owned, records)
	return &Simulator{
		Clock:      0,
		Horizon:    horizon,
		EventQueue: make(EventQueue, 0),
		Config:     config,
		Move:       move,
		Records:    owned,
		Rand:       rng.ForSubsystem(SubsystemDispatch),
		Metrics:    NewMetrics(),
		rng:        rng,
		observer:   Observers(nil),
	}
}

// SetObserver replaces the observer notified of dispatch progress.
func (sim *Simulator) SetObserver(o Observer) {
	if o == nil {
		o = Observers(nil)
	}
	sim.observer = o
}

// RNG returns the partitioned RNG derived from the simulation key.
func (sim *Simulator) RNG() *PartitionedRNG {
	return sim.rng
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.seq++
	heap.Push(&sim.EventQueue, queuedEvent{ev: ev, seq: sim.seq})
}

// ScheduleDispatch schedules a dispatch at the given time.
func (sim *Simulator) ScheduleDispatch(at int64) {
	sim.Schedule(&DispatchEvent{time: at})
}

// ScheduleOverride schedules a manual status change of one record.
func (sim *Simulator) ScheduleOverride(at int64, recordID string, status RecordStatus) {
	sim.Schedule(&OverrideEvent{time: at, RecordID: recordID, Status: status})
}

// Run executes events in time order until the queue is empty or the horizon is passed.
func (sim *Simulator) Run() {
	for len(sim.EventQueue) > 0 {
		// peek: events past the horizon are not executed
		if sim.EventQueue[0].ev.Timestamp() > sim.Horizon {
			sim.Clock = sim.Horizon
			break
		}
		qe := heap.Pop(&sim.EventQueue).(queuedEvent)
		sim.Clock = qe.ev.Timestamp()
		logrus.Debugf("[%07d ms] Executing %T", sim.Clock, qe.ev)
		qe.ev.Execute(sim)
	}
	sim.Metrics.SimEndedTime = min(sim.Clock, sim.Horizon)
	logrus.Infof("[%07d ms] Simulation ended", sim.Clock)
}

// BeginDispatch applies the dispatch at time now. Unmet preconditions make it a no-op.
// A dispatch while one is running only sends the records added since; no second tick chain starts.
func (sim *Simulator) BeginDispatch(now int64) {
	if !CanDispatch(sim.Move, sim.Records) {
		logrus.Infof("dispatch skipped: addresses incomplete or no records")
		return
	}
	before := sim.Records
	awaiting := ComputeStats(before).Sent
	sim.Records = BeginDispatch(before)
	transitions := Diff(before, sim.Records, false)
	sim.Metrics.RecordsSent += len(transitions)
	sim.observer.DispatchStarted(now, len(transitions), awaiting)
	for _, t := range transitions {
		sim.observer.Transitioned(now, t)
	}
	if sim.Dispatching {
		return
	}
	sim.Dispatching = true
	sim.scheduleTick(now + sim.Config.TickPeriod.Milliseconds())
}

// ProcessTick applies one tick at time now, then checks the stopping condition
// on the updated records.
func (sim *Simulator) ProcessTick(now int64) {
	sim.TickEvent = nil
	before := sim.Records
	sim.Records = Tick(before, sim.Rand, sim.Config.ConfirmProbability)
	sim.Metrics.TicksExecuted++
	for _, t := range Diff(before, sim.Records, false) {
		sim.Metrics.Confirmations++
		sim.observer.Transitioned(now, t)
	}

	if !AnyPending(sim.Records) {
		sim.Dispatching = false
		sim.Metrics.Settled = true
		sim.Metrics.SettledAt = now
		sim.observer.DispatchSettled(now, sim.Metrics.TicksExecuted)
		logrus.Infof("[%07d ms] dispatch settled after %d ticks", now, sim.Metrics.TicksExecuted)
		return
	}
	sim.scheduleTick(now + sim.Config.TickPeriod.Milliseconds())
}

// ApplyOverride sets a record's status by hand. Unknown ids are ignored.
func (sim *Simulator) ApplyOverride(now int64, recordID string, status RecordStatus) {
	before := sim.Records
	sim.Records = SetStatus(before, recordID, status)
	for _, t := range Diff(before, sim.Records, true) {
		sim.Metrics.ManualOverrides++
		sim.observer.Transitioned(now, t)
	}
}

func (sim *Simulator) scheduleTick(at int64) {
	ev := &TickEvent{time: at}
	sim.TickEvent = ev
	sim.Schedule(ev)
}
