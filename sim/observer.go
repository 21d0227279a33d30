package sim

import "github.com/lemove/lemove/sim/trace"

// Observer is notified of dispatch progress. Clock values are milliseconds
// since the dispatch began (virtual time for Simulator, wall time for Session).
// Callbacks run on the serialized update path and must not call back into the
// Session that invoked them.
//
// DispatchStarted reports the records this dispatch sent and the records
// that were already sent when it began (restored from storage, or still
// awaiting from a running dispatch). The two add up to every record
// awaiting confirmation right after the dispatch.
type Observer interface {
	DispatchStarted(clock int64, sent, awaiting int)
	Transitioned(clock int64, t Transition)
	DispatchSettled(clock int64, ticks int)
}

// Observers fans every callback out to each element in order.
type Observers []Observer

func (o Observers) DispatchStarted(clock int64, sent, awaiting int) {
	for _, obs := range o {
		obs.DispatchStarted(clock, sent, awaiting)
	}
}

func (o Observers) Transitioned(clock int64, t Transition) {
	for _, obs := range o {
		obs.Transitioned(clock, t)
	}
}

func (o Observers) DispatchSettled(clock int64, ticks int) {
	for _, obs := range o {
		obs.DispatchSettled(clock, ticks)
	}
}

// TraceObserver records dispatches and transitions into a SimulationTrace.
// A nil Trace or a disabled level records nothing.
type TraceObserver struct {
	Trace *trace.SimulationTrace
}

func (o TraceObserver) enabled() bool {
	return o.Trace != nil && o.Trace.Config.Enabled()
}

func (o TraceObserver) DispatchStarted(clock int64, sent, awaiting int) {
	if o.enabled() {
		o.Trace.RecordDispatch(trace.DispatchRecord{Clock: clock, Sent: sent, Awaiting: awaiting})
	}
}

func (o TraceObserver) Transitioned(clock int64, t Transition) {
	if o.enabled() {
		o.Trace.RecordTransition(trace.TransitionRecord{
			RecordID: t.RecordID,
			Clock:    clock,
			From:     string(t.From),
			To:       string(t.To),
			Manual:   t.Manual,
		})
	}
}

func (o TraceObserver) DispatchSettled(int64, int) {}
