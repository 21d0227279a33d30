// Package sim provides the provider dispatch engine for lemove.
//
// # Reading Guide
//
// Start with these three files to understand the dispatch kernel:
//   - record.go: Record lifecycle (not_contacted → sent → confirmed, plus manual_done)
//   - dispatch.go: BeginDispatch, Tick and the stopping condition
//   - records.go: pure Add/Update/Remove edits over a record collection
//
// # Drivers
//
// Two drivers share the same pure functions:
//   - session.go: Session, the wall-clock driver. One lock serializes user
//     edits and ticks; a PeriodicTask (scheduler.go) fires every tick period.
//   - simulator.go: Simulator, the virtual-time driver. An event heap of
//     DispatchEvent, TickEvent and OverrideEvent (event.go) reproduces a
//     dispatch for a given SimulationKey without sleeping.
//
// Both check the stopping condition on the records produced by a tick, so
// the tick that confirms the last pending record is also the last tick.
//
// # Sub-packages
//   - sim/catalog/: the static provider catalog and logo urls
//   - sim/store/: key-value persistence of the move and its records
//   - sim/trace/: transition trace recording and summaries
//   - sim/telemetry/: Prometheus metrics fed by the Observer interface
//
// # Key Interfaces
//   - RandomSource: confirmation draws (*rand.Rand, or scripted in tests)
//   - IDGenerator: record ids (UUIDGenerator, CounterGenerator)
//   - Ticker: the periodic timer behind Session
//   - Observer: dispatch progress callbacks (TraceObserver, telemetry.Recorder)
package sim
