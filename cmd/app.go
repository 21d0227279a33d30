package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lemove/lemove/sim"
	"github.com/lemove/lemove/sim/store"
)

// app wires one command invocation: the persisted state, a Session over it
// and debounced savers fed by the session's change hook.
type app struct {
	config      Config
	kv          store.KV
	persister   *store.StatePersister
	session     *sim.Session
	moveSaver   *store.DebouncedSaver[sim.MoveDetails]
	recordSaver *store.DebouncedSaver[[]sim.Record]
	lastMove    sim.MoveDetails
}

// openApp opens the configured store, restores the move and records and
// builds a Session over them. extra options are appended to the defaults.
func openApp(cfg Config, extra ...sim.SessionOption) (*app, error) {
	kv, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, kv, extra...)
}

// newApp builds an app over an already opened kv. The app owns kv.
func newApp(cfg Config, kv store.KV, extra ...sim.SessionOption) (*app, error) {
	persister := store.NewStatePersister(kv)
	move, records, err := persister.Load()
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to load saved state: %w", err)
	}
	logrus.Debugf("restored %d records from %s storage", len(records), cfg.Storage.Backend)

	a := &app{
		config:    cfg,
		kv:        kv,
		persister: persister,
		lastMove:  move,
	}
	a.moveSaver = store.NewDebouncedSaver(store.MoveKey,
		time.Duration(cfg.Persistence.MoveDebounceMs)*time.Millisecond, persister.SaveMove)
	a.recordSaver = store.NewDebouncedSaver(store.RecordsKey,
		time.Duration(cfg.Persistence.RecordsDebounceMs)*time.Millisecond, persister.SaveRecords)

	opts := []sim.SessionOption{
		sim.WithDispatchConfig(cfg.DispatchConfig()),
		sim.WithChangeHook(a.persist),
	}
	a.session = sim.NewSession(move, records, append(opts, extra...)...)
	return a, nil
}

// persist runs under the session lock on every state change.
func (a *app) persist(s sim.Snapshot) {
	if s.Move != a.lastMove {
		a.lastMove = s.Move
		a.moveSaver.Schedule(s.Move)
	}
	a.recordSaver.Schedule(s.Records)
}

// Close stops the session, writes pending saves and closes the store.
func (a *app) Close() error {
	a.session.Close()
	a.moveSaver.Close()
	a.recordSaver.Close()
	return a.kv.Close()
}
