package sim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Snapshot is a consistent copy of a Session's state.
type Snapshot struct {
	Move        MoveDetails
	Records     []Record
	Dispatching bool
}

// Session owns one move: its details, its records and the periodic dispatch
// task. Every mutation, user edit or tick, goes through the session lock, so
// there is a single serialized writer to the record collection.
type Session struct {
	mu          sync.Mutex
	move        MoveDetails
	records     []Record
	dispatching bool
	task        *PeriodicTask
	startedAt   time.Time
	ticks       int
	closed      bool

	ctx    context.Context
	cancel context.CancelFunc

	config    DispatchConfig
	rand      RandomSource
	ids       IDGenerator
	newTicker TickerFactory
	now       func() time.Time
	observer  Observer
	onChange  func(Snapshot)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDispatchConfig overrides the confirmation probability and tick period.
func WithDispatchConfig(config DispatchConfig) SessionOption {
	return func(s *Session) { s.config = config }
}

// WithRandomSource sets the source of confirmation draws.
func WithRandomSource(src RandomSource) SessionOption {
	return func(s *Session) { s.rand = src }
}

// WithIDGenerator sets the generator of record ids.
func WithIDGenerator(ids IDGenerator) SessionOption {
	return func(s *Session) { s.ids = ids }
}

// WithTickerFactory sets how the periodic dispatch timer is created.
func WithTickerFactory(f TickerFactory) SessionOption {
	return func(s *Session) { s.newTicker = f }
}

// WithNow sets the wall clock used for observer timestamps.
func WithNow(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithObserver adds an observer of dispatch progress.
func WithObserver(o Observer) SessionOption {
	return func(s *Session) {
		if existing, ok := s.observer.(Observers); ok {
			s.observer = append(existing, o)
			return
		}
		s.observer = Observers{s.observer, o}
	}
}

// WithChangeHook registers fn to receive a snapshot after every state change.
// It runs with the session lock held and must not call back into the Session.
func WithChangeHook(fn func(Snapshot)) SessionOption {
	return func(s *Session) { s.onChange = fn }
}

// NewSession creates a Session over a copy of records.
// Defaults: DefaultDispatchConfig, time-seeded draws, UUID ids, wall-clock ticker.
func NewSession(move MoveDetails, records []Record, opts ...SessionOption) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	owned := make([]Record, len(records))
	copy(owned, records)
	s := &Session{
		move:      move,
		records:   owned,
		ctx:       ctx,
		cancel:    cancel,
		config:    DefaultDispatchConfig(),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		ids:       UUIDGenerator{},
		newTicker: NewWallTicker,
		now:       time.Now,
		observer:  Observers(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Dispatching reports whether a dispatch is in progress.
func (s *Session) Dispatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatching
}

// Ticks returns how many ticks the current (or last) dispatch has run.
func (s *Session) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// SetMove applies patch to the move details.
func (s *Session) SetMove(patch MovePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.move = patch.Apply(s.move)
	s.changedLocked()
}

// AddRecord prepends a new record and returns its id.
func (s *Session) AddRecord(input RecordInput) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = Add(s.records, input, s.ids)
	s.changedLocked()
	return s.records[0].ID
}

// AddSelection adds one record per input, skipping providers already tracked.
func (s *Session) AddSelection(inputs []RecordInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = AddSelection(s.records, inputs, s.ids)
	s.changedLocked()
}

// UpdateRecord patches the record with the given id. Unknown ids are a no-op.
// A status in the patch is applied as-is, whatever the dispatch state.
func (s *Session) UpdateRecord(id string, patch RecordPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.records
	s.records = Update(before, id, patch)
	if sameSlice(before, s.records) {
		return
	}
	clock := s.clockLocked(s.now())
	for _, t := range Diff(before, s.records, true) {
		s.observer.Transitioned(clock, t)
	}
	s.changedLocked()
}

// RemoveRecord drops the record with the given id. Unknown ids are a no-op.
func (s *Session) RemoveRecord(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.records)
	s.records = Remove(s.records, id)
	if len(s.records) != before {
		s.changedLocked()
	}
}

// StartDispatch sends every not_contacted record and starts the periodic
// tick. It is a silent no-op (returns false) when either address is
// incomplete, there are no records, or the session is closed. While a
// dispatch is already running only the newly added records are sent.
func (s *Session) StartDispatch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !CanDispatch(s.move, s.records) {
		logrus.Debugf("dispatch skipped: closed=%v addressesComplete=%v records=%d",
			s.closed, s.move.AddressesComplete(), len(s.records))
		return false
	}

	now := s.now()
	if !s.dispatching {
		s.startedAt = now
		s.ticks = 0
	}
	clock := s.clockLocked(now)
	before := s.records
	awaiting := ComputeStats(before).Sent
	s.records = BeginDispatch(before)
	transitions := Diff(before, s.records, false)
	s.observer.DispatchStarted(clock, len(transitions), awaiting)
	for _, t := range transitions {
		s.observer.Transitioned(clock, t)
	}

	if !s.dispatching {
		s.dispatching = true
		s.task = StartPeriodic(s.ctx, s.newTicker(s.config.TickPeriod), s.tick)
		logrus.Infof("dispatch started: %d records sent, tick every %v", len(transitions), s.config.TickPeriod)
	}
	s.changedLocked()
	return true
}

// Wait blocks until the running dispatch settles, the session is closed or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	task := s.task
	s.mu.Unlock()
	if task == nil {
		return nil
	}
	select {
	case <-task.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the dispatch timer and rejects further dispatches.
// Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	task := s.task
	if !s.closed {
		s.closed = true
		s.dispatching = false
		s.task = nil
	}
	s.mu.Unlock()
	task.Cancel()
	s.cancel()
	task.Wait()
}

// tick runs on the periodic task's goroutine. The stopping condition is
// evaluated on the records produced by this tick.
func (s *Session) tick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.dispatching {
		return false
	}

	before := s.records
	s.records = Tick(before, s.rand, s.config.ConfirmProbability)
	s.ticks++
	clock := s.clockLocked(now)
	transitions := Diff(before, s.records, false)
	for _, t := range transitions {
		s.observer.Transitioned(clock, t)
	}

	if AnyPending(s.records) {
		if len(transitions) > 0 {
			s.changedLocked()
		}
		return true
	}

	s.dispatching = false
	s.task = nil
	s.observer.DispatchSettled(clock, s.ticks)
	logrus.Infof("dispatch settled after %d ticks", s.ticks)
	s.changedLocked()
	return false
}

func (s *Session) clockLocked(now time.Time) int64 {
	if s.startedAt.IsZero() {
		return 0
	}
	return now.Sub(s.startedAt).Milliseconds()
}

func (s *Session) snapshotLocked() Snapshot {
	records := make([]Record, len(s.records))
	copy(records, s.records)
	return Snapshot{Move: s.move, Records: records, Dispatching: s.dispatching}
}

func (s *Session) changedLocked() {
	if s.onChange != nil {
		s.onChange(s.snapshotLocked())
	}
}
