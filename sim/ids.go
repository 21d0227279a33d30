package sim

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces record ids that are unique within a collection.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random version-4 UUIDs.
// With a nil Reader it uses crypto randomness; a seeded Reader (for example
// PartitionedRNG.ForSubsystem(SubsystemIDs)) makes the id stream reproducible.
type UUIDGenerator struct {
	Reader io.Reader
}

// NewID returns a fresh UUID string.
func (g UUIDGenerator) NewID() string {
	if g.Reader == nil {
		return uuid.NewString()
	}
	id, err := uuid.NewRandomFromReader(g.Reader)
	if err != nil {
		// A failing reader must not yield duplicate ids.
		return uuid.NewString()
	}
	return id.String()
}

// CounterGenerator issues monotonically increasing ids of the form <Prefix><n>.
// Safe for concurrent use.
type CounterGenerator struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewCounterGenerator creates a CounterGenerator starting at 1.
func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{Prefix: prefix}
}

// NewID returns the next id in the sequence.
func (g *CounterGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s%d", g.Prefix, g.next)
}
