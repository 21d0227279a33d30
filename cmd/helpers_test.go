package cmd

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/lemove/lemove/sim"
	"github.com/lemove/lemove/sim/store"
)

func init() {
	// badges are compared as plain text
	color.NoColor = true
}

// testConfig is the default config over in-memory storage.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Storage = StorageSection{Backend: store.BackendMemory}
	return cfg
}

// newTestApp builds an app over kv with deterministic record ids.
func newTestApp(t *testing.T, cfg Config, kv store.KV) *app {
	t.Helper()
	a, err := newApp(cfg, kv, sim.WithIDGenerator(sim.NewCounterGenerator("r")))
	require.NoError(t, err)
	return a
}

func completeMove() sim.MoveDetails {
	return demoMove()
}
