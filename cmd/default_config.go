package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lemove/lemove/sim"
	"github.com/lemove/lemove/sim/store"
)

// DispatchSection configures the provider response simulation.
type DispatchSection struct {
	ConfirmProbability float64 `yaml:"confirm_probability"`
	TickPeriodMs       int64   `yaml:"tick_period_ms"`
}

// StorageSection selects the persistence backend.
type StorageSection struct {
	Backend string `yaml:"backend"` // memory, file, sqlite or redis
	Path    string `yaml:"path"`    // directory for file, database file for sqlite, url for redis
}

// PersistenceSection holds the save debounce delays.
type PersistenceSection struct {
	MoveDebounceMs    int64 `yaml:"move_debounce_ms"`
	RecordsDebounceMs int64 `yaml:"records_debounce_ms"`
}

// CatalogSection configures logo urls.
type CatalogSection struct {
	LogoClientID string `yaml:"logo_client_id"`
}

// Config represents the full lemove.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Dispatch    DispatchSection    `yaml:"dispatch"`
	Storage     StorageSection     `yaml:"storage"`
	Persistence PersistenceSection `yaml:"persistence"`
	Catalog     CatalogSection     `yaml:"catalog"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Dispatch: DispatchSection{
			ConfirmProbability: sim.DefaultConfirmProbability,
			TickPeriodMs:       sim.DefaultTickPeriod.Milliseconds(),
		},
		Storage: StorageSection{
			Backend: store.BackendFile,
			Path:    ".lemove",
		},
		Persistence: PersistenceSection{
			MoveDebounceMs:    300,
			RecordsDebounceMs: 200,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults
// unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// strict: typos in lemove.yaml must cause errors
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config YAML %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.DispatchConfig().Validate(); err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	if !store.IsValidBackend(c.Storage.Backend) {
		return fmt.Errorf("storage: %w: %q", store.ErrUnknownBackend, c.Storage.Backend)
	}
	if c.Storage.Backend != store.BackendMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage: path is required for backend %q", c.Storage.Backend)
	}
	if c.Persistence.MoveDebounceMs < 0 || c.Persistence.RecordsDebounceMs < 0 {
		return fmt.Errorf("persistence: debounce delays must be >= 0")
	}
	return nil
}

// DispatchConfig converts the dispatch section.
func (c Config) DispatchConfig() sim.DispatchConfig {
	return sim.NewDispatchConfig(c.Dispatch.ConfirmProbability, time.Duration(c.Dispatch.TickPeriodMs)*time.Millisecond)
}
