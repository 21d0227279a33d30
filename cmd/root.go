package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lemove/lemove/sim"
)

var (
	// CLI flags shared by every command
	seed               int64   // Seed for confirmation draws and simulated record ids
	logLevel           string  // Log verbosity level
	configPath         string  // Path to lemove.yaml
	storeBackend       string  // Persistence backend: memory, file, sqlite or redis
	storePath          string  // Directory (file), database file (sqlite) or url (redis)
	confirmProbability float64 // Per-tick chance that a sent record is confirmed
	tickPeriodMs       int64   // Time between dispatch ticks (in ms)

	// activeConfig is resolved once per invocation by the root pre-run hook.
	activeConfig Config
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:          "lemove",
	Short:        "Notify your providers of a move and track their confirmations",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		activeConfig = cfg
		logrus.Debugf("config: storage=%s:%s p=%.2f tick=%dms",
			cfg.Storage.Backend, cfg.Storage.Path, cfg.Dispatch.ConfirmProbability, cfg.Dispatch.TickPeriodMs)
		return nil
	},
}

// resolveConfig loads lemove.yaml and applies the flags the user actually set.
// Unset flags never overwrite file values.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()
	cfg, err := LoadConfig(configPath, flags.Changed("config"))
	if err != nil {
		return cfg, err
	}
	if flags.Changed("store") {
		cfg.Storage.Backend = storeBackend
	}
	if flags.Changed("store-path") {
		cfg.Storage.Path = storePath
	}
	if flags.Changed("probability") {
		cfg.Dispatch.ConfirmProbability = confirmProbability
	}
	if flags.Changed("tick-period") {
		cfg.Dispatch.TickPeriodMs = tickPeriodMs
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// withApp opens the persisted state for the duration of fn.
// extra options are passed to the session.
func withApp(fn func(a *app) error, extra ...sim.SessionOption) error {
	a, err := openApp(activeConfig, extra...)
	if err != nil {
		return err
	}
	defer closeApp(a)
	return fn(a)
}

// closeApp closes a and logs a failure.
func closeApp(a *app) {
	if err := a.Close(); err != nil {
		logrus.Warnf("failed to close storage: %v", err)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&seed, "seed", 42, "Seed for simulated confirmation draws and record ids")
	flags.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	flags.StringVar(&configPath, "config", "lemove.yaml", "Path to the configuration file")
	flags.StringVar(&storeBackend, "store", "file", "Storage backend (memory, file, sqlite, redis)")
	flags.StringVar(&storePath, "store-path", ".lemove", "Storage directory (file), database file (sqlite) or redis:// url (redis)")
	flags.Float64Var(&confirmProbability, "probability", 0.35, "Per-tick chance that a sent provider confirms")
	flags.Int64Var(&tickPeriodMs, "tick-period", 1200, "Time between dispatch ticks (in ms)")

	rootCmd.AddCommand(moveCmd, addCmd, pickCmd, updateCmd, removeCmd, listCmd, statsCmd, catalogCmd, dispatchCmd, simulateCmd)
}
