package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lemove/lemove/sim"
	"github.com/lemove/lemove/sim/catalog"
	"github.com/lemove/lemove/sim/telemetry"
	"github.com/lemove/lemove/sim/trace"
)

var (
	simProviders int      // Simulate the first N catalog providers instead of the saved records
	simHorizonMs int64    // Virtual time limit (in ms)
	simDemoMove  bool     // Use sample addresses instead of the saved move
	simOverrides []string // Scripted manual status changes, <id>@<ms>=<status>
	traceLevel   string   // Transition trace verbosity
	dumpMetrics  bool     // Print Prometheus metrics after the run
)

// simulateOptions configure one virtual-time run.
type simulateOptions struct {
	Seed      int64
	Horizon   int64
	Providers int
	DemoMove  bool
	Trace     trace.TraceLevel
	Metrics   bool
	Overrides []scriptedOverride
}

// scriptedOverride is a manual status change applied at a virtual time.
type scriptedOverride struct {
	RecordID string
	At       int64
	Status   sim.RecordStatus
}

// parseOverride reads "<id>@<ms>=<status>", e.g. "r1@2400=manual_done".
func parseOverride(s string) (scriptedOverride, error) {
	target, status, ok := strings.Cut(s, "=")
	at := strings.LastIndex(target, "@")
	if !ok || at <= 0 {
		return scriptedOverride{}, fmt.Errorf("invalid override %q; want <id>@<ms>=<status>", s)
	}
	ms, err := strconv.ParseInt(target[at+1:], 10, 64)
	if err != nil || ms < 0 {
		return scriptedOverride{}, fmt.Errorf("invalid override time in %q; want milliseconds >= 0", s)
	}
	if !sim.IsValidStatus(status) {
		return scriptedOverride{}, fmt.Errorf("invalid override status %q; valid: not_contacted, sent, confirmed, manual_done", status)
	}
	return scriptedOverride{RecordID: target[:at], At: ms, Status: sim.RecordStatus(status)}, nil
}

// demoMove is a complete sample move for --demo runs.
func demoMove() sim.MoveDetails {
	return sim.MoveDetails{
		OldAddress: sim.Address{Street: "Torstraße 1", PostalCode: "10119", City: "Berlin"},
		NewAddress: sim.Address{Street: "Marienplatz 8", PostalCode: "80331", City: "München"},
	}
}

// runSimulate replays a dispatch of the saved (or demo) state in virtual time.
// The saved state itself is never modified.
func runSimulate(w io.Writer, cfg Config, snap sim.Snapshot, opts simulateOptions) (*sim.Simulator, error) {
	move := snap.Move
	if opts.DemoMove {
		move = demoMove()
	}
	s := sim.NewSimulator(cfg.DispatchConfig(), opts.Horizon, sim.NewSimulationKey(opts.Seed), move, snap.Records)
	if opts.Providers > 0 {
		ids := sim.UUIDGenerator{Reader: s.RNG().ForSubsystem(sim.SubsystemIDs)}
		all := catalog.All()
		n := min(opts.Providers, len(all))
		inputs := make([]sim.RecordInput, n)
		for i := range inputs {
			inputs[i] = all[i].Input()
		}
		s.Records = sim.AddSelection(nil, inputs, ids)
	}
	if !sim.CanDispatch(s.Move, s.Records) {
		return nil, fmt.Errorf("nothing to simulate: need both addresses complete (or --demo) and at least one provider (or --providers N)")
	}

	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: opts.Trace})
	reg := prometheus.NewRegistry()
	s.SetObserver(sim.Observers{sim.TraceObserver{Trace: tr}, telemetry.New(reg)})
	s.ScheduleDispatch(0)
	for _, o := range opts.Overrides {
		if _, ok := sim.Find(s.Records, o.RecordID); !ok {
			return nil, fmt.Errorf("override targets unknown record %q; see `lemove list`", o.RecordID)
		}
		s.ScheduleOverride(o.At, o.RecordID, o.Status)
	}
	s.Run()

	s.Metrics.Print(w, s.Records)
	if tr.Config.Enabled() {
		printTraceSummary(w, trace.Summarize(tr))
	}
	if opts.Metrics {
		if err := writeMetrics(w, reg); err != nil {
			return s, err
		}
	}
	return s, nil
}

func printTraceSummary(w io.Writer, sum *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Transitions          : %d\n", sum.TotalTransitions)
	fmt.Fprintf(w, "Confirmations        : %d\n", sum.Confirmations)
	fmt.Fprintf(w, "Manual Overrides     : %d\n", sum.ManualOverrides)
	if sum.Confirmations > 0 {
		fmt.Fprintf(w, "Mean Time To Confirm : %.0f ms\n", sum.MeanConfirmClock)
		fmt.Fprintf(w, "Last Confirmation    : %d ms\n", sum.MaxConfirmClock)
	}
}

// writeMetrics prints every gathered family in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	fmt.Fprintln(w, "=== Prometheus Metrics ===")
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a dispatch in virtual time with a fixed seed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("invalid trace level %q; valid: none, transitions", traceLevel)
		}
		var overrides []scriptedOverride
		for _, raw := range simOverrides {
			o, err := parseOverride(raw)
			if err != nil {
				return err
			}
			overrides = append(overrides, o)
		}
		opts := simulateOptions{
			Seed:      seed,
			Horizon:   simHorizonMs,
			Providers: simProviders,
			DemoMove:  simDemoMove,
			Trace:     trace.TraceLevel(traceLevel),
			Metrics:   dumpMetrics,
			Overrides: overrides,
		}
		return withApp(func(a *app) error {
			logrus.Infof("simulating with seed=%d p=%.2f tick=%dms", opts.Seed,
				activeConfig.Dispatch.ConfirmProbability, activeConfig.Dispatch.TickPeriodMs)
			_, err := runSimulate(cmd.OutOrStdout(), activeConfig, a.session.Snapshot(), opts)
			return err
		})
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simProviders, "providers", 0, "Simulate the first N catalog providers instead of the saved ones")
	simulateCmd.Flags().Int64Var(&simHorizonMs, "horizon", math.MaxInt64, "Virtual time limit (in ms)")
	simulateCmd.Flags().BoolVar(&simDemoMove, "demo", false, "Use sample addresses instead of the saved move")
	simulateCmd.Flags().StringArrayVar(&simOverrides, "override", nil, "Manual status change at a virtual time, <id>@<ms>=<status> (repeatable)")
	simulateCmd.Flags().StringVar(&traceLevel, "trace", "transitions", "Trace level (none, transitions)")
	simulateCmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "Print Prometheus metrics of the run")
}
