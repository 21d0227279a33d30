package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lemove/lemove/sim"
	"github.com/lemove/lemove/sim/telemetry"
)

// runDispatch sends every not-yet-contacted provider and waits, printing
// answers as they arrive, until all answered or ctx is done.
func runDispatch(ctx context.Context, w io.Writer, a *app) error {
	snap := a.session.Snapshot()
	if !sim.CanDispatch(snap.Move, snap.Records) {
		switch {
		case !snap.Move.AddressesComplete():
			fmt.Fprintln(w, "Nothing sent: complete both addresses with `lemove move set` first.")
		default:
			fmt.Fprintln(w, "Nothing sent: add providers with `lemove add` or `lemove pick` first.")
		}
		return nil
	}
	if !a.session.StartDispatch() {
		return fmt.Errorf("dispatch could not be started")
	}
	if err := a.session.Wait(ctx); err != nil {
		fmt.Fprintln(w, "Interrupted; progress so far is saved.")
	}
	printStats(w, sim.ComputeStats(a.session.Snapshot().Records))
	return nil
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Notify all providers and follow their confirmations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := cmd.OutOrStdout()
		reg := prometheus.NewRegistry()
		recorder := telemetry.New(reg)
		return withApp(func(a *app) error {
			if err := runDispatch(ctx, w, a); err != nil {
				return err
			}
			if dumpMetrics {
				return writeMetrics(w, reg)
			}
			return nil
		}, sim.WithObserver(transitionPrinter{w: w}), sim.WithObserver(recorder))
	},
}

func init() {
	dispatchCmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "Print Prometheus metrics of the run")
}
