package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lemove/lemove/sim"
)

type badgeStyle struct {
	icon  string
	label string
	color *color.Color
}

// badges are the four fixed status badges.
var badges = map[sim.RecordStatus]badgeStyle{
	sim.StatusNotContacted: {"○", "not contacted", color.New(color.FgHiBlack)},
	sim.StatusSent:         {"➤", "sent", color.New(color.FgBlue)},
	sim.StatusConfirmed:    {"✓", "confirmed", color.New(color.FgGreen)},
	sim.StatusManualDone:   {"✔", "done manually", color.New(color.FgGreen)},
}

// Badge renders the status badge of a record.
func Badge(status sim.RecordStatus) string {
	b, ok := badges[status]
	if !ok {
		return string(status)
	}
	return b.color.Sprint(b.icon + " " + b.label)
}

// printRecords writes one line per record in collection order.
func printRecords(w io.Writer, records []sim.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No providers yet. Add one with `lemove add` or `lemove pick`.")
		return
	}
	for _, r := range records {
		line := fmt.Sprintf("%-36s  %-24s %-13s %s", r.ID, r.Name, r.Category, Badge(r.Status))
		if r.CustomerID != "" {
			line += "  #" + r.CustomerID
		}
		fmt.Fprintln(w, line)
	}
}

// printStats writes the dashboard figures.
func printStats(w io.Writer, stats sim.Stats) {
	fmt.Fprintf(w, "Total: %d  Sent: %d  Confirmed: %d  Open: %d  Progress: %d%%\n",
		stats.Total, stats.Sent, stats.Confirmed, stats.Open, stats.Progress())
}

// printMove writes the move details form.
func printMove(w io.Writer, m sim.MoveDetails) {
	fmt.Fprintf(w, "Old address:   %s\n", orDash(m.OldAddress.String()))
	fmt.Fprintf(w, "New address:   %s\n", orDash(m.NewAddress.String()))
	fmt.Fprintf(w, "Move date:     %s\n", orDash(m.MoveDate))
	fmt.Fprintf(w, "Already moved: %v\n", m.AlreadyMoved)
	fmt.Fprintf(w, "Name:          %s\n", orDash(m.FullName))
	fmt.Fprintf(w, "Email:         %s\n", orDash(m.Email))
	fmt.Fprintf(w, "Phone:         %s\n", orDash(m.Phone))
	fmt.Fprintf(w, "Birthday:      %s\n", orDash(m.Birthday))
	if m.AddressesComplete() {
		fmt.Fprintln(w, color.GreenString("Ready to dispatch"))
	} else {
		fmt.Fprintln(w, color.YellowString("Complete both addresses to dispatch"))
	}
}

func orDash(s string) string {
	if strings.Trim(s, " ,") == "" {
		return "-"
	}
	return s
}

// transitionPrinter is a sim.Observer that narrates a wall-clock dispatch.
type transitionPrinter struct {
	w io.Writer
}

func (p transitionPrinter) DispatchStarted(_ int64, sent, awaiting int) {
	if awaiting > 0 {
		fmt.Fprintf(p.w, "Dispatch started: %d providers notified, %d still awaiting an answer\n", sent, awaiting)
		return
	}
	fmt.Fprintf(p.w, "Dispatch started: %d providers notified\n", sent)
}

func (p transitionPrinter) Transitioned(clock int64, t sim.Transition) {
	if t.From == sim.StatusNotContacted && t.To == sim.StatusSent {
		return
	}
	fmt.Fprintf(p.w, "[%6.1fs] %-24s %s\n", float64(clock)/1000, t.Name, Badge(t.To))
}

func (p transitionPrinter) DispatchSettled(clock int64, ticks int) {
	fmt.Fprintf(p.w, "All providers answered after %d ticks (%.1fs)\n", ticks, float64(clock)/1000)
}
