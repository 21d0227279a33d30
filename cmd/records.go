package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lemove/lemove/sim"
	"github.com/lemove/lemove/sim/catalog"
)

var (
	recordName       string // Display name of the provider
	recordCategory   string // accounts, insurance, subscriptions or other
	recordCustomerID string // Customer/account number at the provider
	recordProviderID string // Catalog id to pre-fill name and category
	recordStatus     string // Manual status override
)

// addOptions are the fields of a single added record.
type addOptions struct {
	ProviderID string
	Name       string
	Category   string
	CustomerID string
}

// recordInput validates opts, pre-filling name and category from the catalog.
func (o addOptions) recordInput() (sim.RecordInput, error) {
	in := sim.RecordInput{Name: o.Name, Category: sim.Category(o.Category), CustomerID: o.CustomerID}
	if o.ProviderID != "" {
		p, ok := catalog.Lookup(o.ProviderID)
		if !ok {
			return in, fmt.Errorf("unknown provider %q; see `lemove catalog`", o.ProviderID)
		}
		in.ProviderID = p.ID
		if in.Name == "" {
			in.Name = p.Name
		}
		if in.Category == "" {
			in.Category = p.Category
		}
	}
	if in.Name == "" {
		return in, fmt.Errorf("a provider name is required")
	}
	if in.Category == "" {
		in.Category = sim.CategoryOther
	}
	if !sim.IsValidCategory(string(in.Category)) {
		return in, fmt.Errorf("unknown category %q; valid: %v", in.Category, sim.Categories)
	}
	return in, nil
}

// runAdd adds one record and prints its id.
func runAdd(w io.Writer, a *app, opts addOptions) error {
	in, err := opts.recordInput()
	if err != nil {
		return err
	}
	id := a.session.AddRecord(in)
	fmt.Fprintf(w, "Added %s (%s)\n", in.Name, id)
	return nil
}

// runPick adds every known catalog id in selection order.
func runPick(w io.Writer, a *app, ids []string) error {
	inputs, unknown := catalog.Resolve(ids)
	for _, id := range unknown {
		logrus.Warnf("skipping unknown provider %q", id)
	}
	before := len(a.session.Snapshot().Records)
	a.session.AddSelection(inputs)
	added := len(a.session.Snapshot().Records) - before
	fmt.Fprintf(w, "Added %d of %d selected providers\n", added, len(ids))
	if len(unknown) > 0 && len(inputs) == 0 {
		return fmt.Errorf("no known provider in selection %v", unknown)
	}
	return nil
}

// updateOptions holds the fields a user chose to change.
type updateOptions struct {
	Name       *string
	Category   *string
	CustomerID *string
	Status     *string
}

// runUpdate patches one record. Status may be set to any value.
func runUpdate(w io.Writer, a *app, id string, opts updateOptions) error {
	if _, ok := sim.Find(a.session.Snapshot().Records, id); !ok {
		return fmt.Errorf("no record with id %q", id)
	}
	var patch sim.RecordPatch
	patch.Name = opts.Name
	patch.CustomerID = opts.CustomerID
	if opts.Category != nil {
		if !sim.IsValidCategory(*opts.Category) {
			return fmt.Errorf("unknown category %q; valid: %v", *opts.Category, sim.Categories)
		}
		c := sim.Category(*opts.Category)
		patch.Category = &c
	}
	if opts.Status != nil {
		if !sim.IsValidStatus(*opts.Status) {
			return fmt.Errorf("unknown status %q; valid: not_contacted, sent, confirmed, manual_done", *opts.Status)
		}
		s := sim.RecordStatus(*opts.Status)
		patch.Status = &s
	}
	a.session.UpdateRecord(id, patch)
	r, _ := sim.Find(a.session.Snapshot().Records, id)
	fmt.Fprintf(w, "Updated %s  %s\n", r.Name, Badge(r.Status))
	return nil
}

// runRemove drops one record. Unknown ids are reported but not an error.
func runRemove(w io.Writer, a *app, id string) error {
	r, ok := sim.Find(a.session.Snapshot().Records, id)
	if !ok {
		fmt.Fprintf(w, "No record with id %q\n", id)
		return nil
	}
	a.session.RemoveRecord(id)
	fmt.Fprintf(w, "Removed %s\n", r.Name)
	return nil
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a provider to notify",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := addOptions{
			ProviderID: recordProviderID,
			Name:       recordName,
			Category:   recordCategory,
			CustomerID: recordCustomerID,
		}
		return withApp(func(a *app) error { return runAdd(cmd.OutOrStdout(), a, opts) })
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick <provider-id>...",
	Short: "Add providers from the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error { return runPick(cmd.OutOrStdout(), a, args) })
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a provider or override its status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var opts updateOptions
		if flags.Changed("name") {
			opts.Name = &recordName
		}
		if flags.Changed("category") {
			opts.Category = &recordCategory
		}
		if flags.Changed("customer-id") {
			opts.CustomerID = &recordCustomerID
		}
		if flags.Changed("status") {
			opts.Status = &recordStatus
		}
		return withApp(func(a *app) error { return runUpdate(cmd.OutOrStdout(), a, args[0], opts) })
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error { return runRemove(cmd.OutOrStdout(), a, args[0]) })
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers and their status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			printRecords(cmd.OutOrStdout(), a.session.Snapshot().Records)
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dispatch progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			printStats(cmd.OutOrStdout(), sim.ComputeStats(a.session.Snapshot().Records))
			return nil
		})
	},
}

func init() {
	addCmd.Flags().StringVar(&recordProviderID, "provider", "", "Catalog provider id (pre-fills name and category)")
	addCmd.Flags().StringVar(&recordName, "name", "", "Provider name")
	addCmd.Flags().StringVar(&recordCategory, "category", "", "Category (accounts, insurance, subscriptions, other)")
	addCmd.Flags().StringVar(&recordCustomerID, "customer-id", "", "Customer or account number")

	updateCmd.Flags().StringVar(&recordName, "name", "", "New provider name")
	updateCmd.Flags().StringVar(&recordCategory, "category", "", "New category")
	updateCmd.Flags().StringVar(&recordCustomerID, "customer-id", "", "New customer or account number")
	updateCmd.Flags().StringVar(&recordStatus, "status", "", "Status override (not_contacted, sent, confirmed, manual_done)")
}
