package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lemove/lemove/sim"
	"github.com/lemove/lemove/sim/catalog"
)

var (
	catalogCategory string // Restrict the listing to one category
	catalogSearch   string // Case-insensitive name/id filter
	catalogLogos    bool   // Print logo urls
)

// runCatalog lists providers grouped by category.
func runCatalog(w io.Writer, category, query string, logos bool, logo catalog.LogoOptions) error {
	if category != "" && !sim.IsValidCategory(category) {
		return fmt.Errorf("unknown category %q; valid: %v", category, sim.Categories)
	}
	matches := make(map[string]bool)
	for _, p := range catalog.Search(query) {
		matches[p.ID] = true
	}
	shown := 0
	for _, c := range sim.Categories {
		if category != "" && string(c) != category {
			continue
		}
		header := false
		for _, p := range catalog.ByCategory(c) {
			if !matches[p.ID] {
				continue
			}
			if !header {
				fmt.Fprintf(w, "== %s ==\n", c)
				header = true
			}
			line := fmt.Sprintf("  %-22s %s", p.ID, p.Name)
			if logos {
				if url := p.Logo(64, logo); url != "" {
					line += "  " + url
				}
				if p.LogoURL == "" && p.Domain != "" {
					line += "  (fallback " + catalog.FallbackLogoURL(p.Domain) + ")"
				}
			}
			fmt.Fprintln(w, line)
			shown++
		}
	}
	if shown == 0 {
		fmt.Fprintln(w, "No matching providers.")
	}
	return nil
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List known providers to pick from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := catalog.LogoOptions{ClientID: activeConfig.Catalog.LogoClientID}
		return runCatalog(cmd.OutOrStdout(), catalogCategory, catalogSearch, catalogLogos, opts)
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "Only list one category")
	catalogCmd.Flags().StringVar(&catalogSearch, "search", "", "Filter by name or id")
	catalogCmd.Flags().BoolVar(&catalogLogos, "logos", false, "Print logo urls")
}
