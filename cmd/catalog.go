package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scenefetch/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the scene catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		cat, err := catalog.Load()
		if err != nil {
			return eris.Wrap(err, "catalog")
		}

		filter, _ := cmd.Flags().GetString("category")
		categories := cat.Categories
		if filter != "" {
			c, ok := cat.ByName(filter)
			if !ok {
				return eris.Errorf("catalog: unknown category %q", filter)
			}
			categories = []catalog.Category{c}
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		total := 0
		for _, c := range categories {
			total += len(c.Locations)
			fmt.Fprintf(out, "%s (%d locations)\n", c.Name, len(c.Locations))
			if !verbose {
				continue
			}
			for _, loc := range c.Locations {
				fmt.Fprintf(out, "  %-55s %9.4f %10.4f\n", loc.Name, loc.Lat, loc.Lon)
			}
		}
		fmt.Fprintf(out, "\n%d categories, %d locations total\n", len(categories), total)
		return nil
	},
}

func init() {
	catalogCmd.Flags().String("category", "", "show a single category")
	catalogCmd.Flags().BoolP("verbose", "v", false, "list individual locations")
	rootCmd.AddCommand(catalogCmd)
}
