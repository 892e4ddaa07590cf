package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scenefetch/internal/catalog"
	"github.com/sells-group/scenefetch/internal/downloader"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which scene artifacts exist on disk",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		cat, err := catalog.Load()
		if err != nil {
			return eris.Wrap(err, "status")
		}

		baseDir, err := filepath.Abs(cfg.Fetch.OutputDir)
		if err != nil {
			return eris.Wrap(err, "status: resolve output dir")
		}

		missingOnly, _ := cmd.Flags().GetBool("missing")

		totalPresent, total := 0, 0
		for _, c := range cat.Categories {
			present := 0
			var missing []string
			for _, loc := range c.Locations {
				path := downloader.ArtifactPath(baseDir, c.Name, loc)
				if info, statErr := os.Stat(path); statErr == nil && info.Mode().IsRegular() && info.Size() > 0 {
					present++
				} else {
					missing = append(missing, loc.Name)
				}
			}
			totalPresent += present
			total += len(c.Locations)

			fmt.Fprintf(out, "%-35s %d/%d\n", c.Name, present, len(c.Locations))
			if missingOnly {
				for _, name := range missing {
					fmt.Fprintf(out, "  missing: %s\n", name)
				}
			}
		}

		fmt.Fprintf(out, "\n%d/%d artifacts present under %s\n", totalPresent, total, baseDir)
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("missing", false, "list missing locations per category")
	rootCmd.AddCommand(statusCmd)
}
