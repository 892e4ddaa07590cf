package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scenefetch/internal/catalog"
	"github.com/sells-group/scenefetch/internal/kmlexport"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as a KML file",
	Long:  "Exports every scene center and its bounding box outline as KML, for checking catalog coverage in an earth viewer.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return eris.Wrap(err, "export")
		}

		outPath, _ := cmd.Flags().GetString("out")
		f, err := os.Create(outPath)
		if err != nil {
			return eris.Wrapf(err, "export: create %s", outPath)
		}
		defer f.Close() //nolint:errcheck

		if err := kmlexport.Write(f, cat, cfg.Fetch.BoxSizeKm); err != nil {
			return eris.Wrap(err, "export")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d scenes to %s\n", cat.TotalLocations(), outPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "catalog.kml", "output KML path")
	rootCmd.AddCommand(exportCmd)
}
