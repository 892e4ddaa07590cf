package main

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scenefetch/internal/catalog"
	"github.com/sells-group/scenefetch/internal/sceneindex"
)

var locateCmd = &cobra.Command{
	Use:   "locate <lat> <lon>",
	Short: "Find catalog scenes covering or near a coordinate",
	Long:  "Reports which scene boxes contain the coordinate and the nearest scene centers.\nUse -- before negative coordinates, e.g.: scenefetch locate -- 40.7580 -73.9855",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return eris.Wrapf(err, "locate: parse latitude %q", args[0])
		}
		lon, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return eris.Wrapf(err, "locate: parse longitude %q", args[1])
		}
		if lat < -90 || lat > 90 {
			return eris.Errorf("locate: latitude %v out of range", lat)
		}
		if lon < -180 || lon > 180 {
			return eris.Errorf("locate: longitude %v out of range", lon)
		}

		cat, err := catalog.Load()
		if err != nil {
			return eris.Wrap(err, "locate")
		}

		ix, err := sceneindex.New(cat, cfg.Fetch.BoxSizeKm)
		if err != nil {
			return eris.Wrap(err, "locate: build index")
		}

		containing := ix.Containing(lat, lon)
		if len(containing) == 0 {
			fmt.Fprintf(out, "No scene box contains (%.4f, %.4f)\n", lat, lon)
		} else {
			fmt.Fprintf(out, "Scenes containing (%.4f, %.4f):\n", lat, lon)
			for _, s := range containing {
				fmt.Fprintf(out, "  %s/%s\n", s.Category, s.Location.Name)
			}
		}

		k, _ := cmd.Flags().GetInt("nearest")
		if k > 0 {
			fmt.Fprintf(out, "\nNearest %d scene centers:\n", k)
			for _, s := range ix.Nearest(lat, lon, k) {
				fmt.Fprintf(out, "  %-55s %9.4f %10.4f  (%s)\n",
					s.Location.Name, s.Location.Lat, s.Location.Lon, s.Category)
			}
		}
		return nil
	},
}

func init() {
	locateCmd.Flags().Int("nearest", 3, "also list the k nearest scene centers (0 to disable)")
	rootCmd.AddCommand(locateCmd)
}
