package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scenefetch/internal/catalog"
	"github.com/sells-group/scenefetch/internal/downloader"
	"github.com/sells-group/scenefetch/internal/overpass"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download OSM data for every catalog scene",
	Long: `Walks the scene catalog in order, computes a bounding box per location, and
downloads the matching OSM extract from the Overpass API into one .osm file
per scene. Existing artifacts are skipped, so interrupted runs can simply be
restarted. Individual failures are reported and do not abort the batch.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cat, err := catalog.Load()
		if err != nil {
			return eris.Wrap(err, "fetch")
		}

		category, _ := cmd.Flags().GetString("category")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		client := overpass.NewClient(overpass.Options{
			URL:               cfg.Overpass.URL,
			UserAgent:         cfg.Overpass.UserAgent,
			ServerTimeoutSecs: cfg.Overpass.TimeoutSecs,
		})

		engine := downloader.NewEngine(cat, client, downloader.Options{
			OutputDir: cfg.Fetch.OutputDir,
			BoxSizeKm: cfg.Fetch.BoxSizeKm,
			Delay:     cfg.Fetch.Delay(),
			Category:  category,
			DryRun:    dryRun,
		})

		summary, err := engine.Run(ctx)
		if summary != nil {
			printSummary(cmd.OutOrStdout(), summary)
		}
		if err != nil {
			return eris.Wrap(err, "fetch")
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("category", "", "restrict the run to one catalog category")
	fetchCmd.Flags().Bool("dry-run", false, "resolve paths and report without any network calls")
	rootCmd.AddCommand(fetchCmd)
}

func printSummary(out io.Writer, s *downloader.Summary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "--- Download Summary ---")
	fmt.Fprintf(out, "Total locations attempted: %d\n", s.Attempted)
	fmt.Fprintf(out, "Successfully downloaded (or skipped existing): %d\n", s.SucceededOrSkipped())
	fmt.Fprintf(out, "Failed downloads: %d\n", s.Failed)
	for _, f := range s.Failures {
		fmt.Fprintf(out, "  %s/%s: %v\n", f.Category, f.Location, f.Err)
	}
	fmt.Fprintf(out, "Data saved in subfolders under: %s\n", s.OutputDir)
}
