// Package downloader walks the scene catalog in declared order, fetches one
// Overpass dataset per location, and persists each as an artifact file.
// Execution is strictly sequential; a fixed pacing interval separates the
// end of one network call from the start of the next, and individual
// failures never abort the batch.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/scenefetch/internal/catalog"
	"github.com/sells-group/scenefetch/internal/geobox"
	"github.com/sells-group/scenefetch/internal/overpass"
	"github.com/sells-group/scenefetch/internal/sanitize"
)

// Fetcher is the subset of the Overpass client the engine needs.
type Fetcher interface {
	FetchBox(ctx context.Context, box geobox.Box) ([]byte, error)
}

// Options configures one engine run.
type Options struct {
	OutputDir string
	BoxSizeKm float64
	Delay     time.Duration // minimum spacing between network calls
	Category  string        // restrict to one category when set
	DryRun    bool          // resolve paths and report without fetching
}

// Failure records one location that could not be downloaded.
type Failure struct {
	Category string
	Location string
	Path     string
	Err      error
}

// Summary accumulates the outcome of a run.
type Summary struct {
	RunID     string
	OutputDir string // absolute
	Attempted int
	Succeeded int
	Skipped   int // existing artifacts and dry-run entries
	Failed    int
	Failures  []Failure
}

// SucceededOrSkipped returns the success-class count reported to operators.
func (s *Summary) SucceededOrSkipped() int {
	return s.Succeeded + s.Skipped
}

// Engine drives the fetch-and-persist loop.
type Engine struct {
	cat     *catalog.Catalog
	fetcher Fetcher
	opts    Options
	limiter *rate.Limiter
}

// NewEngine creates an engine. The initial token bucket is full, so the
// first network call proceeds immediately; pace re-arms it after every
// completed call.
func NewEngine(cat *catalog.Catalog, f Fetcher, opts Options) *Engine {
	return &Engine{
		cat:     cat,
		fetcher: f,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.Delay), 1),
	}
}

// pace re-arms the inter-request pause once a network call has completed.
// The replacement bucket is drained at completion time, so the next limiter
// wait spans one full delay measured from the end of this call, not from its
// start. Time a request spends in flight never counts against the pause.
func (e *Engine) pace() {
	if e.opts.Delay <= 0 {
		return
	}
	e.limiter = rate.NewLimiter(rate.Every(e.opts.Delay), 1)
	e.limiter.ReserveN(time.Now(), 1)
}

// ArtifactPath returns the output path for one catalog location:
// {base}/{category}/{category}_{location}_{lat:.4f}_{lon:.4f}.osm
// with both name segments sanitized.
func ArtifactPath(baseDir, category string, loc catalog.Location) string {
	catName := sanitize.Name(category)
	filename := fmt.Sprintf("%s_%s_%.4f_%.4f.osm", catName, sanitize.Name(loc.Name), loc.Lat, loc.Lon)
	return filepath.Join(baseDir, catName, filename)
}

// Run processes the catalog location by location. It returns a non-nil
// summary alongside any error so partial progress is still reported when the
// context is canceled mid-batch.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	log := zap.L().With(
		zap.String("component", "downloader.engine"),
		zap.String("run_id", runID),
	)

	absDir, err := filepath.Abs(e.opts.OutputDir)
	if err != nil {
		return nil, eris.Wrap(err, "downloader: resolve output dir")
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "downloader: create output dir")
	}

	categories := e.cat.Categories
	if e.opts.Category != "" {
		cat, ok := e.cat.ByName(e.opts.Category)
		if !ok {
			return nil, eris.Errorf("downloader: unknown category %q", e.opts.Category)
		}
		categories = []catalog.Category{cat}
	}

	total := 0
	for _, c := range categories {
		total += len(c.Locations)
	}

	summary := &Summary{RunID: runID, OutputDir: absDir}

	log.Info("starting run",
		zap.Int("categories", len(categories)),
		zap.Int("locations", total),
		zap.String("output_dir", absDir),
		zap.Float64("box_size_km", e.opts.BoxSizeKm),
		zap.Duration("delay", e.opts.Delay),
		zap.Bool("dry_run", e.opts.DryRun),
	)

	for _, cat := range categories {
		catDir := filepath.Join(absDir, sanitize.Name(cat.Name))
		if err := os.MkdirAll(catDir, 0o755); err != nil {
			return summary, eris.Wrapf(err, "downloader: create category dir %s", catDir)
		}
		log.Info("processing category",
			zap.String("category", cat.Name),
			zap.Int("locations", len(cat.Locations)),
		)

		for _, loc := range cat.Locations {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			summary.Attempted++
			path := ArtifactPath(absDir, cat.Name, loc)

			locLog := log.With(
				zap.String("category", cat.Name),
				zap.String("location", loc.Name),
				zap.Int("progress", summary.Attempted),
				zap.Int("total", total),
			)

			if info, statErr := os.Stat(path); statErr == nil && info.Mode().IsRegular() && info.Size() > 0 {
				locLog.Info("artifact exists, skipping")
				summary.Skipped++
				continue
			}

			box := geobox.Compute(loc.Lat, loc.Lon, e.opts.BoxSizeKm)

			if e.opts.DryRun {
				locLog.Info("dry run, would fetch",
					zap.String("path", path),
					zap.Float64("min_lat", box.MinLat),
					zap.Float64("min_lon", box.MinLon),
					zap.Float64("max_lat", box.MaxLat),
					zap.Float64("max_lon", box.MaxLon),
				)
				summary.Skipped++
				continue
			}

			if err := e.limiter.Wait(ctx); err != nil {
				return summary, err
			}

			locLog.Info("querying overpass",
				zap.Float64("min_lat", box.MinLat),
				zap.Float64("min_lon", box.MinLon),
				zap.Float64("max_lat", box.MaxLat),
				zap.Float64("max_lon", box.MaxLon),
			)

			data, err := e.fetcher.FetchBox(ctx, box)
			e.pace()
			if err != nil {
				e.recordFailure(summary, locLog, cat.Name, loc.Name, path, err)
				continue
			}

			if err := os.WriteFile(path, data, 0o644); err != nil {
				// Don't leave a partial artifact that a re-run would skip over.
				_ = os.Remove(path)
				wrapped := &overpass.FetchError{
					Kind: overpass.KindUnexpected,
					Err:  eris.Wrapf(err, "downloader: write artifact %s", path),
				}
				e.recordFailure(summary, locLog, cat.Name, loc.Name, path, wrapped)
				continue
			}

			locLog.Info("artifact written",
				zap.String("path", path),
				zap.Int("bytes", len(data)),
			)
			summary.Succeeded++
		}
	}

	log.Info("run complete",
		zap.Int("attempted", summary.Attempted),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (e *Engine) recordFailure(s *Summary, log *zap.Logger, category, location, path string, err error) {
	s.Failed++
	s.Failures = append(s.Failures, Failure{
		Category: category,
		Location: location,
		Path:     path,
		Err:      err,
	})

	fields := []zap.Field{zap.Error(err)}
	var fe *overpass.FetchError
	if errors.As(err, &fe) {
		fields = append(fields, zap.String("kind", fe.Kind.String()))
		if fe.Kind == overpass.KindHTTPStatus {
			fields = append(fields,
				zap.Int("status", fe.Status),
				zap.String("body_prefix", fe.BodyPrefix),
			)
		}
		if hint := fe.Hint(); hint != "" {
			fields = append(fields, zap.String("hint", hint))
		}
	}
	log.Warn("fetch failed", fields...)
}
