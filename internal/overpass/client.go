// Package overpass is a minimal client for the Overpass map-data query API.
// It issues one synchronous POST per bounding box and classifies failures
// into a tagged FetchError; retries and pacing are the caller's concern.
package overpass

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scenefetch/internal/geobox"
)

const (
	// DefaultURL is the primary community Overpass endpoint.
	DefaultURL = "https://overpass-api.de/api/interpreter"

	// clientTimeoutBuffer is added to the server-side timeout so the server
	// gets a chance to answer before the client gives up.
	clientTimeoutBuffer = 10 * time.Second

	// bodyPrefixLimit bounds how much of an error response body is kept.
	bodyPrefixLimit = 500
)

// Options configures the client.
type Options struct {
	URL               string
	UserAgent         string
	ServerTimeoutSecs int
}

// Client performs Overpass queries.
type Client struct {
	http *http.Client
	opts Options
}

// NewClient creates a client whose HTTP timeout exceeds the server-side
// timeout by a fixed buffer.
func NewClient(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "scenefetch/1.0"
	}
	if opts.ServerTimeoutSecs <= 0 {
		opts.ServerTimeoutSecs = 180
	}
	clientTimeout := time.Duration(opts.ServerTimeoutSecs)*time.Second + clientTimeoutBuffer
	return &Client{
		http: &http.Client{Timeout: clientTimeout},
		opts: opts,
	}
}

// Timeout returns the client-side timeout bound.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// FetchBox posts the query for one box and returns the raw response body
// verbatim. Any failure is returned as a *FetchError.
func (c *Client) FetchBox(ctx context.Context, box geobox.Box) ([]byte, error) {
	query := BuildQuery(box, c.opts.ServerTimeoutSecs)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, strings.NewReader(query))
	if err != nil {
		return nil, &FetchError{
			Kind: KindUnexpected,
			Err:  eris.Wrap(err, "overpass: build request"),
		}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classify(err, time.Since(start))
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		prefix, _ := io.ReadAll(io.LimitReader(resp.Body, bodyPrefixLimit))
		return nil, &FetchError{
			Kind:       KindHTTPStatus,
			Status:     resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
			BodyPrefix: string(prefix),
			Elapsed:    time.Since(start),
			Err:        eris.Errorf("overpass: http %d from %s", resp.StatusCode, c.opts.URL),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classify(err, time.Since(start))
	}
	return body, nil
}

// classify maps a transport-level error onto the failure taxonomy.
func (c *Client) classify(err error, elapsed time.Duration) *FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{
			Kind:    KindTimeout,
			Elapsed: c.http.Timeout,
			Err:     eris.Wrap(err, "overpass: request timed out"),
		}
	}
	return &FetchError{
		Kind:    KindTransport,
		Elapsed: elapsed,
		Err:     eris.Wrap(err, "overpass: transport"),
	}
}
