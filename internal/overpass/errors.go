package overpass

import (
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a failed fetch so callers can branch on the failure class
// instead of inspecting error strings.
type Kind int

const (
	// KindTimeout means the client-side wait was exceeded.
	KindTimeout Kind = iota + 1
	// KindHTTPStatus means the server answered with a non-2xx status.
	KindHTTPStatus
	// KindTransport covers DNS, connection, and TLS level failures.
	KindTransport
	// KindUnexpected covers everything else (request construction, local I/O).
	KindUnexpected
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	case KindTransport:
		return "transport"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// FetchError is the tagged failure result of a single Overpass call.
type FetchError struct {
	Kind       Kind
	Status     int           // set for KindHTTPStatus
	Reason     string        // HTTP reason phrase, set for KindHTTPStatus
	BodyPrefix string        // bounded response-body prefix, set for KindHTTPStatus
	Elapsed    time.Duration // for KindTimeout this is the client-side bound
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("overpass: request timed out after %s", e.Elapsed)
	case KindHTTPStatus:
		return fmt.Sprintf("overpass: http %d %s", e.Status, e.Reason)
	default:
		return e.Err.Error()
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Hint returns operator advice for statuses that have a known remedy.
func (e *FetchError) Hint() string {
	if e.Kind != KindHTTPStatus {
		return ""
	}
	switch {
	case e.Status == http.StatusTooManyRequests:
		return "rate limited by the API; increase fetch.delay_secs"
	case e.Status >= 500:
		return "server overloaded or down; retry later"
	default:
		return ""
	}
}
