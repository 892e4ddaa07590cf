package overpass

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scenefetch/internal/geobox"
)

var testBox = geobox.Box{MinLat: -0.009, MinLon: -0.009, MaxLat: 0.009, MaxLon: 0.009}

func TestFetchBox(t *testing.T) {
	payload := []byte("<?xml version=\"1.0\"?><osm>\x00\x01binary-ish</osm>")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "[out:xml][timeout:30];")
		assert.Contains(t, string(body), "node(-0.009,-0.009,0.009,0.009);")
		w.Write(payload)
	}))
	defer srv.Close()

	c := NewClient(Options{URL: srv.URL, UserAgent: "test-agent", ServerTimeoutSecs: 30})
	got, err := c.FetchBox(context.Background(), testBox)
	require.NoError(t, err)
	assert.Equal(t, payload, got, "body must be returned verbatim")
}

func TestFetchBoxHTTPError(t *testing.T) {
	long := strings.Repeat("x", 600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, long)
	}))
	defer srv.Close()

	c := NewClient(Options{URL: srv.URL, ServerTimeoutSecs: 30})
	_, err := c.FetchBox(context.Background(), testBox)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindHTTPStatus, fe.Kind)
	assert.Equal(t, http.StatusBadRequest, fe.Status)
	assert.Equal(t, "Bad Request", fe.Reason)
	assert.Len(t, fe.BodyPrefix, 500, "body prefix must be bounded")
	assert.Empty(t, fe.Hint())
}

func TestFetchBoxHints(t *testing.T) {
	tests := []struct {
		status   int
		wantHint string
	}{
		{http.StatusTooManyRequests, "delay"},
		{http.StatusGatewayTimeout, "retry later"},
		{http.StatusInternalServerError, "retry later"},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := NewClient(Options{URL: srv.URL, ServerTimeoutSecs: 30})
		_, err := c.FetchBox(context.Background(), testBox)
		srv.Close()

		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, KindHTTPStatus, fe.Kind)
		assert.Contains(t, fe.Hint(), tt.wantHint, "status %d", tt.status)
	}
}

func TestFetchBoxTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	c := NewClient(Options{URL: srv.URL, ServerTimeoutSecs: 30})
	c.http.Timeout = 50 * time.Millisecond

	_, err := c.FetchBox(context.Background(), testBox)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindTimeout, fe.Kind)
	assert.Equal(t, 50*time.Millisecond, fe.Elapsed, "timeout errors report the client-side bound")
	assert.Contains(t, fe.Error(), "timed out")
}

func TestFetchBoxTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(Options{URL: srv.URL, ServerTimeoutSecs: 30})
	_, err := c.FetchBox(context.Background(), testBox)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindTransport, fe.Kind)
}

func TestNewClientTimeoutBuffer(t *testing.T) {
	c := NewClient(Options{ServerTimeoutSecs: 1800})
	assert.Equal(t, 1800*time.Second+clientTimeoutBuffer, c.Timeout())
}
