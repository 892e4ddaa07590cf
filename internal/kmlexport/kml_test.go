package kmlexport

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scenefetch/internal/catalog"
)

func TestWrite(t *testing.T) {
	cat := &catalog.Catalog{Categories: []catalog.Category{
		{
			Name: "Dense_Urban_High_Rise",
			Locations: []catalog.Location{
				{Name: "Times_Square_NYC", Lat: 40.7580, Lon: -73.9855},
			},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cat, 2))
	out := buf.String()

	assert.Contains(t, out, "<kml")
	assert.Contains(t, out, "<Folder>")
	assert.Contains(t, out, "<name>Dense_Urban_High_Rise</name>")
	assert.Contains(t, out, "<name>Times_Square_NYC</name>")
	assert.Contains(t, out, "<name>Times_Square_NYC_box</name>")
	assert.Contains(t, out, "<Polygon>")

	// Well-formed XML.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
}

func TestRingClosed(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cat, 2))

	// One point and one box placemark per catalog location.
	assert.Equal(t, 2*cat.TotalLocations(), strings.Count(buf.String(), "<Placemark>"))
	assert.Equal(t, len(cat.Categories), strings.Count(buf.String(), "<Folder>"))
}
