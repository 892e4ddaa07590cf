// Package kmlexport renders the scene catalog as a KML document for visual
// inspection of catalog coverage in an earth viewer.
package kmlexport

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-kml/v2"

	"github.com/sells-group/scenefetch/internal/catalog"
	"github.com/sells-group/scenefetch/internal/geobox"
)

// Write emits one folder per category, and per location a center placemark
// plus the outline of its scene box of the given side length.
func Write(w io.Writer, cat *catalog.Catalog, boxSizeKm float64) error {
	doc := kml.Document(
		kml.Name("scenefetch catalog"),
		kml.Description(fmt.Sprintf("%d scenes in %d categories, %.1f km boxes",
			cat.TotalLocations(), len(cat.Categories), boxSizeKm)),
	)

	for _, c := range cat.Categories {
		folder := kml.Folder(kml.Name(c.Name))
		for _, loc := range c.Locations {
			box := geobox.Compute(loc.Lat, loc.Lon, boxSizeKm)

			folder.Add(kml.Placemark(
				kml.Name(loc.Name),
				kml.Point(kml.Coordinates(kml.Coordinate{Lon: loc.Lon, Lat: loc.Lat})),
			))
			folder.Add(kml.Placemark(
				kml.Name(loc.Name+"_box"),
				kml.Polygon(kml.OuterBoundaryIs(kml.LinearRing(
					kml.Coordinates(ringCoordinates(box)...),
				))),
			))
		}
		doc.Add(folder)
	}

	if err := kml.KML(doc).WriteIndent(w, "", "  "); err != nil {
		return eris.Wrap(err, "kmlexport: write document")
	}
	return nil
}

// ringCoordinates converts the box outline polygon into KML coordinates.
func ringCoordinates(box geobox.Box) []kml.Coordinate {
	ring := box.Polygon().Coords()[0]
	coords := make([]kml.Coordinate, len(ring))
	for i, c := range ring {
		coords[i] = kml.Coordinate{Lon: c[0], Lat: c[1]}
	}
	return coords
}
