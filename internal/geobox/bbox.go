// Package geobox computes approximate lat/lon bounding boxes around a center
// point, treating Earth as a sphere. The approximation is adequate for boxes
// a few kilometers across; longitude accuracy degrades at high latitudes.
package geobox

import (
	"math"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

const (
	earthRadiusKm = 6371.0

	// Below this parallel-circle radius the longitude conversion would divide
	// by a near-zero value; a 1-degree reference latitude is used instead.
	minParallelRadiusKm = 0.1
)

// Box is an axis-aligned rectangle in degrees. Longitude values are not
// wrapped across the antimeridian.
type Box struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Compute returns the box of the given side length (km) centered on lat/lon.
func Compute(latDeg, lonDeg, sideKm float64) Box {
	halfKm := sideKm / 2.0
	dLat := degrees(halfKm / earthRadiusKm)

	parallelRadiusKm := earthRadiusKm * math.Cos(radians(latDeg))
	var dLon float64
	if parallelRadiusKm < minParallelRadiusKm {
		zap.L().Warn("near-polar latitude, approximating longitude extent at 1 degree reference",
			zap.Float64("lat", latDeg),
			zap.Float64("lon", lonDeg),
		)
		dLon = degrees(halfKm / (earthRadiusKm * math.Cos(radians(1))))
	} else {
		dLon = degrees(halfKm / parallelRadiusKm)
	}

	return Box{
		MinLat: latDeg - dLat,
		MinLon: lonDeg - dLon,
		MaxLat: latDeg + dLat,
		MaxLon: lonDeg + dLon,
	}
}

// Bounds returns the box as XY bounds with x=lon, y=lat.
func (b Box) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// Polygon returns the box outline as a closed XY polygon (x=lon, y=lat),
// wound counterclockwise from the southwest corner.
func (b Box) Polygon() *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY, []float64{
		b.MinLon, b.MinLat,
		b.MaxLon, b.MinLat,
		b.MaxLon, b.MaxLat,
		b.MinLon, b.MaxLat,
		b.MinLon, b.MinLat,
	}, []int{10})
}

// Contains reports whether the point lies within the box, edges included.
func (b Box) Contains(latDeg, lonDeg float64) bool {
	return b.Bounds().OverlapsPoint(geom.XY, geom.Coord{lonDeg, latDeg})
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
