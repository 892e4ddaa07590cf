// Package sceneindex answers point-in-scene and nearest-scene queries over
// the catalog using an R-tree keyed on each location's bounding box.
package sceneindex

import (
	"github.com/dhconnelly/rtreego"
	"github.com/rotisserie/eris"

	"github.com/sells-group/scenefetch/internal/catalog"
	"github.com/sells-group/scenefetch/internal/geobox"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50

	// pointTolerance gives point queries a tiny non-zero extent; exact
	// membership is re-checked against the scene box afterwards.
	pointTolerance = 1e-9
)

// Scene is one catalog location together with its computed box.
type Scene struct {
	Category string
	Location catalog.Location
	Box      geobox.Box
}

type sceneItem struct {
	scene *Scene
	rect  *rtreego.Rect
}

func (si *sceneItem) Bounds() *rtreego.Rect {
	return si.rect
}

// Index is an immutable spatial index over the catalog.
type Index struct {
	tree *rtreego.Rtree
}

// New builds the index, computing one box of the given side length per
// catalog location. Rect coordinates are (lat, lon).
func New(cat *catalog.Catalog, boxSizeKm float64) (*Index, error) {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for _, c := range cat.Categories {
		for _, loc := range c.Locations {
			box := geobox.Compute(loc.Lat, loc.Lon, boxSizeKm)
			rect, err := rtreego.NewRect(
				rtreego.Point{box.MinLat, box.MinLon},
				[]float64{box.MaxLat - box.MinLat, box.MaxLon - box.MinLon},
			)
			if err != nil {
				return nil, eris.Wrapf(err, "sceneindex: rect for %s/%s", c.Name, loc.Name)
			}
			tree.Insert(&sceneItem{
				scene: &Scene{Category: c.Name, Location: loc, Box: box},
				rect:  rect,
			})
		}
	}
	return &Index{tree: tree}, nil
}

// Containing returns the scenes whose box contains the given point.
func (ix *Index) Containing(lat, lon float64) []*Scene {
	rect, err := rtreego.NewRect(
		rtreego.Point{lat, lon},
		[]float64{pointTolerance, pointTolerance},
	)
	if err != nil {
		return nil
	}

	var out []*Scene
	for _, r := range ix.tree.SearchIntersect(rect) {
		item := r.(*sceneItem)
		if item.scene.Box.Contains(lat, lon) {
			out = append(out, item.scene)
		}
	}
	return out
}

// Nearest returns up to k scenes whose boxes are closest to the point.
func (ix *Index) Nearest(lat, lon float64, k int) []*Scene {
	results := ix.tree.NearestNeighbors(k, rtreego.Point{lat, lon})
	out := make([]*Scene, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, r.(*sceneItem).scene)
	}
	return out
}

// Size returns the number of indexed scenes.
func (ix *Index) Size() int {
	return ix.tree.Size()
}
