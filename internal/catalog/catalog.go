// Package catalog holds the static scene catalog: named locations grouped by
// terrain/urban category. The data lives in an embedded YAML sidecar so the
// table stays declarative and ordered.
package catalog

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed scenes.yaml
var scenesYAML []byte

// Location is one named point in the catalog. Immutable once loaded.
type Location struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// Category is an ordered group of locations sharing a terrain/urban type.
type Category struct {
	Name      string     `yaml:"name"`
	Locations []Location `yaml:"locations"`
}

// Catalog is the full ordered scene table.
type Catalog struct {
	Categories []Category `yaml:"categories"`
}

// Load decodes and validates the embedded scene table.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(scenesYAML, &c); err != nil {
		return nil, eris.Wrap(err, "catalog: decode scenes.yaml")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Categories) == 0 {
		return eris.New("catalog: no categories defined")
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return eris.New("catalog: category with empty name")
		}
		if len(cat.Locations) == 0 {
			return eris.Errorf("catalog: category %s has no locations", cat.Name)
		}
		for _, loc := range cat.Locations {
			if loc.Name == "" {
				return eris.Errorf("catalog: %s: location with empty name", cat.Name)
			}
			if loc.Lat < -90 || loc.Lat > 90 {
				return eris.Errorf("catalog: %s/%s: latitude %v out of range", cat.Name, loc.Name, loc.Lat)
			}
			if loc.Lon < -180 || loc.Lon > 180 {
				return eris.Errorf("catalog: %s/%s: longitude %v out of range", cat.Name, loc.Name, loc.Lon)
			}
		}
	}
	return nil
}

// TotalLocations returns the number of locations across all categories.
func (c *Catalog) TotalLocations() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Locations)
	}
	return n
}

// ByName returns the category with the given name.
func (c *Catalog) ByName(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}
