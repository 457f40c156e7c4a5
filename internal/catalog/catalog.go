// Package catalog provides the static garment size-chart catalog. Charts are
// loaded once at startup and never mutated, so a Catalog is safe to share
// across concurrent requests.
package catalog

import (
	"github.com/ideal206/fitlens/internal/measure"
)

// Category identifies a garment category with its own size chart, weight
// table, and tolerance table.
type Category string

const (
	CategoryMensShirt   Category = "MENS_SHIRT"
	CategoryWomensTop   Category = "WOMENS_TOP"
	CategoryMensPants   Category = "MENS_PANTS"
	CategoryWomensPants Category = "WOMENS_PANTS"
	CategoryDress       Category = "DRESS"
)

// SizeSpec holds the garment-side measurements for one size. All values are
// centimeters. The mapping is sparse: a nil field means the chart does not
// specify that measurement, and it carries zero weight in scoring.
type SizeSpec struct {
	Chest         *float64    `json:"chest,omitempty"`
	Waist         *float64    `json:"waist,omitempty"`
	Hip           *float64    `json:"hip,omitempty"`
	ShoulderWidth *float64    `json:"shoulder_width,omitempty"`
	Inseam        *float64    `json:"inseam,omitempty"`
	HeightRange   *[2]float64 `json:"height_range,omitempty"`
}

// Value returns the point value for a measurement name, with ok=false when
// the chart does not specify it. Height is only ever specified as a range;
// use HeightRange for it.
func (s SizeSpec) Value(name measure.Name) (float64, bool) {
	var p *float64
	switch name {
	case measure.Chest:
		p = s.Chest
	case measure.Waist:
		p = s.Waist
	case measure.Hip:
		p = s.Hip
	case measure.ShoulderWidth:
		p = s.ShoulderWidth
	case measure.Inseam:
		p = s.Inseam
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Size pairs a size label with its specification.
type Size struct {
	Label string `json:"size"`
	SizeSpec
}

// Chart is the ordered size chart for one garment category. Order matters:
// it is the tie-break order for equal recommendation scores.
type Chart struct {
	Name  string `json:"name"`
	Sizes []Size `json:"sizes"`
}

// Find returns the size with the given label.
func (c Chart) Find(label string) (Size, bool) {
	for _, s := range c.Sizes {
		if s.Label == label {
			return s, true
		}
	}
	return Size{}, false
}

// CategoryInfo describes one available category for listing endpoints.
type CategoryInfo struct {
	Key  Category `json:"key"`
	Name string   `json:"name"`
}

// Catalog maps categories to their size charts.
type Catalog struct {
	charts map[Category]Chart
	order  []Category
}

// ChartEntry pairs a category with its chart for programmatic construction.
type ChartEntry struct {
	Category Category
	Chart    Chart
}

// New builds a catalog from ordered chart entries. A duplicate category
// replaces the earlier chart but keeps its original position.
func New(entries ...ChartEntry) *Catalog {
	c := &Catalog{charts: make(map[Category]Chart, len(entries))}
	for _, e := range entries {
		if _, dup := c.charts[e.Category]; !dup {
			c.order = append(c.order, e.Category)
		}
		c.charts[e.Category] = e.Chart
	}
	return c
}

// Chart returns the size chart for a category.
func (c *Catalog) Chart(cat Category) (Chart, bool) {
	chart, ok := c.charts[cat]
	return chart, ok
}

// Categories lists the available categories in load order.
func (c *Catalog) Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(c.order))
	for _, cat := range c.order {
		infos = append(infos, CategoryInfo{Key: cat, Name: c.charts[cat].Name})
	}
	return infos
}

// Len returns the number of loaded charts.
func (c *Catalog) Len() int {
	return len(c.charts)
}
