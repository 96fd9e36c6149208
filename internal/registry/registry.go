// Package registry maps metric names to their display metadata: unit, icon,
// color, and the mock default shown before any reading exists.
//
// The fixed vital set is always registered. Extra metrics come from a
// catalog of categories the user picks from; anything outside both sets is
// unknown and resolves to zero metadata with an empty unit.
package registry

import (
	"github.com/healthsense/healthsense/internal/types"
)

// Metadata is the static display information for one metric
type Metadata struct {
	Unit         string `json:"unit"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	DefaultValue string `json:"default_value,omitempty"`
}

// VitalInfo pairs a fixed vital with its metadata, in dashboard order
type VitalInfo struct {
	Name types.VitalSign `json:"name"`
	Metadata
}

// Metric is one selectable entry in the extra-metric catalog
type Metric struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// Category groups related catalog metrics
type Category struct {
	Name    string   `json:"name"`
	Metrics []Metric `json:"metrics"`
}

// Registry resolves display metadata for metric names
type Registry interface {
	// Lookup returns the metadata for a metric and whether it is known
	Lookup(name string) (Metadata, bool)

	// Unit returns the registered unit for a metric, or "" when unknown
	Unit(name string) string

	// Vitals returns the fixed vital set in display order
	Vitals() []VitalInfo

	// Catalog returns the extra-metric categories the user can select from
	Catalog() []Category

	// InCatalog reports whether a metric name is a selectable extra metric
	InCatalog(name string) bool
}

type staticRegistry struct {
	vitals  []VitalInfo
	catalog []Category
	byName  map[string]Metadata
}

// Default returns the built-in registry: the five vitals plus the
// extra-metric catalog.
func Default() Registry {
	r := &staticRegistry{
		vitals:  defaultVitals(),
		catalog: defaultCatalog(),
		byName:  make(map[string]Metadata),
	}
	for _, v := range r.vitals {
		r.byName[string(v.Name)] = v.Metadata
	}
	for _, cat := range r.catalog {
		for _, m := range cat.Metrics {
			r.byName[m.Name] = Metadata{Unit: m.Unit, Icon: iconFor(m.Name), Color: colorNeutral}
		}
	}
	return r
}

func (r *staticRegistry) Lookup(name string) (Metadata, bool) {
	md, ok := r.byName[name]
	return md, ok
}

func (r *staticRegistry) Unit(name string) string {
	return r.byName[name].Unit
}

func (r *staticRegistry) Vitals() []VitalInfo {
	out := make([]VitalInfo, len(r.vitals))
	copy(out, r.vitals)
	return out
}

func (r *staticRegistry) Catalog() []Category {
	out := make([]Category, len(r.catalog))
	copy(out, r.catalog)
	return out
}

func (r *staticRegistry) InCatalog(name string) bool {
	for _, cat := range r.catalog {
		for _, m := range cat.Metrics {
			if m.Name == name {
				return true
			}
		}
	}
	return false
}
