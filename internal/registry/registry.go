// Package registry holds the static table of queryable datasets. Every
// endpoint handler consumes this one table; there are no per-handler copies.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Convention selects how identifier variants are generated for a dataset.
type Convention int

const (
	// ConvPlain datasets take the trimmed, upper-cased id as-is.
	ConvPlain Convention = iota
	// ConvNumberSuffix datasets use the "number + letter suffix" id style
	// (e.g. 1373DP), written upstream with or without separators.
	ConvNumberSuffix
)

// Layer describes one queryable upstream map-service layer.
type Layer struct {
	// Endpoint is the base URL of the layer, no trailing slash, no /query.
	Endpoint string
	// IDFields are the attribute names plausibly holding the asset id,
	// in probe order. Never empty.
	IDFields []string
	// GeometryHint is advisory only (labeling); never required for
	// correctness.
	GeometryHint string
}

// Dataset is one registered dataset: a key, a human label, optional short
// aliases, and one or more layers probed in order.
type Dataset struct {
	Key        string
	Label      string
	Aliases    []string
	Convention Convention
	Layers     []Layer
}

// Registry resolves dataset names case-insensitively over keys, labels and
// aliases. Immutable after construction.
type Registry struct {
	datasets []Dataset
	index    map[string]int
}

// New builds a registry and fails fast on any ambiguous lookup string or
// malformed descriptor. Duplicate labels silently shadowing each other is
// exactly the defect this check exists to catch.
func New(datasets []Dataset) (*Registry, error) {
	r := &Registry{
		datasets: datasets,
		index:    make(map[string]int),
	}
	for i, ds := range datasets {
		if ds.Key == "" {
			return nil, fmt.Errorf("dataset %d has empty key", i)
		}
		if len(ds.Layers) == 0 {
			return nil, fmt.Errorf("dataset %q has no layers", ds.Key)
		}
		for _, l := range ds.Layers {
			if l.Endpoint == "" || len(l.IDFields) == 0 {
				return nil, fmt.Errorf("dataset %q has a layer without endpoint or id fields", ds.Key)
			}
		}
		names := append([]string{ds.Key, ds.Label}, ds.Aliases...)
		for _, name := range names {
			if name == "" {
				continue
			}
			norm := strings.ToLower(strings.TrimSpace(name))
			if prev, ok := r.index[norm]; ok && prev != i {
				return nil, fmt.Errorf("lookup name %q is claimed by both %q and %q",
					name, datasets[prev].Key, ds.Key)
			}
			r.index[norm] = i
		}
	}
	return r, nil
}

// Resolve accepts a key, label or alias, case-insensitively.
func (r *Registry) Resolve(name string) (*Dataset, bool) {
	i, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return &r.datasets[i], true
}

// Keys returns all dataset keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.datasets))
	for _, ds := range r.datasets {
		keys = append(keys, ds.Key)
	}
	sort.Strings(keys)
	return keys
}
