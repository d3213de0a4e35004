// Package model holds the shared types of the lookup pipeline.
package model

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// provenance attributes injected into a resolved feature
const (
	AttrAssetID   = "_assetId"
	AttrDataset   = "_dataset"
	AttrMatchMode = "_matchMode"
)

// Feature is the normalized result of one resolved lookup. Geometry is
// always geographic lon/lat (EPSG:4326); ring winding is not normalized.
type Feature struct {
	Geometry   orb.Geometry
	Attributes map[string]any
}

// Clone returns a copy with its own attribute map. The geometry is shared;
// nothing downstream mutates coordinates.
func (f Feature) Clone() Feature {
	attrs := make(map[string]any, len(f.Attributes)+3)
	for k, v := range f.Attributes {
		attrs[k] = v
	}
	return Feature{Geometry: f.Geometry, Attributes: attrs}
}

var (
	// ErrAssetIDRequired means the request carried no usable asset id.
	ErrAssetIDRequired = errors.New("assetId is required")

	// ErrDatasetRequired means no dataset was given and no shape heuristic
	// recognized the asset id. Auto-detection never falls back to an
	// arbitrary dataset.
	ErrDatasetRequired = errors.New("dataset is required: asset id shape not recognized")

	// ErrNoFeature means every candidate layer answered cleanly with zero
	// matches. Distinct from upstream failure.
	ErrNoFeature = errors.New("no feature found for asset id")
)

// DatasetNotFoundError reports an unresolvable dataset key, label or alias.
type DatasetNotFoundError struct {
	Name string
}

func (e *DatasetNotFoundError) Error() string {
	return fmt.Sprintf("unknown dataset %q", e.Name)
}

// UpstreamError wraps a failed probe against one layer endpoint. It is only
// surfaced to a caller when resolution exhausts all candidates without a
// single successful probe.
type UpstreamError struct {
	Endpoint string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream query failed for %s: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
