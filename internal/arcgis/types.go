// Package arcgis talks to ArcGIS REST query layers: it builds where-clause
// predicates, executes layer probes, and translates the native Esri JSON
// geometry encoding into orb geometries.
package arcgis

import "stormgis/internal/core/model"

// Geometry is the native Esri JSON geometry payload. Exactly one of the
// point pair, Points, Paths or Rings is populated.
type Geometry struct {
	X      *float64      `json:"x"`
	Y      *float64      `json:"y"`
	Points [][]float64   `json:"points"`
	Paths  [][][]float64 `json:"paths"`
	Rings  [][][]float64 `json:"rings"`
}

type esriFeature struct {
	Attributes map[string]any `json:"attributes"`
	Geometry   *Geometry      `json:"geometry"`
}

type queryResponse struct {
	Features []esriFeature `json:"features"`
	Error    *queryError   `json:"error"`
}

// ArcGIS servers report errors inside a 200 body.
type queryError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Outcome tags a probe result so callers can tell a clean zero-feature
// answer from an upstream failure instead of relying on truthy checks.
type Outcome int

const (
	Found Outcome = iota
	Empty
	Failed
)

// ProbeResult is the tagged result of one layer probe.
type ProbeResult struct {
	Outcome  Outcome
	Features []model.Feature
	Err      error
}
