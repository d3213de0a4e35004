package api

import (
	"fmt"
	"net/http"

	"github.com/paulmach/orb/planar"
	h3 "github.com/uber/h3-go/v4"
)

// h3 resolution for the centroid cell; ~0.1 km2 cells, enough to group
// nearby assets
const locateH3Res = 9

type locateRequest struct {
	AssetID string `json:"assetId"`
	Dataset string `json:"dataset"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locateResponse struct {
	Centroid      latLng         `json:"centroid"`
	GoogleMapsURL string         `json:"googleMapsUrl"`
	H3Cell        string         `json:"h3Cell,omitempty"`
	Properties    map[string]any `json:"properties"`
}

// Locate resolves one asset and answers with its centroid, a Google Maps
// link and the full attribute payload.
func (h *Handler) Locate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	m, err := h.res.Resolve(r.Context(), req.AssetID, req.Dataset)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	center, _ := planar.CentroidArea(m.Feature.Geometry)
	resp := locateResponse{
		Centroid: latLng{Lat: center[1], Lng: center[0]},
		GoogleMapsURL: fmt.Sprintf(
			"https://www.google.com/maps/search/?api=1&query=%.6f,%.6f", center[1], center[0]),
		Properties: m.Feature.Attributes,
	}
	if cell, err := h3.LatLngToCell(h3.LatLng{Lat: center[1], Lng: center[0]}, locateH3Res); err == nil {
		resp.H3Cell = cell.String()
	}
	writeJSON(w, http.StatusOK, resp)
}
