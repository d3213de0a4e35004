package api

import (
	"fmt"
	"net/http"

	"stormgis/internal/encode"
)

type mapRequest struct {
	AssetID string `json:"assetId"`
	Dataset string `json:"dataset"`
}

// Map resolves one asset and answers with a printable one-page PDF: the
// feature drawn over a static basemap.
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	if h.render == nil {
		writeError(w, http.StatusNotImplemented, "map rendering is not configured", nil)
		return
	}
	var req mapRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	m, err := h.res.Resolve(r.Context(), req.AssetID, req.Dataset)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	title := fmt.Sprintf("%s (%s)", req.AssetID, m.Dataset)
	pdf, err := h.render(m.Feature, title)
	if err != nil {
		h.fail(w, r, fmt.Errorf("render map: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", encode.SafeBaseName(req.AssetID)+"_map.pdf"))
	_, _ = w.Write(pdf)
}
