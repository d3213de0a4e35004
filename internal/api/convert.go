package api

import (
	"fmt"
	"net/http"

	"stormgis/internal/encode"
)

type convertRequest struct {
	AssetID string `json:"assetId"`
	Dataset string `json:"dataset"`
	Format  string `json:"format"`
}

// Convert resolves one asset and streams it back as a downloadable file.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	format, err := encode.NormalizeFormat(req.Format)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	m, err := h.res.Resolve(r.Context(), req.AssetID, req.Dataset)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	file, err := encode.Encode(m.Feature, req.AssetID, format)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("ETag", `"`+file.Checksum()+`"`)
	_, _ = w.Write(file.Data)
}
