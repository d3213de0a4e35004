package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"stormgis/internal/bundle"
	"stormgis/internal/core/model"
	"stormgis/internal/encode"
)

type bulkItem struct {
	AssetID string `json:"assetId"`
	Dataset string `json:"dataset"`
}

type bulkRequest struct {
	Items          []bulkItem `json:"items"`
	DefaultDataset string     `json:"defaultDataset"`
	Format         string     `json:"format"`
}

// Bulk resolves many assets with a bounded worker pool and answers with a
// ZIP of the per-item files plus a manifest. One bad item degrades its
// manifest row, never the whole batch.
func (h *Handler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items must not be empty", nil)
		return
	}
	if len(req.Items) > h.bulkMaxItems {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("too many items: %d > %d", len(req.Items), h.bulkMaxItems), nil)
		return
	}
	format, err := encode.NormalizeFormat(req.Format)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	results := make([]bundle.Item, len(req.Items))
	g, gctx := errgroup.WithContext(r.Context())
	g.SetLimit(h.bulkWorkers)
	for i, item := range req.Items {
		g.Go(func() error {
			dataset := item.Dataset
			if dataset == "" {
				dataset = req.DefaultDataset
			}
			results[i] = h.bulkOne(gctx, item.AssetID, dataset, format)
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	for _, res := range results {
		if res.Status == bundle.StatusOK {
			succeeded++
		}
	}
	if succeeded == 0 {
		writeError(w, http.StatusNotFound, "no items resolved", itemSummaries(results))
		return
	}

	data, err := bundle.Build(results)
	if err != nil {
		h.fail(w, r, fmt.Errorf("assemble archive: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="bulk_export.zip"`)
	w.Header().Set("ETag", `"`+(&encode.File{Data: data}).Checksum()+`"`)
	_, _ = w.Write(data)
}

func (h *Handler) bulkOne(ctx context.Context, assetID, dataset, format string) bundle.Item {
	out := bundle.Item{AssetID: assetID, Dataset: dataset}
	m, err := h.res.Resolve(ctx, assetID, dataset)
	switch {
	case err == nil:
		file, encErr := encode.Encode(m.Feature, assetID, format)
		if encErr != nil {
			out.Status = bundle.StatusError
			out.Detail = encErr.Error()
			return out
		}
		out.Dataset = m.Dataset
		out.Status = bundle.StatusOK
		out.File = file
	case errors.Is(err, model.ErrNoFeature):
		out.Status = bundle.StatusNotFound
		out.Detail = "no feature found"
	default:
		out.Status = bundle.StatusError
		out.Detail = err.Error()
	}
	return out
}

func itemSummaries(items []bundle.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = fmt.Sprintf("%s: %s", it.AssetID, it.Status)
		if it.Detail != "" {
			out[i] += " (" + it.Detail + ")"
		}
	}
	return out
}
