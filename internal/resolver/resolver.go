// Package resolver runs the end-to-end lookup: dataset resolution, id
// normalization, predicate passes and layer probes, in order, until one
// layer yields a feature.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"stormgis/internal/arcgis"
	"stormgis/internal/core/model"
	"stormgis/internal/core/observability"
	"stormgis/internal/ident"
	"stormgis/internal/registry"
)

// Prober is the upstream seam; satisfied by *arcgis.Prober and by test
// stubs.
type Prober interface {
	Probe(ctx context.Context, endpoint, where string) arcgis.ProbeResult
}

// Match is one resolved feature plus its provenance.
type Match struct {
	Feature  model.Feature
	Dataset  string
	Endpoint string
	Mode     arcgis.MatchMode
}

type Resolver struct {
	reg    *registry.Registry
	prober Prober
	logger *slog.Logger
}

func New(logger *slog.Logger, reg *registry.Registry, prober Prober) *Resolver {
	return &Resolver{reg: reg, prober: prober, logger: logger}
}

// passes in precedence order. Ordering policy: both passes run against a
// layer before the next candidate layer is tried, so an exact hit in a
// later layer never outranks a fuzzy hit in an earlier one.
var passes = [2]arcgis.MatchMode{arcgis.ModeExact, arcgis.ModeFuzzy}

// Resolve looks up assetID against the dataset named by datasetName, or
// against the auto-detected dataset when datasetName is empty. The first
// layer/pass to yield at least one feature wins; its first feature is
// returned with provenance attributes injected.
func (r *Resolver) Resolve(ctx context.Context, assetID, datasetName string) (*Match, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, model.ErrAssetIDRequired
	}

	ds, err := r.dataset(assetID, datasetName)
	if err != nil {
		return nil, err
	}

	variants := ident.Variants(assetID, ds.Convention)
	var lastErr error
	anyProbeSucceeded := false

layers:
	for _, layer := range ds.Layers {
		for _, mode := range passes {
			where := arcgis.BuildWhere(layer.IDFields, variants, mode)
			res := r.prober.Probe(ctx, layer.Endpoint, where)
			switch res.Outcome {
			case arcgis.Failed:
				// not fatal for the whole resolution; advance to the
				// next candidate layer
				lastErr = res.Err
				r.logger.Warn("layer probe failed",
					"dataset", ds.Key, "endpoint", layer.Endpoint, "pass", string(mode), "err", res.Err)
				continue layers
			case arcgis.Empty:
				anyProbeSucceeded = true
			case arcgis.Found:
				anyProbeSucceeded = true
				m := &Match{
					Feature:  res.Features[0].Clone(),
					Dataset:  ds.Key,
					Endpoint: layer.Endpoint,
					Mode:     mode,
				}
				m.Feature.Attributes[model.AttrAssetID] = assetID
				m.Feature.Attributes[model.AttrDataset] = ds.Key
				m.Feature.Attributes[model.AttrMatchMode] = string(mode)
				observability.IncLookup(ds.Key, "found")
				r.logger.Info("asset resolved",
					"assetId", assetID, "dataset", ds.Key, "endpoint", layer.Endpoint, "pass", string(mode))
				return m, nil
			}
		}
	}

	if !anyProbeSucceeded && lastErr != nil {
		// every candidate failed; surface the upstream problem instead of
		// claiming the asset does not exist
		observability.IncLookup(ds.Key, "upstream_error")
		return nil, lastErr
	}
	observability.IncLookup(ds.Key, "not_found")
	return nil, model.ErrNoFeature
}

func (r *Resolver) dataset(assetID, datasetName string) (*registry.Dataset, error) {
	if datasetName != "" {
		ds, ok := r.reg.Resolve(datasetName)
		if !ok {
			return nil, &model.DatasetNotFoundError{Name: datasetName}
		}
		return ds, nil
	}
	key, ok := ident.DetectDataset(assetID)
	if !ok {
		return nil, model.ErrDatasetRequired
	}
	ds, ok := r.reg.Resolve(key)
	if !ok {
		// heuristics only return builtin keys; a miss here is a
		// registry/heuristic drift bug
		return nil, &model.DatasetNotFoundError{Name: key}
	}
	r.logger.Debug("dataset auto-detected", "assetId", assetID, "dataset", key)
	return ds, nil
}
