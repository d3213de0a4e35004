package arcgis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb/geojson"

	"stormgis/internal/core/model"
	"stormgis/internal/core/observability"
)

// Prober executes where-clause queries against one upstream layer at a
// time. It prefers the GeoJSON response format and falls back to the native
// Esri JSON encoding when the server rejects or mangles f=geojson.
type Prober struct {
	client  *http.Client
	logger  *slog.Logger
	timeout time.Duration
}

func NewProber(logger *slog.Logger, client *http.Client, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Prober{client: client, logger: logger, timeout: timeout}
}

func queryURL(endpoint, where, format string) string {
	params := url.Values{}
	params.Set("where", where)
	params.Set("outFields", "*")
	params.Set("returnGeometry", "true")
	params.Set("outSR", "4326")
	params.Set("f", format)
	return endpoint + "/query?" + params.Encode()
}

// Probe runs one predicate against one layer. The tagged result keeps a
// clean zero-feature answer distinct from an upstream failure so the
// resolver can advance candidates correctly.
func (p *Prober) Probe(ctx context.Context, endpoint, where string) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := p.fetch(ctx, queryURL(endpoint, where, "geojson"))
	if err == nil {
		if features, ok := parseGeoJSON(body); ok {
			return outcome(features, nil)
		}
		p.logger.Debug("geojson response unusable, retrying with esri json", "endpoint", endpoint)
	} else if ctx.Err() != nil {
		// timed out or canceled; the esri retry would fail the same way
		return ProbeResult{Outcome: Failed, Err: &model.UpstreamError{Endpoint: endpoint, Err: err}}
	}

	body, err = p.fetch(ctx, queryURL(endpoint, where, "json"))
	if err != nil {
		return ProbeResult{Outcome: Failed, Err: &model.UpstreamError{Endpoint: endpoint, Err: err}}
	}
	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ProbeResult{Outcome: Failed, Err: &model.UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("decode esri json: %w", err)}}
	}
	if resp.Error != nil {
		return ProbeResult{Outcome: Failed, Err: &model.UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("arcgis error %d: %s", resp.Error.Code, resp.Error.Message)}}
	}

	features := make([]model.Feature, 0, len(resp.Features))
	for _, f := range resp.Features {
		geom := Translate(f.Geometry)
		if geom == nil {
			continue
		}
		features = append(features, model.Feature{Geometry: geom, Attributes: f.Attributes})
	}
	return outcome(features, nil)
}

func (p *Prober) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := p.client.Do(req)
	observability.ObserveUpstreamLatency(hostOf(u), time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "unknown"
	}
	return u.Host
}

// parseGeoJSON accepts only a real FeatureCollection body. Servers that do
// not support f=geojson answer 200 with an error envelope or with esri
// json, both of which fail here and trigger the fallback.
func parseGeoJSON(body []byte) ([]model.Feature, bool) {
	var envelope struct {
		Type  string      `json:"type"`
		Error *queryError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false
	}
	if envelope.Error != nil || envelope.Type != "FeatureCollection" {
		return nil, false
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, false
	}
	features := make([]model.Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		features = append(features, model.Feature{
			Geometry:   f.Geometry,
			Attributes: map[string]any(f.Properties),
		})
	}
	return features, true
}

func outcome(features []model.Feature, err error) ProbeResult {
	if len(features) == 0 {
		return ProbeResult{Outcome: Empty, Err: err}
	}
	return ProbeResult{Outcome: Found, Features: features, Err: err}
}
