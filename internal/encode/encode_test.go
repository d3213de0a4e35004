package encode

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"stormgis/internal/core/model"
)

func pointFeature() model.Feature {
	return model.Feature{
		Geometry: orb.Point{-77.3, 38.85},
		Attributes: map[string]any{
			"FACILITY_ID": "1373DP",
			"OWNER":       "O'Brien & Sons",
			"_assetId":    "1373DP",
		},
	}
}

func TestNormalizeFormat(t *testing.T) {
	cases := map[string]string{
		"":          FormatKML,
		"KML":       FormatKML,
		"geojson":   FormatGeoJSON,
		"json":      FormatGeoJSON,
		"shapefile": FormatShapefile,
		"shp":       FormatShapefile,
	}
	for in, want := range cases {
		got, err := NormalizeFormat(in)
		if err != nil || got != want {
			t.Fatalf("NormalizeFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := NormalizeFormat("gpx"); err == nil {
		t.Fatalf("unsupported format must error")
	}
}

func TestEncode_KML(t *testing.T) {
	f, err := Encode(pointFeature(), "1373DP", "kml")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if f.Name != "1373DP.kml" || f.ContentType != "application/vnd.google-earth.kml+xml" {
		t.Fatalf("file meta wrong: %+v", f)
	}
	body := string(f.Data)
	if strings.Count(body, "<Placemark>") != 1 {
		t.Fatalf("expected exactly one placemark:\n%s", body)
	}
	if !strings.Contains(body, "-77.3000000000,38.8500000000,0") {
		t.Fatalf("coordinates missing:\n%s", body)
	}
	if !strings.Contains(body, "O&apos;Brien &amp; Sons") {
		t.Fatalf("attribute values must be escaped:\n%s", body)
	}
}

func TestEncode_KMLPolygonWithHole(t *testing.T) {
	f := model.Feature{
		Geometry: orb.Polygon{
			{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
			{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}},
		},
		Attributes: map[string]any{"NAME": "pond"},
	}
	out, err := Encode(f, "pond", "kml")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	body := string(out.Data)
	if !strings.Contains(body, "<outerBoundaryIs>") || !strings.Contains(body, "<innerBoundaryIs>") {
		t.Fatalf("ring boundaries wrong:\n%s", body)
	}
}

func TestEncode_KMLDeterministic(t *testing.T) {
	a, err := Encode(pointFeature(), "1373DP", "kml")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(pointFeature(), "1373DP", "kml")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Fatalf("repeated encoding must be byte-identical")
	}
	if a.Checksum() != b.Checksum() {
		t.Fatalf("checksums differ for identical bytes")
	}
}

func TestEncode_GeoJSON(t *testing.T) {
	f, err := Encode(pointFeature(), "1373DP", "geojson")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(f.Data, &fc); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Fatalf("bad collection: %+v", fc)
	}
	got := fc.Features[0]
	if got.Geometry.Type != "Point" || got.Geometry.Coordinates[0] != -77.3 {
		t.Fatalf("bad geometry: %+v", got.Geometry)
	}
	if got.Properties["FACILITY_ID"] != "1373DP" {
		t.Fatalf("properties lost: %v", got.Properties)
	}
}

func TestEncode_ShapefileZip(t *testing.T) {
	f, err := Encode(pointFeature(), "1373DP", "shapefile")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if f.Name != "1373DP_shp.zip" || f.ContentType != "application/zip" {
		t.Fatalf("file meta wrong: %+v", f)
	}
	zr, err := zip.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	want := map[string]bool{"1373DP.shp": false, "1373DP.shx": false, "1373DP.dbf": false}
	for _, entry := range zr.File {
		if _, ok := want[entry.Name]; ok {
			want[entry.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("zip missing %s; entries: %v", name, names(zr))
		}
	}
}

func TestEncode_ShapefilePolygon(t *testing.T) {
	f := model.Feature{
		Geometry:   orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		Attributes: map[string]any{"VERY_LONG_FIELD_NAME": "v"},
	}
	if _, err := Encode(f, "poly", "shapefile"); err != nil {
		t.Fatalf("polygon shapefile: %v", err)
	}
}

func names(zr *zip.Reader) []string {
	out := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		out = append(out, f.Name)
	}
	return out
}

func TestSafeBaseName(t *testing.T) {
	cases := map[string]string{
		"1373DP":        "1373DP",
		"  1373 DP ":    "1373_DP",
		"a/b\\c":        "a-b-c",
		"weird///name":  "weird-name",
		"":              "asset",
		"O'Brien":       "O-Brien",
	}
	for in, want := range cases {
		if got := SafeBaseName(in); got != want {
			t.Fatalf("SafeBaseName(%q) = %q, want %q", in, got, want)
		}
	}
}
