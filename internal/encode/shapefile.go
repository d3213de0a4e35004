package encode

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"stormgis/internal/core/model"
)

// encodeShapefile writes the .shp/.shx/.dbf triple for a single-feature
// shapefile to a temp dir and returns them zipped.
func encodeShapefile(f model.Feature, base string) ([]byte, error) {
	shapeType, shape, err := toShape(f.Geometry)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "shpexport")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, base+".shp")
	w, err := shp.Create(path, shapeType)
	if err != nil {
		return nil, fmt.Errorf("create shapefile: %w", err)
	}

	keys := sortedKeys(f.Attributes)
	fields := make([]shp.Field, len(keys))
	for i, k := range keys {
		fields[i] = shp.StringField(dbfFieldName(k, i), 128)
	}
	w.SetFields(fields)
	w.Write(shape)
	for i, k := range keys {
		v := f.Attributes[k]
		if v == nil {
			v = ""
		}
		w.WriteAttribute(0, i, fmt.Sprintf("%v", v))
	}
	w.Close()

	return zipDir(dir, base)
}

func toShape(g orb.Geometry) (shp.ShapeType, shp.Shape, error) {
	switch geom := g.(type) {
	case orb.Point:
		return shp.POINT, &shp.Point{X: geom[0], Y: geom[1]}, nil
	case orb.MultiPoint:
		pts := toShpPoints(orb.LineString(geom))
		return shp.MULTIPOINT, &shp.MultiPoint{
			Box:       shp.BBoxFromPoints(pts),
			NumPoints: int32(len(pts)),
			Points:    pts,
		}, nil
	case orb.LineString:
		return shp.POLYLINE, shp.NewPolyLine([][]shp.Point{toShpPoints(geom)}), nil
	case orb.MultiLineString:
		parts := make([][]shp.Point, len(geom))
		for i, ls := range geom {
			parts[i] = toShpPoints(ls)
		}
		return shp.POLYLINE, shp.NewPolyLine(parts), nil
	case orb.Polygon:
		poly := shp.Polygon(*shp.NewPolyLine(ringsToParts(geom)))
		return shp.POLYGON, &poly, nil
	case orb.MultiPolygon:
		var parts [][]shp.Point
		for _, p := range geom {
			parts = append(parts, ringsToParts(p)...)
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		return shp.POLYGON, &poly, nil
	}
	return shp.NULL, nil, fmt.Errorf("no shapefile mapping for geometry %T", g)
}

func toShpPoints(ls orb.LineString) []shp.Point {
	pts := make([]shp.Point, len(ls))
	for i, p := range ls {
		pts[i] = shp.Point{X: p[0], Y: p[1]}
	}
	return pts
}

func ringsToParts(p orb.Polygon) [][]shp.Point {
	parts := make([][]shp.Point, len(p))
	for i, r := range p {
		parts[i] = toShpPoints(orb.LineString(r))
	}
	return parts
}

// dbfFieldName fits an attribute name into the 10-character DBF limit,
// disambiguating truncation collisions with the field index.
func dbfFieldName(k string, i int) string {
	name := strings.ToUpper(SafeBaseName(k))
	if len(name) > 10 {
		name = fmt.Sprintf("%s%d", name[:8], i%100)
	}
	return name
}

func sortedKeys(attrs map[string]any) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func zipDir(dir, base string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		data, err := os.ReadFile(filepath.Join(dir, base+ext))
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", ext, err)
		}
		entry, err := zw.Create(base + ext)
		if err != nil {
			return nil, err
		}
		if _, err := entry.Write(data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
