package arcgis

import (
	"testing"

	"github.com/paulmach/orb"
)

func fp(v float64) *float64 { return &v }

func TestTranslate_Point(t *testing.T) {
	g := Translate(&Geometry{X: fp(-77.1), Y: fp(38.8)})
	pt, ok := g.(orb.Point)
	if !ok {
		t.Fatalf("want orb.Point, got %T", g)
	}
	if pt[0] != -77.1 || pt[1] != 38.8 {
		t.Fatalf("point = %v", pt)
	}
}

func TestTranslate_SingleRingBecomesPolygon(t *testing.T) {
	g := Translate(&Geometry{Rings: [][][]float64{
		{{0, 0}, {1, 0}, {1, 1}, {0, 0}},
	}})
	poly, ok := g.(orb.Polygon)
	if !ok {
		t.Fatalf("want orb.Polygon, got %T", g)
	}
	if len(poly) != 1 || len(poly[0]) != 4 {
		t.Fatalf("polygon shape wrong: %v", poly)
	}
}

func TestTranslate_TwoRingsBecomeMultiPolygon(t *testing.T) {
	g := Translate(&Geometry{Rings: [][][]float64{
		{{0, 0}, {1, 0}, {1, 1}, {0, 0}},
		{{5, 5}, {6, 5}, {6, 6}, {5, 5}},
	}})
	mp, ok := g.(orb.MultiPolygon)
	if !ok {
		t.Fatalf("want orb.MultiPolygon, got %T", g)
	}
	if len(mp) != 2 || len(mp[0]) != 1 || len(mp[1]) != 1 {
		t.Fatalf("multipolygon shape wrong: %v", mp)
	}
}

func TestTranslate_OpenRingIsClosed(t *testing.T) {
	g := Translate(&Geometry{Rings: [][][]float64{
		{{0, 0}, {1, 0}, {1, 1}},
	}})
	poly := g.(orb.Polygon)
	r := poly[0]
	if r[0] != r[len(r)-1] {
		t.Fatalf("ring not closed: %v", r)
	}
}

func TestTranslate_Paths(t *testing.T) {
	one := Translate(&Geometry{Paths: [][][]float64{
		{{0, 0}, {1, 1}},
	}})
	if _, ok := one.(orb.LineString); !ok {
		t.Fatalf("single path should be LineString, got %T", one)
	}
	many := Translate(&Geometry{Paths: [][][]float64{
		{{0, 0}, {1, 1}},
		{{2, 2}, {3, 3}},
	}})
	mls, ok := many.(orb.MultiLineString)
	if !ok || len(mls) != 2 {
		t.Fatalf("two paths should be MultiLineString of 2, got %T %v", many, many)
	}
}

func TestTranslate_MultiPoint(t *testing.T) {
	g := Translate(&Geometry{Points: [][]float64{{0, 1}, {2, 3}}})
	mp, ok := g.(orb.MultiPoint)
	if !ok || len(mp) != 2 {
		t.Fatalf("want MultiPoint of 2, got %T %v", g, g)
	}
}

func TestTranslate_EmptyOrUnknownIsNil(t *testing.T) {
	if g := Translate(nil); g != nil {
		t.Fatalf("nil geometry must translate to nil, got %v", g)
	}
	if g := Translate(&Geometry{}); g != nil {
		t.Fatalf("empty geometry must translate to nil, got %v", g)
	}
}
