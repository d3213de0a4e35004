package arcgis

import "github.com/paulmach/orb"

// Translate converts a native Esri JSON geometry into an orb geometry.
// Ring disambiguation follows ring count: one ring is a Polygon, more
// become a MultiPolygon of single-ring polygons (hole fidelity is
// upstream-dependent and not reconstructed). Unrecognized or empty
// geometry yields nil; callers treat that as "no usable geometry".
func Translate(g *Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	switch {
	case g.X != nil && g.Y != nil:
		return orb.Point{*g.X, *g.Y}
	case len(g.Points) > 0:
		mp := make(orb.MultiPoint, 0, len(g.Points))
		for _, p := range g.Points {
			if len(p) < 2 {
				continue
			}
			mp = append(mp, orb.Point{p[0], p[1]})
		}
		if len(mp) == 0 {
			return nil
		}
		return mp
	case len(g.Paths) == 1:
		return lineString(g.Paths[0])
	case len(g.Paths) > 1:
		mls := make(orb.MultiLineString, 0, len(g.Paths))
		for _, path := range g.Paths {
			mls = append(mls, lineString(path))
		}
		return mls
	case len(g.Rings) == 1:
		return orb.Polygon{ring(g.Rings[0])}
	case len(g.Rings) > 1:
		mp := make(orb.MultiPolygon, 0, len(g.Rings))
		for _, r := range g.Rings {
			mp = append(mp, orb.Polygon{ring(r)})
		}
		return mp
	}
	return nil
}

func lineString(path [][]float64) orb.LineString {
	ls := make(orb.LineString, 0, len(path))
	for _, p := range path {
		if len(p) < 2 {
			continue
		}
		ls = append(ls, orb.Point{p[0], p[1]})
	}
	return ls
}

// ring builds a closed orb.Ring, appending the first vertex when the
// upstream ring is left open.
func ring(coords [][]float64) orb.Ring {
	r := make(orb.Ring, 0, len(coords)+1)
	for _, p := range coords {
		if len(p) < 2 {
			continue
		}
		r = append(r, orb.Point{p[0], p[1]})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}
