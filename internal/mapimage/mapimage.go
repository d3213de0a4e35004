// Package mapimage renders a resolved feature on a static basemap and
// composes the result into a one-page PDF.
package mapimage

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"

	sm "github.com/flopp/go-staticmaps"
	"github.com/go-pdf/fpdf"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"stormgis/internal/core/model"
)

const (
	imgWidth  = 1280
	imgHeight = 960
)

var (
	strokeColor = color.RGBA{R: 0xcc, G: 0x22, B: 0x22, A: 0xff}
	fillColor   = color.RGBA{R: 0xcc, G: 0x22, B: 0x22, A: 0x40}
)

// Render fetches basemap tiles, draws the feature and returns PDF bytes.
func Render(f model.Feature, title string) ([]byte, error) {
	mc := sm.NewContext()
	mc.SetSize(imgWidth, imgHeight)
	addGeometry(mc, f.Geometry)

	img, err := mc.Render()
	if err != nil {
		return nil, fmt.Errorf("render basemap: %w", err)
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("basemap", opt, &pngBuf)
	pdf.ImageOptions("basemap", 10, 22, 277, 0, false, opt, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("compose pdf: %w", err)
	}
	return out.Bytes(), nil
}

func addGeometry(mc *sm.Context, g orb.Geometry) {
	switch geom := g.(type) {
	case orb.Point:
		mc.AddObject(sm.NewMarker(ll(geom), strokeColor, 16.0))
	case orb.MultiPoint:
		for _, p := range geom {
			mc.AddObject(sm.NewMarker(ll(p), strokeColor, 16.0))
		}
	case orb.LineString:
		mc.AddObject(sm.NewPath(positions(geom), strokeColor, 3.0))
	case orb.MultiLineString:
		for _, ls := range geom {
			mc.AddObject(sm.NewPath(positions(ls), strokeColor, 3.0))
		}
	case orb.Polygon:
		if len(geom) > 0 {
			mc.AddObject(sm.NewArea(positions(orb.LineString(geom[0])), strokeColor, fillColor, 2.0))
		}
	case orb.MultiPolygon:
		for _, poly := range geom {
			addGeometry(mc, poly)
		}
	}
}

func positions(ls orb.LineString) []s2.LatLng {
	out := make([]s2.LatLng, len(ls))
	for i, p := range ls {
		out[i] = ll(p)
	}
	return out
}

func ll(p orb.Point) s2.LatLng {
	return s2.LatLngFromDegrees(p[1], p[0])
}
