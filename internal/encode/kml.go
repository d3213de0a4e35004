package encode

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"stormgis/internal/core/model"
)

// encodeKML writes one placemark per feature geometry. Attribute order in
// the description is sorted so repeated requests produce identical bytes.
func encodeKML(f model.Feature, docName string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<kml xmlns="http://www.opengis.net/kml/2.2">` + "\n")
	b.WriteString("  <Document>\n")
	fmt.Fprintf(&b, "    <name>%s</name>\n", escapeXML(docName))
	b.WriteString("    <Placemark>\n")
	fmt.Fprintf(&b, "      <name>%s</name>\n", escapeXML(placemarkName(f.Attributes)))
	fmt.Fprintf(&b, "      <description><![CDATA[%s]]></description>\n", describeAttributes(f.Attributes))
	b.WriteString("      " + kmlGeometry(f.Geometry) + "\n")
	b.WriteString("    </Placemark>\n")
	b.WriteString("  </Document>\n")
	b.WriteString("</kml>\n")
	return []byte(b.String())
}

func kmlGeometry(g orb.Geometry) string {
	switch geom := g.(type) {
	case orb.Point:
		return fmt.Sprintf("<Point><coordinates>%s</coordinates></Point>", coord(geom))
	case orb.MultiPoint:
		parts := make([]string, 0, len(geom))
		for _, p := range geom {
			parts = append(parts, kmlGeometry(p))
		}
		return multi(parts)
	case orb.LineString:
		return fmt.Sprintf("<LineString><coordinates>%s</coordinates></LineString>", coords(geom))
	case orb.MultiLineString:
		parts := make([]string, 0, len(geom))
		for _, ls := range geom {
			parts = append(parts, kmlGeometry(ls))
		}
		return multi(parts)
	case orb.Polygon:
		var p strings.Builder
		p.WriteString("<Polygon>")
		for i, ring := range geom {
			boundary := "outerBoundaryIs"
			if i > 0 {
				boundary = "innerBoundaryIs"
			}
			fmt.Fprintf(&p, "<%s><LinearRing><coordinates>%s</coordinates></LinearRing></%s>",
				boundary, coords(orb.LineString(ring)), boundary)
		}
		p.WriteString("</Polygon>")
		return p.String()
	case orb.MultiPolygon:
		parts := make([]string, 0, len(geom))
		for _, poly := range geom {
			parts = append(parts, kmlGeometry(poly))
		}
		return multi(parts)
	}
	return ""
}

func multi(parts []string) string {
	return "<MultiGeometry>" + strings.Join(parts, "") + "</MultiGeometry>"
}

func coord(p orb.Point) string {
	return fmt.Sprintf("%.10f,%.10f,0", p[0], p[1])
}

func coords(ls orb.LineString) string {
	out := make([]string, len(ls))
	for i, p := range ls {
		out[i] = coord(p)
	}
	return strings.Join(out, " ")
}

// placemarkName picks a display name from common name-ish attributes,
// falling back to the injected asset id.
func placemarkName(attrs map[string]any) string {
	for _, key := range []string{"NAME", "Name", "name", "FACILITY_ID", model.AttrAssetID, "OBJECTID"} {
		if v, ok := attrs[key]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
	}
	return "Feature"
}

func describeAttributes(attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := attrs[k]
		if v == nil {
			v = ""
		}
		parts = append(parts, fmt.Sprintf("<strong>%s</strong>: %s",
			escapeXML(k), escapeXML(fmt.Sprintf("%v", v))))
	}
	return strings.Join(parts, "<br>")
}

func escapeXML(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	).Replace(s)
}
