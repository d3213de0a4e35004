// Package encode turns a resolved feature into downloadable file bytes in
// one of the supported vector formats.
package encode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"stormgis/internal/core/model"
	"stormgis/internal/core/observability"
)

// supported output formats
const (
	FormatKML       = "kml"
	FormatGeoJSON   = "geojson"
	FormatShapefile = "shapefile"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// File is one generated download: name, content type and raw bytes.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Checksum returns the xxhash of the file bytes, used for ETags and the
// bulk manifest.
func (f *File) Checksum() string {
	return fmt.Sprintf("%016x", xxhash.Sum64(f.Data))
}

// NormalizeFormat maps the request's format field to a canonical format
// name. Empty input defaults to KML.
func NormalizeFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatKML:
		return FormatKML, nil
	case FormatGeoJSON, "json":
		return FormatGeoJSON, nil
	case FormatShapefile, "shp":
		return FormatShapefile, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, s)
	}
}

// Encode produces the file for one feature. baseName seeds the download
// filename and is sanitized first.
func Encode(f model.Feature, baseName, format string) (*File, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	base := SafeBaseName(baseName)

	var out *File
	switch format {
	case FormatKML:
		out = &File{
			Name:        base + ".kml",
			ContentType: "application/vnd.google-earth.kml+xml",
			Data:        encodeKML(f, base),
		}
	case FormatGeoJSON:
		data, err := encodeGeoJSON(f)
		if err != nil {
			return nil, fmt.Errorf("encode geojson: %w", err)
		}
		out = &File{
			Name:        base + ".geojson",
			ContentType: "application/geo+json",
			Data:        data,
		}
	case FormatShapefile:
		// shapefiles are a multi-file format, always shipped zipped
		data, err := encodeShapefile(f, base)
		if err != nil {
			return nil, fmt.Errorf("encode shapefile: %w", err)
		}
		out = &File{
			Name:        base + "_shp.zip",
			ContentType: "application/zip",
			Data:        data,
		}
	}
	observability.IncExport(format)
	return out, nil
}

// SafeBaseName reduces a free-form asset id to a filename-safe base:
// alphanumerics kept, whitespace runs become one underscore, anything else
// becomes one hyphen.
func SafeBaseName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "asset"
	}
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		var out rune
		switch {
		case r == ' ' || r == '\t':
			out = '_'
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-':
			out = r
		default:
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}
