package encode

import (
	"encoding/json"

	"github.com/paulmach/orb/geojson"

	"stormgis/internal/core/model"
)

func encodeGeoJSON(f model.Feature) ([]byte, error) {
	gf := geojson.NewFeature(f.Geometry)
	gf.Properties = geojson.Properties(f.Attributes)
	fc := geojson.NewFeatureCollection()
	fc.Append(gf)
	return json.Marshal(fc)
}
