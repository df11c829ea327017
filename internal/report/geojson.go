package report

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// Features converts records to GeoJSON point features for the globe view.
// Properties carry name, status, country and, for built temples, year and
// date.
func Features(records []temple.Record) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(records))}
	for _, rec := range records {
		props := map[string]interface{}{
			"name":    rec.Name,
			"status":  rec.Status(),
			"country": rec.Country,
		}
		if y, ok := rec.Year(); ok {
			props["year"] = y
		}
		if d, ok := rec.Value(temple.AttrDate); ok {
			props["date"] = d
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         rec.Name,
			Geometry:   geom.NewPointFlat(geom.XY, []float64{rec.Longitude, rec.Latitude}).SetSRID(4326),
			Properties: props,
		})
	}
	return fc
}

// WriteGeoJSON writes records as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, records []temple.Record) error {
	data, err := json.Marshal(Features(records))
	if err != nil {
		return eris.Wrap(err, "geojson: marshal")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "geojson: write")
	}
	return nil
}
