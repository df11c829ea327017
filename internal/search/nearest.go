package search

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
	"github.com/rotisserie/eris"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// EarthRadiusKm is the mean Earth radius used to convert angles to km.
const EarthRadiusKm = 6371.0088

// Hit is a record and its great-circle distance from the query point.
type Hit struct {
	Record     temple.Record
	DistanceKm float64
}

// Nearest returns the n records closest to (lat, lng), closest first. Ties
// keep registry order. n <= 0 returns every record.
func Nearest(records []temple.Record, lat, lng float64, n int) ([]Hit, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return nil, eris.New("search: coordinates must be finite")
	}
	if lat < -90 || lat > 90 {
		return nil, eris.Errorf("search: latitude %v out of range", lat)
	}
	if lng < -180 || lng > 180 {
		return nil, eris.Errorf("search: longitude %v out of range", lng)
	}

	query := s2.LatLngFromDegrees(lat, lng)
	hits := make([]Hit, 0, len(records))
	for _, rec := range records {
		ll := s2.LatLngFromDegrees(rec.Latitude, rec.Longitude)
		hits = append(hits, Hit{
			Record:     rec,
			DistanceKm: query.Distance(ll).Radians() * EarthRadiusKm,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].DistanceKm < hits[j].DistanceKm
	})

	if n > 0 && n < len(hits) {
		hits = hits[:n]
	}
	return hits, nil
}
