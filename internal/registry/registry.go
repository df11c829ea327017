// Package registry merges the listing and geocode sources into the ordered
// temple collection and derives its indexes.
package registry

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/index"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
	"github.com/FlyingWorkshop/Map-LDS-Temples/pkg/geocode"
)

// ListingSource provides the full scraped listing, fetching it if needed.
type ListingSource interface {
	Listing(ctx context.Context) (temple.Listing, error)
}

// GeocodeSource provides the geocode payload for one temple name.
type GeocodeSource interface {
	Geocode(ctx context.Context, name string) (*geocode.Payload, error)
}

// GeocodeLookup resolves an already-fetched payload by temple name.
type GeocodeLookup func(name string) (*geocode.Payload, error)

// Registry is the ordered temple collection plus its derived indexes.
// Nothing mutates a Registry after Build returns.
type Registry struct {
	records  []temple.Record
	byName   map[string]int
	forward  *index.Forward
	inverted *index.Inverted
}

// Build merges listing with lookup in listing order. Any failure aborts the
// whole build; no partially populated Registry is returned.
func Build(listing temple.Listing, lookup GeocodeLookup) (*Registry, error) {
	r := &Registry{
		records: make([]temple.Record, 0, len(listing)),
		byName:  make(map[string]int, len(listing)),
	}

	for _, entry := range listing {
		if _, dup := r.byName[entry.Name]; dup {
			return nil, eris.Errorf("registry: duplicate temple %q", entry.Name)
		}

		payload, err := lookup(entry.Name)
		if err != nil {
			return nil, err
		}
		if payload == nil {
			return nil, eris.Errorf("registry: no geocode payload for %q", entry.Name)
		}

		rec, err := temple.Build(entry.Name, entry.Text, *payload)
		if err != nil {
			return nil, err
		}

		r.byName[rec.Name] = len(r.records)
		r.records = append(r.records, rec)
	}

	r.forward = index.BuildForward(r.records)
	r.inverted = index.BuildInverted(r.records)
	return r, nil
}

// Load fetches the listing, then geocodes and builds each temple in order.
func Load(ctx context.Context, listings ListingSource, geocodes GeocodeSource) (*Registry, error) {
	listing, err := listings.Listing(ctx)
	if err != nil {
		return nil, err
	}
	zap.L().Info("registry: listing loaded", zap.Int("temples", len(listing)))

	reg, err := Build(listing, func(name string) (*geocode.Payload, error) {
		return geocodes.Geocode(ctx, name)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("registry: built",
		zap.Int("temples", reg.Len()),
		zap.Int("dedicated", len(reg.inverted.Names(temple.AttrStatus, temple.StatusBuilt))),
	)
	return reg, nil
}

// Entities returns a copy of the records in listing order.
func (r *Registry) Entities() []temple.Record {
	return append([]temple.Record(nil), r.records...)
}

// Len returns the number of temples.
func (r *Registry) Len() int {
	return len(r.records)
}

// Lookup returns the record for name.
func (r *Registry) Lookup(name string) (temple.Record, bool) {
	i, ok := r.byName[name]
	if !ok {
		return temple.Record{}, false
	}
	return r.records[i], true
}

// Forward returns the columnar index.
func (r *Registry) Forward() *index.Forward {
	return r.forward
}

// Inverted returns the value → names index.
func (r *Registry) Inverted() *index.Inverted {
	return r.inverted
}
