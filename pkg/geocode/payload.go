package geocode

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Payload is the subset of a Google Geocoding result the registry reads.
// The cache keeps the provider's raw JSON; Payload is decoded from it.
type Payload struct {
	Geometry          Geometry           `json:"geometry"`
	AddressComponents []AddressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address,omitempty"`
}

// Geometry holds the result location.
type Geometry struct {
	Location     Location `json:"location"`
	LocationType string   `json:"location_type,omitempty"`
}

// Location holds coordinates. Pointers distinguish a missing key from 0.
type Location struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// AddressComponent is one entry of a result's address_components list.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name,omitempty"`
	Types     []string `json:"types"`
}

// HasType reports whether the component is tagged with typ.
func (a AddressComponent) HasType(typ string) bool {
	for _, t := range a.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// HasLocation reports whether both coordinates are present.
func (p *Payload) HasLocation() bool {
	return p.Geometry.Location.Lat != nil && p.Geometry.Location.Lng != nil
}

// DecodePayload decodes a cached provider payload. A JSON array is accepted
// and its first element used, matching caches written from the full
// provider result list.
func DecodePayload(data []byte) (*Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, eris.New("geocode: empty payload")
	}

	if data[0] == '[' {
		var results []json.RawMessage
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, eris.Wrap(err, "geocode: decode result list")
		}
		if len(results) == 0 {
			return nil, eris.New("geocode: empty result list")
		}
		data = results[0]
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrap(err, "geocode: decode payload")
	}
	if !p.HasLocation() {
		return nil, eris.New("geocode: payload missing geometry.location.lat/lng")
	}
	return &p, nil
}
