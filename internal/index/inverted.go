package index

import (
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// posting groups the names sharing each value of one attribute. Keys and
// names keep first-occurrence order; nothing is sorted.
type posting struct {
	names map[string][]string
	order []string
}

// Inverted maps each categorical attribute's values to the names holding them.
type Inverted struct {
	postings map[temple.Attribute]*posting
}

// BuildInverted groups records by temple.Categorical attributes. Records
// with no value for an attribute are left out of that attribute entirely.
func BuildInverted(records []temple.Record) *Inverted {
	inv := &Inverted{postings: make(map[temple.Attribute]*posting, len(temple.Categorical))}
	for _, attr := range temple.Categorical {
		inv.postings[attr] = &posting{names: make(map[string][]string)}
	}

	for _, rec := range records {
		for _, attr := range temple.Categorical {
			key, ok := rec.Key(attr)
			if !ok {
				continue
			}
			p := inv.postings[attr]
			if _, seen := p.names[key]; !seen {
				p.order = append(p.order, key)
			}
			p.names[key] = append(p.names[key], rec.Name)
		}
	}
	return inv
}

// Get returns a copy of the value → names mapping for attr.
func (inv *Inverted) Get(attr temple.Attribute) (map[string][]string, bool) {
	p, ok := inv.postings[attr]
	if !ok {
		return nil, false
	}
	out := make(map[string][]string, len(p.names))
	for k, names := range p.names {
		out[k] = append([]string(nil), names...)
	}
	return out, true
}

// Names returns the names holding value for attr, in registry order.
func (inv *Inverted) Names(attr temple.Attribute, value string) []string {
	p, ok := inv.postings[attr]
	if !ok {
		return nil
	}
	return append([]string(nil), p.names[value]...)
}

// Values returns the keys of attr in first-occurrence order.
func (inv *Inverted) Values(attr temple.Attribute) []string {
	p, ok := inv.postings[attr]
	if !ok {
		return nil
	}
	return append([]string(nil), p.order...)
}

// Attributes returns the indexed attributes.
func (inv *Inverted) Attributes() []temple.Attribute {
	return append([]temple.Attribute(nil), temple.Categorical...)
}
