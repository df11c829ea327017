package temple

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Attribute names one column of a Record.
type Attribute string

const (
	AttrName       Attribute = "name"
	AttrDedication Attribute = "dedication"
	AttrStatus     Attribute = "status"
	AttrDate       Attribute = "date"
	AttrYear       Attribute = "year"
	AttrMonth      Attribute = "month"
	AttrLatitude   Attribute = "latitude"
	AttrLongitude  Attribute = "longitude"
	AttrCountry    Attribute = "country"
)

// DateLayout is the rendering of dedication dates in indexes and exports.
const DateLayout = "2006-01-02"

// Attributes lists every Record attribute in column order.
var Attributes = []Attribute{
	AttrName,
	AttrDedication,
	AttrStatus,
	AttrDate,
	AttrYear,
	AttrMonth,
	AttrLatitude,
	AttrLongitude,
	AttrCountry,
}

// Categorical lists the attributes meaningful for grouping.
var Categorical = []Attribute{AttrStatus, AttrYear, AttrMonth}

var aliases = map[Attribute]string{
	AttrName:       "names",
	AttrDedication: "dedications",
	AttrStatus:     "statuses",
	AttrDate:       "dates",
	AttrYear:       "years",
	AttrMonth:      "months",
	AttrLatitude:   "latitudes",
	AttrLongitude:  "longitudes",
	AttrCountry:    "countries",
}

var byAlias = func() map[string]Attribute {
	m := make(map[string]Attribute, len(aliases))
	for a, alias := range aliases {
		m[alias] = a
	}
	return m
}()

// Alias returns the plural alias of a.
func (a Attribute) Alias() string {
	return aliases[a]
}

// IsCategorical reports whether a is indexed by the inverted index.
func (a Attribute) IsCategorical() bool {
	for _, c := range Categorical {
		if c == a {
			return true
		}
	}
	return false
}

// ParseAttribute resolves a canonical attribute name or its alias.
func ParseAttribute(s string) (Attribute, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := aliases[Attribute(s)]; ok {
		return Attribute(s), nil
	}
	if a, ok := byAlias[s]; ok {
		return a, nil
	}
	return "", eris.Errorf("temple: unknown attribute %q", s)
}

// Value returns the typed value of attr, or false when the record has none
// (date, year and month of a pending temple).
func (r Record) Value(attr Attribute) (any, bool) {
	switch attr {
	case AttrName:
		return r.Name, true
	case AttrDedication:
		return r.Text, true
	case AttrStatus:
		return r.Status(), true
	case AttrDate:
		d, ok := r.Date()
		if !ok {
			return nil, false
		}
		return d.Format(DateLayout), true
	case AttrYear:
		y, ok := r.Year()
		if !ok {
			return nil, false
		}
		return y, true
	case AttrMonth:
		m, ok := r.Month()
		if !ok {
			return nil, false
		}
		return m, true
	case AttrLatitude:
		return r.Latitude, true
	case AttrLongitude:
		return r.Longitude, true
	case AttrCountry:
		return r.Country, true
	default:
		return nil, false
	}
}

// Key returns the string form of attr used as an inverted index key.
func (r Record) Key(attr Attribute) (string, bool) {
	v, ok := r.Value(attr)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}
