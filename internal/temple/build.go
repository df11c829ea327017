package temple

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/fault"
	"github.com/FlyingWorkshop/Map-LDS-Temples/pkg/geocode"
)

var months = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for i := time.January; i <= time.December; i++ {
		m[i.String()] = i
	}
	return m
}()

// Build merges a listing entry with its geocode payload into a Record.
func Build(name, text string, payload geocode.Payload) (Record, error) {
	ded, err := parseDedication(name, text)
	if err != nil {
		return Record{}, err
	}

	if !payload.HasLocation() {
		return Record{}, fault.NewCacheCorruptError(name, eris.New("geocode payload missing geometry.location"))
	}

	return Record{
		Name:       name,
		Text:       text,
		Dedication: ded,
		Latitude:   *payload.Geometry.Location.Lat,
		Longitude:  *payload.Geometry.Location.Lng,
		Country:    country(payload.AddressComponents),
	}, nil
}

func parseDedication(name, text string) (Dedication, error) {
	first, _ := utf8.DecodeRuneInString(text)
	if text == "" {
		return nil, fault.NewParseError(name, text, "empty dedication text")
	}

	if !unicode.IsDigit(first) {
		if text == StatusBuilt {
			return nil, fault.NewParseError(name, text, "built status without a dedication date")
		}
		return Pending{Tag: text}, nil
	}

	tokens := strings.Fields(text)
	if len(tokens) != 3 {
		return nil, fault.NewParseError(name, text, "expected \"day month year\"")
	}

	day, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, fault.NewParseError(name, text, "invalid day "+strconv.Quote(tokens[0]))
	}

	month, ok := months[cases.Title(language.English).String(tokens[1])]
	if !ok {
		return nil, fault.NewParseError(name, text, "unknown month "+strconv.Quote(tokens[1]))
	}

	year, err := strconv.Atoi(tokens[2])
	if err != nil {
		return nil, fault.NewParseError(name, text, "invalid year "+strconv.Quote(tokens[2]))
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return nil, fault.NewParseError(name, text, "no such calendar date")
	}

	return Built{Date: date}, nil
}

// country scans components from the end and returns the long name of the
// first one typed "country". Components are usually ordered most to least
// specific, so this is the last country-typed entry in list order.
func country(components []geocode.AddressComponent) string {
	for i := len(components) - 1; i >= 0; i-- {
		if components[i].HasType("country") {
			return components[i].LongName
		}
	}
	return ""
}
