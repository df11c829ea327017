// Package temple holds the temple record and the builder that merges a
// listing entry with its geocode payload.
package temple

import "time"

// StatusBuilt is the status of a temple that has a dedication date.
const StatusBuilt = "Built"

// Dedication is either Built or Pending. Switch on the concrete type.
type Dedication interface {
	isDedication()
}

// Built is a dedicated temple.
type Built struct {
	Date time.Time // UTC midnight of the dedication day
}

// Pending is a temple not yet dedicated; Tag is the source status verbatim
// (e.g. "Construction", "Announced", "Renovation").
type Pending struct {
	Tag string
}

func (Built) isDedication()   {}
func (Pending) isDedication() {}

// Record is one temple. Records are built by Build and never mutated.
type Record struct {
	Name       string
	Text       string // raw dedication or status text from the listing
	Dedication Dedication
	Latitude   float64
	Longitude  float64
	Country    string
}

// Status returns "Built" or the pending tag.
func (r Record) Status() string {
	switch d := r.Dedication.(type) {
	case Built:
		return StatusBuilt
	case Pending:
		return d.Tag
	default:
		return ""
	}
}

// Date returns the dedication date of a built temple.
func (r Record) Date() (time.Time, bool) {
	if b, ok := r.Dedication.(Built); ok {
		return b.Date, true
	}
	return time.Time{}, false
}

// Year returns the dedication year of a built temple.
func (r Record) Year() (int, bool) {
	d, ok := r.Date()
	if !ok {
		return 0, false
	}
	return d.Year(), true
}

// Month returns the full English month name of a built temple's dedication.
func (r Record) Month() (string, bool) {
	d, ok := r.Date()
	if !ok {
		return "", false
	}
	return d.Month().String(), true
}

// IsBuilt reports whether the temple has been dedicated.
func (r Record) IsBuilt() bool {
	_, ok := r.Dedication.(Built)
	return ok
}
