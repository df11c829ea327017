package api

import "github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"

// recordView is the JSON shape of a temple. Date, year and month are null
// for temples not yet dedicated.
type recordView struct {
	Name       string  `json:"name"`
	Dedication string  `json:"dedication"`
	Status     string  `json:"status"`
	Date       *string `json:"date"`
	Year       *int    `json:"year"`
	Month      *string `json:"month"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Country    string  `json:"country"`
}

func newRecordView(rec temple.Record) recordView {
	v := recordView{
		Name:       rec.Name,
		Dedication: rec.Text,
		Status:     rec.Status(),
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
		Country:    rec.Country,
	}
	if d, ok := rec.Date(); ok {
		s := d.Format(temple.DateLayout)
		v.Date = &s
	}
	if y, ok := rec.Year(); ok {
		v.Year = &y
	}
	if m, ok := rec.Month(); ok {
		v.Month = &m
	}
	return v
}
