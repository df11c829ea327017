// Package report renders registry contents for people: value counts,
// per-year series, spreadsheets and GeoJSON.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/index"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// ValueCount is the number of temples sharing one attribute value.
type ValueCount struct {
	Value string `yaml:"value" json:"value"`
	Count int    `yaml:"count" json:"count"`
}

// AttributeSummary lists the value counts of one inverted attribute in
// first-occurrence order.
type AttributeSummary struct {
	Attribute temple.Attribute `yaml:"attribute" json:"attribute"`
	Values    []ValueCount     `yaml:"values" json:"values"`
}

// YearCount is the number of temples dedicated in one year.
type YearCount struct {
	Year  int `yaml:"year" json:"year"`
	Count int `yaml:"count" json:"count"`
}

// Summary counts the names under every value of every inverted attribute.
func Summary(inv *index.Inverted) []AttributeSummary {
	attrs := inv.Attributes()
	out := make([]AttributeSummary, 0, len(attrs))
	for _, attr := range attrs {
		s := AttributeSummary{Attribute: attr}
		for _, v := range inv.Values(attr) {
			s.Values = append(s.Values, ValueCount{Value: v, Count: len(inv.Names(attr, v))})
		}
		out = append(out, s)
	}
	return out
}

// PerYear returns dedications per year, ascending by integer year.
func PerYear(inv *index.Inverted) ([]YearCount, error) {
	values := inv.Values(temple.AttrYear)
	out := make([]YearCount, 0, len(values))
	for _, v := range values {
		y, err := strconv.Atoi(v)
		if err != nil {
			return nil, eris.Wrapf(err, "report: year key %q", v)
		}
		out = append(out, YearCount{Year: y, Count: len(inv.Names(temple.AttrYear, v))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// WriteText writes summaries as aligned columns.
func WriteText(w io.Writer, summaries []AttributeSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, s := range summaries {
		if i > 0 {
			_, _ = fmt.Fprintln(tw)
		}
		_, _ = fmt.Fprintf(tw, "%s\tCOUNT\n", s.Attribute)
		for _, vc := range s.Values {
			_, _ = fmt.Fprintf(tw, "%s\t%d\n", vc.Value, vc.Count)
		}
	}
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "report: write text")
	}
	return nil
}

// WriteYears writes the per-year series as aligned columns.
func WriteYears(w io.Writer, years []YearCount) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "YEAR\tCOUNT")
	for _, yc := range years {
		_, _ = fmt.Fprintf(tw, "%d\t%d\n", yc.Year, yc.Count)
	}
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "report: write years")
	}
	return nil
}

// WriteYAML writes summaries as a YAML document.
func WriteYAML(w io.Writer, summaries []AttributeSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summaries); err != nil {
		return eris.Wrap(err, "report: encode yaml")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "report: close yaml encoder")
	}
	return nil
}
