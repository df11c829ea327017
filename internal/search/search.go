// Package search answers lookups over a built registry: attribute matches
// and nearest temples to a point.
package search

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/index"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// maxQueryLen bounds the rune length of a query before edit-distance work.
const maxQueryLen = 256

// Source is the part of the registry search reads.
type Source interface {
	Entities() []temple.Record
	Inverted() *index.Inverted
}

// Attribute returns the records whose attr value matches query, in registry
// order. With maxDist 0, categorical attributes match their value exactly
// (ignoring case) and other attributes match on substring. With maxDist > 0
// a value also matches when its edit distance to query is at most maxDist.
func Attribute(src Source, attr temple.Attribute, query string, maxDist int) []temple.Record {
	query = strings.TrimSpace(query)
	if runes := []rune(query); len(runes) > maxQueryLen {
		query = string(runes[:maxQueryLen])
	}
	if query == "" {
		return nil
	}

	if attr.IsCategorical() {
		return categorical(src, attr, query, maxDist)
	}

	var out []temple.Record
	for _, rec := range src.Entities() {
		key, ok := rec.Key(attr)
		if !ok {
			continue
		}
		if containsFold(key, query) || fuzzyMatch(query, key, maxDist) {
			out = append(out, rec)
		}
	}
	return out
}

func categorical(src Source, attr temple.Attribute, query string, maxDist int) []temple.Record {
	inv := src.Inverted()
	matched := make(map[string]bool)
	for _, v := range inv.Values(attr) {
		if strings.EqualFold(v, query) || fuzzyMatch(query, v, maxDist) {
			for _, name := range inv.Names(attr, v) {
				matched[name] = true
			}
		}
	}
	if len(matched) == 0 {
		return nil
	}

	var out []temple.Record
	for _, rec := range src.Entities() {
		if matched[rec.Name] {
			out = append(out, rec)
		}
	}
	return out
}

// fuzzyMatch reports whether the case-folded edit distance between query
// and candidate is within maxDist. A maxDist of 0 never matches.
func fuzzyMatch(query, candidate string, maxDist int) bool {
	if maxDist <= 0 {
		return false
	}
	dist := levenshtein.ComputeDistance(
		strings.ToLower(query),
		strings.ToLower(candidate),
	)
	return dist <= maxDist
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
