// Package fault defines the error kinds that abort a registry build.
package fault

import (
	"errors"
	"fmt"
)

// FetchError reports that the listing or a geocode payload could not be retrieved.
type FetchError struct {
	Source string // "listing" or "geocode"
	Name   string // temple name for geocode fetches, empty for the listing
	Err    error
}

func (e *FetchError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("fetch %s %q: %v", e.Source, e.Name, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as a fetch failure for the given source.
func NewFetchError(source, name string, err error) *FetchError {
	return &FetchError{Source: source, Name: name, Err: err}
}

// ParseError reports malformed dedication text.
type ParseError struct {
	Name   string
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse dedication for %q (%q): %s", e.Name, e.Text, e.Reason)
}

// NewParseError builds a ParseError for the given temple and raw text.
func NewParseError(name, text, reason string) *ParseError {
	return &ParseError{Name: name, Text: text, Reason: reason}
}

// CacheCorruptError reports an on-disk cache file that is not valid JSON or
// lacks required keys.
type CacheCorruptError struct {
	Path string // cache file, or the temple name when the payload came from memory
	Err  error
}

func (e *CacheCorruptError) Error() string {
	return fmt.Sprintf("corrupt cache %s: %v", e.Path, e.Err)
}

func (e *CacheCorruptError) Unwrap() error {
	return e.Err
}

// NewCacheCorruptError wraps err as a corrupt cache at path.
func NewCacheCorruptError(path string, err error) *CacheCorruptError {
	return &CacheCorruptError{Path: path, Err: err}
}

// IsFetch reports whether err (or any error in its chain) is a FetchError.
func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsParse reports whether err (or any error in its chain) is a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsCacheCorrupt reports whether err (or any error in its chain) is a CacheCorruptError.
func IsCacheCorrupt(err error) bool {
	var ce *CacheCorruptError
	return errors.As(err, &ce)
}
