package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError_Message(t *testing.T) {
	err := NewFetchError("geocode", "Aba Nigeria Temple", errors.New("zero results"))
	assert.Equal(t, `fetch geocode "Aba Nigeria Temple": zero results`, err.Error())

	err = NewFetchError("listing", "", errors.New("status 503"))
	assert.Equal(t, "fetch listing: status 503", err.Error())
}

func TestFetchError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewFetchError("listing", "", inner)
	assert.True(t, errors.Is(err, inner))
}

func TestKindPredicates_Wrapped(t *testing.T) {
	fetch := fmt.Errorf("build: %w", NewFetchError("listing", "", errors.New("boom")))
	parse := fmt.Errorf("build: %w", NewParseError("X", "1 Smarch 2001", "unknown month"))
	corrupt := fmt.Errorf("build: %w", NewCacheCorruptError("google_caches/X.json", errors.New("eof")))

	assert.True(t, IsFetch(fetch))
	assert.False(t, IsParse(fetch))
	assert.True(t, IsParse(parse))
	assert.False(t, IsCacheCorrupt(parse))
	assert.True(t, IsCacheCorrupt(corrupt))
	assert.False(t, IsFetch(corrupt))
}

func TestKindPredicates_Nil(t *testing.T) {
	assert.False(t, IsFetch(nil))
	assert.False(t, IsParse(nil))
	assert.False(t, IsCacheCorrupt(nil))
}

func TestParseError_Message(t *testing.T) {
	err := NewParseError("Bern Switzerland Temple", "11 September", "expected day month year")
	assert.Contains(t, err.Error(), "Bern Switzerland Temple")
	assert.Contains(t, err.Error(), "expected day month year")
}
