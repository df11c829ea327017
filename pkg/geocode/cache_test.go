package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/fault"
)

func TestCachePath_Deterministic(t *testing.T) {
	c := NewCache("google_caches", nil)
	assert.Equal(t, filepath.Join("google_caches", "Aba Nigeria Temple.json"), c.Path("Aba Nigeria Temple"))
	assert.Equal(t, filepath.Join("google_caches", "A%2FB Temple.json"), c.Path("A/B Temple"))
	assert.Equal(t, c.Path("A/B Temple"), c.Path("A/B Temple"))
}

func TestCachePath_DistinctNamesDistinctFiles(t *testing.T) {
	c := NewCache("google_caches", nil)
	names := []string{"A/B Temple", "A_B Temple", "A%2FB Temple", "A\\B Temple", "A\x00B Temple"}
	seen := make(map[string]string)
	for _, n := range names {
		p := c.Path(n)
		if prev, dup := seen[p]; dup {
			t.Fatalf("%q and %q share cache file %s", prev, n, p)
		}
		seen[p] = n
		assert.Equal(t, "google_caches", filepath.Dir(p), n)
	}
}

func TestCacheGeocode_SimilarNamesLookedUpSeparately(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "google_caches")
	ctx := context.Background()

	ml := new(mockLookup)
	ml.On("Lookup", ctx, "A/B Temple").
		Return(json.RawMessage(`{"geometry":{"location":{"lat":1,"lng":2}},"address_components":[]}`), nil).Once()
	ml.On("Lookup", ctx, "A_B Temple").
		Return(json.RawMessage(`{"geometry":{"location":{"lat":50,"lng":60}},"address_components":[]}`), nil).Once()

	c := NewCache(dir, ml)
	slash, err := c.Geocode(ctx, "A/B Temple")
	require.NoError(t, err)
	under, err := c.Geocode(ctx, "A_B Temple")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, *slash.Geometry.Location.Lat, 0)
	assert.InDelta(t, 50.0, *under.Geometry.Location.Lat, 0)
	ml.AssertExpectations(t)
	ml.AssertNumberOfCalls(t, "Lookup", 2)
}

func TestCacheGeocode_MissFetchesOnceThenHits(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "google_caches")
	ctx := context.Background()

	ml := new(mockLookup)
	ml.On("Lookup", ctx, "Aba Nigeria Temple").Return(json.RawMessage(abaPayload), nil).Once()

	c := NewCache(dir, ml)
	p, err := c.Geocode(ctx, "Aba Nigeria Temple")
	require.NoError(t, err)
	assert.InDelta(t, 5.1066, *p.Geometry.Location.Lat, 0.0001)

	_, err = os.Stat(c.Path("Aba Nigeria Temple"))
	require.NoError(t, err)

	// A second cache on the same directory must not fetch again.
	again := NewCache(dir, ml)
	p2, err := again.Geocode(ctx, "Aba Nigeria Temple")
	require.NoError(t, err)
	assert.Equal(t, *p.Geometry.Location.Lng, *p2.Geometry.Location.Lng)

	ml.AssertExpectations(t)
	ml.AssertNumberOfCalls(t, "Lookup", 1)
}

func TestCacheGeocode_ReadsExistingListFile(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, nil)
	require.NoError(t, os.WriteFile(c.Path("Aba Nigeria Temple"), []byte("["+abaPayload+"]"), 0o644))

	p, err := c.Geocode(context.Background(), "Aba Nigeria Temple")
	require.NoError(t, err)
	assert.Equal(t, "Aba, Nigeria", p.FormattedAddress)
}

func TestCacheGeocode_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	ml := new(mockLookup)
	c := NewCache(dir, ml)
	require.NoError(t, os.WriteFile(c.Path("Broken Temple"), []byte("{not json"), 0o644))

	_, err := c.Geocode(context.Background(), "Broken Temple")
	require.Error(t, err)
	assert.True(t, fault.IsCacheCorrupt(err))
	ml.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestCacheGeocode_MissingKeysIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, nil)
	require.NoError(t, os.WriteFile(c.Path("Keyless Temple"), []byte(`{"address_components": []}`), 0o644))

	_, err := c.Geocode(context.Background(), "Keyless Temple")
	require.Error(t, err)
	assert.True(t, fault.IsCacheCorrupt(err))
}

func TestCacheGeocode_LookupFailure(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	ml := new(mockLookup)
	ml.On("Lookup", ctx, "Nowhere Temple").Return(nil, errors.New("zero results"))

	c := NewCache(dir, ml)
	_, err := c.Geocode(ctx, "Nowhere Temple")
	require.Error(t, err)
	assert.True(t, fault.IsFetch(err))

	_, statErr := os.Stat(c.Path("Nowhere Temple"))
	assert.True(t, os.IsNotExist(statErr), "failed lookups must not be cached")
}

func TestCacheGeocode_LookupReturnsUnusablePayload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	ml := new(mockLookup)
	ml.On("Lookup", ctx, "Odd Temple").Return(json.RawMessage(`{"geometry": {}}`), nil)

	c := NewCache(dir, ml)
	_, err := c.Geocode(ctx, "Odd Temple")
	require.Error(t, err)
	assert.True(t, fault.IsFetch(err))
}

func TestCacheGeocode_NoLookupConfigured(t *testing.T) {
	c := NewCache(t.TempDir(), nil)
	_, err := c.Geocode(context.Background(), "Aba Nigeria Temple")
	require.Error(t, err)
	assert.True(t, fault.IsFetch(err))
	assert.Contains(t, err.Error(), "no lookup configured")
}
