package listing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/fault"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

var sample = temple.Listing{
	{Name: "Aba Nigeria Temple", Text: "7 August 2005"},
	{Name: "Bentonville Arkansas Temple", Text: "Construction"},
}

func TestCacheListing_MissingFetchesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lds_cache.json")
	ctx := context.Background()

	mf := new(mockFetcher)
	mf.On("Fetch", ctx).Return(sample, nil).Once()

	c := NewCache(path, mf)
	l, err := c.Listing(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample, l)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Aba Nigeria Temple": "7 August 2005"`)

	// Same value: memoized, no I/O.
	require.NoError(t, os.Remove(path))
	again, err := c.Listing(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample, again)

	mf.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestCacheListing_ExistingSnapshotNoFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lds_cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Aba Nigeria Temple": "7 August 2005", "Bentonville Arkansas Temple": "Construction"}`), 0o644))

	mf := new(mockFetcher)
	c := NewCache(path, mf)
	l, err := c.Listing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sample, l)
	mf.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestCacheListing_MalformedRefetchesAndRewrites(t *testing.T) {
	for name, content := range map[string]string{
		"invalid json": `{"Aba Nigeria Temple": `,
		"not flat":     `{"Aba Nigeria Temple": {"date": "7 August 2005"}}`,
		"empty object": `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lds_cache.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			ctx := context.Background()
			mf := new(mockFetcher)
			mf.On("Fetch", ctx).Return(sample, nil).Once()

			l, err := NewCache(path, mf).Listing(ctx)
			require.NoError(t, err)
			assert.Equal(t, sample, l)

			reread, err := NewCache(path, nil).Listing(ctx)
			require.NoError(t, err)
			assert.Equal(t, sample, reread)
			mf.AssertExpectations(t)
		})
	}
}

func TestCacheListing_FetchFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lds_cache.json")
	ctx := context.Background()

	mf := new(mockFetcher)
	mf.On("Fetch", ctx).Return(nil, errors.New("status 503"))

	_, err := NewCache(path, mf).Listing(ctx)
	require.Error(t, err)
	assert.True(t, fault.IsFetch(err))
	assert.Contains(t, err.Error(), "status 503")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCacheListing_FetchReturnsNothing(t *testing.T) {
	ctx := context.Background()
	mf := new(mockFetcher)
	mf.On("Fetch", ctx).Return(temple.Listing{}, nil)

	_, err := NewCache(filepath.Join(t.TempDir(), "c.json"), mf).Listing(ctx)
	require.Error(t, err)
	assert.True(t, fault.IsFetch(err))
}

func TestCacheListing_NoFetcher(t *testing.T) {
	_, err := NewCache(filepath.Join(t.TempDir(), "c.json"), nil).Listing(context.Background())
	require.Error(t, err)
	assert.True(t, fault.IsFetch(err))
}

func TestCacheListing_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "lds_cache.json")
	ctx := context.Background()
	mf := new(mockFetcher)
	mf.On("Fetch", ctx).Return(sample, nil)

	c := NewCache(path, mf)
	_, err := c.Listing(ctx)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path())
	assert.FileExists(t, path)
}
