// Package listing persists the scraped temple listing and fetches it when
// no usable snapshot exists on disk.
package listing

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/fault"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// Fetcher retrieves a fresh listing from the source.
type Fetcher interface {
	Fetch(ctx context.Context) (temple.Listing, error)
}

// Cache serves the listing from a JSON snapshot file, fetching and
// persisting it once when the file is missing or unusable.
type Cache struct {
	path    string
	fetcher Fetcher

	listing temple.Listing
	loaded  bool
}

// NewCache creates a Cache backed by path. fetcher may be nil, in which
// case a missing snapshot is a fetch failure.
func NewCache(path string, fetcher Fetcher) *Cache {
	return &Cache{path: path, fetcher: fetcher}
}

// Path returns the snapshot file location.
func (c *Cache) Path() string {
	return c.path
}

// Listing returns the listing. The first successful result is kept, so
// repeated calls within a run do no I/O and return the same entries.
func (c *Cache) Listing(ctx context.Context) (temple.Listing, error) {
	if c.loaded {
		return append(temple.Listing(nil), c.listing...), nil
	}

	l, err := c.read()
	switch {
	case err == nil && len(l) > 0:
		zap.L().Debug("listing cache hit", zap.String("path", c.path), zap.Int("temples", len(l)))
		return c.keep(l), nil
	case err == nil:
		zap.L().Warn("listing cache empty, refetching", zap.String("path", c.path))
	case errors.Is(err, fs.ErrNotExist):
		zap.L().Info("listing cache missing, fetching", zap.String("path", c.path))
	default:
		zap.L().Warn("listing cache unusable, refetching", zap.String("path", c.path), zap.Error(err))
	}

	if c.fetcher == nil {
		return nil, fault.NewFetchError("listing", "", eris.New("no snapshot and no fetcher configured"))
	}

	l, err = c.fetcher.Fetch(ctx)
	if err != nil {
		if fault.IsFetch(err) {
			return nil, err
		}
		return nil, fault.NewFetchError("listing", "", err)
	}
	if len(l) == 0 {
		return nil, fault.NewFetchError("listing", "", eris.New("source returned no temples"))
	}

	if err := c.write(l); err != nil {
		return nil, err
	}
	return c.keep(l), nil
}

func (c *Cache) keep(l temple.Listing) temple.Listing {
	c.listing = l
	c.loaded = true
	return append(temple.Listing(nil), l...)
}

func (c *Cache) read() (temple.Listing, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

func (c *Cache) write(l temple.Listing) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "listing: create dir %s", dir)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, l); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".listing-*.tmp")
	if err != nil {
		return eris.Wrap(err, "listing: create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrap(err, "listing: write temp file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "listing: close temp file")
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return eris.Wrapf(err, "listing: persist %s", c.path)
	}

	zap.L().Info("listing cache written", zap.String("path", c.path), zap.Int("temples", len(l)))
	return nil
}
