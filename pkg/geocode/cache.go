package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/fault"
)

// Cache memoizes one raw payload per temple name under dir. A name whose
// file exists is never fetched again.
type Cache struct {
	dir    string
	lookup Lookup
}

// NewCache creates a Cache rooted at dir. lookup may be nil, in which case
// only names already on disk can be resolved.
func NewCache(dir string, lookup Lookup) *Cache {
	return &Cache{dir: dir, lookup: lookup}
}

// fileNameReplacer percent-escapes the characters a file name cannot hold.
// "%" is escaped too, so distinct names never share a file.
var fileNameReplacer = strings.NewReplacer("%", "%25", "/", "%2F", "\\", "%5C", "\x00", "%00")

// Path returns the cache file for name.
func (c *Cache) Path(name string) string {
	return filepath.Join(c.dir, fileNameReplacer.Replace(name)+".json")
}

// Geocode returns the payload for name, reading the cache file if present
// and otherwise fetching once and persisting the raw result.
func (c *Cache) Geocode(ctx context.Context, name string) (*Payload, error) {
	path := c.Path(name)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		p, decErr := DecodePayload(data)
		if decErr != nil {
			return nil, fault.NewCacheCorruptError(path, decErr)
		}
		zap.L().Debug("geocode cache hit", zap.String("name", name))
		return p, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, eris.Wrapf(err, "geocode: read cache %s", path)
	}

	if c.lookup == nil {
		return nil, fault.NewFetchError("geocode", name, eris.New("no cache entry and no lookup configured"))
	}

	zap.L().Info("geocode cache miss, fetching", zap.String("name", name))
	raw, err := c.lookup.Lookup(ctx, name)
	if err != nil {
		return nil, fault.NewFetchError("geocode", name, err)
	}

	p, err := DecodePayload(raw)
	if err != nil {
		return nil, fault.NewFetchError("geocode", name, err)
	}

	if err := c.write(path, raw); err != nil {
		return nil, err
	}
	return p, nil
}

// write persists raw via a temp file and rename so a failed write never
// leaves a truncated cache entry behind.
func (c *Cache) write(path string, raw json.RawMessage) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return eris.Wrapf(err, "geocode: create cache dir %s", c.dir)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return eris.Wrap(err, "geocode: indent payload")
	}
	buf.WriteByte('\n')

	tmp, err := os.CreateTemp(c.dir, ".geocode-*.tmp")
	if err != nil {
		return eris.Wrap(err, "geocode: create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrap(err, "geocode: write temp file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "geocode: close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "geocode: persist %s", path)
	}
	return nil
}
