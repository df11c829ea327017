package main

import (
	"context"
	"time"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/config"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/fetcher"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/listing"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/registry"
	"github.com/FlyingWorkshop/Map-LDS-Temples/pkg/geocode"
)

// newListingCache wires the listing cache to the scraper behind the
// rate-limited downloader.
func newListingCache(c *config.Config) *listing.Cache {
	dl := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:   c.HTTP.UserAgent,
		Timeout:     time.Duration(c.HTTP.TimeoutSecs) * time.Second,
		RatePerHost: c.HTTP.RateLimit,
	})
	return listing.NewCache(c.Listing.CachePath, listing.NewScraper(c.Listing.URL, dl))
}

// newGeocodeCache wires the geocode cache. Without an API key the cache is
// read-only and a missing file fails the build.
func newGeocodeCache(c *config.Config) *geocode.Cache {
	var lookup geocode.Lookup
	if c.Geocode.APIKey != "" {
		opts := []geocode.Option{geocode.WithAPIKey(c.Geocode.APIKey)}
		if c.Geocode.TimeoutSecs > 0 {
			opts = append(opts, geocode.WithTimeout(time.Duration(c.Geocode.TimeoutSecs)*time.Second))
		}
		if c.Geocode.RateLimit > 0 {
			opts = append(opts, geocode.WithRateLimit(c.Geocode.RateLimit))
		}
		if c.Geocode.BaseURL != "" {
			opts = append(opts, geocode.WithBaseURL(c.Geocode.BaseURL))
		}
		lookup = geocode.NewClient(opts...)
	}
	return geocode.NewCache(c.Geocode.CacheDir, lookup)
}

func loadRegistry(ctx context.Context, mode string) (*registry.Registry, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	return registry.Load(ctx, newListingCache(cfg), newGeocodeCache(cfg))
}
