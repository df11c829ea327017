package listing

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// mockFetcher implements Fetcher for testing.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context) (temple.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(temple.Listing), args.Error(1)
}

// mockDownloader implements Downloader for testing.
type mockDownloader struct {
	mock.Mock
}

func (m *mockDownloader) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
