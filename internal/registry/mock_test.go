package registry

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
	"github.com/FlyingWorkshop/Map-LDS-Temples/pkg/geocode"
)

// mockListingSource implements ListingSource for testing.
type mockListingSource struct {
	mock.Mock
}

func (m *mockListingSource) Listing(ctx context.Context) (temple.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(temple.Listing), args.Error(1)
}

// mockGeocodeSource implements GeocodeSource for testing.
type mockGeocodeSource struct {
	mock.Mock
}

func (m *mockGeocodeSource) Geocode(ctx context.Context, name string) (*geocode.Payload, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.Payload), args.Error(1)
}
