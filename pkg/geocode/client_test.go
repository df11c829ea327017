package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLookup_FirstResult(t *testing.T) {
	var gotAddress, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddress = r.URL.Query().Get("address")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status": "OK", "results": [`+abaPayload+`, {"geometry": {"location": {"lat": 1, "lng": 2}}}]}`)
	}))
	defer srv.Close()

	c := &Client{
		httpClient: newRewriteClient(srv.URL, DefaultBaseURL),
		apiKey:     "test-key",
		baseURL:    DefaultBaseURL,
		limiter:    newTestLimiter(),
	}

	raw, err := c.Lookup(context.Background(), "Aba Nigeria Temple")
	require.NoError(t, err)
	assert.Equal(t, "Aba Nigeria Temple", gotAddress)
	assert.Equal(t, "test-key", gotKey)

	p, err := DecodePayload(raw)
	require.NoError(t, err)
	assert.InDelta(t, 5.1066, *p.Geometry.Location.Lat, 0.0001)
	assert.Equal(t, "Aba, Nigeria", p.FormattedAddress)
}

func TestClientLookup_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer srv.Close()

	c := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL), WithRateLimit(1000))

	_, err := c.Lookup(context.Background(), "Nowhere Temple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}

func TestClientLookup_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status": "REQUEST_DENIED", "results": [], "error_message": "The provided API key is invalid."}`)
	}))
	defer srv.Close()

	c := NewClient(WithAPIKey("bad"), WithBaseURL(srv.URL), WithRateLimit(1000))

	_, err := c.Lookup(context.Background(), "Aba Nigeria Temple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is invalid")
}

func TestClientLookup_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	_, err := c.Lookup(context.Background(), "Aba Nigeria Temple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestClientLookup_NoKey(t *testing.T) {
	c := NewClient()
	_, err := c.Lookup(context.Background(), "Aba Nigeria Temple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestClientLookup_CancelledContext(t *testing.T) {
	c := NewClient(WithAPIKey("k"), WithRateLimit(0.001))
	c.limiter.Allow() // drain the single burst token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Lookup(ctx, "Aba Nigeria Temple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestNewClient_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, NewClient().httpClient.Timeout)
	assert.Equal(t, 30*time.Second, NewClient(WithTimeout(0)).httpClient.Timeout)
	assert.Equal(t, 30*time.Second, NewClient(WithTimeout(-time.Second)).httpClient.Timeout)
	assert.Equal(t, 5*time.Second, NewClient(WithTimeout(5*time.Second)).httpClient.Timeout)
}
