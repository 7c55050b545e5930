package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/model"
)

func TestOverpassFetcher_Fetch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("data")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"elements":[
			{"type":"node","id":1,"lat":25.95,"lon":56.13,"tags":{"name":"Jebel Jais","name:en":"Jebel Jais Mountain","tourism":"attraction"}},
			{"type":"node","id":2,"lat":25.80,"lon":55.95,"tags":{"name":"Dhayah Fort","description":"Hilltop fort","addr:full":"Dhayah"}},
			{"type":"node","id":3,"lat":25.70,"lon":55.90,"tags":{"tourism":"attraction"}}
		]}`))
	}))
	defer server.Close()

	f := NewOverpassFetcher(config.OverpassConfig{URL: server.URL, Lat: 25.7895, Lon: 55.9432, RadiusM: 5000}, 5*time.Second)
	items, err := f.Fetch(context.Background(), "attraction")
	require.NoError(t, err)

	assert.Equal(t, `[out:json][timeout:25];(node["tourism"="attraction"](around:5000,25.789500,55.943200););out body;`, gotQuery)
	require.Len(t, items, 2, "unnamed nodes are skipped")

	assert.Equal(t, "Jebel Jais Mountain", items[0].Name, "english name preferred")
	assert.Equal(t, "node/1", items[0].ExternalID)
	assert.Equal(t, "A popular local attraction.", items[0].Description)
	assert.Equal(t, model.SourceOverpass, items[0].Source)
	assert.Equal(t, "attraction", items[0].Category)
	assert.InDelta(t, 56.13, items[0].Lon, 1e-9)

	assert.Equal(t, "Dhayah Fort", items[1].Name)
	assert.Equal(t, "Hilltop fort", items[1].Description)
	assert.Equal(t, "Dhayah", items[1].Address)
}

func TestOverpassFetcher_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := NewOverpassFetcher(config.OverpassConfig{URL: server.URL}, 5*time.Second)
	_, err := f.Fetch(context.Background(), "museum")
	assert.EqualError(t, err, "overpass status 429")
}

func TestGooglePlacesFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "museum in Ras Al Khaimah", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[
			{"place_id":"abc","name":"RAK National Museum","formatted_address":"Al Hisn Rd","rating":4.3,"price_level":1,
			 "geometry":{"location":{"lat":25.79,"lng":55.94}}},
			{"place_id":"def","name":"","formatted_address":"nowhere"}
		]}`))
	}))
	defer server.Close()

	f := NewGooglePlacesFetcher(config.GoogleConfig{URL: server.URL, APIKey: "test-key"}, "Ras Al Khaimah", 5*time.Second)
	items, err := f.Fetch(context.Background(), "museum")
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "abc", it.ExternalID)
	assert.Equal(t, "RAK National Museum", it.Name)
	assert.Equal(t, "Al Hisn Rd", it.Description)
	assert.Equal(t, model.SourceGoogle, it.Source)
	require.NotNil(t, it.Rating)
	assert.InDelta(t, 4.3, *it.Rating, 1e-9)
	require.NotNil(t, it.PriceLevel)
	assert.Equal(t, 1, *it.PriceLevel)
	assert.InDelta(t, 25.79, it.Lat, 1e-9)
}

func TestGooglePlacesFetcher_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`))
	}))
	defer server.Close()

	f := NewGooglePlacesFetcher(config.GoogleConfig{URL: server.URL}, "Ras Al Khaimah", time.Second)
	_, err := f.Fetch(context.Background(), "museum")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	f = NewGooglePlacesFetcher(config.GoogleConfig{URL: server.URL, APIKey: "bad"}, "Ras Al Khaimah", time.Second)
	_, err = f.Fetch(context.Background(), "museum")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "google places returned REQUEST_DENIED"))
}

func TestNewFetcher(t *testing.T) {
	cfg := config.Default()

	cfg.Catalog.Provider = "overpass"
	f, err := NewFetcher(cfg)
	require.NoError(t, err)
	assert.Equal(t, model.SourceOverpass, f.Name())

	cfg.Catalog.Provider = "google"
	f, err = NewFetcher(cfg)
	require.NoError(t, err)
	assert.Equal(t, model.SourceGoogle, f.Name())

	cfg.Catalog.Provider = "foursquare"
	_, err = NewFetcher(cfg)
	assert.Error(t, err)
}
