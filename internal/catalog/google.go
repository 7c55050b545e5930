package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/model"
	"tour-planner-backend/internal/store"
)

// ErrMissingAPIKey is returned when the Google fetcher has no key configured.
var ErrMissingAPIKey = errors.New("google places api key is not configured")

// textSearchResponse models the Places Text Search JSON response.
type textSearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID          string   `json:"place_id"`
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Rating           *float64 `json:"rating"`
		PriceLevel       *int     `json:"price_level"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GooglePlacesFetcher searches the Google Places Text Search API.
type GooglePlacesFetcher struct {
	client *resty.Client
	cfg    config.GoogleConfig
	city   string
}

// NewGooglePlacesFetcher creates a fetcher that searches "<category> in <city>".
func NewGooglePlacesFetcher(cfg config.GoogleConfig, city string, timeout time.Duration) *GooglePlacesFetcher {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &GooglePlacesFetcher{client: c, cfg: cfg, city: city}
}

func (f *GooglePlacesFetcher) Name() string { return model.SourceGoogle }

// Fetch returns the text search results for category in the city.
func (f *GooglePlacesFetcher) Fetch(ctx context.Context, category string) ([]store.PlaceItem, error) {
	if f.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var parsed textSearchResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query": category + " in " + f.city,
			"key":   f.cfg.APIKey,
		}).
		SetResult(&parsed).
		Get(f.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("google places request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("google places status %d", resp.StatusCode())
	}
	switch parsed.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("google places returned %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	items := make([]store.PlaceItem, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.Name == "" {
			continue
		}
		desc := r.FormattedAddress
		if desc == "" {
			desc = describeCategory(category)
		}
		items = append(items, store.PlaceItem{
			ExternalID:  r.PlaceID,
			Name:        r.Name,
			Description: desc,
			Category:    category,
			Source:      model.SourceGoogle,
			Address:     r.FormattedAddress,
			Rating:      r.Rating,
			PriceLevel:  r.PriceLevel,
			Lat:         r.Geometry.Location.Lat,
			Lon:         r.Geometry.Location.Lng,
		})
	}
	return items, nil
}
