package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/model"
	"tour-planner-backend/internal/store"
)

// overpassResponse models the part of the Overpass JSON output we read.
type overpassResponse struct {
	Elements []struct {
		Type string            `json:"type"`
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// OverpassFetcher queries the OpenStreetMap Overpass API for tourism nodes
// around a fixed point.
type OverpassFetcher struct {
	client *resty.Client
	cfg    config.OverpassConfig
}

// NewOverpassFetcher creates a fetcher for the configured interpreter.
func NewOverpassFetcher(cfg config.OverpassConfig, timeout time.Duration) *OverpassFetcher {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &OverpassFetcher{client: c, cfg: cfg}
}

func (f *OverpassFetcher) Name() string { return model.SourceOverpass }

// Query returns the Overpass QL for one tourism category.
func (f *OverpassFetcher) Query(category string) string {
	return fmt.Sprintf(`[out:json][timeout:25];(node["tourism"="%s"](around:%d,%f,%f););out body;`,
		category, f.cfg.RadiusM, f.cfg.Lat, f.cfg.Lon)
}

// Fetch returns the named nodes tagged tourism=category.
func (f *OverpassFetcher) Fetch(ctx context.Context, category string) ([]store.PlaceItem, error) {
	var parsed overpassResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"data": f.Query(category)}).
		SetResult(&parsed).
		Post(f.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("overpass status %d", resp.StatusCode())
	}

	items := make([]store.PlaceItem, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		name := el.Tags["name:en"]
		if name == "" {
			name = el.Tags["name"]
		}
		if name == "" {
			continue
		}
		desc := el.Tags["description"]
		if desc == "" {
			desc = describeCategory(category)
		}
		items = append(items, store.PlaceItem{
			ExternalID:  el.Type + "/" + strconv.FormatInt(el.ID, 10),
			Name:        name,
			Description: desc,
			Category:    category,
			Source:      model.SourceOverpass,
			Address:     el.Tags["addr:full"],
			Lat:         el.Lat,
			Lon:         el.Lon,
		})
	}
	return items, nil
}

func describeCategory(category string) string {
	switch category {
	case "museum":
		return "A museum worth a visit."
	case "viewpoint":
		return "A viewpoint with a panoramic view."
	case "attraction":
		return "A popular local attraction."
	default:
		return "A local " + category + "."
	}
}
