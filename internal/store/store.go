package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tour-planner-backend/internal/itinerary"
	"tour-planner-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	SeedPlaces(ctx context.Context, city string, places []itinerary.Place) error
	UpsertPlaces(ctx context.Context, city string, items []PlaceItem) (int, error)
	ListPlaces(ctx context.Context, f Filter) ([]model.Place, error)
	FindPlaces(ctx context.Context, city string, names []string) (map[string]model.Place, error)
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// SeedPlaces inserts places that are not in the catalog yet. Existing rows
// are left alone.
func (s *gormStore) SeedPlaces(ctx context.Context, city string, places []itinerary.Place) error {
	if len(places) == 0 {
		return nil
	}
	rows := make([]model.Place, len(places))
	for i, p := range places {
		rows[i] = model.Place{City: city, Name: p.Name, Description: p.Description, Source: model.SourceSeed}
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "city"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed places for %s: %w", city, err)
	}
	return nil
}

// UpsertPlaces inserts or updates fetched places, keyed on (city, name).
// Seeded rows keep their description and source; everything else is
// refreshed from the upstream item.
func (s *gormStore) UpsertPlaces(ctx context.Context, city string, items []PlaceItem) (int, error) {
	rows := dedupe(city, items)
	if len(rows) == 0 {
		return 0, nil
	}

	keepSeeded := func(col string) clause.Assignment {
		return clause.Assignment{
			Column: clause.Column{Name: col},
			Value:  gorm.Expr("CASE WHEN places.source = ? THEN places."+col+" ELSE excluded."+col+" END", model.SourceSeed),
		}
	}
	updates := append(
		clause.AssignmentColumns([]string{"category", "external_id", "address", "rating", "price_level", "lat", "lon", "updated_at"}),
		keepSeeded("description"),
		keepSeeded("source"),
	)

	log.Debug().Int("count", len(rows)).Str("city", city).Msg("batch upserting places")
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "city"}, {Name: "name"}},
			DoUpdates: updates,
		}).CreateInBatches(&rows, 200).Error
	})
	if err != nil {
		return 0, fmt.Errorf("batch upsert places failed: %w", err)
	}
	return len(rows), nil
}

// ListPlaces returns places matching f, ordered by name.
func (s *gormStore) ListPlaces(ctx context.Context, f Filter) ([]model.Place, error) {
	q := s.db.WithContext(ctx).Model(&model.Place{})
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if f.MaxPrice != nil {
		// unknown price levels are kept, the budget filter only drops known-expensive places
		q = q.Where("price_level IS NULL OR price_level <= ?", *f.MaxPrice)
	}

	var places []model.Place
	if err := q.Order("name").Find(&places).Error; err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

// FindPlaces looks up places by name within a city. Names that do not exist
// are simply absent from the result.
func (s *gormStore) FindPlaces(ctx context.Context, city string, names []string) (map[string]model.Place, error) {
	found := make(map[string]model.Place, len(names))
	if len(names) == 0 {
		return found, nil
	}

	var places []model.Place
	if err := s.db.WithContext(ctx).
		Where("city = ? AND name IN ?", city, names).
		Find(&places).Error; err != nil {
		return nil, fmt.Errorf("failed to look up places: %w", err)
	}
	for _, p := range places {
		found[p.Name] = p
	}
	return found, nil
}

// dedupe builds rows for items, dropping unnamed items and keeping the first
// item for each name. A single upsert statement cannot touch a row twice.
func dedupe(city string, items []PlaceItem) []model.Place {
	seen := make(map[string]struct{}, len(items))
	rows := make([]model.Place, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		if _, dup := seen[item.Name]; dup {
			continue
		}
		seen[item.Name] = struct{}{}
		rows = append(rows, model.Place{
			City:        city,
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			Source:      item.Source,
			ExternalID:  item.ExternalID,
			Address:     item.Address,
			Rating:      item.Rating,
			PriceLevel:  item.PriceLevel,
			Lat:         item.Lat,
			Lon:         item.Lon,
		})
	}
	return rows
}
