// Package catalog keeps the places table in sync with an upstream
// points-of-interest API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/store"
)

// ErrNothingFetched is returned when every category failed and no places
// were retrieved. The store is not touched in that case.
var ErrNothingFetched = errors.New("catalog refresh fetched nothing")

// Service orchestrates catalog refreshes.
type Service struct {
	cfg   *config.Config
	store store.Store
	pool  *WorkerPool
}

// NewService creates a service using the fetcher selected by cfg.Catalog.Provider.
func NewService(cfg *config.Config, s store.Store) (*Service, error) {
	fetcher, err := NewFetcher(cfg)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFetcher(cfg, s, fetcher), nil
}

// NewServiceWithFetcher creates a service with an explicit fetcher.
func NewServiceWithFetcher(cfg *config.Config, s store.Store, fetcher Fetcher) *Service {
	return &Service{
		cfg:   cfg,
		store: s,
		pool:  NewWorkerPool(cfg.Catalog.Workers, fetcher),
	}
}

// NewFetcher builds the upstream client named by cfg.Catalog.Provider.
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	timeout := time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second
	switch cfg.Catalog.Provider {
	case "overpass", "":
		return NewOverpassFetcher(cfg.Catalog.Overpass, timeout), nil
	case "google":
		return NewGooglePlacesFetcher(cfg.Catalog.Google, cfg.Planner.City, timeout), nil
	default:
		return nil, fmt.Errorf("unknown catalog provider %q", cfg.Catalog.Provider)
	}
}

// Run refreshes the catalog once and then on every interval until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Catalog.Enabled {
		log.Info().Msg("catalog refresh is disabled; not starting")
		return
	}
	log.Info().Dur("interval", s.cfg.Catalog.Interval).Msg("starting catalog refresh service")

	s.refreshAndLog(ctx)

	timer := time.NewTimer(s.cfg.Catalog.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("catalog refresh service shutting down")
			return
		case <-timer.C:
			s.refreshAndLog(ctx)
			timer.Reset(s.cfg.Catalog.Interval)
		}
	}
}

func (s *Service) refreshAndLog(ctx context.Context) {
	if _, err := s.RefreshOnce(ctx); err != nil {
		log.Error().Err(err).Msg("catalog refresh failed")
	}
}

// RefreshOnce fetches every configured category and upserts the results.
// It returns the number of places written.
func (s *Service) RefreshOnce(ctx context.Context) (int, error) {
	source := s.pool.fetcher.Name()
	log.Info().Str("source", source).Strs("categories", s.cfg.Catalog.Categories).Msg("executing catalog refresh")

	var items []store.PlaceItem
	var fetchErr error
	for _, r := range s.pool.FetchAll(ctx, s.cfg.Catalog.Categories) {
		if r.Err != nil {
			log.Warn().Err(r.Err).Str("category", r.Category).Msg("error fetching category")
			fetchErr = errors.Join(fetchErr, fmt.Errorf("%s: %w", r.Category, r.Err))
			continue
		}
		log.Debug().Str("category", r.Category).Int("count", len(r.Items)).Msg("fetched category")
		items = append(items, r.Items...)
	}

	// If every fetch failed and nothing came back, keep what we have.
	if fetchErr != nil && len(items) == 0 {
		return 0, fmt.Errorf("%w: %w", ErrNothingFetched, fetchErr)
	}
	if len(items) == 0 {
		log.Info().Msg("catalog refresh finished: no places returned")
		return 0, nil
	}

	n, err := s.store.UpsertPlaces(ctx, s.cfg.Planner.City, items)
	if err != nil {
		return 0, fmt.Errorf("failed to store places: %w", err)
	}
	log.Info().Int("places", n).Msg("catalog refresh finished")
	return n, nil
}
