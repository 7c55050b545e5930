package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/itinerary"
	"tour-planner-backend/internal/model"
	"tour-planner-backend/internal/store"
)

// mockFetcher returns canned results per category.
type mockFetcher struct {
	mu       sync.Mutex
	results  map[string][]store.PlaceItem
	errs     map[string]error
	calls    []string
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (m *mockFetcher) Name() string { return "mock" }

func (m *mockFetcher) Fetch(ctx context.Context, category string) ([]store.PlaceItem, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		seen := m.maxSeen.Load()
		if n <= seen || m.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	m.mu.Lock()
	m.calls = append(m.calls, category)
	m.mu.Unlock()
	return m.results[category], m.errs[category]
}

// mockStore is a mock implementation of the store.Store interface.
type mockStore struct {
	UpsertPlacesFunc func(ctx context.Context, city string, items []store.PlaceItem) (int, error)
}

func (m *mockStore) SeedPlaces(ctx context.Context, city string, places []itinerary.Place) error {
	return nil
}

func (m *mockStore) UpsertPlaces(ctx context.Context, city string, items []store.PlaceItem) (int, error) {
	return m.UpsertPlacesFunc(ctx, city, items)
}

func (m *mockStore) ListPlaces(ctx context.Context, f store.Filter) ([]model.Place, error) {
	return nil, nil
}

func (m *mockStore) FindPlaces(ctx context.Context, city string, names []string) (map[string]model.Place, error) {
	return nil, nil
}

func (m *mockStore) DB() *gorm.DB { return nil }

func testConfig(categories ...string) *config.Config {
	cfg := config.Default()
	cfg.Catalog.Categories = categories
	cfg.Catalog.Workers = 2
	return cfg
}

func TestWorkerPool_FetchAllKeepsOrderAndBoundsConcurrency(t *testing.T) {
	f := &mockFetcher{results: map[string][]store.PlaceItem{
		"a": {{Name: "A"}},
		"b": {{Name: "B"}},
		"c": {{Name: "C"}},
		"d": {{Name: "D"}},
	}}
	wp := NewWorkerPool(2, f)

	results := wp.FetchAll(context.Background(), []string{"a", "b", "c", "d"})
	require.Len(t, results, 4)
	for i, want := range []string{"A", "B", "C", "D"} {
		assert.NoError(t, results[i].Err)
		assert.Equal(t, want, results[i].Items[0].Name)
	}
	assert.LessOrEqual(t, f.maxSeen.Load(), int32(2))
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, f.calls)
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &mockFetcher{}
	results := NewWorkerPool(1, f).FetchAll(ctx, []string{"a", "b", "c"})
	require.Len(t, results, 3)
	for _, r := range results {
		// each category either ran or was marked cancelled
		if r.Err != nil {
			assert.ErrorIs(t, r.Err, context.Canceled)
		}
	}
}

func TestService_RefreshOnce(t *testing.T) {
	f := &mockFetcher{
		results: map[string][]store.PlaceItem{
			"attraction": {{Name: "Jebel Jais", Source: "mock"}},
			"museum":     {{Name: "RAK National Museum", Source: "mock"}},
		},
		errs: map[string]error{"viewpoint": errors.New("timeout")},
	}

	var gotCity string
	var gotItems []store.PlaceItem
	s := &mockStore{UpsertPlacesFunc: func(ctx context.Context, city string, items []store.PlaceItem) (int, error) {
		gotCity = city
		gotItems = items
		return len(items), nil
	}}

	svc := NewServiceWithFetcher(testConfig("attraction", "museum", "viewpoint"), s, f)
	n, err := svc.RefreshOnce(context.Background())
	require.NoError(t, err, "a partial failure still stores what was fetched")
	assert.Equal(t, 2, n)
	assert.Equal(t, "Ras Al Khaimah", gotCity)
	require.Len(t, gotItems, 2)
	assert.Equal(t, "Jebel Jais", gotItems[0].Name)
	assert.Equal(t, "RAK National Museum", gotItems[1].Name)
}

func TestService_RefreshOnceAllFailed(t *testing.T) {
	f := &mockFetcher{errs: map[string]error{
		"attraction": errors.New("boom"),
		"museum":     errors.New("boom"),
	}}
	s := &mockStore{UpsertPlacesFunc: func(ctx context.Context, city string, items []store.PlaceItem) (int, error) {
		t.Fatal("store must not be touched when nothing was fetched")
		return 0, nil
	}}

	svc := NewServiceWithFetcher(testConfig("attraction", "museum"), s, f)
	n, err := svc.RefreshOnce(context.Background())
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrNothingFetched)
	assert.ErrorContains(t, err, "attraction: boom")
}

func TestService_RefreshOnceEmptyAndStoreError(t *testing.T) {
	f := &mockFetcher{results: map[string][]store.PlaceItem{"museum": {{Name: "X"}}}}

	calls := 0
	s := &mockStore{UpsertPlacesFunc: func(ctx context.Context, city string, items []store.PlaceItem) (int, error) {
		calls++
		return 0, errors.New("locked")
	}}

	svc := NewServiceWithFetcher(testConfig("attraction"), s, f)
	n, err := svc.RefreshOnce(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, calls, "empty results are not written")

	svc = NewServiceWithFetcher(testConfig("museum"), s, f)
	_, err = svc.RefreshOnce(context.Background())
	assert.ErrorContains(t, err, "failed to store places: locked")
}

func TestService_RunDisabledReturns(t *testing.T) {
	cfg := testConfig("attraction")
	cfg.Catalog.Enabled = false
	svc := NewServiceWithFetcher(cfg, &mockStore{}, &mockFetcher{})

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when disabled")
	}
}

func TestService_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig("attraction")
	cfg.Catalog.Interval = time.Hour

	refreshed := make(chan struct{}, 1)
	s := &mockStore{UpsertPlacesFunc: func(ctx context.Context, city string, items []store.PlaceItem) (int, error) {
		refreshed <- struct{}{}
		return len(items), nil
	}}
	f := &mockFetcher{results: map[string][]store.PlaceItem{"attraction": {{Name: "A"}}}}
	svc := NewServiceWithFetcher(cfg, s, f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("expected an initial refresh")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
