package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/itinerary"
	"tour-planner-backend/internal/store"
)

// Refresher re-fetches the place catalog. *catalog.Service implements it.
type Refresher interface {
	RefreshOnce(ctx context.Context) (int, error)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	catalog Refresher
	cfg     *config.Config
	cache   *cache.Cache
}

// NewHandler creates a new API handler. catalog may be nil, in which case
// refresh requests answer 503.
func NewHandler(s store.Store, catalog Refresher, cfg *config.Config, responses *cache.Cache) *Handler {
	return &Handler{
		store:   s,
		catalog: catalog,
		cfg:     cfg,
		cache:   responses,
	}
}

// errBadInput marks request problems found by the handlers themselves.
var errBadInput = errors.New("invalid request")

func isClientError(err error) bool {
	for _, target := range []error{
		errBadInput,
		itinerary.ErrInvalidRange,
		itinerary.ErrInvalidDuration,
		itinerary.ErrNegativeBuffer,
		itinerary.ErrBufferTooLarge,
		itinerary.ErrInvalidClock,
		itinerary.ErrDuplicatePlace,
		itinerary.ErrUnknownPlace,
		itinerary.ErrPlaceCount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError answers 400 with the error message for validation failures
// and a generic 500 for everything else.
func respondError(c *gin.Context, err error) {
	if isClientError(err) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// Healthz handles GET /healthz.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
