package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tour-planner-backend/internal/catalog"
	"tour-planner-backend/internal/itinerary"
	"tour-planner-backend/internal/model"
	"tour-planner-backend/internal/mw"
	"tour-planner-backend/internal/store"
)

// GetPlaces handles GET /api/places.
func (h *Handler) GetPlaces(c *gin.Context) {
	f := store.Filter{
		City:     h.cfg.Planner.City,
		Category: c.Query("category"),
		Source:   c.Query("source"),
	}
	if raw := c.Query("max_price"); raw != "" {
		maxPrice, err := strconv.Atoi(raw)
		if err != nil || maxPrice < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		f.MaxPrice = &maxPrice
	}

	places, err := h.store.ListPlaces(c.Request.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list places")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve places"})
		return
	}
	if places == nil {
		places = []model.Place{}
	}
	c.JSON(http.StatusOK, places)
}

// RefreshPlaces handles POST /api/places/refresh.
func (h *Handler) RefreshPlaces(c *gin.Context) {
	if h.catalog == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "catalog refresh is not configured"})
		return
	}

	n, err := h.catalog.RefreshOnce(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrNothingFetched) {
			status = http.StatusBadGateway
		}
		log.Error().Err(err).Msg("catalog refresh failed")
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}
	if h.cache != nil {
		mw.Purge(h.cache)
	}
	c.JSON(http.StatusOK, gin.H{"upserted": n})
}

// GetRoute handles GET /api/route?place=A&place=B.
func (h *Handler) GetRoute(c *gin.Context) {
	names := c.QueryArray("place")
	if len(names) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "at least one place is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": itinerary.RouteURL(names, h.cfg.Planner.Locality)})
}
