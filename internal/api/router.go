package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/mw"
	"tour-planner-backend/internal/store"
)

// NewRouter creates and configures a new Gin router. catalog may be nil.
func NewRouter(s store.Store, catalog Refresher, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestID())

	// Cached GET responses expire after the configured TTL and are swept at twice that.
	cacheStore := cache.New(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.Server.CacheTTL)
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	handler := NewHandler(s, catalog, cfg, cacheStore)

	r.GET("/healthz", Healthz)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/places", caching, handler.GetPlaces)
		api.POST("/places/refresh", handler.RefreshPlaces)

		api.POST("/itineraries", handler.CreateItinerary)
		api.POST("/itineraries/surprise", handler.SurpriseItinerary)
		api.POST("/itineraries/reconfirm", handler.ReconfirmItinerary)

		api.GET("/route", caching, handler.GetRoute)
	}

	return r
}
