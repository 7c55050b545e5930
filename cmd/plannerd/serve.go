package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tour-planner-backend/internal/api"
	"tour-planner-backend/internal/catalog"
	"tour-planner-backend/internal/db"
	"tour-planner-backend/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background catalog refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// openStore initializes the database and makes sure the seed attractions exist.
func (a *app) openStore(ctx context.Context) (store.Store, func(), error) {
	gormDB, err := db.Init(&a.cfg.Database)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize database")
	}
	closeDB := func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Info().Str("driver", a.cfg.Database.Driver).Msg("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	if a.cfg.Planner.City == store.DefaultCity {
		if err := appStore.SeedPlaces(ctx, store.DefaultCity, store.DefaultAttractions()); err != nil {
			closeDB()
			return nil, nil, errors.Wrap(err, "failed to seed attractions")
		}
	}
	return appStore, closeDB, nil
}

func (a *app) serve(parent context.Context) error {
	if a.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	appStore, closeDB, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	var refresher api.Refresher
	catalogSvc, err := catalog.NewService(a.cfg, appStore)
	if err != nil {
		log.Error().Stack().Err(errors.WithStack(err)).Msg("catalog refresh disabled")
	} else {
		refresher = catalogSvc
		go catalogSvc.Run(ctx)
	}

	router := api.NewRouter(appStore, refresher, a.cfg)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", a.cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		log.Info().Msg("shutdown signal received, stopping services")
	case err := <-serveErr:
		return errors.Wrap(err, "HTTP server ListenAndServe")
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server Shutdown")
	}

	log.Info().Msg("server gracefully stopped")
	return nil
}
