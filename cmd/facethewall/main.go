package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"facethewall/internal/config"
	"facethewall/internal/locale"
	"facethewall/internal/logging"
	"facethewall/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	defer logger.Close()
	logging.SetGlobalLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database.URL, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	images := store.New(db, cfg.Images.Table)

	bundles, err := locale.EmbeddedBundles(locale.Supported)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load locale bundles")
	}
	resolver, err := locale.NewResolver(locale.Supported, locale.Code(cfg.Locale.Default))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure locales")
	}
	if err := checkStartup(ctx, bundles, images, cfg.Images.Table); err != nil {
		log.Fatal().Err(err).Msg("Startup check failed")
	}

	catalog, err := newCatalog(cfg.Catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure music catalog")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newHTTPHandler(cfg, catalog, images, bundles, resolver),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Face The Wall API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
