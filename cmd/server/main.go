// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Command server runs the Playdex HTTP server: the recommendation feed,
// play-sequence arrangement, and playlist storage over a precomputed
// catalog snapshot.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/playdex/playdex/internal/api"
	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/config"
	"github.com/playdex/playdex/internal/enrich"
	"github.com/playdex/playdex/internal/franchise"
	"github.com/playdex/playdex/internal/logging"
	"github.com/playdex/playdex/internal/playlist"
	"github.com/playdex/playdex/internal/rank"
	"github.com/playdex/playdex/internal/sequence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := logging.Logger()
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	log := logging.Logger()

	log.Info().
		Str("snapshot", cfg.Catalog.SnapshotPath).
		Str("db", cfg.Playlist.DBPath).
		Int("port", cfg.Server.Port).
		Msg("starting playdex")

	// The catalog snapshot is the one artifact the server cannot run
	// without.
	store, err := catalog.Load(cfg.Catalog.SnapshotPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Catalog.SnapshotPath).Msg("failed to load catalog snapshot")
	}
	log.Info().Int("games", store.Len()).Int("dim", store.Dim()).Msg("catalog loaded")

	index := franchise.BuildIndex(store.Items())
	log.Info().Int("franchises", index.Size()).Msg("franchise index built")

	var lookup franchise.LookupSource
	if cfg.Franchise.LookupBaseURL != "" {
		lookup = franchise.NewWikiLookup(franchise.WikiLookupConfig{
			BaseURL: cfg.Franchise.LookupBaseURL,
			Timeout: cfg.Franchise.LookupTimeout,
			RPS:     cfg.Franchise.LookupRPS,
			Cache:   franchise.NewFileCache(cfg.Franchise.CachePath),
		}, log)
	}
	resolver := franchise.NewResolver(lookup, franchise.DefaultOverrides, log)

	rankCfg := rank.DefaultConfig()
	rankCfg.Weights = rank.Weights{
		Content:    cfg.Rank.ContentWeight,
		Franchise:  cfg.Rank.FranchiseWeight,
		Popularity: cfg.Rank.PopularityWeight,
		Rating:     cfg.Rank.RatingWeight,
	}
	rankCfg.ClickDecay = cfg.Rank.ClickDecay
	rankCfg.PlayedDamping = cfg.Rank.PlayedDamping
	rankCfg.FranchiseCap = cfg.Rank.FranchiseCap
	rankCfg.DefaultK = cfg.Rank.DefaultK
	rankCfg.MaxK = cfg.Rank.MaxK
	rankCfg.Seed = cfg.Rank.Seed

	engine, err := rank.NewEngine(rankCfg, store, index, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build ranking engine")
	}

	orch := sequence.NewOrchestrator(store, index, resolver, log)

	orderCache, err := sequence.NewOrderCache[catalog.Item](cfg.Playlist.OrderCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build order cache")
	}

	lists, err := playlist.Open(cfg.Playlist.DBPath, orderCache, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Playlist.DBPath).Msg("failed to open playlist store")
	}
	defer func() {
		if err := lists.Close(); err != nil {
			log.Error().Err(err).Msg("error closing playlist store")
		}
	}()

	enricher, err := enrich.New(cfg.Catalog.DetailsPath, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Catalog.DetailsPath).Msg("failed to load details file")
	}

	handler := api.NewHandler(store, engine, rankCfg.Weights, orch, orderCache, lists, enricher, log)
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimit:   cfg.Server.RateLimit,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("playdex stopped")
}
