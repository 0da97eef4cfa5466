package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campventure/backend/internal/adapters/database"
	"github.com/campventure/backend/internal/adapters/search"
	"github.com/campventure/backend/internal/domain/repositories"
	"github.com/campventure/backend/internal/infrastructure/clients/postgres"
	"github.com/campventure/backend/internal/infrastructure/clients/typesense"
	"github.com/campventure/backend/internal/infrastructure/observability"
	"github.com/campventure/backend/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("campventure-indexer", os.Getenv("APP_ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Str("interval", intervalValue).Err(err).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("next_run_in", interval).Msg("reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	campRepo := database.NewCampAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	adapter := search.NewTypesenseAdapter(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Msg("deleting camps collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.CampsCollection).Delete(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to delete collection")
		}
	}

	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	camps, err := campRepo.List(ctx, repositories.CampFilter{Limit: 1000})
	if err != nil {
		return err
	}

	log.Info().Int("count", len(camps)).Msg("indexing camps")

	indexed := 0
	for _, camp := range camps {
		if camp == nil {
			continue
		}
		if err := adapter.Index(ctx, camp); err != nil {
			log.Error().Err(err).Str("camp_id", camp.ID).Msg("failed to index camp")
			continue
		}
		indexed++
	}

	log.Info().Int("indexed", indexed).Msg("indexing complete")
	return nil
}
