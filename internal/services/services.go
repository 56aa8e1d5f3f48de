package services

import (
	"sync"

	"go-echo-starwars/internal/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("go-echo-starwars")
	meter  = otel.Meter("go-echo-starwars")

	metricsOnce      sync.Once
	entitiesCreated  metric.Int64Counter
	entitiesDeleted  metric.Int64Counter
	favoritesCreated metric.Int64Counter
)

func initMetrics() {
	metricsOnce.Do(func() {
		var err error
		entitiesCreated, err = meter.Int64Counter(
			"entities.created",
			metric.WithDescription("Total number of entities created"),
		)
		if err != nil {
			logging.Logger().Error().Err(err).Msg("failed to create entities created counter")
		}

		entitiesDeleted, err = meter.Int64Counter(
			"entities.deleted",
			metric.WithDescription("Total number of entities deleted"),
		)
		if err != nil {
			logging.Logger().Error().Err(err).Msg("failed to create entities deleted counter")
		}

		favoritesCreated, err = meter.Int64Counter(
			"favorites.created",
			metric.WithDescription("Total number of favorites created"),
		)
		if err != nil {
			logging.Logger().Error().Err(err).Msg("failed to create favorites counter")
		}
	})
}
