package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-echo-starwars/internal/logging"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

const TypeFavoriteCreated = "favorite:created"

var (
	tracer        = otel.Tracer("go-echo-starwars-worker")
	meter         = otel.Meter("go-echo-starwars-worker")
	jobsCompleted metric.Int64Counter
	jobsFailed    metric.Int64Counter
	jobsDuration  metric.Float64Histogram
)

func init() {
	var err error

	jobsCompleted, err = meter.Int64Counter(
		"jobs.completed",
		metric.WithDescription("Total number of jobs completed successfully"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs completed counter")
	}

	jobsFailed, err = meter.Int64Counter(
		"jobs.failed",
		metric.WithDescription("Total number of jobs failed"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs failed counter")
	}

	jobsDuration, err = meter.Float64Histogram(
		"jobs.duration_ms",
		metric.WithDescription("Job processing duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs duration histogram")
	}
}

type FavoriteCreatedPayload struct {
	FavoriteID   uint              `json:"favorite_id"`
	UserID       uint              `json:"user_id"`
	TraceContext map[string]string `json:"trace_context"`
}

// HandleFavoriteCreated records a favorite event under the producer's trace.
// Malformed payloads are not retried.
func HandleFavoriteCreated(ctx context.Context, task *asynq.Task) error {
	start := time.Now()

	var payload FavoriteCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		recordJobMetrics(ctx, TypeFavoriteCreated, false, time.Since(start))
		return fmt.Errorf("decode %s payload: %v: %w", TypeFavoriteCreated, err, asynq.SkipRetry)
	}
	if payload.FavoriteID == 0 || payload.UserID == 0 {
		recordJobMetrics(ctx, TypeFavoriteCreated, false, time.Since(start))
		return fmt.Errorf("%s payload without ids: %w", TypeFavoriteCreated, asynq.SkipRetry)
	}

	parentCtx := otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(payload.TraceContext))

	ctx, span := tracer.Start(parentCtx, "job.favorite_created")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("favorite.id", int64(payload.FavoriteID)),
		attribute.Int64("user.id", int64(payload.UserID)),
		attribute.String("job.type", TypeFavoriteCreated),
	)

	logging.Info(ctx).
		Uint("favorite_id", payload.FavoriteID).
		Uint("user_id", payload.UserID).
		Msg("favorite created event processed")

	span.SetStatus(codes.Ok, "favorite event processed")
	recordJobMetrics(ctx, TypeFavoriteCreated, true, time.Since(start))

	return nil
}

func recordJobMetrics(ctx context.Context, jobType string, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("job.type", jobType))

	if success {
		if jobsCompleted != nil {
			jobsCompleted.Add(ctx, 1, attrs)
		}
	} else if jobsFailed != nil {
		jobsFailed.Add(ctx, 1, attrs)
	}

	if jobsDuration != nil {
		jobsDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}
