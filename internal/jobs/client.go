package jobs

import (
	"context"
	"encoding/json"

	"go-echo-starwars/internal/jobs/tasks"
	"go-echo-starwars/internal/logging"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

const DefaultQueue = "default"

var (
	tracer       = otel.Tracer("go-echo-starwars")
	meter        = otel.Meter("go-echo-starwars")
	jobsEnqueued metric.Int64Counter
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client publishes favorite events to Redis.
type Client struct {
	client enqueuer
}

func NewClient(redis asynq.RedisConnOpt) *Client {
	return newClient(asynq.NewClient(redis))
}

func newClient(q enqueuer) *Client {
	var err error
	jobsEnqueued, err = meter.Int64Counter(
		"jobs.enqueued",
		metric.WithDescription("Total number of jobs enqueued"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs enqueued counter")
	}

	return &Client{client: q}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// PublishFavoriteCreated enqueues a favorite:created task carrying the
// caller's trace context.
func (c *Client) PublishFavoriteCreated(ctx context.Context, favoriteID, userID uint) error {
	ctx, span := tracer.Start(ctx, "job.enqueue.favorite_created")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("favorite.id", int64(favoriteID)),
		attribute.Int64("user.id", int64(userID)),
		attribute.String("job.type", tasks.TypeFavoriteCreated),
	)

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	payload, err := json.Marshal(tasks.FavoriteCreatedPayload{
		FavoriteID:   favoriteID,
		UserID:       userID,
		TraceContext: carrier,
	})
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx,
		asynq.NewTask(tasks.TypeFavoriteCreated, payload),
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(3),
	)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if jobsEnqueued != nil {
		jobsEnqueued.Add(ctx, 1, metric.WithAttributes(
			attribute.String("job.type", tasks.TypeFavoriteCreated),
		))
	}

	span.SetAttributes(
		attribute.String("job.id", info.ID),
		attribute.String("job.queue", info.Queue),
	)

	logging.Info(ctx).
		Str("job_id", info.ID).
		Str("job_type", tasks.TypeFavoriteCreated).
		Uint("favorite_id", favoriteID).
		Msg("job enqueued")

	return nil
}
