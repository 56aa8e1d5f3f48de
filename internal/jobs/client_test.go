package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-echo-starwars/internal/jobs/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "job-1", Queue: DefaultQueue, Type: task.Type()}, nil
}

func (f *fakeQueue) Close() error { return nil }

func TestPublishFavoriteCreated(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "request")
	defer span.End()

	queue := &fakeQueue{}
	client := newClient(queue)
	require.NoError(t, client.PublishFavoriteCreated(ctx, 12, 3))

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, tasks.TypeFavoriteCreated, queue.tasks[0].Type())

	var payload tasks.FavoriteCreatedPayload
	require.NoError(t, json.Unmarshal(queue.tasks[0].Payload(), &payload))
	assert.Equal(t, uint(12), payload.FavoriteID)
	assert.Equal(t, uint(3), payload.UserID)
	assert.Contains(t, payload.TraceContext["traceparent"], span.SpanContext().TraceID().String())
}

func TestPublishFavoriteCreated_EnqueueError(t *testing.T) {
	client := newClient(&fakeQueue{err: errors.New("redis down")})
	err := client.PublishFavoriteCreated(context.Background(), 1, 1)
	assert.EqualError(t, err, "redis down")
}

func TestNewMux_RoutesFavoriteCreated(t *testing.T) {
	payload, err := json.Marshal(tasks.FavoriteCreatedPayload{FavoriteID: 1, UserID: 1})
	require.NoError(t, err)

	err = NewMux().ProcessTask(context.Background(), asynq.NewTask(tasks.TypeFavoriteCreated, payload))
	assert.NoError(t, err)
}
