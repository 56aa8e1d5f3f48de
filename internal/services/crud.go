package services

import (
	"context"

	"go-echo-starwars/internal/logging"
	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// CRUDService is the list/get/create/update/delete contract shared by users,
// people, planets and vehicles. C is the create input, U the partial update
// input; build and changes validate them.
type CRUDService[T models.Entity, C any, U any] struct {
	kind    string
	label   string
	repo    *repository.Repository[T]
	build   func(C) (*T, error)
	changes func(U) (map[string]interface{}, error)
}

func newCRUDService[T models.Entity, C any, U any](
	kind, label string,
	repo *repository.Repository[T],
	build func(C) (*T, error),
	changes func(U) (map[string]interface{}, error),
) *CRUDService[T, C, U] {
	initMetrics()
	return &CRUDService[T, C, U]{
		kind:    kind,
		label:   label,
		repo:    repo,
		build:   build,
		changes: changes,
	}
}

// Label is the capitalized entity name used in messages ("Person").
func (s *CRUDService[T, C, U]) Label() string {
	return s.label
}

func (s *CRUDService[T, C, U]) List(ctx context.Context) ([]T, error) {
	ctx, span := tracer.Start(ctx, s.kind+".list")
	defer span.End()

	rows, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(rows)))
	return rows, nil
}

func (s *CRUDService[T, C, U]) Get(ctx context.Context, id uint) (*T, error) {
	ctx, span := tracer.Start(ctx, s.kind+".get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64(s.kind+".id", int64(id)))

	row, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, classify(s.label, err)
	}
	return row, nil
}

func (s *CRUDService[T, C, U]) Create(ctx context.Context, input C) (*T, error) {
	ctx, span := tracer.Start(ctx, s.kind+".create")
	defer span.End()

	row, err := s.build(input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		span.RecordError(err)
		return nil, classify(s.label, err)
	}

	id := (*created).EntityID()
	span.SetAttributes(attribute.Int64(s.kind+".id", int64(id)))

	if entitiesCreated != nil {
		entitiesCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("entity.kind", s.kind)))
	}

	logging.Info(ctx).
		Str("kind", s.kind).
		Uint("id", id).
		Msg(s.kind + " created")

	return created, nil
}

// Update writes only the fields present in input. An input with no fields
// returns the stored row unchanged.
func (s *CRUDService[T, C, U]) Update(ctx context.Context, id uint, input U) (*T, error) {
	ctx, span := tracer.Start(ctx, s.kind+".update")
	defer span.End()

	span.SetAttributes(attribute.Int64(s.kind+".id", int64(id)))

	changes, err := s.changes(input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, classify(s.label, err)
	}

	if len(changes) > 0 {
		logging.Info(ctx).
			Str("kind", s.kind).
			Uint("id", id).
			Int("fields", len(changes)).
			Msg(s.kind + " updated")
	}

	return updated, nil
}

// Delete removes the row and every favorite pointing at it.
func (s *CRUDService[T, C, U]) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, s.kind+".delete")
	defer span.End()

	span.SetAttributes(attribute.Int64(s.kind+".id", int64(id)))

	if err := s.repo.Delete(ctx, id); err != nil {
		return classify(s.label, err)
	}

	if entitiesDeleted != nil {
		entitiesDeleted.Add(ctx, 1, metric.WithAttributes(attribute.String("entity.kind", s.kind)))
	}

	logging.Info(ctx).
		Str("kind", s.kind).
		Uint("id", id).
		Msg(s.kind + " deleted")

	return nil
}

// Exists reports whether a row with id is stored.
func (s *CRUDService[T, C, U]) Exists(ctx context.Context, id uint) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// favoritesOf returns the cascade rule for favorites referencing column.
func favoritesOf(column string) repository.Dependent {
	return repository.Dependent{Model: &models.Favorite{}, Column: column}
}

// setString records a present pointer field, rejecting empty values when the
// column is required.
func setString(changes map[string]interface{}, column string, value *string, required bool) error {
	if value == nil {
		return nil
	}
	if required && *value == "" {
		return emptyField(column)
	}
	changes[column] = *value
	return nil
}
