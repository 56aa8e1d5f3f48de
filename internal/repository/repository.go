// Package repository implements the one data-access pattern shared by every
// table: list, get by id, create, update selected columns and delete.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record conflicts with an existing one")
	ErrInvalidReference = errors.New("record references a missing row")
)

// Dependent describes rows in another table that point at T and are removed
// together with it.
type Dependent struct {
	Model  interface{}
	Column string
}

type Option[T any] func(*Repository[T])

// WithPreload loads the named associations on every read.
func WithPreload[T any](associations ...string) Option[T] {
	return func(r *Repository[T]) {
		r.preloads = append(r.preloads, associations...)
	}
}

// WithCascade deletes dependent rows in the same transaction as T.
func WithCascade[T any](deps ...Dependent) Option[T] {
	return func(r *Repository[T]) {
		r.cascade = append(r.cascade, deps...)
	}
}

// Repository is safe for concurrent use; every call runs its own statement
// or transaction against db.
type Repository[T any] struct {
	db       *gorm.DB
	preloads []string
	cascade  []Dependent
}

func New[T any](db *gorm.DB, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// List returns every row in primary key order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	return r.Find(ctx, nil)
}

// Find returns the rows matching conds (column -> value) in primary key
// order. A nil map matches everything.
func (r *Repository[T]) Find(ctx context.Context, conds map[string]interface{}) ([]T, error) {
	q := r.query(ctx).Order("id ASC")
	if len(conds) > 0 {
		q = q.Where(conds)
	}

	rows := make([]T, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// First returns the lowest-id row matching conds.
func (r *Repository[T]) First(ctx context.Context, conds map[string]interface{}) (*T, error) {
	q := r.query(ctx).Order("id ASC")
	if len(conds) > 0 {
		q = q.Where(conds)
	}

	var row T
	if err := q.First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.query(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (r *Repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// Create inserts row and reloads it so preloaded associations are filled.
func (r *Repository[T]) Create(ctx context.Context, row *T) (*T, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return nil, translate(err)
	}
	if len(r.preloads) == 0 {
		return row, nil
	}
	return r.reload(ctx, row)
}

// Update writes the given columns and returns the fresh row. An empty
// changes map is a read.
func (r *Repository[T]) Update(ctx context.Context, id uint, changes map[string]interface{}) (*T, error) {
	row, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return row, nil
	}

	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, translate(err)
	}
	return r.Get(ctx, id)
}

// Delete removes the row with id and its dependents atomically.
func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range r.cascade {
			if err := tx.Where(dep.Column+" = ?", id).Delete(dep.Model).Error; err != nil {
				return translate(err)
			}
		}

		result := tx.Delete(new(T), id)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteFirst removes the lowest-id row matching conds.
func (r *Repository[T]) DeleteFirst(ctx context.Context, conds map[string]interface{}) (*T, error) {
	row, err := r.First(ctx, conds)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(row).Error; err != nil {
		return nil, translate(err)
	}
	return row, nil
}

// reload refreshes row by its primary key, which gorm takes from the struct.
func (r *Repository[T]) reload(ctx context.Context, row *T) (*T, error) {
	if err := r.query(ctx).First(row).Error; err != nil {
		return nil, translate(err)
	}
	return row, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return errors.Join(ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Join(ErrInvalidReference, err)
	}
	return err
}

// isUniqueViolation covers driver messages that escape TranslateError.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
