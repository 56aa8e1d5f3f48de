package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type crudService[T any, C any, U any] interface {
	Label() string
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, input C) (*T, error)
	Update(ctx context.Context, id uint, input U) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// ResourceHandler serves list/get/create/update/delete for one entity kind.
// R is the serialized form produced by render.
type ResourceHandler[T any, C any, U any, R any] struct {
	service crudService[T, C, U]
	render  func(*T) R
}

func NewResourceHandler[T any, C any, U any, R any](service crudService[T, C, U], render func(*T) R) *ResourceHandler[T, C, U, R] {
	return &ResourceHandler[T, C, U, R]{service: service, render: render}
}

// Mount registers the five routes under path, e.g. "/people".
func (h *ResourceHandler[T, C, U, R]) Mount(e *echo.Echo, path string) {
	e.GET(path, h.List)
	e.POST(path, h.Create)
	e.GET(path+"/:id", h.Get)
	e.PUT(path+"/:id", h.Update)
	e.DELETE(path+"/:id", h.Delete)
}

func (h *ResourceHandler[T, C, U, R]) List(c echo.Context) error {
	rows, err := h.service.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	out := make([]R, len(rows))
	for i := range rows {
		out[i] = h.render(&rows[i])
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ResourceHandler[T, C, U, R]) Get(c echo.Context) error {
	id, err := pathID(c, "id", h.service.Label())
	if err != nil {
		return err
	}

	row, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.render(row))
}

func (h *ResourceHandler[T, C, U, R]) Create(c echo.Context) error {
	var input C
	if err := c.Bind(&input); err != nil {
		return invalidBody(err)
	}

	row, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, h.render(row))
}

func (h *ResourceHandler[T, C, U, R]) Update(c echo.Context) error {
	id, err := pathID(c, "id", h.service.Label())
	if err != nil {
		return err
	}

	var input U
	if err := c.Bind(&input); err != nil {
		return invalidBody(err)
	}

	row, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.render(row))
}

func (h *ResourceHandler[T, C, U, R]) Delete(c echo.Context) error {
	id, err := pathID(c, "id", h.service.Label())
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, Message{Msg: h.service.Label() + " deleted"})
}
