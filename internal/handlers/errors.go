package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go-echo-starwars/internal/services"

	"github.com/labstack/echo/v4"
)

// Message is the body of every error and of delete confirmations.
type Message struct {
	Msg string `json:"msg"`
}

// toHTTPError maps service errors to responses; unknown errors become a 500
// that keeps the cause for logging only.
func toHTTPError(err error) error {
	var (
		notFound   *services.NotFoundError
		conflict   *services.ConflictError
		validation *services.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		return echo.NewHTTPError(http.StatusConflict, conflict.Error())
	case errors.As(err, &validation):
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

func invalidBody(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
}

// pathID parses a numeric path parameter. Ids that are not positive integers
// cannot name a row, so they answer the same 404 as a missing one.
func pathID(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, label+" not found")
	}
	return uint(id), nil
}
