package middleware

import (
	"errors"
	"net/http"

	"go-echo-starwars/internal/logging"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const TraceIDHeader = "X-Trace-Id"

type ErrorResponse struct {
	Msg string `json:"msg"`
}

// ErrorHandler renders every error as {"msg": ...}. The cause of a 5xx is
// logged and recorded on the span but never sent to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()
	span := trace.SpanFromContext(ctx)

	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(he.Code)
		}
	}

	cause := err
	if he != nil && he.Internal != nil {
		cause = he.Internal
	}

	span.RecordError(cause)
	if code >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, cause.Error())
	}
	span.SetAttributes(attribute.Int("http.response.status_code", code))

	if span.SpanContext().HasTraceID() {
		c.Response().Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())
	}

	event := logging.Warn(ctx)
	if code >= http.StatusInternalServerError {
		event = logging.Error(ctx)
	}
	event.
		Err(cause).
		Int("status", code).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("request error")

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Msg: message})
	}
	if err != nil {
		logging.Error(ctx).Err(err).Msg("failed to write error response")
	}
}
