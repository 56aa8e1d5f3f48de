package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func serve(t *testing.T, e *echo.Echo, method, path string) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body ErrorResponse
	if rec.Code >= http.StatusBadRequest && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestErrorHandler_HTTPError(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/people/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Person not found")
	})

	rec, body := serve(t, e, http.MethodGet, "/people/7")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Person not found", body.Msg)
}

func TestErrorHandler_HidesInternalCause(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("pq: connection refused")
	})
	e.GET("/wrapped", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").
			SetInternal(errors.New("disk full"))
	})

	for _, path := range []string{"/boom", "/wrapped"} {
		rec, body := serve(t, e, http.MethodGet, path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.Equal(t, "Internal server error", body.Msg, path)
		assert.NotContains(t, rec.Body.String(), "refused")
		assert.NotContains(t, rec.Body.String(), "disk")
	}
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	rec, body := serve(t, e, http.MethodGet, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", body.Msg)
}

func TestErrorHandler_TraceHeader(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tp.Tracer("test").Start(c.Request().Context(), "request")
			defer span.End()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	})

	rec, body := serve(t, e, http.MethodGet, "/missing")
	assert.Equal(t, "User not found", body.Msg)
	assert.Len(t, rec.Header().Get(TraceIDHeader), 32)
	assert.NotContains(t, rec.Body.String(), "trace")
}

func TestMetrics_RecordsRequests(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	prev := meter
	meter = provider.Meter("test")
	require.NoError(t, InitMetrics())
	t.Cleanup(func() {
		meter = prev
		requestCounter, requestDuration, activeRequests = nil, nil, nil
	})

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(Metrics())
	e.GET("/planets", func(c echo.Context) error { return c.JSON(http.StatusOK, []string{}) })
	e.GET("/planets/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Planet not found")
	})

	serve(t, e, http.MethodGet, "/planets")
	serve(t, e, http.MethodGet, "/planets/9")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))

	statuses := map[int64]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.server.request.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value("http.status_code")
				statuses[status.AsInt64()] = true
			}
		}
	}
	assert.True(t, statuses[http.StatusOK])
	assert.True(t, statuses[http.StatusNotFound])
}

func TestMetrics_NoopBeforeInit(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
