package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Nop until Init so packages can log from tests without setup.
var logger = zerolog.Nop()

// Init installs the process logger. Development mode writes colored console
// output with callers; otherwise one JSON object per line.
func Init(isDevelopment bool, service string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var w io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if isDevelopment {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	logger = New(w, service).Level(level)
	if isDevelopment {
		logger = logger.With().Caller().Logger()
	}
}

// New builds a logger tagged with the service name.
func New(w io.Writer, service string) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// Set replaces the process logger.
func Set(l zerolog.Logger) {
	logger = l
}

func Logger() *zerolog.Logger {
	return &logger
}

// WithContext returns the logger annotated with the active span's ids.
func WithContext(ctx context.Context) zerolog.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return logger
	}

	return logger.With().
		Str("traceId", span.SpanContext().TraceID().String()).
		Str("spanId", span.SpanContext().SpanID().String()).
		Logger()
}

func Info(ctx context.Context) *zerolog.Event {
	l := WithContext(ctx)
	return l.Info()
}

func Error(ctx context.Context) *zerolog.Event {
	l := WithContext(ctx)
	return l.Error()
}

func Debug(ctx context.Context) *zerolog.Event {
	l := WithContext(ctx)
	return l.Debug()
}

func Warn(ctx context.Context) *zerolog.Event {
	l := WithContext(ctx)
	return l.Warn()
}
