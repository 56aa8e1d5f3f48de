package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimProtocol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:4318", "localhost:4318"},
		{"https://collector:4318/", "collector:4318"},
		{"otel:4318", "otel:4318"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trimProtocol(tt.in), tt.in)
	}
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Options{ServiceName: "test", Disabled: true})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
