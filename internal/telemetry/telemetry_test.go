package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(context.Background(), Config{ServiceName: "opt-test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Endpoint: "localhost:4317"}.Enabled())
}

func TestResource(t *testing.T) {
	t.Parallel()

	res := Resource(Config{ServiceName: "osrs-price-tracker", Version: "v1.2.3"})

	got := make(map[attribute.Key]string)
	for _, kv := range res.Attributes() {
		got[kv.Key] = kv.Value.AsString()
	}
	assert.Equal(t, "osrs-price-tracker", got["service.name"])
	assert.Equal(t, "v1.2.3", got["service.version"])
}

func TestSetup_EnabledDoesNotDial(t *testing.T) {
	// Installs global providers, so not parallel.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shutdown, err := Setup(ctx, Config{
		Endpoint:       "127.0.0.1:1",
		Insecure:       true,
		ServiceName:    "opt-test",
		MetricInterval: time.Hour,
	})
	require.NoError(t, err)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelShutdown()
	// Nothing listens on the endpoint; shutdown may report the failed export.
	_ = shutdown(shutdownCtx)
}
