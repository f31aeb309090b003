package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigAppliesDefaultsWithNoEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Queue.Host)
	assert.Equal(t, 5672, cfg.Queue.Port)
	assert.Equal(t, "optimization_requests", cfg.Queue.InputQueue)
	assert.Equal(t, "optimization_responses", cfg.Queue.OutputQueue)
	assert.Equal(t, 1, cfg.Queue.PrefetchCount)
	assert.Equal(t, []string{"highs"}, cfg.Solver.Backends)
}

func TestLoadConfigHonorsLiteralRabbitMQEnvVars(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RABBITMQ_HOST", "broker.internal")
	t.Setenv("RABBITMQ_PORT", "5673")
	t.Setenv("PREFETCH_COUNT", "4")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "broker.internal", cfg.Queue.Host)
	assert.Equal(t, 5673, cfg.Queue.Port)
	assert.Equal(t, 4, cfg.Queue.PrefetchCount)
}

func TestLoadConfigOrDefaultReturnsDefaultsForMissingConfigFile(t *testing.T) {
	t.Setenv("OPT_QUEUE_INPUT_QUEUE", "")
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	assert.NotNil(t, cfg)
	assert.Equal(t, "optimization_requests", cfg.Queue.InputQueue)
}
