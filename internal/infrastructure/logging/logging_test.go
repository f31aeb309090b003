package logging

import (
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/mission-optimizer-core/internal/infrastructure/config"
)

func TestNewDefaultsToInfoLevelOnUnknownLevel(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "bogus", Format: "json", Output: "stdout"})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewRespectsConfiguredLevel(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "debug", Format: "json", Output: "stdout"})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNewProducesValidJSONOutputOnStdout(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	logger := New(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"})
	os.Stdout = orig

	logger.Info().Str("key", "value").Msg("hello")
	_ = w.Close()
	out, _ := io.ReadAll(r)
	assert.Contains(t, string(out), `"key":"value"`)
}
