package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/config"
)

func TestLoad_DurationOverrides(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("SESSION_TTL_HOURS", "1")

	cfg := config.Load()

	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoad_NonPositiveDurationsFallBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "-5")
	t.Setenv("SESSION_TTL_HOURS", "0")

	cfg := config.Load()

	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
}

func TestLoad_MalformedDurationFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "ten")

	cfg := config.Load()

	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}
