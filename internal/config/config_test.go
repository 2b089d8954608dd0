package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront-api.git/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()
	require.Equal(t, ":8081", cfg.HTTPAddr)
	require.Equal(t, int32(8), cfg.PGMaxConns)
	require.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "storefront-api", cfg.ServiceName)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("PG_MAX_CONNS", "32")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092 ,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()
	require.Equal(t, ":9000", cfg.HTTPAddr)
	require.Equal(t, int32(32), cfg.PGMaxConns)
	require.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("PG_MAX_CONNS", "not-a-number")
	cfg := config.Load()
	require.Equal(t, int32(8), cfg.PGMaxConns)
}
