package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"DATABASE_URL": "postgres://localhost:5432",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, time.Duration(0), cfg.SettlementSweepInterval)
	assert.Equal(t, "pool", cfg.DefaultPayoutMode)
	assert.Equal(t, 3, cfg.DefaultPointsForResult)
	assert.Equal(t, 5, cfg.DefaultPointsForExact)
	assert.Equal(t, 10.0, cfg.DefaultFeePercent)
	assert.Empty(t, cfg.NATSServers)
	assert.Empty(t, cfg.TracingExporter)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"DATABASE_URL":              "postgres://localhost:5432",
		"DATABASE_NAME":             "liga",
		"SETTLEMENT_SWEEP_INTERVAL": "30s",
		"DEFAULT_PAYOUT_MODE":       "Points",
		"LOG_LEVEL":                 "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.SettlementSweepInterval)
	assert.Equal(t, "points", cfg.DefaultPayoutMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/liga?sslmode=disable", cfg.GetDatabaseURL())
}

func TestFromViper_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		errMsg string
	}{
		{
			name:   "database url required outside test",
			values: map[string]any{},
			errMsg: "DATABASE_URL is required",
		},
		{
			name: "unknown payout mode",
			values: map[string]any{
				"DATABASE_URL":        "postgres://localhost:5432",
				"DEFAULT_PAYOUT_MODE": "lottery",
			},
			errMsg: "DEFAULT_PAYOUT_MODE",
		},
		{
			name: "negative fee",
			values: map[string]any{
				"DATABASE_URL":        "postgres://localhost:5432",
				"DEFAULT_FEE_PERCENT": -1,
			},
			errMsg: "DEFAULT_FEE_PERCENT",
		},
		{
			name: "unknown tracing exporter",
			values: map[string]any{
				"DATABASE_URL":     "postgres://localhost:5432",
				"TRACING_EXPORTER": "zipkin",
			},
			errMsg: "TRACING_EXPORTER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.values))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("test environment does not need a database url", func(t *testing.T) {
		_, err := fromViper(newViper(map[string]any{"ENVIRONMENT": "test"}))
		assert.NoError(t, err)
	})
}

func TestSetTestConfig(t *testing.T) {
	defer ResetConfig()

	testCfg := NewTestConfig()
	testCfg.AdminToken = "secret"
	SetTestConfig(testCfg)

	assert.Same(t, testCfg, Get())
}
