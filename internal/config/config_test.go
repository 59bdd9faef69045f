package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/hotel")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "https://api.paystack.co", cfg.PaystackBaseURL)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CONFIG_CACHE_TTL", "30s")
	t.Setenv("S3_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.ConfigCacheTTL)
	assert.True(t, cfg.S3UseSSL)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Missing DB_DSN", map[string]string{"DB_DSN": "", "JWT_SECRET": "s"}},
		{"Missing JWT_SECRET", map[string]string{"DB_DSN": "d", "JWT_SECRET": ""}},
		{"Bad TTL", map[string]string{"DB_DSN": "d", "JWT_SECRET": "s", "JWT_ACCESS_TOKEN_TTL": "soon"}},
		{"Bad bcrypt cost", map[string]string{"DB_DSN": "d", "JWT_SECRET": "s", "BCRYPT_COST": "high"}},
		{"Bad storage driver", map[string]string{"DB_DSN": "d", "JWT_SECRET": "s", "STORAGE_DRIVER": "ftp"}},
		{"S3 without endpoint", map[string]string{"DB_DSN": "d", "JWT_SECRET": "s", "STORAGE_DRIVER": "s3", "S3_ENDPOINT": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
