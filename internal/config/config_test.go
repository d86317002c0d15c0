package config

import (
	"testing"
	"time"

	"github.com/JasaIn/service-booking/internal/common/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JASAIN_APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, database.DriverSQLite, cfg.DBConfig.Driver)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.KafkaConfig.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, 15*time.Minute, cfg.JWTConfig.AccessTTL)
	assert.NotEmpty(t, cfg.JWTConfig.Secret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JASAIN_APP_ENV", "staging")
	t.Setenv("JASAIN_SERVICE_PORT", "9090")
	t.Setenv("JASAIN_DB_DRIVER", "postgres")
	t.Setenv("JASAIN_DB_HOST", "db")
	t.Setenv("JASAIN_JWT_SECRET", "s3cret")
	t.Setenv("JASAIN_KAFKA_ENABLED", "true")
	t.Setenv("JASAIN_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("JASAIN_CORS_ORIGINS", "https://jasain.id")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, database.DriverPostgres, cfg.DBConfig.Driver)
	assert.Equal(t, "db", cfg.DBConfig.Host)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "s3cret", cfg.JWTConfig.Secret)
	assert.True(t, cfg.KafkaConfig.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, []string{"https://jasain.id"}, cfg.CORSOrigins)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("JASAIN_APP_ENV", "production")
	t.Setenv("JASAIN_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JASAIN_APP_ENV", "test")
	t.Setenv("JASAIN_DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}
