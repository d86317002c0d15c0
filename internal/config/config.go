package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/database"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "JASAIN"

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// KafkaConfig holds event stream settings. When Enabled is false events are
// dropped and no consumer is started.
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	GroupPrefix string
}

// S3Config holds payment-proof storage settings.
type S3Config struct {
	Enabled         bool
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PresignTTL      time.Duration
}

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port             string
	AppEnv           string
	CORSOrigins      []string
	AutoMigrate      bool
	ReconcileOnStart bool
	DBConfig         database.Config
	JWTConfig        JWTConfig
	KafkaConfig      KafkaConfig
	S3Config         S3Config
}

// Load reads configuration from .env files and JASAIN_* environment variables.
func Load() (*ServiceConfig, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func loadDotEnv() {
	env := viper.New()
	env.SetEnvPrefix(envPrefix)
	env.AutomaticEnv()
	appEnv := env.GetString("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	// Missing files are fine; the process environment always wins.
	_ = godotenv.Load(".env." + appEnv)
	_ = godotenv.Load(".env")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("RECONCILE_ON_START", true)

	v.SetDefault("DB_DRIVER", database.DriverSQLite)
	v.SetDefault("DB_PATH", "jasain.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "jasain")
	v.SetDefault("DB_PASSWORD", "jasain")
	v.SetDefault("DB_NAME", "jasain_booking")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TTL", "168h")

	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "jasain-")

	v.SetDefault("S3_ENABLED", false)
	v.SetDefault("S3_REGION", "ap-southeast-3")
	v.SetDefault("S3_BUCKET", "jasain-payment-proofs")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_USE_PATH_STYLE", false)
	v.SetDefault("S3_PRESIGN_TTL", "15m")
}

func fromViper(v *viper.Viper) (*ServiceConfig, error) {
	appEnv := v.GetString("APP_ENV")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		if appEnv == "production" {
			return nil, fmt.Errorf("%s_JWT_SECRET must be set in production", envPrefix)
		}
		secret = "jasain-dev-secret"
	}

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	if driver != database.DriverSQLite && driver != database.DriverPostgres {
		return nil, fmt.Errorf("unsupported %s_DB_DRIVER %q", envPrefix, driver)
	}

	port := v.GetString("SERVICE_PORT")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:             port,
		AppEnv:           appEnv,
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
		AutoMigrate:      driver == database.DriverSQLite || appEnv == "development",
		ReconcileOnStart: v.GetBool("RECONCILE_ON_START"),
		DBConfig: database.Config{
			Driver:     driver,
			SQLitePath: v.GetString("DB_PATH"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			DBName:     v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret:     secret,
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
		},
		KafkaConfig: KafkaConfig{
			Enabled:     v.GetBool("KAFKA_ENABLED"),
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		S3Config: S3Config{
			Enabled:         v.GetBool("S3_ENABLED"),
			Region:          v.GetString("S3_REGION"),
			Bucket:          v.GetString("S3_BUCKET"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			UsePathStyle:    v.GetBool("S3_USE_PATH_STYLE"),
			PresignTTL:      v.GetDuration("S3_PRESIGN_TTL"),
		},
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
