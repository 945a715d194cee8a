package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "change-me-in-production"
	defaultIDSecret  = "USING THE DEFAULT IS NOT SECURE!"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/collections")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("server_port")
	cfg.Server.Env = v.GetString("server_env")
	cfg.Server.CORSOrigins = v.GetStringSlice("server_cors_origins")

	cfg.Postgres.Host = v.GetString("postgres_host")
	cfg.Postgres.Port = v.GetInt("postgres_port")
	cfg.Postgres.User = v.GetString("postgres_user")
	cfg.Postgres.Password = v.GetString("postgres_password")
	cfg.Postgres.Database = v.GetString("postgres_db")
	cfg.Postgres.SSLMode = v.GetString("postgres_ssl_mode")
	cfg.Postgres.MaxConns = int32(v.GetInt("postgres_max_conns"))
	cfg.Postgres.MinConns = int32(v.GetInt("postgres_min_conns"))
	cfg.Postgres.AutoMigrate = v.GetBool("postgres_auto_migrate")

	cfg.JWT.Secret = v.GetString("jwt_secret")
	cfg.JWT.Issuer = v.GetString("jwt_issuer")
	cfg.JWT.Leeway = v.GetDuration("jwt_leeway")

	cfg.Security.IDSecret = v.GetString("id_secret")

	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	cfg.Sentry.Enabled = v.GetBool("sentry_enabled")
	cfg.Sentry.DSN = v.GetString("sentry_dsn")
	cfg.Sentry.Environment = v.GetString("sentry_environment")
	cfg.Sentry.SampleRate = v.GetFloat64("sentry_sample_rate")

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8080)
	v.SetDefault("server_env", "development")
	v.SetDefault("server_cors_origins", []string{"*"})

	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "collections")
	v.SetDefault("postgres_password", "collections")
	v.SetDefault("postgres_db", "collections")
	v.SetDefault("postgres_ssl_mode", "disable")
	v.SetDefault("postgres_max_conns", 25)
	v.SetDefault("postgres_min_conns", 5)
	v.SetDefault("postgres_auto_migrate", false)

	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_issuer", "collections")
	v.SetDefault("jwt_leeway", "30s")

	v.SetDefault("id_secret", defaultIDSecret)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("sentry_enabled", false)
	v.SetDefault("sentry_sample_rate", 1.0)
}

func validate(cfg *Config) error {
	if cfg.IsProduction() {
		if cfg.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT secret must be changed in production")
		}
		if cfg.Security.IDSecret == defaultIDSecret {
			return fmt.Errorf("id secret must be changed in production")
		}
	}
	if n := len(cfg.Security.IDSecret); n == 0 || n > 56 {
		return fmt.Errorf("id secret must be 1 to 56 bytes, got %d", n)
	}
	return nil
}
