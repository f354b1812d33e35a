package config

import (
	"fmt"
	"strings"

	"calendar-insights/core/constants"
	"calendar-insights/core/errors"
	"calendar-insights/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Postgres PostgresConfig
	Google   GoogleConfig
	Redis    RedisConfig
	Server   ServerConfig
}

type PostgresConfig struct {
	Host     string
	Port     int
	DB       string
	User     string
	Password string
	SSLMode  string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	CalendarID   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ServerConfig struct {
	Port int
}

// requiredEnvVars must all be set before any I/O happens.
var requiredEnvVars = []string{
	"POSTGRES_HOST",
	"POSTGRES_DB",
	"POSTGRES_USER",
	"POSTGRES_PASSWORD",
}

// Load reads configuration from the environment (plus a local .env file when
// present) and validates that all required variables are set. Missing
// variables are reported together so an operator can fix them in one pass.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Info("Config:Load:DotEnv", "file", ".env")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_SSLMODE", constants.DatabaseSSLMode)
	v.SetDefault("GOOGLE_TOKEN_FILE", "credentials/token.json")
	v.SetDefault("GOOGLE_CALENDAR_ID", constants.DefaultCalendarID)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SERVER_PORT", 7070)

	var missing []string
	for _, name := range requiredEnvVars {
		if v.GetString(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewAppError(errors.ErrConfiguration,
			fmt.Sprintf("missing required environment variables: %s", strings.Join(missing, ", ")), nil)
	}

	cfg := &Config{
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			DB:       v.GetString("POSTGRES_DB"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		Google: GoogleConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			TokenFile:    v.GetString("GOOGLE_TOKEN_FILE"),
			CalendarID:   v.GetString("GOOGLE_CALENDAR_ID"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
	}

	logger.Info("Config:Load:Success",
		"postgres_host", cfg.Postgres.Host,
		"postgres_db", cfg.Postgres.DB,
		"calendar_id", cfg.Google.CalendarID,
	)
	return cfg, nil
}
