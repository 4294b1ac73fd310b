// Package config loads service configuration from environment variables
// and an optional .env file, using the POVERTY_ prefix
// (e.g. POVERTY_DB_HOST -> db.host).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/dadidelux/sheng-project/internal/database"
	"github.com/dadidelux/sheng-project/internal/ml"
	"github.com/dadidelux/sheng-project/pkg/logger"
)

const envPrefix = "POVERTY_"

// Config is the full service configuration.
type Config struct {
	Server struct {
		Port       string `mapstructure:"port"`
		CORSOrigin string `mapstructure:"corsorigin"`
	} `mapstructure:"server"`
	DB    database.Config `mapstructure:"db"`
	Model ml.Config       `mapstructure:"model"`
	Log   logger.Config   `mapstructure:"log"`
}

// Load reads configuration with sane local-development defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8000")
	v.SetDefault("server.corsorigin", "http://localhost:3000")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "admin")
	v.SetDefault("db.password", "admin123")
	v.SetDefault("db.name", "poverty_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.maxconns", 10)
	v.SetDefault("db.migrationspath", "./migrations")
	v.SetDefault("model.path", "./models/svm_poverty_predictor.json")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "json")

	// Optional .env file
	v.SetConfigFile(".env")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read .env: %w", err)
			}
		}
	}

	// Environment variables: POVERTY_DB_HOST -> db.host
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		key, value := pair[0], pair[1]
		if strings.HasPrefix(key, envPrefix) {
			propKey := strings.TrimPrefix(key, envPrefix)
			propKey = strings.ToLower(strings.ReplaceAll(propKey, "_", "."))
			v.Set(propKey, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
