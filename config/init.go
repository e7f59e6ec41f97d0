package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	cron_config "github.com/customeros/bookgraph/internal/cron/config"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/tracing"
)

type Config struct {
	AppConfig     *AppConfig
	GraphQLConfig *GraphQLConfig
	MetricsConfig *MetricsConfig
	Logger        *logger.Config
	Tracing       *tracing.JaegerConfig
	Cron          *cron_config.Config
}

func newConfig() *Config {
	return &Config{
		AppConfig:     &AppConfig{},
		GraphQLConfig: &GraphQLConfig{},
		MetricsConfig: &MetricsConfig{},
		Logger:        &logger.Config{},
		Tracing:       &tracing.JaegerConfig{},
		Cron:          &cron_config.Config{},
	}
}

// InitConfig reads an optional .env file and then the process environment.
func InitConfig() (*Config, error) {
	config := newConfig()

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, errors.Wrap(err, "error loading bookgraph config")
	}

	return config, nil
}
