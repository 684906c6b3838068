package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerHost      string        `mapstructure:"server_host"`
	ServerPort      string        `mapstructure:"server_port"`
	MongoURL        string        `mapstructure:"mongo_url"`
	DBName          string        `mapstructure:"db_name"`
	OpenAIAPIKey    string        `mapstructure:"openai_api_key"`
	ContextCacheTTL time.Duration `mapstructure:"context_cache_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local development. MONGO_URL has no default on purpose; a
// silently wrong database is worse than a refused start.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("db_name", "biz_atlas")
	v.SetDefault("context_cache_ttl", 5*time.Minute)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	for _, key := range []string{
		"server_host", "server_port", "mongo_url", "db_name",
		"openai_api_key", "context_cache_ttl", "shutdown_timeout",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	return &cfg, nil
}
