package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppVersion        string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	CorsOrigins       string
	OverviewCacheTTL  time.Duration
	GeneratorProvider string
	GeneratorDelay    time.Duration
	GeneratorTimeout  time.Duration
	OpenAIAPIKey      string
	OpenAIModel       string
	SeedEnabled       bool
	SeedToken         string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TESUTO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Tesuto API")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3001")
	v.SetDefault("cors.origins", "http://localhost:3000")
	v.SetDefault("overview.cache_ttl", "5m")
	v.SetDefault("generator.provider", "static")
	v.SetDefault("generator.delay", "2s")
	v.SetDefault("generator.timeout", "30s")

	ttl, err := time.ParseDuration(v.GetString("overview.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid overview cache ttl: %w", err)
	}

	delay, err := time.ParseDuration(v.GetString("generator.delay"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid generator delay: %w", err)
	}

	timeout, err := time.ParseDuration(v.GetString("generator.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid generator timeout: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppVersion:        v.GetString("app.version"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		CorsOrigins:       v.GetString("cors.origins"),
		OverviewCacheTTL:  ttl,
		GeneratorProvider: strings.ToLower(v.GetString("generator.provider")),
		GeneratorDelay:    delay,
		GeneratorTimeout:  timeout,
		OpenAIAPIKey:      v.GetString("openai_api_key"),
		OpenAIModel:       v.GetString("openai_model"),
		SeedEnabled:       v.GetBool("seed.enabled"),
		SeedToken:         v.GetString("seed.token"),
	}

	if cfg.GeneratorProvider == "openai" && cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("openai api key must be provided for the openai generator")
	}

	return cfg, nil
}
