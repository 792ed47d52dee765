package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"sentinelwatch/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Predictor PredictorConfig `mapstructure:"predictor"`
	Reasoning ReasoningConfig `mapstructure:"reasoning"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig encapsulates PostgreSQL connectivity.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// QueueConfig captures Redis connectivity and the queue names the
// pipeline consumes from and publishes to.
type QueueConfig struct {
	URL           string        `mapstructure:"url"`
	EventsQueue   string        `mapstructure:"events_queue"`
	EnrichedQueue string        `mapstructure:"enriched_queue"`
	AlertsQueue   string        `mapstructure:"alerts_queue"`
	PopTimeout    time.Duration `mapstructure:"pop_timeout"`
	IdleBackoff   time.Duration `mapstructure:"idle_backoff"`
}

// PredictorConfig selects the trained model artifact, if any.
type PredictorConfig struct {
	ModelPath string `mapstructure:"model_path"`
}

// ReasoningConfig governs the optional LLM adjustment layer.
type ReasoningConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DatasetConfig sets export-dataset behaviour.
type DatasetConfig struct {
	MinEvents int `mapstructure:"min_events"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SENTINEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sentinelwatch")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("queue.url", "redis://localhost:6379")
	v.SetDefault("queue.events_queue", "events_queue")
	v.SetDefault("queue.enriched_queue", "enriched_queue")
	v.SetDefault("queue.alerts_queue", "alerts_queue")
	v.SetDefault("queue.pop_timeout", "5s")
	v.SetDefault("queue.idle_backoff", "500ms")

	v.SetDefault("reasoning.enabled", false)
	v.SetDefault("reasoning.model", "claude-3-5-haiku-latest")
	v.SetDefault("reasoning.timeout", "10s")

	v.SetDefault("dataset.min_events", 50)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Queue.URL == "" {
		return fmt.Errorf("queue.url is required")
	}
	if c.Queue.EventsQueue == "" {
		return fmt.Errorf("queue.events_queue is required")
	}
	if c.Queue.PopTimeout <= 0 {
		return fmt.Errorf("queue.pop_timeout must be greater than zero")
	}
	if c.Queue.IdleBackoff < 0 {
		return fmt.Errorf("queue.idle_backoff cannot be negative")
	}
	if c.Dataset.MinEvents < 0 {
		return fmt.Errorf("dataset.min_events cannot be negative")
	}
	if c.Reasoning.Enabled {
		if c.Reasoning.APIKey == "" {
			return fmt.Errorf("reasoning.api_key é obrigatório quando reasoning.enabled=true")
		}
		if c.Reasoning.Timeout <= 0 {
			return fmt.Errorf("reasoning.timeout must be greater than zero")
		}
	}
	return nil
}
