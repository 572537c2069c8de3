package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service settings, populated from environment variables
// (and, for the CLI, from flags bound to the same keys).
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Model source. ModelURL takes precedence over ModelPath when set.
	ModelPath           string
	ModelURL            string
	ModelTimeout        time.Duration
	PredictionCacheSize int

	// Assessment event stream.
	KafkaBrokers  []string
	KafkaTopic    string
	EventsEnabled bool
}

// Keys shared by the environment and the CLI flag bindings.
const (
	KeyHTTPAddr            = "http_addr"
	KeyLogLevel            = "log_level"
	KeyLogFormat           = "log_format"
	KeyShutdownTimeout     = "shutdown_timeout"
	KeyModelPath           = "model_path"
	KeyModelURL            = "model_url"
	KeyModelTimeout        = "model_timeout"
	KeyPredictionCacheSize = "prediction_cache_size"
	KeyKafkaBrokers        = "kafka_brokers"
	KeyKafkaTopic          = "kafka_topic"
	KeyEventsEnabled       = "events_enabled"
)

// DefaultModelPath is the artifact shipped with the repository.
const DefaultModelPath = "models/pmv_linear.json"

// Load reads configuration from the environment (after an optional .env file),
// applying defaults where unset.
func Load() (*Config, error) {
	LoadDotEnv()
	return LoadWith(viper.New())
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// LoadWith resolves configuration from v, which may already carry flag
// bindings or a config file. Environment variables are matched by upper-cased
// key (MODEL_PATH, HTTP_ADDR, ...). Unlike Load it does not read .env; callers
// that want it call LoadDotEnv first.
func LoadWith(v *viper.Viper) (*Config, error) {
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	v.SetDefault(KeyHTTPAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyShutdownTimeout, "10s")
	v.SetDefault(KeyModelPath, DefaultModelPath)
	v.SetDefault(KeyModelTimeout, "5s")
	v.SetDefault(KeyPredictionCacheSize, "0")
	v.SetDefault(KeyKafkaTopic, "comfort-assessments")

	shutdownTimeout, err := parsePositiveDuration(v, KeyShutdownTimeout)
	if err != nil {
		return nil, err
	}
	modelTimeout, err := parsePositiveDuration(v, KeyModelTimeout)
	if err != nil {
		return nil, err
	}

	cacheSize, err := strconv.Atoi(strings.TrimSpace(v.GetString(KeyPredictionCacheSize)))
	if err != nil || cacheSize < 0 {
		return nil, fmt.Errorf("invalid %s: must be a non-negative integer", envName(KeyPredictionCacheSize))
	}

	brokers := parseBrokers(v.GetString(KeyKafkaBrokers))
	eventsEnabled := len(brokers) > 0
	if raw := strings.TrimSpace(v.GetString(KeyEventsEnabled)); raw != "" {
		eventsEnabled, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envName(KeyEventsEnabled), err)
		}
	}

	cfg := &Config{
		HTTPAddr:        v.GetString(KeyHTTPAddr),
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:       strings.ToLower(v.GetString(KeyLogFormat)),
		ShutdownTimeout: shutdownTimeout,

		ModelPath:           v.GetString(KeyModelPath),
		ModelURL:            strings.TrimRight(v.GetString(KeyModelURL), "/"),
		ModelTimeout:        modelTimeout,
		PredictionCacheSize: cacheSize,

		KafkaBrokers:  brokers,
		KafkaTopic:    v.GetString(KeyKafkaTopic),
		EventsEnabled: eventsEnabled,
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.ModelPath == "" && cfg.ModelURL == "" {
		return nil, errors.New("MODEL_PATH or MODEL_URL is required")
	}
	if cfg.EventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("EVENTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.EventsEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when events are enabled")
	}

	return cfg, nil
}

func parsePositiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", envName(key))
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func envName(key string) string { return strings.ToUpper(key) }
