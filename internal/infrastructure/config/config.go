package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs.
type Config struct {
	Queue   QueueConfig   `mapstructure:"queue"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/mission-optimizer")
	}

	// Enable environment variable reading under an OPT_ prefix for
	// anything addressed by its mapstructure path (logging.level etc).
	v.SetEnvPrefix("OPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// The transport env vars are named literally (RABBITMQ_HOST, not
	// OPT_QUEUE_HOST) because they are the contract every producer of
	// optimization_requests already speaks; bind them individually,
	// bypassing the OPT_ prefix.
	bindLiteralEnv(v, "queue.host", "RABBITMQ_HOST")
	bindLiteralEnvInt(v, "queue.port", "RABBITMQ_PORT")
	bindLiteralEnv(v, "queue.user", "RABBITMQ_USER")
	bindLiteralEnv(v, "queue.pass", "RABBITMQ_PASS")
	bindLiteralEnv(v, "queue.input_queue", "INPUT_QUEUE")
	bindLiteralEnv(v, "queue.output_queue", "OUTPUT_QUEUE")
	bindLiteralEnvInt(v, "queue.prefetch_count", "PREFETCH_COUNT")
	bindLiteralEnvInt(v, "solver.timeout_seconds", "SOLVER_TIMEOUT")
	bindLiteralEnvFloat(v, "solver.mip_gap", "SOLVER_MIP_GAP")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func bindLiteralEnv(v *viper.Viper, key, envVar string) {
	if val := os.Getenv(envVar); val != "" {
		v.Set(key, val)
	}
}

func bindLiteralEnvInt(v *viper.Viper, key, envVar string) {
	if val := os.Getenv(envVar); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			v.Set(key, n)
		}
	}
}

func bindLiteralEnvFloat(v *viper.Viper, key, envVar string) {
	if val := os.Getenv(envVar); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			v.Set(key, f)
		}
	}
}

// LoadConfigOrDefault loads configuration or returns a default config on error.
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go).
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
