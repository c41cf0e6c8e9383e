package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// DataConfig contains the pipeline inputs and the environment-sensitive
// normalization parameters (source-region timezone, regime keyword mapping).
type DataConfig struct {
	SentimentFile  string `yaml:"sentiment_file" envconfig:"SENTIMENT_FILE" default:"data/fear_greed_index.csv"`
	TradesFile     string `yaml:"trades_file" envconfig:"TRADES_FILE" default:"data/historical_data.csv"`
	ReportsDir     string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	SourceTimezone string `yaml:"source_timezone" envconfig:"SOURCE_TIMEZONE" default:"Asia/Kolkata"`
	FearKeyword    string `yaml:"fear_keyword" envconfig:"FEAR_KEYWORD" default:"fear"`
	GreedKeyword   string `yaml:"greed_keyword" envconfig:"GREED_KEYWORD" default:"greed"`
}

// Load loads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
func Load() (*Config, error) {
	// Pick up a .env file if one exists; absence is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SENTI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config. File values only fill
// fields the environment left at their zero value.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Data.SentimentFile == "" {
		envConfig.Data.SentimentFile = fileConfig.Data.SentimentFile
	}
	if envConfig.Data.TradesFile == "" {
		envConfig.Data.TradesFile = fileConfig.Data.TradesFile
	}
	if envConfig.Data.SourceTimezone == "" {
		envConfig.Data.SourceTimezone = fileConfig.Data.SourceTimezone
	}
	if envConfig.Data.FearKeyword == "" {
		envConfig.Data.FearKeyword = fileConfig.Data.FearKeyword
	}
	if envConfig.Data.GreedKeyword == "" {
		envConfig.Data.GreedKeyword = fileConfig.Data.GreedKeyword
	}

	return envConfig
}

// getConfigFilePath returns the config file location. SENTI_CONFIG_FILE
// overrides the default config.yaml in the working directory.
func getConfigFilePath() string {
	if path := os.Getenv("SENTI_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks the loaded configuration for values the pipeline cannot
// operate without.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Data.SentimentFile == "" {
		return fmt.Errorf("sentiment file path is required")
	}
	if c.Data.TradesFile == "" {
		return fmt.Errorf("trades file path is required")
	}
	if c.Data.SourceTimezone == "" {
		return fmt.Errorf("source timezone is required")
	}
	if c.Data.FearKeyword == "" || c.Data.GreedKeyword == "" {
		return fmt.Errorf("regime keywords must not be empty")
	}
	return nil
}

// GetListenAddr returns the address the HTTP server binds to
func (c *Config) GetListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
