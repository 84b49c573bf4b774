package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Processing ProcessingConfig `yaml:"processing"`
	Report     ReportConfig     `yaml:"report"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type InputConfig struct {
	Dir    string `yaml:"dir"`
	Suffix string `yaml:"suffix"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Suffix string `yaml:"suffix"` // appended to the destination code, e.g. JFK_arrival.json
	Indent int    `yaml:"indent"`
}

type ProcessingConfig struct {
	Workers        int     `yaml:"workers"`
	FilesPerSecond float64 `yaml:"files_per_second"` // 0 disables throttling
	Burst          int     `yaml:"burst"`
}

type ReportConfig struct {
	Path string `yaml:"path"` // CSV summary, empty to skip
}

type LoggingConfig struct {
	Level string `yaml:"level"` // "DEBUG", "INFO", "WARN", "ERROR"
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and the environment, in that order.
func Load(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.setDefaults()

	// Load from file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// .env is optional; variables already set in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Override with environment variables
	config.loadFromEnv()

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *Config) setDefaults() {
	c.Input.Dir = "flight_departure_results"
	c.Input.Suffix = ".json"

	c.Output.Dir = "flight_arrival_results"
	c.Output.Suffix = "_arrival"
	c.Output.Indent = 4

	c.Processing.Workers = 1
	c.Processing.FilesPerSecond = 0
	c.Processing.Burst = 1

	c.Logging.Level = "INFO"
}

func (c *Config) loadFromEnv() {
	if dir := os.Getenv("REGROUPER_INPUT_DIR"); dir != "" {
		c.Input.Dir = dir
	}

	if dir := os.Getenv("REGROUPER_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}

	if workers := os.Getenv("REGROUPER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			c.Processing.Workers = w
		}
	}

	if fps := os.Getenv("REGROUPER_FILES_PER_SECOND"); fps != "" {
		if f, err := strconv.ParseFloat(fps, 64); err == nil {
			c.Processing.FilesPerSecond = f
		}
	}

	if report := os.Getenv("REGROUPER_REPORT_PATH"); report != "" {
		c.Report.Path = report
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Validate checks the configuration and normalizes the log level.
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return fmt.Errorf("input directory cannot be empty")
	}

	if c.Input.Suffix == "" {
		return fmt.Errorf("input suffix cannot be empty")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return fmt.Errorf("output suffix must not contain path separators")
	}

	if c.Output.Indent < 0 {
		return fmt.Errorf("output indent cannot be negative")
	}

	if c.Processing.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	if c.Processing.FilesPerSecond < 0 {
		return fmt.Errorf("files per second cannot be negative")
	}

	if c.Processing.FilesPerSecond > 0 && c.Processing.Burst < 1 {
		return fmt.Errorf("burst must be at least 1 when throttling")
	}

	c.Logging.Level = strings.ToUpper(c.Logging.Level)
	switch c.Logging.Level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("log level must be 'DEBUG', 'INFO', 'WARN', or 'ERROR'")
	}

	return nil
}
