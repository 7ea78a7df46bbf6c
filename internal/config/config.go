package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Input struct {
		RootDir             string `yaml:"root_dir"`
		MaxFilesPerExchange int    `yaml:"max_files_per_exchange" validate:"gte=0"`
		Extension           string `yaml:"extension" default:".csv" validate:"required"`
	} `yaml:"input"`
	Output struct {
		Dir string `yaml:"dir" default:"." validate:"required"`
	} `yaml:"output"`
	Sampling struct {
		WindowSize int   `yaml:"window_size" default:"10" validate:"gte=1"`
		Seed       int64 `yaml:"seed"` // 0 seeds from the clock
	} `yaml:"sampling"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"log"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty runs a single batch
	} `yaml:"schedule"`
	History struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"history"`
	Metrics struct {
		TextfilePath string `yaml:"textfile_path"`
	} `yaml:"metrics"`
}

var validate = validator.New()

// Load reads config from a YAML file, then applies environment variable overrides and defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PREDICTOR_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("PREDICTOR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PREDICTOR_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse PREDICTOR_SEED: %w", err)
		}
		cfg.Sampling.Seed = seed
	}
	if v := os.Getenv("PREDICTOR_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.History.SQLitePath = v
	}
	if v := os.Getenv("METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.TextfilePath = v
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

// ApplyArgs sets the input root and per-exchange limit from the command line.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("invalid number of arguments: want <root-dir> <max-files-per-exchange>, got %d", len(args))
	}
	maxFiles, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("unable to parse the maximum number of files per exchange: %w", err)
	}
	c.Input.RootDir = args[0]
	c.Input.MaxFilesPerExchange = maxFiles
	return nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Input.RootDir == "" {
		return fmt.Errorf("input.root_dir is required")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
