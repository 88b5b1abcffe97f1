package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `mapstructure:"input"`
	Reference ReferenceConfig `mapstructure:"reference"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// InputConfig holds input and output path configuration
type InputConfig struct {
	BaseDir     string `mapstructure:"base_dir"`
	CreatorList string `mapstructure:"creator_list"`
	MasterFile  string `mapstructure:"master_file"`
}

// ReferenceConfig holds paths to the static reference tables
type ReferenceConfig struct {
	MaleNames       string `mapstructure:"male_names"`
	FemaleNames     string `mapstructure:"female_names"`
	GenderedNiches  string `mapstructure:"gendered_niches"`
	CategoryTypeMap string `mapstructure:"category_type_map"`
	GeoDatabase     string `mapstructure:"geo_database"`
}

// BatchConfig holds worker pool configuration
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigFile(path)

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("CREATORSCOPE")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Input defaults
	v.SetDefault("input.base_dir", "./data/creators")
	v.SetDefault("input.creator_list", "")
	v.SetDefault("input.master_file", "./data/analyzed_profiles.json")

	// Reference defaults
	v.SetDefault("reference.male_names", "./refdata/male_names.txt")
	v.SetDefault("reference.female_names", "./refdata/female_names.txt")
	v.SetDefault("reference.gendered_niches", "./refdata/gendered_niches.json")
	v.SetDefault("reference.category_type_map", "./refdata/category_type_map.json")
	v.SetDefault("reference.geo_database", "./refdata/geo_regions.json")

	// Batch defaults, 0 selects the runtime-derived pool size
	v.SetDefault("batch.workers", 0)

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Input config
	if c.Input.BaseDir == "" {
		return fmt.Errorf("input.base_dir is required")
	}
	if c.Input.MasterFile == "" {
		return fmt.Errorf("input.master_file is required")
	}

	// Validate Reference config
	if c.Reference.MaleNames == "" {
		return fmt.Errorf("reference.male_names is required")
	}
	if c.Reference.FemaleNames == "" {
		return fmt.Errorf("reference.female_names is required")
	}
	if c.Reference.GenderedNiches == "" {
		return fmt.Errorf("reference.gendered_niches is required")
	}
	if c.Reference.CategoryTypeMap == "" {
		return fmt.Errorf("reference.category_type_map is required")
	}

	// Validate Batch config
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
