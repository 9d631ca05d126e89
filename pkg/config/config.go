package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"

	"go.goms.io/synapse/spark-inventory/pkg/logger"
	"go.goms.io/synapse/spark-inventory/pkg/utils"
)

const (
	// Default configuration values
	defaultLogLevel  = "info"
	defaultOutputDir = "."

	// Environment variable prefix
	envPrefix = "SYNAPSE_INVENTORY"

	// PlaceholderSubscriptionID is written into freshly created sample config
	// files. It is not usable and fails once a scan tries to consume it.
	PlaceholderSubscriptionID = "<your-subscription-id-here>"
)

// ParseError indicates the config file exists but is not well-formed JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON in config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError indicates the config file parsed but does not satisfy the
// required shape.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + e.Reason
}

// Config represents the scanner configuration loaded from a JSON file.
type Config struct {
	// SubscriptionIDs is the ordered list of subscriptions to scan. Duplicate
	// entries are kept as-is and scanned twice.
	SubscriptionIDs []string `mapstructure:"subscription_ids" json:"subscription_ids"`

	LogLevel  string `mapstructure:"log_level" json:"log_level,omitempty"`
	LogDir    string `mapstructure:"log_dir" json:"log_dir,omitempty"`
	OutputDir string `mapstructure:"output_dir" json:"output_dir,omitempty"`
}

// Load loads the configuration from a JSON file. If the file does not exist,
// a sample file with a placeholder subscription ID is created and returned
// with the second result set to true; the placeholder is only rejected later
// when a scan tries to use it.
func Load(configPath string) (*Config, bool, error) {
	if configPath == "" {
		return nil, false, &ValidationError{Reason: "config file path is required"}
	}

	if !utils.FileExists(configPath) {
		cfg, err := createSampleConfig(configPath)
		if err != nil {
			return nil, false, err
		}
		return cfg, true, nil
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, false, &ParseError{Path: configPath, Err: err}
	}

	if !v.IsSet("subscription_ids") {
		return nil, false, &ValidationError{Reason: "config file must contain 'subscription_ids' key"}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, false, &ValidationError{Reason: fmt.Sprintf("'subscription_ids' must be a list of strings: %v", err)}
	}

	config.SetDefaults()

	if err := config.Validate(); err != nil {
		return nil, false, err
	}

	return config, false, nil
}

// SetDefaults sets default values for any missing configuration fields
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
}

// Validate validates the configuration and ensures all required fields are set
func (c *Config) Validate() error {
	if len(c.SubscriptionIDs) == 0 {
		return &ValidationError{Reason: "at least one subscription ID must be provided"}
	}
	for i, id := range c.SubscriptionIDs {
		if id == "" {
			return &ValidationError{Reason: fmt.Sprintf("subscription_ids[%d] is empty", i)}
		}
	}
	if err := logger.ValidateLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	return nil
}

// createSampleConfig writes a placeholder config file to the given path and
// returns the equivalent in-memory configuration.
func createSampleConfig(configPath string) (*Config, error) {
	sample := &Config{
		SubscriptionIDs: []string{PlaceholderSubscriptionID},
	}

	data, err := json.MarshalIndent(map[string][]string{
		"subscription_ids": sample.SubscriptionIDs,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sample config: %w", err)
	}
	data = append(data, '\n')

	if err := utils.WriteFileAtomic(configPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to create sample config file %s: %w", configPath, err)
	}

	sample.SetDefaults()
	return sample, nil
}
