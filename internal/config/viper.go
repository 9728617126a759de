// Package config provides Viper-based hierarchical configuration management
// for the merge engine.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete engine configuration. Values come from
// defaults, an optional config file, and MERGE_* environment variables, in
// that order of precedence.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Accounts struct {
		// Directory is the root holding one folder per period plus the
		// rule tables. Required for a run.
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"accounts" yaml:"accounts"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Classifier struct {
		// ConfidenceThreshold gates statistical predictions; clamped to [0,1].
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
		// MinTrainingSamples below which the statistical tier is skipped.
		MinTrainingSamples int `mapstructure:"min_training_samples" yaml:"min_training_samples"`
		// HistoryPeriods is how many prior periods feed the training corpus.
		HistoryPeriods int `mapstructure:"history_periods" yaml:"history_periods"`
	} `mapstructure:"classifier" yaml:"classifier"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.merge-csv")
	v.AddConfigPath(".merge-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MERGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Malformed config file is a configuration defect: continue with
			// defaults and environment variables.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The surrounding app exports the accounts directory under its own name.
	if err := v.BindEnv("accounts.directory", "EXPENSE_REPORTS_ACCOUNTS_DIR"); err != nil {
		fmt.Printf("Warning: failed to bind EXPENSE_REPORTS_ACCOUNTS_DIR: %v\n", err)
	}
	if err := v.BindEnv("classifier.confidence_threshold", "ML_CONFIDENCE_THRESHOLD"); err != nil {
		fmt.Printf("Warning: failed to bind ML_CONFIDENCE_THRESHOLD: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("accounts.directory", "")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("classifier.confidence_threshold", 0.70)
	v.SetDefault("classifier.min_training_samples", 10)
	v.SetDefault("classifier.history_periods", 3)
}

// validateConfig validates and normalizes the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// Threshold is clamped rather than rejected: an out-of-range value is a
	// configuration defect recovered locally.
	if config.Classifier.ConfidenceThreshold < 0.0 {
		config.Classifier.ConfidenceThreshold = 0.0
	}
	if config.Classifier.ConfidenceThreshold > 1.0 {
		config.Classifier.ConfidenceThreshold = 1.0
	}

	if config.Classifier.MinTrainingSamples < 1 {
		return fmt.Errorf("classifier.min_training_samples must be positive, got: %d", config.Classifier.MinTrainingSamples)
	}
	if config.Classifier.HistoryPeriods < 0 {
		return fmt.Errorf("classifier.history_periods cannot be negative, got: %d", config.Classifier.HistoryPeriods)
	}

	return nil
}

// ConfigureLoggingFromConfig configures a logrus logger based on the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
