// Package config provides configuration management for the docsieve CLI.
package config

import (
	"fmt"
)

// Config holds configuration for docsieve commands.
type Config struct {
	// DataDir is where file-backed inputs and the default sqlite database live.
	DataDir string
	// Collection is the default collection name for insert/find.
	Collection string
	// Workers bounds the find worker pool; 0 means one worker per CPU.
	Workers int
	// MaxBatchSize caps documents accepted per insert invocation.
	MaxBatchSize int
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      "./data",
		Collection:   "default",
		Workers:      0,
		MaxBatchSize: 1000,
	}
}

// Validate checks that configuration values are usable.
func (cfg *Config) Validate() error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if cfg.Collection == "" {
		return fmt.Errorf("collection must not be empty")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be positive, got %d", cfg.MaxBatchSize)
	}
	return nil
}
