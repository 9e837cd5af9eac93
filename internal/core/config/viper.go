package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	v.SetDefault("data_dir", "./data")
	v.SetDefault("collection", "default")
	v.SetDefault("workers", 0)
	v.SetDefault("max_batch_size", 1000)

	// Bind environment variables with DS_ prefix
	v.SetEnvPrefix("DS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DataDir:      v.GetString("data_dir"),
		Collection:   v.GetString("collection"),
		Workers:      v.GetInt("workers"),
		MaxBatchSize: v.GetInt("max_batch_size"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
