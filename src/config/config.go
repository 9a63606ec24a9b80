package config

import (
	"fmt"
	"os"

	"wellness-observer/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}

	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	if c.Pipeline.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll interval must be greater than 0")
	}
	if c.Pipeline.BaselineDays <= 0 {
		return fmt.Errorf("baseline days must be greater than 0")
	}
	if c.Pipeline.SourceName == "" {
		return fmt.Errorf("pipeline source name cannot be empty")
	}

	if c.Weather.Enabled {
		if c.Weather.ForecastURL == "" {
			return fmt.Errorf("weather forecast URL cannot be empty when weather is enabled")
		}
		if c.Weather.AirQualityURL == "" {
			return fmt.Errorf("air quality URL cannot be empty when weather is enabled")
		}
	}

	for i, cluster := range c.LocationClusters {
		if cluster.Key == "" {
			return fmt.Errorf("location cluster %d must have a key", i)
		}
		if cluster.Lat < -90 || cluster.Lat > 90 {
			return fmt.Errorf("location cluster '%s' has invalid latitude: %f", cluster.Key, cluster.Lat)
		}
		if cluster.Lon < -180 || cluster.Lon > 180 {
			return fmt.Errorf("location cluster '%s' has invalid longitude: %f", cluster.Key, cluster.Lon)
		}
		if cluster.RadiusMeters < 0 {
			return fmt.Errorf("location cluster '%s' has negative radius", cluster.Key)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
