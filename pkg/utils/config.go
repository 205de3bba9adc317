package utils

import (
	"strconv"
	"sync"
)

// Config is a thread-safe view over the service's key-value configuration,
// typically loaded from .env files and the process environment.
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a Config from the provided key-value pairs. The map is
// copied, not referenced.
func NewConfig(values map[string]string) *Config {
	config := &Config{values: make(map[string]string, len(values))}
	for k, v := range values {
		config.values[k] = v
	}
	return config
}

// NewConfigFromEnv creates a Config by loading environment variables from the
// specified .env files, later files taking precedence.
func NewConfigFromEnv(files ...string) *Config {
	return NewConfig(LoadEnv(files...))
}

// Get retrieves a configuration value, or the empty string if unset.
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetWithDefault retrieves a configuration value with a fallback default for
// unset or empty keys.
func (c *Config) GetWithDefault(key, defaultValue string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if value, exists := c.values[key]; exists && value != "" {
		return value
	}
	return defaultValue
}

// GetInt retrieves a configuration value as an integer, or 0 when the key is
// unset or unparsable.
func (c *Config) GetInt(key string) int {
	value := c.Get(key)
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

// Set modifies a configuration value.
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has checks whether a configuration key exists.
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.values[key]
	return exists
}
