// Package config defines the explicit configuration object for SynapseFlow
// deployments. All recognized options are enumerated here and passed at
// construction time; constructors never read the environment or other
// implicit process-wide defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config aggregates all deployment settings.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Memory MemoryConfig `yaml:"memory"`
	Model  ModelConfig  `yaml:"model"`
	Index  IndexConfig  `yaml:"index"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP service layer.
type ServerConfig struct {
	Host           string   `yaml:"host"`            // default "127.0.0.1"
	Port           int      `yaml:"port"`            // default 8090
	JWTSecret      string   `yaml:"jwt_secret"`      // required to serve authenticated routes
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS allowlist; empty disables CORS handling
}

// MemoryConfig selects and configures the durable sink.
type MemoryConfig struct {
	Sink          string  `yaml:"sink"`           // "file", "bolt", "redis" or "none"
	Path          string  `yaml:"path"`           // file/bolt location
	RedisURL      string  `yaml:"redis_url"`      // redis sink address
	RedisKey      string  `yaml:"redis_key"`      // redis sink key, optional
	RecencyWeight float64 `yaml:"recency_weight"` // retrieval age bonus factor
}

// ModelConfig selects the completion backend.
type ModelConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "anthropic" or "mock"
	Name        string  `yaml:"name"`
	APIKey      string  `yaml:"api_key"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// IndexConfig configures optional vector-index forwarding.
type IndexConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	APIKey        string `yaml:"api_key"`
	Collection    string `yaml:"collection"`
	VectorSize    int    `yaml:"vector_size"`
	UseEmbeddings bool   `yaml:"use_embeddings"` // compute embeddings through the model before upsert
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // default "info"
	Format string `yaml:"format"` // "json" or "text", default "json"
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
		Memory: MemoryConfig{
			Sink: "file",
			Path: "memory.json",
		},
		Model: ModelConfig{
			Provider:    "mock",
			Temperature: 0.2,
			MaxTokens:   300,
		},
		Index: IndexConfig{
			URL:        "http://localhost:6333",
			Collection: "synapseflow_memory",
			VectorSize: 384,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a YAML file on top of the defaults. A missing path yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Address returns the listen address in "host:port" format.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
