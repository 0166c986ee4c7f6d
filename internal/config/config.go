package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsonspect
type Config struct {
	RootName string       `yaml:"root_name"`
	Package  string       `yaml:"package"`
	Mock     MockConfig   `yaml:"mock"`
	AI       AIConfig     `yaml:"ai"`
	Server   ServerConfig `yaml:"server"`
}

// MockConfig controls the heuristic ranges used by value synthesis.
// The exact numbers are plausibility knobs, not contracts; tests pin them
// through this struct.
type MockConfig struct {
	// MaxRecords caps one generation call.
	MaxRecords int `yaml:"max_records"`
	// IntMax is the upper bound for synthesized integers.
	IntMax int64 `yaml:"int_max"`
	// AgeLikeMax: integer examples in [0, AgeLikeMax] are treated as
	// bounded, age-like domains and synthesized in [0, AgeLikeBound].
	AgeLikeMax   int64 `yaml:"age_like_max"`
	AgeLikeBound int64 `yaml:"age_like_bound"`
	// DefaultStringLen is the target length for strings with no example.
	DefaultStringLen int `yaml:"default_string_len"`
	// EmptyArrayMin/Max bound synthesized lengths for empty array examples.
	EmptyArrayMin int `yaml:"empty_array_min"`
	EmptyArrayMax int `yaml:"empty_array_max"`
	// ArrayJitter is the +/- applied to non-empty example array lengths.
	ArrayJitter int `yaml:"array_jitter"`
	// YearSpread is the +/- range in years for synthesized dates.
	YearSpread int `yaml:"year_spread"`
}

// AIConfig controls the Groq collaborator
type AIConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	// FreeUses is the number of AI questions allowed per session.
	FreeUses  int `yaml:"free_uses"`
	CacheSize int `yaml:"cache_size"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		RootName: "RootType",
		Package:  "main",
		Mock: MockConfig{
			MaxRecords:       1000,
			IntMax:           10000,
			AgeLikeMax:       150,
			AgeLikeBound:     120,
			DefaultStringLen: 12,
			EmptyArrayMin:    1,
			EmptyArrayMax:    5,
			ArrayJitter:      1,
			YearSpread:       5,
		},
		AI: AIConfig{
			BaseURL:     "https://api.groq.com/openai/v1/chat/completions",
			Model:       "llama-3.3-70b-versatile",
			Temperature: 0.3,
			FreeUses:    3,
			CacheSize:   128,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			TimeoutSeconds: 60,
		},
	}
}

// LoadConfig loads configuration from a YAML file, on top of defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and
// its parents
func FindConfigFile() string {
	configNames := []string{".jsonspect.yml", ".jsonspect.yaml", "jsonspect.yml", "jsonspect.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Load resolves the effective configuration: explicit path if given,
// otherwise a discovered config file, otherwise defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if found := FindConfigFile(); found != "" {
		return LoadConfig(found)
	}
	return NewConfig(), nil
}
