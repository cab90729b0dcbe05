// Package config handles configuration loading and defaults.
package config

import "os"

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultDataDir   = "~/.zenplan"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// APIKeyEnv is the credential variable consumed exclusively by the
	// assistant client.
	APIKeyEnv = "GEMINI_API_KEY"
)

// Config holds the full configuration for zenplan.
type Config struct {
	// DataDir is where the persisted snapshot lives (supports ~).
	DataDir string `toml:"data_dir"`

	// SchemaFile optionally overrides the bundled snapshot schema used
	// by the validate command.
	SchemaFile string `toml:"schema_file"`

	// Assistant settings
	AssistantModel    string `toml:"assistant_model"`
	AssistantDisabled bool   `toml:"assistant_disabled"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Sources records where each value came from, keyed by the TOML
	// field name. Populated by Load.
	Sources map[string]Source `toml:"-"`
}

// APIKey returns the assistant credential from the environment. An
// empty key is not an error; the assistant degrades to its fallback.
func (c *Config) APIKey() string {
	return os.Getenv(APIKeyEnv)
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return []string{
		"data_dir",
		"schema_file",
		"assistant_model",
		"assistant_disabled",
		"log_level",
		"log_format",
		"log_timestamps",
	}
}
