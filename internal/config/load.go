package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/nibzard/zenplan-go/internal/assistant"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.zenplan/zenplan.toml or OS-specific config dir)
// 3. Project config file (zenplan.toml or .zenplan.toml in current directory)
// 4. Environment variables (after reading a .env file, if any)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{Sources: make(map[string]Source)}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Override from environment. A project .env is read first so
	// GEMINI_API_KEY works with zero shell setup; a missing .env is
	// fine.
	_ = godotenv.Load()
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	finalize(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.AssistantModel = assistant.DefaultModel
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	for _, field := range Fields() {
		cfg.Sources[field] = SourceDefault
	}
}

// loadConfigFile loads TOML config from the given file and records
// which fields it set.
func loadConfigFile(cfg *Config, path string, source Source) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	for _, key := range meta.Keys() {
		cfg.Sources[key.String()] = source
	}
	return nil
}

// loadFromEnv overrides config from ZENPLAN_* environment variables.
func loadFromEnv(cfg *Config) {
	set := func(field string, apply func(string)) {
		if v := os.Getenv("ZENPLAN_" + field); v != "" {
			apply(v)
		}
	}
	set("DATA_DIR", func(v string) {
		cfg.DataDir = v
		cfg.Sources["data_dir"] = SourceEnv
	})
	set("SCHEMA", func(v string) {
		cfg.SchemaFile = v
		cfg.Sources["schema_file"] = SourceEnv
	})
	set("MODEL", func(v string) {
		cfg.AssistantModel = v
		cfg.Sources["assistant_model"] = SourceEnv
	})
	set("NO_ASSISTANT", func(v string) {
		cfg.AssistantDisabled = boolFromString(v)
		cfg.Sources["assistant_disabled"] = SourceEnv
	})
	set("LOG_LEVEL", func(v string) {
		cfg.LogLevel = v
		cfg.Sources["log_level"] = SourceEnv
	})
	set("LOG_FORMAT", func(v string) {
		cfg.LogFormat = v
		cfg.Sources["log_format"] = SourceEnv
	})
	set("LOG_TIMESTAMPS", func(v string) {
		cfg.LogTimestamps = boolFromString(v)
		cfg.Sources["log_timestamps"] = SourceEnv
	})
}

// parseFlags registers the global flags, parses args, and applies
// explicitly set flags over the current config.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	dataDir := fs.String("data-dir", cfg.DataDir, "Data directory for the persisted snapshot")
	schemaFile := fs.String("schema", cfg.SchemaFile, "Snapshot schema file (overrides the bundled schema)")
	model := fs.String("model", cfg.AssistantModel, "Assistant model name")
	noAssistant := fs.Bool("no-assistant", cfg.AssistantDisabled, "Disable the AI assistant")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format (text|json|logfmt)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	applied := map[string]struct {
		field string
		apply func()
	}{
		"data-dir":     {"data_dir", func() { cfg.DataDir = *dataDir }},
		"schema":       {"schema_file", func() { cfg.SchemaFile = *schemaFile }},
		"model":        {"assistant_model", func() { cfg.AssistantModel = *model }},
		"no-assistant": {"assistant_disabled", func() { cfg.AssistantDisabled = *noAssistant }},
		"log-level":    {"log_level", func() { cfg.LogLevel = *logLevel }},
		"log-format":   {"log_format", func() { cfg.LogFormat = *logFormat }},
	}
	fs.Visit(func(f *flag.Flag) {
		if entry, ok := applied[f.Name]; ok {
			entry.apply()
			cfg.Sources[entry.field] = SourceFlag
		}
	})
	return nil
}

// finalize computes derived values.
func finalize(cfg *Config) {
	cfg.DataDir = expandPath(cfg.DataDir)
	if cfg.SchemaFile != "" {
		cfg.SchemaFile = expandPath(cfg.SchemaFile)
	}
}

func boolFromString(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v == "yes" || v == "on"
	}
	return b
}
