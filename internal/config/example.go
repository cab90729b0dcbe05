package config

// ExampleConfig returns an example configuration showing all available
// options.
func ExampleConfig() string {
	return `# ZenPlan configuration file
# Values can be overridden by ZENPLAN_* environment variables or CLI flags

# Data directory for the persisted snapshot (supports ~ expansion)
data_dir = "~/.zenplan"

# Snapshot schema file for the validate command (bundled schema if unset)
# schema_file = "schedules.schema.json"

# Assistant model queried for the daily reminder
assistant_model = "gemini-3-flash-preview"

# Disable the assistant entirely (the fallback reminder is still shown)
assistant_disabled = false

# Logging
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false

# The assistant credential is never read from this file; set
# GEMINI_API_KEY in the environment or in a project .env file.
`
}
