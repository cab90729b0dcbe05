package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const configFileName = "zenplan.toml"

// findUserConfigFile returns the user-level config file path, or ""
// if none exists. Checks ~/.zenplan first, then the OS config dir.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".zenplan", configFileName)
		if fileExists(p) {
			return p
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "zenplan", configFileName)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// findProjectConfigFile returns the project-level config file path in
// the current directory, or "" if none exists.
func findProjectConfigFile() string {
	for _, name := range []string{configFileName, "." + configFileName} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// expandPath expands home directory and environment variables in
// paths. It supports ~/ and ~\ prefixes.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return home
	}
	if strings.HasPrefix(expanded, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(expanded, "~\\")) {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}
