package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"

	"github.com/spf13/cobra"
	"github.com/yacobolo/beamlint"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".beamlint.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence, only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a cobra
// command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// Environment variables (BEAMLINT_* prefix)
	if err := k.Load(env.Provider("BEAMLINT_", ".", func(s string) string {
		// BEAMLINT_CHECK_STRICT -> check.strict
		// BEAMLINT_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "BEAMLINT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildCheckConfig constructs the library's Config struct from koanf state.
func buildCheckConfig() beamlint.Config {
	config := beamlint.DefaultConfig()
	config.Strict = getBoolWithFallback("strict", "check.strict", false)
	config.ThemeArtifact = getStringWithFallback("theme", "check.theme", config.ThemeArtifact)
	config.LayoutPrefix = getStringWithFallback("layout-prefix", "check.layout-prefix", config.LayoutPrefix)
	config.PrimitivePrefix = getStringWithFallback("primitive-prefix", "check.primitive-prefix", config.PrimitivePrefix)
	config.Workers = getIntWithFallback("workers", "check.workers", 0)

	if words := k.Strings("state-words"); len(words) > 0 {
		config.StateWords = words
	} else if words := k.Strings("check.state-words"); len(words) > 0 {
		config.StateWords = words
	}

	return config
}

// checkPaths resolves the file patterns to scan.
func checkPaths() []string {
	if paths := k.Strings("paths"); len(paths) > 0 {
		return paths
	}
	if paths := k.Strings("check.paths"); len(paths) > 0 {
		return paths
	}
	return defaultCheckPaths
}

var defaultCheckPaths = []string{
	"**/*.css",
	"**/*.html",
	"**/*.templ",
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
