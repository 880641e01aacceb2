package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/cssprite"
)

const defaultConfigPath = ".cssprite.yaml"

var k = koanf.New(".")

// configSections are the top-level maps of the config file
var configSections = []string{"source", "image", "css", "lint", "preview"}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags, only the ones set on the command line; defaults live in
	// the build*Config functions.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSPRITE_* prefix)
	if err := k.Load(env.Provider("CSSPRITE_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to its config key:
//
//	CSSPRITE_SOURCE_SKIP_SIZE -> source.skip-size
//	CSSPRITE_CHECK_FRESH      -> check-fresh
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "CSSPRITE_"))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildGenerateConfig constructs the library's Config struct from koanf state.
func buildGenerateConfig(logger *log.Logger) cssprite.Config {
	return cssprite.Config{
		SourcePath:     getStringWithFallback("source-dir", "source.path", "images/source"),
		SourceExt:      getStringWithFallback("source-ext", "source.ext", "jpg,jpeg,gif,png"),
		SkipSize:       getIntWithFallback("skip-size", "source.skip-size", 0),
		Order:          cssprite.Order(getStringWithFallback("order", "source.order", string(cssprite.OrderName))),
		IgnoreFile:     getStringWithFallback("ignore-file", "source.ignore-file", ".spriteignore"),
		ImagePath:      getStringWithFallback("image-path", "image.path", "public/img/sprite.png"),
		JPEGQuality:    getIntWithFallback("jpeg-quality", "image.jpeg-quality", 90),
		CSSPath:        getStringWithFallback("css-path", "css.path", "public/css/sprite.css"),
		ImageURL:       getStringWithFallback("image-url", "css.image-url", "../img/sprite.png"),
		Namespace:      getStringWithFallback("namespace", "css.namespace", "img"),
		NamespaceStyle: cssprite.NamespaceStyle(getStringWithFallback("namespace-style", "css.namespace-style", string(cssprite.StyleHyphen))),
		DefaultSize:    getIntWithFallback("default-size", "css.default-size", 64),
		States:         getStringsWithFallback("states", "css.states", []string{"hover", "active", "target"}),
		Tag:            getStringWithFallback("tag", "css.tag", "i"),
		InlineImage:    getBoolWithFallback("inline", "css.inline", false),
		CacheBust:      getBoolWithFallback("cache-bust", "css.cache-bust", false),
		Slug:           getBoolWithFallback("slug", "css.slug", false),
		CheckFresh:     getBoolWithFallback("check-fresh", "check-fresh", false),
		Workers:        getIntWithFallback("workers", "workers", 1),
		Logger:         logger,
	}
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig() cssprite.LintConfig {
	return cssprite.LintConfig{
		CSSPath:            getStringWithFallback("css-path", "css.path", "public/css/sprite.css"),
		ScanPaths:          getStringsWithFallback("paths", "lint.paths", []string{"templates/**/*.html"}),
		Prefix:             getStringWithFallback("prefix", "lint.prefix", ""),
		Verbose:            getBoolWithFallback("verbose", "verbose", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
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

// getStringsWithFallback is getStringWithFallback for lists. A single
// comma separated value (as set through the environment) is split.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	for _, key := range []string{flagKey, configKey} {
		if v := k.Strings(key); len(v) > 0 {
			return splitList(v)
		}
	}
	return defaultVal
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
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
