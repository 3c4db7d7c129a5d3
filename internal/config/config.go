package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nhdewitt/freeletters/internal/volume"
)

// Config holds the session settings. It is read once at startup.
type Config struct {
	// Force enables "always allow removal" for the whole session.
	Force bool

	LogLevel     string
	LogFormat    string
	VolumeSource string

	// Protected letters, upper case. Always contains C.
	Protected []rune

	// AssumeYes skips the confirmation prompt.
	AssumeYes bool
}

// Load builds the config from the process arguments (without the program
// name) and an environment lookup such as os.Getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Force:        len(args) > 0 && strings.ToLower(args[0]) == "f",
		LogLevel:     strings.ToLower(getEnv(getenv, "FREELETTERS_LOG_LEVEL", "warn")),
		LogFormat:    strings.ToLower(getEnv(getenv, "FREELETTERS_LOG_FORMAT", "text")),
		VolumeSource: strings.ToLower(getEnv(getenv, "FREELETTERS_VOLUME_SOURCE", volume.SourceNative)),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("FREELETTERS_LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("FREELETTERS_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	switch cfg.VolumeSource {
	case volume.SourceNative, volume.SourceWMI:
	default:
		return nil, fmt.Errorf("FREELETTERS_VOLUME_SOURCE must be native or wmi, got %q", cfg.VolumeSource)
	}

	protected, err := parseLetters(getEnv(getenv, "FREELETTERS_PROTECTED", "C"))
	if err != nil {
		return nil, fmt.Errorf("FREELETTERS_PROTECTED: %w", err)
	}
	cfg.Protected = protected

	switch strings.ToLower(getEnv(getenv, "FREELETTERS_ASSUME_YES", "")) {
	case "1", "true", "yes":
		cfg.AssumeYes = true
	}

	return cfg, nil
}

// parseLetters parses "C,Z" or "C Z" into upper-case letters. C is always included.
func parseLetters(s string) ([]rune, error) {
	letters := []rune{'C'}
	seen := map[rune]bool{'C': true}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	for _, f := range fields {
		f = strings.TrimSuffix(f, ":")
		if len(f) != 1 {
			return nil, fmt.Errorf("%q is not a drive letter", f)
		}
		l := unicode.ToUpper(rune(f[0]))
		if l < 'A' || l > 'Z' {
			return nil, fmt.Errorf("%q is not a drive letter", f)
		}
		if !seen[l] {
			seen[l] = true
			letters = append(letters, l)
		}
	}

	return letters, nil
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
