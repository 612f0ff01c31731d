package dbug

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pkt.systems/dbug/ansi"
)

// DefaultEnvPrefix names the variable holding the enable patterns; the
// other variables append a suffix to it.
const DefaultEnvPrefix = "DEBUG"

// EnvOption customizes RegistryFromEnv behavior.
type EnvOption func(*envConfig)

type envConfig struct {
	prefix    string
	options   Options
	writer    io.Writer
	errWriter io.Writer
}

// WithEnvPrefix overrides the variable name used by RegistryFromEnv. With
// prefix "APP_DEBUG" the patterns come from APP_DEBUG and colour from
// APP_DEBUG_COLORS.
func WithEnvPrefix(prefix string) EnvOption {
	return func(cfg *envConfig) {
		cfg.prefix = prefix
	}
}

// WithEnvOptions seeds RegistryFromEnv with explicit Options values.
func WithEnvOptions(opts Options) EnvOption {
	return func(cfg *envConfig) {
		cfg.options = opts
	}
}

// WithEnvWriter seeds RegistryFromEnv with a default output writer.
func WithEnvWriter(w io.Writer) EnvOption {
	return func(cfg *envConfig) {
		cfg.writer = w
	}
}

// WithEnvErrorWriter sets where configuration problems are reported.
// Defaults to os.Stderr.
func WithEnvErrorWriter(w io.Writer) EnvOption {
	return func(cfg *envConfig) {
		cfg.errWriter = w
	}
}

// RegistryFromEnv builds a Registry from environment variables, allowing
// optional seeded options and writers. Environment values override supplied
// options.
//
// Recognised variables are: {prefix} (the enable patterns), {prefix}_COLORS,
// {prefix}_SHOW_DATE, {prefix}_PALETTE and {prefix}_OUTPUT, plus NO_COLOR.
// OUTPUT accepts stdout, stderr, default, a file path, or
// stdout+/stderr+/default+<path> to tee.
func RegistryFromEnv(opts ...EnvOption) *Registry {
	cfg := envConfig{prefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	resolved := cfg.options
	baseWriter := cfg.writer
	if baseWriter == nil {
		baseWriter = resolved.Writer
	}
	if baseWriter == nil {
		baseWriter = os.Stdout
	}
	errWriter := cfg.errWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	prefix := cfg.prefix
	if value, ok := os.LookupEnv(prefix); ok {
		resolved.Patterns = value
	}
	if value, ok := os.LookupEnv("NO_COLOR"); ok && value != "" {
		resolved.NoColor = true
		resolved.ForceColor = false
	}
	if value, ok := lookupEnv(prefix, "COLORS"); ok {
		if parsed, ok := parseEnvBool(value); ok {
			resolved.ForceColor = parsed
			resolved.NoColor = !parsed
		}
	}
	if value, ok := lookupEnv(prefix, "SHOW_DATE"); ok {
		if parsed, ok := parseEnvBool(value); ok {
			resolved.ShowDate = parsed
		}
	}
	if value, ok := lookupEnv(prefix, "PALETTE"); ok {
		resolved.Palette = ansi.PaletteByName(value)
	}
	resolved.Writer = baseWriter
	if value, ok := lookupEnv(prefix, "OUTPUT"); ok {
		w, err := writerFromEnvOutput(value, baseWriter)
		if err != nil {
			fmt.Fprintf(errWriter, "dbug: %v\n", err)
		}
		resolved.Writer = w
	}
	return NewRegistry(resolved)
}

func lookupEnv(prefix, key string) (string, bool) {
	if prefix == "" {
		return os.LookupEnv(key)
	}
	return os.LookupEnv(prefix + "_" + key)
}

func parseEnvBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "on", "enabled":
		return true, true
	case "no", "off", "disabled":
		return false, true
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

func writerFromEnvOutput(value string, base io.Writer) (io.Writer, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return base, nil
	}
	if base == nil {
		base = io.Discard
	}
	switch strings.ToLower(trimmed) {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "default":
		return base, nil
	}
	teeTargets := []struct {
		prefix string
		writer io.Writer
	}{
		{"stdout+", os.Stdout},
		{"stderr+", os.Stderr},
		{"default+", base},
	}
	lowered := strings.ToLower(trimmed)
	for _, target := range teeTargets {
		if !strings.HasPrefix(lowered, target.prefix) {
			continue
		}
		path := strings.TrimSpace(trimmed[len(target.prefix):])
		if path == "" {
			return target.writer, nil
		}
		file, err := openOutputFile(path)
		if err != nil {
			return base, err
		}
		return newOwnedOutput(newTeeWriter(target.writer, file), file), nil
	}
	file, err := openOutputFile(trimmed)
	if err != nil {
		return base, err
	}
	return newOwnedOutput(file, file), nil
}

func openOutputFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", path, err)
	}
	return file, nil
}
