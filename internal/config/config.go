package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Tiliavir/eventcal/internal/model"
)

// Config is the root configuration for eventcal, stored in
// ~/.eventcal/config.json. The file supports single-line // comments
// for documentation purposes. Environment variables (optionally loaded
// from a local .env file) override the file.
type Config struct {
	Calendar CalendarConfig `json:"calendar"`
}

// CalendarConfig holds event-engine settings.
type CalendarConfig struct {
	// DataFile is the JSON file holding the event collection.
	// Empty = <base>/events.json.
	DataFile string `json:"data_file"`
	// DefaultCategory is assigned when a command specifies none.
	DefaultCategory string `json:"default_category"`
	// Timezone is the IANA timezone for interpreting dates (e.g.
	// "Europe/Berlin"). Empty = local time.
	Timezone string `json:"timezone"`
}

const (
	// DefaultCategory is applied when neither flag nor config names one.
	DefaultCategory = string(model.CategoryGeneral)

	envHome     = "EVENTCAL_HOME"
	envDataFile = "EVENTCAL_FILE"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Calendar: CalendarConfig{
			DefaultCategory: DefaultCategory,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON
// parsing, allowing human-readable documentation inside the file.
const configTemplate = `// eventcal configuration – ~/.eventcal/config.json
//
// All settings are optional; the built-in defaults shown below work out
// of the box. Edit this file to customise eventcal behaviour.
{
  "calendar": {
    // Path of the JSON file holding the event collection.
    // Leave empty to use <data dir>/events.json.
    "data_file": "",

    // Category assigned to events created without an explicit one.
    // One of: work, personal, family, school, health, finance, career,
    // learning, other, general.
    "default_category": "general",

    // IANA timezone for interpreting dates, e.g. "Europe/Berlin".
    // Leave empty to use the local timezone.
    "timezone": ""
  }
}
`

// BaseDir returns the root data directory, honouring EVENTCAL_HOME.
func BaseDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(envHome)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".eventcal"), nil
}

// DataFile resolves the event-collection path for cfg, honouring the
// EVENTCAL_FILE override.
func (c Config) DataFile() (string, error) {
	if path := strings.TrimSpace(os.Getenv(envDataFile)); path != "" {
		return path, nil
	}
	if c.Calendar.DataFile != "" {
		return c.Calendar.DataFile, nil
	}
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "events.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content
// starts with //. Only full-line comments are handled.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config file, creating it with annotated defaults on
// first run. A local .env file, when present, is loaded into the
// environment beforehand so EVENTCAL_* overrides work in development.
func Load() (Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	base, err := BaseDir()
	if err != nil {
		return defaultConfig(), err
	}
	path := filepath.Join(base, "config.json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields so callers always get a usable Config even
	// if the user only partially fills in the file.
	if cfg.Calendar.DefaultCategory == "" {
		cfg.Calendar.DefaultCategory = DefaultCategory
	}
	if !model.Category(cfg.Calendar.DefaultCategory).Valid() {
		return defaultConfig(), fmt.Errorf("config file %s: unknown default_category %q", path, cfg.Calendar.DefaultCategory)
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated
// default config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
