// Package config holds the application settings file.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/holdmap/internal/fsutil"
	"github.com/banshee-data/holdmap/internal/highlight"
	"github.com/banshee-data/holdmap/internal/voice"
)

// maxConfigFileSize bounds config files read from disk.
const maxConfigFileSize = 1 * 1024 * 1024

// Config is the root of the settings file. Every field is optional; the Get*
// methods supply defaults for anything left unset, so partial files are safe.
type Config struct {
	Listen       *string `json:"listen,omitempty" yaml:"listen,omitempty"`
	DBPath       *string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	ImagePath    *string `json:"image_path,omitempty" yaml:"image_path,omitempty"`   // wall photo; blank wall when unset
	LayoutPath   *string `json:"layout_path,omitempty" yaml:"layout_path,omitempty"` // built-in HW7x10 when unset
	MainGridCSV  *string `json:"main_grid_csv,omitempty" yaml:"main_grid_csv,omitempty"`
	AuxGridCSV   *string `json:"aux_grid_csv,omitempty" yaml:"aux_grid_csv,omitempty"`
	Presentation *string `json:"presentation,omitempty" yaml:"presentation,omitempty"`
	DefaultHold  *string `json:"default_hold,omitempty" yaml:"default_hold,omitempty"`
	LogLevel     *string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	Voice *VoiceConfig `json:"voice,omitempty" yaml:"voice,omitempty"`
}

// VoiceConfig controls spoken announcements.
type VoiceConfig struct {
	Enabled *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Command *string  `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
	Fields  []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Gap     *string  `json:"gap,omitempty" yaml:"gap,omitempty"` // duration string like "400ms"
}

// Empty returns a Config with every field unset.
func Empty() *Config {
	return &Config{}
}

// Load reads a JSON or YAML settings file through fsys and validates it.
func Load(fsys fsutil.FileSystem, path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must be .json, .yaml or .yml, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", cleanPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c *Config) Validate() error {
	if c.Presentation != nil {
		if err := highlight.DefaultStyle(highlight.Presentation(*c.Presentation)).Validate(); err != nil {
			return err
		}
	}

	if c.LogLevel != nil {
		switch *c.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("log_level must be debug, info, warn or error, got %q", *c.LogLevel)
		}
	}

	if (c.MainGridCSV == nil) != (c.AuxGridCSV == nil) {
		return fmt.Errorf("main_grid_csv and aux_grid_csv must be set together")
	}

	if v := c.Voice; v != nil {
		if v.Gap != nil && *v.Gap != "" {
			d, err := time.ParseDuration(*v.Gap)
			if err != nil {
				return fmt.Errorf("invalid voice.gap '%s': %w", *v.Gap, err)
			}
			if d < 0 {
				return fmt.Errorf("voice.gap must be non-negative, got %s", d)
			}
		}
		if len(v.Fields) > 0 {
			if _, err := voice.ParseFields(v.Fields); err != nil {
				return err
			}
		}
		if v.Command != nil && *v.Command == "" {
			return fmt.Errorf("voice.command must not be empty")
		}
	}
	return nil
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// GetListen returns the HTTP listen address.
func (c *Config) GetListen() string { return stringOr(c.Listen, ":8080") }

// GetDBPath returns the sqlite database path.
func (c *Config) GetDBPath() string { return stringOr(c.DBPath, "holdmap.db") }

func (c *Config) GetImagePath() string  { return stringOr(c.ImagePath, "") }
func (c *Config) GetLayoutPath() string { return stringOr(c.LayoutPath, "") }

// GetGridCSVs returns the MAIN and AUX CSV paths; both are empty when the
// bundled sample should be used.
func (c *Config) GetGridCSVs() (mainPath, auxPath string) {
	return stringOr(c.MainGridCSV, ""), stringOr(c.AuxGridCSV, "")
}

// GetPresentation returns the highlight presentation, crosshair by default.
func (c *Config) GetPresentation() highlight.Presentation {
	return highlight.Presentation(stringOr(c.Presentation, string(highlight.Crosshair)))
}

// GetDefaultHold returns the hold the UI searches for on load.
func (c *Config) GetDefaultHold() string { return stringOr(c.DefaultHold, "1350") }

func (c *Config) GetLogLevel() string { return stringOr(c.LogLevel, "info") }

func (c *Config) GetVoiceEnabled() bool {
	if c.Voice == nil || c.Voice.Enabled == nil {
		return false
	}
	return *c.Voice.Enabled
}

// GetVoiceCommand returns the speech program and its leading arguments. The
// text to speak is appended as the last argument.
func (c *Config) GetVoiceCommand() (string, []string) {
	if c.Voice == nil || c.Voice.Command == nil {
		return "espeak", nil
	}
	return *c.Voice.Command, c.Voice.Args
}

// GetVoiceFields returns the announcement order.
func (c *Config) GetVoiceFields() []voice.Field {
	if c.Voice == nil || len(c.Voice.Fields) == 0 {
		return voice.DefaultFields()
	}
	fields, err := voice.ParseFields(c.Voice.Fields)
	if err != nil {
		return voice.DefaultFields() // Validate rejects this earlier
	}
	return fields
}

// GetVoiceGap returns the pause between announced fields.
func (c *Config) GetVoiceGap() time.Duration {
	const def = 400 * time.Millisecond
	if c.Voice == nil || c.Voice.Gap == nil || *c.Voice.Gap == "" {
		return def
	}
	d, err := time.ParseDuration(*c.Voice.Gap)
	if err != nil {
		return def
	}
	return d
}
