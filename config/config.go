package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jsphweid/midistrip/constants"
	"github.com/jsphweid/midistrip/strip"
	"github.com/pelletier/go-toml/v2"
)

// Strip selects the passes run by the strip command and by the server.
type Strip struct {
	EmptyTracks      bool `toml:"empty_tracks"`
	UnwantedEvents   bool `toml:"unwanted_events"`
	KeepAbsoluteTime bool `toml:"keep_absolute_time"`
}

// Output controls where stripped files are written.
type Output struct {
	Dir       string `toml:"dir"`
	Suffix    string `toml:"suffix"`
	Overwrite bool   `toml:"overwrite"`
}

// Server contains the HTTP API settings.
type Server struct {
	Bind            string   `toml:"bind"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	Autosave        bool     `toml:"autosave"`
	AutosaveDelayMS int      `toml:"autosave_delay_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

type Config struct {
	Strip   Strip   `toml:"strip"`
	Output  Output  `toml:"output"`
	Server  Server  `toml:"server"`
	Logging Logging `toml:"logging"`
}

func Default() Config {
	return Config{
		Strip: Strip{
			EmptyTracks:    true,
			UnwantedEvents: true,
		},
		Output: Output{
			Suffix: ".stripped",
		},
		Server: Server{
			Bind:            ":8080",
			AllowedOrigins:  []string{"*"},
			AutosaveDelayMS: 2000,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/midistrip/config.toml")
}

// Load reads the first config file found and applies it over Default. When
// no file exists the defaults are used and the returned path is where the
// file would be looked for first.
func Load(path string) (*Config, string, bool, error) {
	candidates, err := searchPaths(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	used := ""
	for _, candidate := range candidates {
		found, err := decodeFile(candidate, &cfg)
		if err != nil {
			return nil, "", false, err
		}
		if found {
			used = candidate
			break
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	if used == "" {
		return &cfg, candidates[0], false, nil
	}
	return &cfg, used, true, nil
}

// searchPaths lists where a config file may live, most specific first. A path
// given on the command line or in MIDISTRIP_CONFIG is the only candidate.
func searchPaths(path string) ([]string, error) {
	if path == "" {
		path = constants.GetConfigPath()
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return nil, err
		}
		return []string{expanded}, nil
	}

	home, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	local, err := filepath.Abs("midistrip.toml")
	if err != nil {
		return nil, err
	}
	return []string{home, local}, nil
}

// decodeFile reports false when path is missing or a directory.
func decodeFile(path string, cfg *Config) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil {
		return false, fmt.Errorf("stat config: %w", err)
	} else if info.IsDir() {
		return false, nil
	}

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return true, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	return filepath.Abs(pathValue)
}

func (c *Config) normalize() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Output.Dir != "" {
		dir, err := expandPath(c.Output.Dir)
		if err != nil {
			return fmt.Errorf("output.dir: %w", err)
		}
		c.Output.Dir = dir
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if c.Server.Bind == "" {
		return errors.New("server.bind must not be empty")
	}
	if c.Server.AutosaveDelayMS < 0 {
		return fmt.Errorf("server.autosave_delay_ms must not be negative, got %d", c.Server.AutosaveDelayMS)
	}
	if !c.Strip.EmptyTracks && !c.Strip.UnwantedEvents {
		return errors.New("strip: at least one of empty_tracks and unwanted_events must be enabled")
	}
	if c.Output.Dir == "" && c.Output.Suffix == "" && !c.Output.Overwrite {
		return errors.New("output: an empty suffix writes over the input, set overwrite = true")
	}
	return nil
}

func (c *Config) StripOptions() strip.Options {
	return strip.Options{
		EmptyTracks:      c.Strip.EmptyTracks,
		UnwantedEvents:   c.Strip.UnwantedEvents,
		KeepAbsoluteTime: c.Strip.KeepAbsoluteTime,
	}
}

func (c *Config) AutosaveDelay() time.Duration {
	return time.Duration(c.Server.AutosaveDelayMS) * time.Millisecond
}
