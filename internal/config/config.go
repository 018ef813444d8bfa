package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HeadingMarker   string            `toml:"heading_marker" yaml:"heading_marker"`
	ClockMarker     string            `toml:"clock_marker" yaml:"clock_marker"`
	NoiseTags       []string          `toml:"noise_tags" yaml:"noise_tags"`
	Rewrites        map[string]string `toml:"rewrites" yaml:"rewrites"`
	OpenDaySentinel string            `toml:"open_day_sentinel" yaml:"open_day_sentinel"`
	SplitEveryDay   bool              `toml:"split_every_day" yaml:"split_every_day"`
	Timezone        string            `toml:"timezone" yaml:"timezone"`
}

// Default returns the vocabulary of the German org-mode timelog the tool was
// first written for.
func Default() *Config {
	return &Config{
		HeadingMarker:   "*",
		ClockMarker:     "CLOCK:",
		NoiseTags:       []string{"Freizeit", "Recurring", "ARCHIVE"},
		Rewrites:        map[string]string{"Morgen_Abend": "Morgen/Abend"},
		OpenDaySentinel: "XX",
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "clocktsv", "config.toml"), nil
}

// Load returns the defaults overlaid with the file at path. An empty path
// means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	} else if home, err := os.UserHomeDir(); err == nil {
		path = expandHome(path, home)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HeadingMarker == "" {
		return fmt.Errorf("heading_marker must not be empty")
	}
	if c.ClockMarker == "" {
		return fmt.Errorf("clock_marker must not be empty")
	}
	if len([]rune(c.OpenDaySentinel)) != 2 || strings.ContainsFunc(c.OpenDaySentinel, unicode.IsSpace) {
		return fmt.Errorf("open_day_sentinel must be two non-space characters, got %q", c.OpenDaySentinel)
	}
	for _, tag := range c.NoiseTags {
		if tag == "" {
			return fmt.Errorf("noise_tags must not contain empty entries")
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone, falling back to local time when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
