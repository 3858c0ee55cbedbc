package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable the tool reads at startup. There are no
// process-wide defaults hiding elsewhere; construct one of these and pass it
// down.
type Config struct {
	// ScreensDirName is the fixed, case-sensitive name of the folder holding
	// the contact-sheet images. It is discovered anywhere under the root.
	ScreensDirName string `toml:"screens_dir_name"`

	// KeepRootName is the folder created under the root that receives one
	// subfolder per destination key.
	KeepRootName string `toml:"keep_root_name"`

	// VideoExtensions lists the video suffixes considered for pairing.
	VideoExtensions []string `toml:"video_extensions"`

	// ImageExtensions lists image suffixes in match priority order: for a
	// video clip.mp4 the first existing clip.mp4<ext> wins.
	ImageExtensions []string `toml:"image_extensions"`

	// DestinationKeys are the single-letter classification targets. The
	// lowercase letter relocates the current pair, the uppercase letter
	// relocates the current pair and everything before it.
	DestinationKeys []string `toml:"destination_keys"`

	// PlayerCommand launches an external viewer for the current video. The
	// video path is appended as the last argument.
	PlayerCommand []string `toml:"player_command"`

	// PollIntervalMS is the cadence at which the UI drains loader deliveries.
	PollIntervalMS int `toml:"poll_interval_ms"`

	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ScreensDirName:  "screens",
		KeepRootName:    "sorted",
		VideoExtensions: []string{".mp4", ".mov", ".mkv", ".avi", ".webm"},
		ImageExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"},
		DestinationKeys: []string{"K", "D"},
		PlayerCommand:   []string{"mpv"},
		PollIntervalMS:  100,
		LogLevel:        "info",
		LogPath:         "",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "vsheet", "config.toml")
}

// Load reads the TOML file at path, layered over Default. A missing file is
// not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the constraints the rest of the tool assumes.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ScreensDirName) == "" {
		return errors.New("screens_dir_name must not be empty")
	}
	if strings.ContainsRune(c.ScreensDirName, os.PathSeparator) {
		return fmt.Errorf("screens_dir_name %q must be a bare folder name", c.ScreensDirName)
	}
	if strings.TrimSpace(c.KeepRootName) == "" {
		return errors.New("keep_root_name must not be empty")
	}
	if len(c.VideoExtensions) == 0 {
		return errors.New("video_extensions must not be empty")
	}
	if len(c.ImageExtensions) == 0 {
		return errors.New("image_extensions must not be empty")
	}
	for _, ext := range append(append([]string{}, c.VideoExtensions...), c.ImageExtensions...) {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if len(c.DestinationKeys) == 0 {
		return errors.New("destination_keys must not be empty")
	}
	seen := make(map[string]struct{}, len(c.DestinationKeys))
	for _, key := range c.DestinationKeys {
		if len(key) != 1 || key[0] < 'A' || key[0] > 'Z' {
			return fmt.Errorf("destination key %q must be a single uppercase letter", key)
		}
		// These letters are claimed by navigation, play and quit bindings.
		if strings.ContainsAny(key, "HLPQY") {
			return fmt.Errorf("destination key %q collides with a built-in binding", key)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("destination key %q listed twice", key)
		}
		seen[key] = struct{}{}
	}
	if len(c.PlayerCommand) == 0 {
		return errors.New("player_command must not be empty")
	}
	if c.PollIntervalMS <= 0 {
		return errors.New("poll_interval_ms must be positive")
	}
	return nil
}
