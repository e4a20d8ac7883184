package canopy

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the scene and window settings. Keys missing from a loaded
// file keep their DefaultConfig values.
type Config struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`

	// Debug enables tree warnings and per-frame timing logs.
	Debug bool `toml:"debug" yaml:"debug"`

	// DragDeadZone is the pointer travel in pixels before a drag starts.
	DragDeadZone float64 `toml:"drag_dead_zone" yaml:"drag_dead_zone"`

	// TabFocus enables Tab / Shift+Tab focus traversal.
	TabFocus bool `toml:"tab_focus" yaml:"tab_focus"`

	// PollInput makes Scene.Update read mouse, touch, keyboard and gamepad
	// state from Ebitengine each frame.
	PollInput bool `toml:"poll_input" yaml:"poll_input"`

	// TPS is the Ebitengine tick rate used by Run. Zero keeps Ebitengine's
	// default.
	TPS int `toml:"tps" yaml:"tps"`

	// ShowFPS makes Run attach an FPS/TPS overlay to the root.
	ShowFPS bool `toml:"show_fps" yaml:"show_fps"`
}

// DefaultConfig returns the configuration used by NewScene.
func DefaultConfig() Config {
	return Config{
		Title:        "canopy",
		Width:        640,
		Height:       480,
		DragDeadZone: defaultDragDeadZone,
		TabFocus:     true,
		PollInput:    true,
	}
}

// ConfigFormat selects the encoding of a config document.
type ConfigFormat string

const (
	FormatTOML ConfigFormat = "toml"
	FormatYAML ConfigFormat = "yaml"
)

// LoadConfig decodes a config document over DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(data []byte, format ConfigFormat) (Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse toml config: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; keep the defaults.
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return Config{}, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("canopy: unsupported config format %q", format)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a config file, picking the format from its extension
// (.toml, .yaml or .yml).
func LoadConfigFile(path string) (Config, error) {
	var format ConfigFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = FormatTOML
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return Config{}, fmt.Errorf("canopy: unsupported config file %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := LoadConfig(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	Logger().Info("canopy: loaded config", "path", path, "format", string(format))
	return cfg, nil
}

func (c Config) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("canopy: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("canopy: negative drag dead zone %v", c.DragDeadZone)
	}
	if c.TPS < 0 {
		return fmt.Errorf("canopy: negative tps %d", c.TPS)
	}
	return nil
}
