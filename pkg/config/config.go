// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/user/imagify/pkg/fill"
	"github.com/user/imagify/pkg/imagify"
	"github.com/user/imagify/pkg/orchestrator"
	"github.com/user/imagify/pkg/pipeline"
	"github.com/user/imagify/pkg/ports"
)

// ErrInvalid matches every validation failure with errors.Is.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the full configuration file for imagify.
type Config struct {
	// Thresholds
	MaxLineCount int `yaml:"max_line_count" toml:"max_line_count"`
	MaxLength    int `yaml:"max_length" toml:"max_length"`

	// Layout
	ImageMinWidth int            `yaml:"image_min_width" toml:"image_min_width"`
	ImageMaxWidth MaxWidthConfig `yaml:"image_max_width" toml:"image_max_width"`
	LineHeight    float64        `yaml:"line_height" toml:"line_height"`
	FontSize      float64        `yaml:"font_size" toml:"font_size"`
	Font          string         `yaml:"font" toml:"font"`
	Padding       PaddingConfig  `yaml:"padding" toml:"padding"`

	// Fills
	Background GroundConfig `yaml:"background" toml:"background"`
	Foreground GroundConfig `yaml:"foreground" toml:"foreground"`

	// Fonts maps a family name to a TrueType file.
	Fonts map[string]string `yaml:"fonts" toml:"fonts"`

	// Logging and debug
	LogLevel string `yaml:"log_level" toml:"log_level"`
	Debug    bool   `yaml:"debug" toml:"debug"`
	DebugDir string `yaml:"debug_dir" toml:"debug_dir"`
}

// MaxWidthConfig represents the image_max_width section.
type MaxWidthConfig struct {
	Auto     bool `yaml:"auto" toml:"auto"`
	MaxWidth int  `yaml:"max_width" toml:"max_width"`
}

// PaddingConfig represents the padding section.
type PaddingConfig struct {
	Left   int `yaml:"left" toml:"left"`
	Right  int `yaml:"right" toml:"right"`
	Top    int `yaml:"top" toml:"top"`
	Bottom int `yaml:"bottom" toml:"bottom"`
}

// GroundConfig represents a background or foreground section.
type GroundConfig struct {
	// BaseColor is nil when unset; an empty string disables the base pass.
	BaseColor  *string  `yaml:"base_color" toml:"base_color"`
	Type       string   `yaml:"type" toml:"type"`
	Color      string   `yaml:"color" toml:"color"`
	Angle      *float64 `yaml:"angle" toml:"angle"`
	ColorStops [][]any  `yaml:"color_stops" toml:"color_stops"`
	Center0    []string `yaml:"center0" toml:"center0"`
	R0         string   `yaml:"r0" toml:"r0"`
	Center1    []string `yaml:"center1" toml:"center1"`
	R1         string   `yaml:"r1" toml:"r1"`
	Pattern    string   `yaml:"pattern" toml:"pattern"`
}

// Raw converts the section to the fill package's raw form.
func (g GroundConfig) Raw() fill.Raw {
	return fill.Raw{
		BaseColor:  g.BaseColor,
		Type:       g.Type,
		Color:      g.Color,
		Angle:      g.Angle,
		ColorStops: g.ColorStops,
		Center0:    g.Center0,
		R0:         g.R0,
		Center1:    g.Center1,
		R1:         g.R1,
		Pattern:    g.Pattern,
	}
}

// Defaults returns a Config with default values.
func Defaults() Config {
	layout := pipeline.DefaultLayoutParams()
	thresholds := imagify.DefaultThresholds()
	return Config{
		// Thresholds
		MaxLineCount: thresholds.MaxLineCount,
		MaxLength:    thresholds.MaxLength,

		// Layout
		ImageMinWidth: layout.ImageMinWidth,
		ImageMaxWidth: MaxWidthConfig{
			Auto:     layout.ImageMaxWidth.Auto,
			MaxWidth: layout.ImageMaxWidth.MaxWidth,
		},
		LineHeight: layout.LineHeight,
		FontSize:   layout.FontSize,
		Font:       layout.FontFamily,
		Padding: PaddingConfig{
			Left:   layout.Padding.Left,
			Right:  layout.Padding.Right,
			Top:    layout.Padding.Top,
			Bottom: layout.Padding.Bottom,
		},

		// Logging and debug
		LogLevel: "info",
		DebugDir: "./debug",
	}
}

// Format is a configuration file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf returns the format for a file name by extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
}

// Load decodes data over the defaults, so keys missing from data keep
// their default values.
func Load(data []byte, format Format) (Config, error) {
	cfg := Defaults()

	switch format {
	case FormatYAML:
		if len(bytes.TrimSpace(data)) == 0 {
			return cfg, nil
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", format)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML or TOML file.
func LoadFromFile(fs ports.FileSystem, path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}

	return Load(data, format)
}

// Validate checks the schema constraints that do not need the fill model.
// All violations are reported together.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalid, field, fmt.Sprintf(format, args...)))
		}
	}

	check(c.MaxLineCount >= 1, "max_line_count", "must be at least 1, got %d", c.MaxLineCount)
	check(c.MaxLength >= 1, "max_length", "must be at least 1, got %d", c.MaxLength)
	check(c.ImageMinWidth >= 100, "image_min_width", "must be at least 100, got %d", c.ImageMinWidth)
	if !c.ImageMaxWidth.Auto {
		check(c.ImageMaxWidth.MaxWidth >= 300, "image_max_width.max_width", "must be at least 300, got %d", c.ImageMaxWidth.MaxWidth)
	}
	check(c.LineHeight >= 0, "line_height", "must not be negative, got %v", c.LineHeight)
	check(c.FontSize >= 0, "font_size", "must not be negative, got %v", c.FontSize)
	check(c.Padding.Left >= 0 && c.Padding.Right >= 0 && c.Padding.Top >= 0 && c.Padding.Bottom >= 0,
		"padding", "must not be negative, got %+v", c.Padding)

	for _, g := range []struct {
		name string
		cfg  GroundConfig
	}{{"background", c.Background}, {"foreground", c.Foreground}} {
		if g.cfg.Angle != nil {
			a := *g.cfg.Angle
			check(a >= 0 && a < 360, g.name+".angle", "must be in [0, 360), got %v", a)
		}
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLogLevel parses a log level name, rejecting unknown names.
func ParseLogLevel(s string) (ports.LogLevel, error) {
	switch strings.ToLower(s) {
	case "", "debug", "info", "warn", "warning", "error", "quiet":
		return ports.ParseLogLevel(s), nil
	}
	return ports.LevelInfo, fmt.Errorf("%w: log_level: unknown level %q", ErrInvalid, s)
}

// Layout returns the layout parameters. A zero font size uses the default.
func (c Config) Layout() pipeline.LayoutParams {
	fontSize := c.FontSize
	if fontSize == 0 {
		fontSize = pipeline.DefaultLayoutParams().FontSize
	}
	return pipeline.LayoutParams{
		FontSize:   fontSize,
		LineHeight: c.LineHeight,
		FontFamily: c.Font,
		Padding: pipeline.Padding{
			Left:   c.Padding.Left,
			Right:  c.Padding.Right,
			Top:    c.Padding.Top,
			Bottom: c.Padding.Bottom,
		},
		ImageMinWidth: c.ImageMinWidth,
		ImageMaxWidth: pipeline.MaxWidth{
			Auto:     c.ImageMaxWidth.Auto,
			MaxWidth: c.ImageMaxWidth.MaxWidth,
		},
	}
}

// Settings validates the configuration and builds the immutable settings
// shared by every message.
func (c Config) Settings() (*imagify.Settings, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	background, err := fill.Normalize(c.Background.Raw(), fill.Background)
	if err != nil {
		return nil, err
	}
	foreground, err := fill.Normalize(c.Foreground.Raw(), fill.Foreground)
	if err != nil {
		return nil, err
	}

	return &imagify.Settings{
		Thresholds: imagify.Thresholds{
			MaxLineCount: c.MaxLineCount,
			MaxLength:    c.MaxLength,
		},
		Render: orchestrator.Config{
			Layout:     c.Layout(),
			Background: background,
			Foreground: foreground,
		},
	}, nil
}
