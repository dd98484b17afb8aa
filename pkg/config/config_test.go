package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/imagify/pkg/adapters/logger"
	"github.com/user/imagify/pkg/adapters/osfilesystem"
	"github.com/user/imagify/pkg/fill"
	"github.com/user/imagify/pkg/geometry"
	"github.com/user/imagify/pkg/mocks"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.MaxLineCount != 20 || cfg.MaxLength != 600 {
		t.Errorf("unexpected thresholds %d/%d", cfg.MaxLineCount, cfg.MaxLength)
	}
	if cfg.ImageMinWidth != 200 || !cfg.ImageMaxWidth.Auto || cfg.ImageMaxWidth.MaxWidth != 400 {
		t.Errorf("unexpected widths %d %+v", cfg.ImageMinWidth, cfg.ImageMaxWidth)
	}
	if cfg.FontSize != 20 || cfg.LineHeight != 0 || cfg.Font != "Microsoft YaHei, sans-serif" {
		t.Errorf("unexpected font settings %v %v %q", cfg.FontSize, cfg.LineHeight, cfg.Font)
	}
	if cfg.Padding != (PaddingConfig{Left: 20, Right: 20, Top: 20, Bottom: 20}) {
		t.Errorf("unexpected padding %+v", cfg.Padding)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	settings, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if settings.Render.Background.BaseColorName != "white" {
		t.Errorf("expected white background base, got %q", settings.Render.Background.BaseColorName)
	}
	if settings.Render.Foreground.BaseColorName != "black" {
		t.Errorf("expected black foreground base, got %q", settings.Render.Foreground.BaseColorName)
	}
	if _, ok := settings.Render.Background.Ground.(fill.Unset); !ok {
		t.Errorf("expected unset background ground, got %T", settings.Render.Background.Ground)
	}
}

func TestLoad_YAML(t *testing.T) {
	data := []byte(`
max_line_count: 10
padding:
  left: 5
image_max_width:
  auto: false
  max_width: 500
background:
  base_color: ""
  type: linearGradient
  angle: 45
  color_stops:
    - [0, "#ff0000"]
    - [1, "rgb(0, 0, 255)"]
foreground:
  type: radialGradient
  center0: ["0.5w", "0.5h"]
  r1: "1d"
fonts:
  Noto Sans SC: ~/fonts/noto.ttf
`)

	cfg, err := Load(data, FormatYAML)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxLineCount != 10 {
		t.Errorf("expected max_line_count 10, got %d", cfg.MaxLineCount)
	}
	if cfg.MaxLength != 600 {
		t.Errorf("unspecified max_length should keep default, got %d", cfg.MaxLength)
	}
	if cfg.Padding != (PaddingConfig{Left: 5, Right: 20, Top: 20, Bottom: 20}) {
		t.Errorf("expected partial padding override, got %+v", cfg.Padding)
	}
	if cfg.Fonts["Noto Sans SC"] != "~/fonts/noto.ttf" {
		t.Errorf("unexpected fonts %v", cfg.Fonts)
	}

	settings, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if settings.Thresholds.MaxLineCount != 10 {
		t.Errorf("unexpected thresholds %+v", settings.Thresholds)
	}
	if settings.Render.Layout.WrapWidth() != 500 {
		t.Errorf("expected wrap width 500, got %v", settings.Render.Layout.WrapWidth())
	}
	if settings.Render.Background.HasBase() {
		t.Error("empty base_color should disable the background base pass")
	}
	lg, ok := settings.Render.Background.Ground.(fill.LinearGradient)
	if !ok {
		t.Fatalf("expected linear gradient, got %T", settings.Render.Background.Ground)
	}
	if lg.Angle != 45 || len(lg.Stops) != 2 {
		t.Errorf("unexpected linear gradient %+v", lg)
	}
	rg, ok := settings.Render.Foreground.Ground.(fill.RadialGradient)
	if !ok {
		t.Fatalf("expected radial gradient, got %T", settings.Render.Foreground.Ground)
	}
	if rg.Geometry.Radius1.Unit != geometry.UnitDiagonal {
		t.Errorf("expected diagonal-relative r1, got %+v", rg.Geometry.Radius1)
	}
}

func TestLoad_TOML(t *testing.T) {
	data := []byte(`
max_length = 100
font = "16px monospace"

[foreground]
type = "linearGradient"
color_stops = [[0, "red"], [0.5, "lime"], [1, "blue"]]

[padding]
top = 4
bottom = 4
`)

	cfg, err := Load(data, FormatTOML)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxLength != 100 || cfg.Font != "16px monospace" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Padding != (PaddingConfig{Left: 20, Right: 20, Top: 4, Bottom: 4}) {
		t.Errorf("unexpected padding %+v", cfg.Padding)
	}

	settings, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	lg, ok := settings.Render.Foreground.Ground.(fill.LinearGradient)
	if !ok || len(lg.Stops) != 3 || lg.Stops[1].Offset != 0.5 {
		t.Errorf("unexpected foreground %+v", settings.Render.Foreground.Ground)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load([]byte("max_length: [1"), FormatYAML); err == nil {
		t.Error("expected YAML syntax error")
	}
	if _, err := Load([]byte("max_length = "), FormatTOML); err == nil {
		t.Error("expected TOML syntax error")
	}
	if _, err := Load(nil, Format("ini")); err == nil {
		t.Error("expected unsupported format error")
	}
	if cfg, err := Load(nil, FormatYAML); err != nil || cfg.MaxLength != 600 {
		t.Errorf("empty YAML should yield defaults, got %+v, %v", cfg, err)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"imagify.yaml", FormatYAML, false},
		{"imagify.YML", FormatYAML, false},
		{"/etc/imagify.toml", FormatTOML, false},
		{"imagify.json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	angle := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"max_line_count", func(c *Config) { c.MaxLineCount = 0 }, "max_line_count"},
		{"max_length", func(c *Config) { c.MaxLength = 0 }, "max_length"},
		{"image_min_width", func(c *Config) { c.ImageMinWidth = 99 }, "image_min_width"},
		{"max_width", func(c *Config) { c.ImageMaxWidth = MaxWidthConfig{MaxWidth: 299} }, "max_width"},
		{"line_height", func(c *Config) { c.LineHeight = -1 }, "line_height"},
		{"font_size", func(c *Config) { c.FontSize = -1 }, "font_size"},
		{"padding", func(c *Config) { c.Padding.Bottom = -1 }, "padding"},
		{"angle", func(c *Config) { c.Background.Angle = angle(360) }, "background.angle"},
		{"log_level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to name %s, got %v", tt.field, err)
			}
			if _, err := cfg.Settings(); err == nil {
				t.Error("Settings should fail on an invalid config")
			}
		})
	}

	cfg := Defaults()
	cfg.ImageMaxWidth = MaxWidthConfig{Auto: true, MaxWidth: 10}
	if err := cfg.Validate(); err != nil {
		t.Errorf("max_width is ignored when auto: %v", err)
	}
}

func TestSettings_FillErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Foreground = GroundConfig{Type: "radialGradient", R0: "2x"}

	_, err := cfg.Settings()
	if !errors.Is(err, fill.ErrConfiguration) {
		t.Fatalf("expected fill.ErrConfiguration, got %v", err)
	}
	if !errors.Is(err, geometry.ErrInvalidLength) {
		t.Errorf("expected wrapped geometry.ErrInvalidLength, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/etc/imagify.yaml", []byte("max_length: 42\n"))

	cfg, err := LoadFromFile(fs, "/etc/imagify.yaml")
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.MaxLength != 42 {
		t.Errorf("expected max_length 42, got %d", cfg.MaxLength)
	}

	if _, err := LoadFromFile(fs, "/etc/missing.yaml"); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestWatcher_Reload(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/etc/imagify.yaml", []byte("max_length: 42\n"))

	w, err := NewWatcher(fs, "/etc/imagify.yaml", logger.NewNoop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	first := w.Current()
	if first.Thresholds.MaxLength != 42 {
		t.Errorf("expected max_length 42, got %d", first.Thresholds.MaxLength)
	}

	fs.WriteFile("/etc/imagify.yaml", []byte("max_length: 0\n"))
	if err := w.Reload(); err == nil {
		t.Error("expected reload error for an invalid config")
	}
	if w.Current() != first {
		t.Error("a failed reload must keep the previous settings")
	}

	fs.WriteFile("/etc/imagify.yaml", []byte("max_length: 7\n"))
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if w.Current().Thresholds.MaxLength != 7 || w.Config().MaxLength != 7 {
		t.Errorf("expected reloaded max_length 7, got %d", w.Current().Thresholds.MaxLength)
	}
	if first.Thresholds.MaxLength != 42 {
		t.Error("previous settings must not be mutated")
	}
	if w.Reloads() != 2 {
		t.Errorf("expected 2 successful loads, got %d", w.Reloads())
	}
}

func TestWatcher_InitialLoadFails(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/etc/imagify.yaml", []byte("max_line_count: -1\n"))

	if _, err := NewWatcher(fs, "/etc/imagify.yaml", logger.NewNoop()); err == nil {
		t.Error("expected error for an invalid initial config")
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imagify.toml")
	if err := os.WriteFile(path, []byte("max_length = 10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(osfilesystem.New(), path, logger.NewNoop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	deadline := time.Now().Add(5 * time.Second)
	for w.Current().Thresholds.MaxLength != 20 {
		if time.Now().After(deadline) {
			t.Fatalf("settings not reloaded, max_length = %d", w.Current().Thresholds.MaxLength)
		}
		// Rewrite until the watcher, which starts asynchronously, sees a change.
		if err := os.WriteFile(path, []byte("max_length = 20\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}
