package dropbubble

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Default tuning values.
const (
	DefaultDragSize           = 0.5
	DefaultFadeDuration       = 250 * time.Millisecond
	DefaultSpringBackDuration = 350 * time.Millisecond
	DefaultRemovalDelay       = 64 * time.Millisecond
	DefaultOvershootTension   = 3.0
)

// Config tunes a bubble session. Build one with DefaultConfig; change
// DragSize through SetDragSize so bad values are caught at assignment.
type Config struct {
	dragSize float64

	// Density is the number of pixels per density-independent pixel.
	Density float64

	// Color fills the drag circle, the anchor circle and the band.
	Color Color

	FadeDuration       time.Duration
	SpringBackDuration time.Duration
	RemovalDelay       time.Duration
	OvershootTension   float64
}

// DefaultConfig returns the stock tuning: resistance 1.5, density 1.
func DefaultConfig() Config {
	return Config{
		dragSize:           DefaultDragSize,
		Density:            1,
		Color:              ColorBubble,
		FadeDuration:       DefaultFadeDuration,
		SpringBackDuration: DefaultSpringBackDuration,
		RemovalDelay:       DefaultRemovalDelay,
		OvershootTension:   DefaultOvershootTension,
	}
}

// SetDragSize sets the drag resistance. v must lie in [0, 1]; otherwise the
// config is left unchanged and an error wrapping ErrDragSizeRange is returned.
func (c *Config) SetDragSize(v float64) error {
	if !(v >= 0 && v <= 1) {
		return errors.Wrapf(ErrDragSizeRange, "got %v", v)
	}
	c.dragSize = v
	return nil
}

// DragSize returns the stored drag size in [0, 1].
func (c Config) DragSize() float64 {
	return c.dragSize
}

// Resistance returns the effective resistance, DragSize()+1, in [1, 2].
// Higher resistance makes the anchor shrink more slowly.
func (c Config) Resistance() float64 {
	return c.dragSize + 1
}

// Metrics returns the pixel radii for c.Density.
func (c Config) Metrics() Metrics {
	return MetricsForDensity(c.Density)
}

// fileConfig is the on-disk TOML layout. Durations are in milliseconds.
type fileConfig struct {
	DragSize         float64    `toml:"drag_size"`
	Density          float64    `toml:"density"`
	Color            [4]float64 `toml:"color"`
	FadeMs           int64      `toml:"fade_ms"`
	SpringBackMs     int64      `toml:"spring_back_ms"`
	RemovalDelayMs   int64      `toml:"removal_delay_ms"`
	OvershootTension float64    `toml:"overshoot_tension"`
}

// DecodeConfig parses TOML into a Config. Keys missing from data keep their
// defaults.
func DecodeConfig(data []byte) (Config, error) {
	def := DefaultConfig()
	fc := toFile(def)
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return def, errors.Wrap(err, "decode config")
	}
	cfg := def
	if err := cfg.SetDragSize(fc.DragSize); err != nil {
		return def, err
	}
	if fc.Density > 0 {
		cfg.Density = fc.Density
	}
	cfg.Color = Color{R: fc.Color[0], G: fc.Color[1], B: fc.Color[2], A: fc.Color[3]}
	if fc.FadeMs > 0 {
		cfg.FadeDuration = time.Duration(fc.FadeMs) * time.Millisecond
	}
	if fc.SpringBackMs > 0 {
		cfg.SpringBackDuration = time.Duration(fc.SpringBackMs) * time.Millisecond
	}
	if fc.RemovalDelayMs > 0 {
		cfg.RemovalDelay = time.Duration(fc.RemovalDelayMs) * time.Millisecond
	}
	if fc.OvershootTension >= 0 {
		cfg.OvershootTension = fc.OvershootTension
	}
	return cfg, nil
}

// EncodeConfig renders cfg as TOML.
func EncodeConfig(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	fc := toFile(cfg)
	if err := toml.NewEncoder(&buf).Encode(&fc); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return buf.Bytes(), nil
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), errors.Wrapf(err, "read config %s", path)
	}
	return DecodeConfig(data)
}

// SaveConfig writes cfg to path, creating the parent directory if needed.
func SaveConfig(path string, cfg Config) error {
	data, err := EncodeConfig(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create config dir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

func toFile(c Config) fileConfig {
	return fileConfig{
		DragSize:         c.dragSize,
		Density:          c.Density,
		Color:            [4]float64{c.Color.R, c.Color.G, c.Color.B, c.Color.A},
		FadeMs:           c.FadeDuration.Milliseconds(),
		SpringBackMs:     c.SpringBackDuration.Milliseconds(),
		RemovalDelayMs:   c.RemovalDelay.Milliseconds(),
		OvershootTension: c.OvershootTension,
	}
}
