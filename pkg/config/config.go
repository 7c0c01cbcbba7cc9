// Package config handles bfvm.toml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/akhildatla/bfvm/pkg/raster"
	"github.com/akhildatla/bfvm/pkg/render"
	"github.com/akhildatla/bfvm/pkg/vm"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "bfvm.toml"

// DefaultWidth is the encoder image width.
const DefaultWidth = 32

var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents a bfvm.toml file.
type Config struct {
	Machine Machine `toml:"machine"`
	Raster  Raster  `toml:"raster"`
	Trace   Trace   `toml:"trace"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// Machine configures program execution.
type Machine struct {
	TapeSize int      `toml:"tape-size"`
	Input    string   `toml:"input"`
	MaxSteps int      `toml:"max-steps"`
	Timeout  Duration `toml:"timeout"`
}

// Raster configures image decoding and encoding.
type Raster struct {
	Palette  string `toml:"palette"`
	MaxSteps int    `toml:"max-steps"`
	Width    int    `toml:"width"`
}

// Trace configures trace rendering.
type Trace struct {
	Magnify int `toml:"magnify"`
}

// Duration is a time.Duration written as a string such as "1.5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Machine: Machine{TapeSize: vm.DefaultTapeSize},
		Raster:  Raster{Palette: "direct", Width: DefaultWidth},
		Trace:   Trace{Magnify: render.DefaultFactor},
	}
}

// LoadFile parses the configuration at path. Keys absent from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return c, nil
}

// Load parses the bfvm.toml file in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// FindAndLoad walks up from startDir to find a bfvm.toml file and loads it.
// Returns the defaults if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Machine.TapeSize <= 0:
		return fmt.Errorf("%w: machine.tape-size must be positive, got %d", ErrInvalidConfig, c.Machine.TapeSize)
	case c.Machine.MaxSteps < 0:
		return fmt.Errorf("%w: machine.max-steps must not be negative", ErrInvalidConfig)
	case c.Machine.Timeout.Duration < 0:
		return fmt.Errorf("%w: machine.timeout must not be negative", ErrInvalidConfig)
	case c.Raster.MaxSteps < 0:
		return fmt.Errorf("%w: raster.max-steps must not be negative", ErrInvalidConfig)
	case c.Raster.Width < 3:
		return fmt.Errorf("%w: raster.width must be at least 3, got %d", ErrInvalidConfig, c.Raster.Width)
	case c.Trace.Magnify <= 0:
		return fmt.Errorf("%w: trace.magnify must be positive, got %d", ErrInvalidConfig, c.Trace.Magnify)
	}
	if _, err := raster.PaletteByName(c.Raster.Palette); err != nil {
		return fmt.Errorf("%w: raster.palette: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Palette returns the configured palette.
func (c *Config) Palette() *raster.Palette {
	p, err := raster.PaletteByName(c.Raster.Palette)
	if err != nil {
		return raster.DirectPalette()
	}
	return p
}
