package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akhildatla/bfvm/pkg/vm"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Machine.TapeSize != vm.DefaultTapeSize {
		t.Errorf("expected tape size %d, got %d", vm.DefaultTapeSize, c.Machine.TapeSize)
	}
	if c.Raster.Palette != "direct" || c.Raster.Width != DefaultWidth || c.Trace.Magnify != 10 {
		t.Errorf("unexpected defaults %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[machine]
tape-size = 100
input = "abc"
max-steps = 5000
timeout = "1.5s"

[raster]
palette = "hash"
width = 11

[trace]
magnify = 4
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Machine.TapeSize != 100 || c.Machine.Input != "abc" || c.Machine.MaxSteps != 5000 {
		t.Errorf("unexpected machine section %+v", c.Machine)
	}
	if c.Machine.Timeout.Duration != 1500*time.Millisecond {
		t.Errorf("expected 1.5s timeout, got %v", c.Machine.Timeout)
	}
	if c.Palette().Name != "hash" || c.Raster.Width != 11 {
		t.Errorf("unexpected raster section %+v", c.Raster)
	}
	if c.Trace.Magnify != 4 {
		t.Errorf("expected magnify 4, got %d", c.Trace.Magnify)
	}
	if c.Path != filepath.Join(dir, FileName) {
		t.Errorf("unexpected path %q", c.Path)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[raster]\npalette = \"hash\"\n")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Machine.TapeSize != vm.DefaultTapeSize || c.Raster.Width != DefaultWidth {
		t.Errorf("defaults lost: %+v", c)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero tape", "[machine]\ntape-size = 0\n"},
		{"negative steps", "[machine]\nmax-steps = -1\n"},
		{"unknown palette", "[raster]\npalette = \"sepia\"\n"},
		{"narrow width", "[raster]\nwidth = 2\n"},
		{"zero magnify", "[trace]\nmagnify = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			if _, err := Load(dir); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[machine\n")
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}

	writeConfig(t, dir, "[machine]\ntimeout = \"soon\"\n")
	if _, err := Load(dir); err == nil {
		t.Error("expected error for bad duration")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[machine]\ntape-size = 42\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c.Machine.TapeSize != 42 {
		t.Errorf("expected tape size 42, got %d", c.Machine.TapeSize)
	}
}
