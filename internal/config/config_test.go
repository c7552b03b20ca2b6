package config

import (
	"path/filepath"
	"testing"

	imageframer "github.com/menta2k/image-framer"
	"github.com/menta2k/image-framer/pkg/vision"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}

	opts, err := cfg.FramerOptions()
	if err != nil {
		t.Fatalf("FramerOptions failed: %v", err)
	}
	if opts != imageframer.DefaultOptions() {
		t.Errorf("Expected default framer options, got %+v", opts)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"channel":      func(c *Config) { c.Vision.Channel = "purple" },
		"blur":         func(c *Config) { c.Vision.BlurSigma = -1 },
		"connectivity": func(c *Config) { c.Vision.Connectivity = 6 },
		"format":       func(c *Config) { c.Output.Format = "gif" },
		"quality":      func(c *Config) { c.Output.Quality = 0 },
		"jobs":         func(c *Config) { c.Output.Jobs = 0 },
	}

	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Vision.Channel = "red"
	cfg.Vision.Connectivity = 4
	cfg.Detection.MinArea = 2.5
	cfg.Cropper.WidthRate = 75

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}

	opts, err := loaded.FramerOptions()
	if err != nil {
		t.Fatalf("FramerOptions failed: %v", err)
	}
	if opts.Channel != vision.Red || opts.Connectivity != vision.Four {
		t.Errorf("Unexpected options %+v", opts)
	}
	if opts.MinArea != 2.5 || opts.WidthRate != 75 {
		t.Errorf("Unexpected rates %+v", opts)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestGetConfigPath(t *testing.T) {
	if filepath.Base(GetConfigPath()) != "config.json" {
		t.Errorf("Unexpected config path %s", GetConfigPath())
	}
}
