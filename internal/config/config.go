package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	imageframer "github.com/menta2k/image-framer"
	"github.com/menta2k/image-framer/pkg/vision"
)

// Config holds the application configuration
type Config struct {
	Vision    VisionConfig    `json:"vision"`
	Detection DetectionConfig `json:"detection"`
	Cropper   CropperConfig   `json:"cropper"`
	Output    OutputConfig    `json:"output"`
}

// VisionConfig holds configuration for binarization and labelling
type VisionConfig struct {
	Channel      string  `json:"channel"`
	BlurSigma    float64 `json:"blur_sigma"`
	Sobel        bool    `json:"sobel"`
	Threshold    float64 `json:"threshold"`
	MaxValue     float64 `json:"max_value"`
	Inverse      bool    `json:"inverse"`
	Connectivity int     `json:"connectivity"`
}

// DetectionConfig holds the blob filters, all in percent
type DetectionConfig struct {
	MinArea float64 `json:"min_area"`
	MaxArea float64 `json:"max_area"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Right   float64 `json:"right"`
	Bottom  float64 `json:"bottom"`
}

// CropperConfig holds the requested crop coverage in percent
type CropperConfig struct {
	WidthRate  float64 `json:"width_rate"`
	HeightRate float64 `json:"height_rate"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Format    string `json:"format"`
	Quality   int    `json:"quality"`
	Lossless  bool   `json:"lossless"`
	OutputDir string `json:"output_dir"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
	Debug     bool   `json:"debug"`
	Jobs      int    `json:"jobs"`
}

// Default returns a configuration with default values
func Default() *Config {
	opts := imageframer.DefaultOptions()
	return &Config{
		Vision: VisionConfig{
			Channel:      opts.Channel.String(),
			BlurSigma:    opts.BlurSigma,
			Sobel:        opts.Sobel,
			Threshold:    opts.Threshold,
			MaxValue:     opts.MaxValue,
			Inverse:      opts.Inverse,
			Connectivity: 8,
		},
		Detection: DetectionConfig{
			MinArea: opts.MinArea,
			MaxArea: opts.MaxArea,
			Left:    opts.Left,
			Top:     opts.Top,
			Right:   opts.Right,
			Bottom:  opts.Bottom,
		},
		Cropper: CropperConfig{
			WidthRate:  opts.WidthRate,
			HeightRate: opts.HeightRate,
		},
		Output: OutputConfig{
			Format:    "jpg",
			Quality:   90,
			Lossless:  false,
			OutputDir: "./out",
			Prefix:    "",
			Suffix:    "_framed",
			Debug:     false,
			Jobs:      4,
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid. Percentages outside [0,100]
// are accepted since the pipeline clamps them.
func (c *Config) Validate() error {
	if _, err := vision.ParseChannel(c.Vision.Channel); err != nil {
		return fmt.Errorf("vision.channel: %w", err)
	}

	if c.Vision.BlurSigma < 0 {
		return fmt.Errorf("vision.blur_sigma must not be negative")
	}

	if c.Vision.Connectivity != 4 && c.Vision.Connectivity != 8 {
		return fmt.Errorf("vision.connectivity must be 4 or 8")
	}

	switch strings.ToLower(c.Output.Format) {
	case "jpg", "jpeg", "png", "webp":
	default:
		return fmt.Errorf("output.format must be jpg, png or webp")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	if c.Output.Jobs < 1 {
		return fmt.Errorf("output.jobs must be positive")
	}

	return nil
}

// FramerOptions maps the configuration onto framer options
func (c *Config) FramerOptions() (imageframer.Options, error) {
	channel, err := vision.ParseChannel(c.Vision.Channel)
	if err != nil {
		return imageframer.Options{}, err
	}

	connectivity := vision.Eight
	if c.Vision.Connectivity == 4 {
		connectivity = vision.Four
	}

	return imageframer.Options{
		Channel:      channel,
		BlurSigma:    c.Vision.BlurSigma,
		Sobel:        c.Vision.Sobel,
		Threshold:    c.Vision.Threshold,
		MaxValue:     c.Vision.MaxValue,
		Inverse:      c.Vision.Inverse,
		Connectivity: connectivity,
		MinArea:      c.Detection.MinArea,
		MaxArea:      c.Detection.MaxArea,
		Left:         c.Detection.Left,
		Top:          c.Detection.Top,
		Right:        c.Detection.Right,
		Bottom:       c.Detection.Bottom,
		WidthRate:    c.Cropper.WidthRate,
		HeightRate:   c.Cropper.HeightRate,
	}, nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-framer", "config.json")
}
