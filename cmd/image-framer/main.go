package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	imageframer "github.com/menta2k/image-framer"
	"github.com/menta2k/image-framer/internal/config"
	"github.com/menta2k/image-framer/internal/utils"
	"github.com/menta2k/image-framer/pkg/types"
)

func main() {
	cfg := config.Default()

	var in, configPath, saveConfig, channel string
	var cx, cy float64
	var connectivity int

	// a first pass picks up -config so the file can seed the remaining defaults
	for i, arg := range os.Args[1:] {
		if (arg == "-config" || arg == "--config") && i+2 < len(os.Args) {
			configPath = os.Args[i+2]
		} else if v, ok := strings.CutPrefix(arg, "-config="); ok {
			configPath = v
		} else if v, ok := strings.CutPrefix(arg, "--config="); ok {
			configPath = v
		}
	}
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	flag.StringVar(&configPath, "config", configPath, "JSON config file (default "+config.GetConfigPath()+" is not read implicitly)")
	flag.StringVar(&saveConfig, "saveconfig", "", "write the effective config to this path and exit")
	flag.StringVar(&in, "in", "", "input image path, directory or URL (jpg/png/webp); extra inputs may follow the flags")
	flag.StringVar(&cfg.Output.OutputDir, "out", cfg.Output.OutputDir, "output directory")

	flag.StringVar(&channel, "channel", cfg.Vision.Channel, "channel used for detection: gray|red|green|blue")
	flag.Float64Var(&cfg.Vision.BlurSigma, "blur", cfg.Vision.BlurSigma, "gaussian blur sigma, 0 disables")
	flag.BoolVar(&cfg.Vision.Sobel, "sobel", cfg.Vision.Sobel, "detect on sobel edges instead of intensity")
	flag.Float64Var(&cfg.Vision.Threshold, "threshold", cfg.Vision.Threshold, "binary threshold (0-255)")
	flag.Float64Var(&cfg.Vision.MaxValue, "max", cfg.Vision.MaxValue, "foreground value after thresholding (0-255)")
	flag.BoolVar(&cfg.Vision.Inverse, "inverse", cfg.Vision.Inverse, "treat dark pixels as foreground")
	flag.IntVar(&connectivity, "connectivity", cfg.Vision.Connectivity, "pixel connectivity: 4 or 8")

	flag.Float64Var(&cfg.Detection.MinArea, "minarea", cfg.Detection.MinArea, "minimum blob area in percent of the image")
	flag.Float64Var(&cfg.Detection.MaxArea, "maxarea", cfg.Detection.MaxArea, "maximum blob area in percent of the image")
	flag.Float64Var(&cfg.Detection.Left, "left", cfg.Detection.Left, "search window left edge in percent")
	flag.Float64Var(&cfg.Detection.Top, "top", cfg.Detection.Top, "search window top edge in percent")
	flag.Float64Var(&cfg.Detection.Right, "right", cfg.Detection.Right, "search window right edge in percent")
	flag.Float64Var(&cfg.Detection.Bottom, "bottom", cfg.Detection.Bottom, "search window bottom edge in percent")

	flag.Float64Var(&cfg.Cropper.WidthRate, "width", cfg.Cropper.WidthRate, "crop width in percent of the image width")
	flag.Float64Var(&cfg.Cropper.HeightRate, "height", cfg.Cropper.HeightRate, "crop height in percent of the image height")
	flag.Float64Var(&cx, "cx", -1, "manual crop center x in pixels (with -cy, skips blob detection)")
	flag.Float64Var(&cy, "cy", -1, "manual crop center y in pixels (with -cx, skips blob detection)")

	flag.StringVar(&cfg.Output.Format, "ext", cfg.Output.Format, "output format: jpg|png|webp")
	flag.IntVar(&cfg.Output.Quality, "quality", cfg.Output.Quality, "JPEG/WebP output quality (1-100)")
	flag.BoolVar(&cfg.Output.Lossless, "lossless", cfg.Output.Lossless, "WebP lossless mode")
	flag.BoolVar(&cfg.Output.Debug, "debug", cfg.Output.Debug, "write debug overlay and blob images")
	flag.IntVar(&cfg.Output.Jobs, "jobs", cfg.Output.Jobs, "images framed in parallel")

	flag.Parse()

	cfg.Vision.Channel = channel
	cfg.Vision.Connectivity = connectivity
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if saveConfig != "" {
		if err := cfg.SaveToFile(saveConfig); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", saveConfig)
		return
	}

	var sources []string
	if in != "" {
		sources = append(sources, in)
	}
	sources = append(sources, flag.Args()...)
	if len(sources) == 0 {
		log.Fatalf("usage: %s -in input.jpg|dir|URL [-out outdir] [-minarea 0.1] [-maxarea 50] [-width 60] [-height 60] [-ext jpg|png|webp] [-debug]", filepath.Base(os.Args[0]))
	}

	inputs, err := utils.ExpandInputs(sources)
	if err != nil {
		log.Fatal(err)
	}
	if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
		log.Fatal(err)
	}

	opts, err := cfg.FramerOptions()
	if err != nil {
		log.Fatal(err)
	}
	framer := imageframer.NewWithOptions(opts)
	manual := cx >= 0 && cy >= 0

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Output.Jobs)

	failed := make([]bool, len(inputs))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			var err error
			if manual {
				err = cropManual(ctx, framer, cfg, input, cx, cy)
			} else {
				err = frame(ctx, framer, cfg, input)
			}
			if err != nil {
				log.Printf("[%d/%d] %s: %v", i+1, len(inputs), input, err)
				failed[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, f := range failed {
		if f {
			os.Exit(1)
		}
	}
}

// frame runs blob detection on one input and writes its crop, JSON geometry
// and optional debug images
func frame(ctx context.Context, framer *imageframer.Framer, cfg *config.Config, input string) error {
	img, err := framer.LoadImage(ctx, input)
	if err != nil {
		return err
	}

	result, err := framer.Frame(img)
	if err != nil {
		return err
	}

	f := result.Framing
	log.Printf("%s: %dx%d blobs=%d points=%d center=%.1f,%.1f search=%+v crop=%+v",
		input, f.Width, f.Height, f.Blobs, f.Points, f.Center.X, f.Center.Y, f.SearchArea, f.CropArea)

	if err := writeOutputs(framer, cfg, input, result.Image, f); err != nil {
		return err
	}

	if cfg.Output.Debug {
		overlay := framer.Overlay(img, result)
		if err := saveDebug(framer, cfg, input, "_debug", overlay); err != nil {
			return err
		}
		if err := saveDebug(framer, cfg, input, "_blobs", framer.RenderBlobs(result)); err != nil {
			return err
		}
	}

	return nil
}

// cropManual crops one input around a caller-chosen point
func cropManual(ctx context.Context, framer *imageframer.Framer, cfg *config.Config, input string, cx, cy float64) error {
	img, err := framer.LoadImage(ctx, input)
	if err != nil {
		return err
	}

	result, err := framer.CropAt(img, cx, cy)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	f := types.Framing{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Center:     result.Center,
		SearchArea: types.Full(bounds.Dx(), bounds.Dy()),
		CropArea:   result.Region,
	}
	log.Printf("%s: manual center=%.1f,%.1f crop=%+v", input, cx, cy, result.Region)

	if err := writeOutputs(framer, cfg, input, result.Image, f); err != nil {
		return err
	}

	if cfg.Output.Debug {
		return saveDebug(framer, cfg, input, "_debug", framer.DrawCropArea(img, cx, cy))
	}
	return nil
}

func writeOutputs(framer *imageframer.Framer, cfg *config.Config, input string, cropped image.Image, f types.Framing) error {
	out := cfg.Output
	cropPath := utils.GenerateOutputFilename(input, out.OutputDir, out.Prefix, out.Suffix, strings.ToLower(out.Format))
	if err := framer.SaveImage(cropped, cropPath, out.Format, out.Quality, out.Lossless); err != nil {
		return fmt.Errorf("save %s failed: %w", cropPath, err)
	}
	log.Printf("wrote %s", cropPath)

	js, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(out.OutputDir, out.Prefix+utils.BaseName(input)+"_framing.json")
	if err := os.WriteFile(jsonPath, js, 0o644); err != nil {
		return fmt.Errorf("write %s failed: %w", jsonPath, err)
	}
	return nil
}

func saveDebug(framer *imageframer.Framer, cfg *config.Config, input, suffix string, img image.Image) error {
	out := cfg.Output
	path := utils.GenerateOutputFilename(input, out.OutputDir, out.Prefix, suffix, "png")
	if err := framer.SaveImage(img, path, "png", out.Quality, false); err != nil {
		return fmt.Errorf("debug save %s failed: %w", path, err)
	}
	log.Printf("wrote %s", path)
	return nil
}
