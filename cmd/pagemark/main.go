// pagemark is a command-line tool for stamping an image onto every page of
// a PDF document at a random position and tilt.
//
// Each page of the output carries one instance of the image, placed
// uniformly at random within the configured margins and rotated by a random
// angle whose range depends on the page orientation. The original page
// content is preserved underneath the stamp, which lives in a toggleable
// PDF layer.
//
// Usage:
//
//	pagemark -pdf input.pdf -image stamp.png -output stamped.pdf [options]
//
// Required flags:
//
//	-pdf string     Path to the input PDF file
//	-image string   Path to the stamp image (PNG, JPEG or GIF)
//	-output string  Output PDF path
//
// Placement options:
//
//	-top float       Top margin in millimeters (default 35)
//	-bottom float    Bottom margin in millimeters (default 17.5)
//	-side float      Side margin in millimeters (default 17.5)
//	-max-width float Maximum image width in points (default 200)
//	-seed int        Random seed; 0 means time-seeded
//
// Processing options:
//
//	-config string  Optional YAML file with placement settings
//	-layer string   Base name of the stamp layer (default "Stamp")
//	-force          Stamp even if a stamp layer is already present
//	-overwrite      Overwrite the output file if it exists
//	-validate       Validate the written PDF with pdfcpu
//	-verbose        Log every placement
//
// Example:
//
//	pagemark -pdf report.pdf -image draft.png -output report_draft.pdf -top 40 -seed 7
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/skarpi/pagemark/pkg/stamp"
)

type yamlConfig struct {
	TopMarginMM    *float64  `yaml:"top_margin_mm"`
	BottomMarginMM *float64  `yaml:"bottom_margin_mm"`
	SideMarginMM   *float64  `yaml:"side_margin_mm"`
	MaxImageWidth  *float64  `yaml:"max_image_width_pt"`
	PortraitTilt   []float64 `yaml:"portrait_tilt"`
	LandscapeTilt  []float64 `yaml:"landscape_tilt"`
	LayerName      *string   `yaml:"layer_name"`
	Seed           *int64    `yaml:"seed"`
}

// loadConfig reads a YAML file with placement settings. All fields are
// optional; explicit command-line flags take precedence over file values.
func loadConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, err
	}
	if len(yc.PortraitTilt) != 0 && len(yc.PortraitTilt) != 2 {
		return nil, fmt.Errorf("portrait_tilt must have exactly two values")
	}
	if len(yc.LandscapeTilt) != 0 && len(yc.LandscapeTilt) != 2 {
		return nil, fmt.Errorf("landscape_tilt must have exactly two values")
	}
	return &yc, nil
}

func main() {
	pdfPath := flag.String("pdf", "", "Path to the input PDF file")
	imagePath := flag.String("image", "", "Path to the stamp image")
	outputPath := flag.String("output", "", "Output PDF path")
	configPath := flag.String("config", "", "Optional YAML file with placement settings")
	topMargin := flag.Float64("top", 35, "Top margin in millimeters")
	bottomMargin := flag.Float64("bottom", 17.5, "Bottom margin in millimeters")
	sideMargin := flag.Float64("side", 17.5, "Side margin in millimeters")
	maxWidth := flag.Float64("max-width", 200, "Maximum image width in points")
	layerName := flag.String("layer", "Stamp", "Base name of the stamp layer")
	seed := flag.Int64("seed", 0, "Random seed; 0 means time-seeded")
	force := flag.Bool("force", false, "Stamp even if a stamp layer is already present")
	overwriteOutput := flag.Bool("overwrite", false, "Overwrite the output PDF if it already exists")
	validateOutput := flag.Bool("validate", false, "Validate the written PDF with pdfcpu")
	verbose := flag.Bool("verbose", false, "Log every placement")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	if *pdfPath == "" || *imagePath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -pdf, -image and -output are required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	providedFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		providedFlags[f.Name] = true
	})

	cfg := stamp.DefaultConfig()
	cfg.Force = *force
	cfg.Logger = logger

	// File values apply first, explicit flags override them below.
	if *configPath != "" {
		yc, err := loadConfig(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("config", *configPath).Msg("failed to load config file")
		}
		if yc.TopMarginMM != nil {
			cfg.Margins.Top = stamp.MillimetersToPoints(*yc.TopMarginMM)
		}
		if yc.BottomMarginMM != nil {
			cfg.Margins.Bottom = stamp.MillimetersToPoints(*yc.BottomMarginMM)
		}
		if yc.SideMarginMM != nil {
			cfg.Margins.Side = stamp.MillimetersToPoints(*yc.SideMarginMM)
		}
		if yc.MaxImageWidth != nil {
			cfg.MaxImageWidth = *yc.MaxImageWidth
		}
		if len(yc.PortraitTilt) == 2 {
			cfg.PortraitTilt = stamp.AngleRange{From: yc.PortraitTilt[0], To: yc.PortraitTilt[1]}
		}
		if len(yc.LandscapeTilt) == 2 {
			cfg.LandscapeTilt = stamp.AngleRange{From: yc.LandscapeTilt[0], To: yc.LandscapeTilt[1]}
		}
		if yc.LayerName != nil {
			cfg.LayerName = *yc.LayerName
		}
		if yc.Seed != nil && !providedFlags["seed"] {
			*seed = *yc.Seed
		}
	}

	if providedFlags["top"] || *configPath == "" {
		cfg.Margins.Top = stamp.MillimetersToPoints(*topMargin)
	}
	if providedFlags["bottom"] || *configPath == "" {
		cfg.Margins.Bottom = stamp.MillimetersToPoints(*bottomMargin)
	}
	if providedFlags["side"] || *configPath == "" {
		cfg.Margins.Side = stamp.MillimetersToPoints(*sideMargin)
	}
	if providedFlags["max-width"] || *configPath == "" {
		cfg.MaxImageWidth = *maxWidth
	}
	if providedFlags["layer"] {
		cfg.LayerName = *layerName
	}
	if *seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(*seed))
	}

	// The existing output is left in place until stamping succeeds; a
	// failed run must not destroy the previous result.
	if _, err := os.Stat(*outputPath); err == nil && !*overwriteOutput {
		logger.Fatal().Str("output", *outputPath).Msg("output file already exists, use -overwrite to overwrite")
	}

	start := time.Now()
	if err := stamp.StampFile(*pdfPath, *imagePath, *outputPath, cfg); err != nil {
		logger.Fatal().Err(err).Msg("stamping failed")
	}

	if *validateOutput {
		if err := api.ValidateFile(*outputPath, nil); err != nil {
			logger.Fatal().Err(err).Str("output", *outputPath).Msg("output failed validation")
		}
		logger.Info().Str("output", *outputPath).Msg("output validated")
	}

	logger.Info().
		Str("output", *outputPath).
		Dur("elapsed", time.Since(start)).
		Msg("stamped PDF created")
}
