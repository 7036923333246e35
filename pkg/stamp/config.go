package stamp

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
)

// Margins are the minimum distances, in points, that the placed image must
// keep from the page edges.
type Margins struct {
	Top    float64 // distance from the top edge
	Bottom float64 // distance from the bottom edge
	Side   float64 // distance from both the left and right edge
}

// AngleRange is a rotation interval in degrees. From may be greater than To;
// the sampler traverses the interval in the configured direction either way.
type AngleRange struct {
	From float64
	To   float64
}

// Config holds user options for stamping an image onto a PDF.
type Config struct {
	Margins       Margins        // placement margins in points
	MaxImageWidth float64        // image is scaled down to this width in points, never up
	PortraitTilt  AngleRange     // rotation range for portrait pages
	LandscapeTilt AngleRange     // rotation range for landscape pages
	LayerName     string         // base name of the stamp layer (page number will be appended)
	Force         bool           // stamp even if a stamp layer is already present
	Rand          *rand.Rand     // random source; nil means time-seeded
	Logger        zerolog.Logger // per-page placement logging; zero value is fine
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Margins:       Margins{Top: 100, Bottom: 50, Side: 50},
		MaxImageWidth: 200,
		PortraitTilt:  AngleRange{From: 0, To: 10},
		LandscapeTilt: AngleRange{From: 90, To: 75}, // reversed on purpose: counter-clockwise tilt
		LayerName:     "Stamp",                      // will be formatted as "Stamp (Page X)" in the final PDF
		Logger:        zerolog.Nop(),
	}
}

func (c Config) validate() error {
	if c.Margins.Top < 0 || c.Margins.Bottom < 0 || c.Margins.Side < 0 {
		return fmt.Errorf("margins must not be negative, got top=%g bottom=%g side=%g",
			c.Margins.Top, c.Margins.Bottom, c.Margins.Side)
	}
	if c.MaxImageWidth <= 0 {
		return fmt.Errorf("max image width must be positive, got %g", c.MaxImageWidth)
	}
	return nil
}

const pointsPerMillimeter = 72.0 / 25.4

// MillimetersToPoints converts a length from millimeters to PDF points.
// Margins are accepted in millimeters at the CLI boundary and converted
// exactly once; all geometry below this point works in points.
func MillimetersToPoints(mm float64) float64 {
	return mm * pointsPerMillimeter
}
