package stamp

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF format
	_ "image/jpeg" // register JPEG format
	_ "image/png"  // register PNG format
	"os"
	"strings"
)

// ImageAsset is the stamp image: raw encoded bytes plus the sniffed format
// and native pixel dimensions. It is immutable once loaded and shared
// read-only across all pages.
type ImageAsset struct {
	data   []byte
	format string // upper-case fpdf image type, e.g. "PNG"
	width  int    // native pixels
	height int
}

// NewImageAsset sniffs the format and dimensions of encoded image data.
func NewImageAsset(data []byte) (*ImageAsset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image config: %w", err)
	}
	return &ImageAsset{
		data:   data,
		format: strings.ToUpper(format),
		width:  cfg.Width,
		height: cfg.Height,
	}, nil
}

// LoadImageAsset reads and sniffs an image file.
func LoadImageAsset(path string) (*ImageAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	asset, err := NewImageAsset(data)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	return asset, nil
}

// Format returns the upper-case image type ("PNG", "JPEG", ...).
func (a *ImageAsset) Format() string { return a.format }

// Size returns the native pixel dimensions.
func (a *ImageAsset) Size() (int, int) { return a.width, a.height }

// ScaledSize returns the draw dimensions in points after capping the width
// at maxWidth.
func (a *ImageAsset) ScaledSize(maxWidth float64) (float64, float64) {
	return ScaleToWidth(float64(a.width), float64(a.height), maxWidth)
}

// Reader returns a fresh reader over the encoded bytes.
func (a *ImageAsset) Reader() *bytes.Reader { return bytes.NewReader(a.data) }
