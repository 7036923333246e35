package stamp

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// testPNG encodes a w x h RGBA image with a transparent border, so the
// asset exercises the alpha-mask path when drawn.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/10 || y < h/10 {
				img.Set(x, y, color.RGBA{})
				continue
			}
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestNewImageAsset(t *testing.T) {
	asset, err := NewImageAsset(testPNG(t, 300, 200))
	if err != nil {
		t.Fatalf("NewImageAsset: %v", err)
	}
	if asset.Format() != "PNG" {
		t.Errorf("format = %q, want PNG", asset.Format())
	}
	if w, h := asset.Size(); w != 300 || h != 200 {
		t.Errorf("size = %dx%d, want 300x200", w, h)
	}
}

func TestNewImageAssetRejectsGarbage(t *testing.T) {
	if _, err := NewImageAsset([]byte("not an image")); err == nil {
		t.Error("expected error for non-image data")
	}
	if _, err := NewImageAsset(nil); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestImageAssetScaledSize(t *testing.T) {
	asset, err := NewImageAsset(testPNG(t, 300, 200))
	if err != nil {
		t.Fatalf("NewImageAsset: %v", err)
	}
	if w, h := asset.ScaledSize(150); w != 150 || h != 100 {
		t.Errorf("scaled size = %gx%g, want 150x100", w, h)
	}
	if w, h := asset.ScaledSize(400); w != 300 || h != 200 {
		t.Errorf("scaled size = %gx%g, want native 300x200", w, h)
	}
}

func TestLoadImageAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stamp.png")
	if err := os.WriteFile(path, testPNG(t, 80, 40), 0o644); err != nil {
		t.Fatal(err)
	}

	asset, err := LoadImageAsset(path)
	if err != nil {
		t.Fatalf("LoadImageAsset: %v", err)
	}
	if w, h := asset.Size(); w != 80 || h != 40 {
		t.Errorf("size = %dx%d, want 80x40", w, h)
	}

	if _, err := LoadImageAsset(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
