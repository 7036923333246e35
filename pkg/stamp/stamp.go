// Package stamp overlays a randomly placed, randomly tilted image onto
// every page of a PDF document.
//
// Each page of the output carries one instance of the image at an
// independently sampled position and rotation angle. Placement respects
// configurable margins and accounts for page rotation metadata, so rotated
// pages are stamped in their display orientation. The original page content
// is always preserved underneath the stamp.
//
// The stamp is drawn inside a named, toggleable PDF layer. Stamping a file
// that already carries such a layer is refused unless Force is set.
//
// Main functions:
//
// - ApplyStamp: stamps an in-memory PDF
// - StampFile: stamps a PDF file and writes the result
package stamp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/skarpi/pagemark/pkg/pdfpage"
)

// stampImageName is the registration key for the shared image asset within
// the output document.
const stampImageName = "stamp"

// ApplyStamp overlays the image onto every page of inputPDF and returns the
// new document.
//
// Pages are processed strictly in input order. A page whose margins and
// image size leave no valid placement rectangle fails the whole run with an
// *InfeasiblePlacementError carrying the 1-based page index; no partial
// result is returned.
func ApplyStamp(inputPDF []byte, asset *ImageAsset, cfg Config) ([]byte, error) {
	if len(inputPDF) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if asset == nil {
		return nil, fmt.Errorf("image asset is nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.LayerName == "" {
		cfg.LayerName = DefaultConfig().LayerName
	}

	if name, found := stampLayerIn(inputPDF, cfg.LayerName); found {
		if !cfg.Force {
			return nil, &AlreadyStampedError{Layer: name}
		}
		cfg.Logger.Warn().Str("layer", name).Msg("file already stamped, reapplying will duplicate stamps")
	}

	pages, err := pdfpage.Read(inputPDF)
	if err != nil {
		return nil, err
	}

	// gofpdi only understands classic cross-reference tables, so inputs
	// from modern producers must be rewritten before importing.
	normalized, err := pdfpage.Normalize(inputPDF)
	if err != nil {
		return nil, err
	}

	imgW, imgH := asset.ScaledSize(cfg.MaxImageWidth)
	sampler := NewSampler(cfg.Rand)

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetAutoPageBreak(false, 0)
	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: asset.Format()}
	pdf.RegisterImageOptionsReader(stampImageName, opts, asset.Reader())

	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(normalized))

	for i, page := range pages {
		pageNum := i + 1

		w, h, landscape := EffectiveSize(page.Width, page.Height, page.Rotation)

		b, err := PlacementBoundsIn(w, h, imgW, imgH, cfg.Margins)
		if err != nil {
			var ipe *InfeasiblePlacementError
			if errors.As(err, &ipe) {
				ipe.Page = pageNum
			}
			return nil, err
		}

		placement := sampler.Placement(b, landscape, cfg.PortraitTilt, cfg.LandscapeTilt)

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		tpl, err := importPage(pdf, importer, &rs, pageNum)
		if err != nil {
			return nil, err
		}
		placeTemplate(pdf, importer, tpl, page.Width, page.Height, page.Rotation)

		drawStampLayer(pdf, stampImageName, opts, h, placement, imgW, imgH, cfg.LayerName, pageNum)

		cfg.Logger.Debug().
			Int("page", pageNum).
			Bool("landscape", landscape).
			Float64("x", placement.X).
			Float64("y", placement.Y).
			Float64("angle", placement.Angle).
			Msg("stamp placed")
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to build PDF: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	cfg.Logger.Info().Int("pages", len(pages)).Msg("stamped all pages")
	return buf.Bytes(), nil
}

// importPage imports one input page as a template. gofpdi panics on
// objects it cannot resolve instead of returning an error, so the panic is
// converted into a page-indexed error here and flows through the same
// fail-fast path as placement failures.
func importPage(pdf *fpdf.Fpdf, imp *gofpdi.Importer, rs *io.ReadSeeker, pageNum int) (tpl int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: failed to import page: %v", pageNum, r)
		}
	}()
	return imp.ImportPageFromStream(pdf, rs, pageNum, "/MediaBox"), nil
}

// placeTemplate draws an imported page template, baking any /Rotate value
// into the output so the page displays unchanged at its effective size.
// w and h are the raw mediabox dimensions of the imported page.
func placeTemplate(pdf *fpdf.Fpdf, imp *gofpdi.Importer, tpl int, w, h float64, rotation int) {
	switch rotation {
	case 90:
		pdf.TransformBegin()
		pdf.TransformRotate(-90, 0, 0)
		pdf.TransformTranslate(0, w)
		imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
		pdf.TransformEnd()
	case 180:
		pdf.TransformBegin()
		pdf.TransformRotate(-180, w/2, h/2)
		imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
		pdf.TransformEnd()
	case 270:
		pdf.TransformBegin()
		pdf.TransformRotate(-270, 0, 0)
		pdf.TransformTranslate(h, 0)
		imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
		pdf.TransformEnd()
	default:
		imp.UseImportedTemplate(pdf, tpl, 0, 0, w, h)
	}
}

// StampFile stamps every page of the PDF at inputPath with the image at
// imagePath and writes the result to outputPath.
//
// Both input paths are checked before any processing starts; a missing file
// is a *NotFoundError. The output file is written only when every page has
// been stamped, so a failed run leaves no partial output behind.
func StampFile(inputPath, imagePath, outputPath string, cfg Config) error {
	if _, err := os.Stat(inputPath); err != nil {
		return &NotFoundError{Kind: "input PDF", Path: inputPath}
	}
	if _, err := os.Stat(imagePath); err != nil {
		return &NotFoundError{Kind: "image", Path: imagePath}
	}

	inputPDF, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input PDF: %w", err)
	}
	asset, err := LoadImageAsset(imagePath)
	if err != nil {
		return err
	}

	stamped, err := ApplyStamp(inputPDF, asset, cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, stamped, 0666); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}
	return nil
}
