// Package pdfpage reads per-page geometry from PDF documents.
//
// It is the document-model boundary of this module: callers get each page's
// intrinsic mediabox dimensions and rotation value without touching PDF
// object plumbing themselves.
package pdfpage

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Attrs are the intrinsic attributes of one page.
type Attrs struct {
	Width    float64 // mediabox width in points, before rotation
	Height   float64 // mediabox height in points, before rotation
	Rotation int     // /Rotate value: 0, 90, 180 or 270
}

// Read returns the attributes of every page in the document, in page order.
func Read(pdfData []byte) ([]Attrs, error) {
	ctx, err := readContext(pdfData)
	if err != nil {
		return nil, err
	}

	boundaries, err := ctx.PageBoundaries(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page boundaries: %w", err)
	}

	attrs := make([]Attrs, len(boundaries))
	for i, pb := range boundaries {
		mb := pb.MediaBox()
		if mb == nil {
			return nil, fmt.Errorf("page %d has no media box", i+1)
		}
		attrs[i] = Attrs{
			Width:    mb.Width(),
			Height:   mb.Height(),
			Rotation: pb.Rot,
		}
	}
	return attrs, nil
}

// Normalize rewrites the document with a classic cross-reference table and
// without object streams. Modern producers emit cross-reference streams
// (PDF 1.5+), which template importers like gofpdi cannot parse; page
// content, boxes and rotation values survive the rewrite unchanged.
func Normalize(pdfData []byte) ([]byte, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("PDF data is empty")
	}
	conf := model.NewDefaultConfiguration()
	conf.WriteXRefStream = false
	conf.WriteObjectStream = false

	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(pdfData), &buf, conf); err != nil {
		return nil, fmt.Errorf("failed to normalize PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Count returns the number of pages in the document.
func Count(pdfData []byte) (int, error) {
	ctx, err := readContext(pdfData)
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

func readContext(pdfData []byte) (*model.Context, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("PDF data is empty")
	}
	ctx, err := api.ReadContext(bytes.NewReader(pdfData), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}
	return ctx, nil
}
