package stamp

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// drawStampLayer composites the registered image onto the current page at
// the sampled placement, inside a named layer so viewers can toggle the
// stamp. The pageNum parameter is used to create unique layer names for
// each page.
//
// The placement anchor is the image's bottom-left corner in bottom-origin
// page coordinates; the image is rotated about that anchor by the sampled
// angle, counter-clockwise positive. fpdf measures y from the top edge, so
// the anchor is flipped before drawing. Alpha masks in the image are
// honored by fpdf, so transparent regions do not occlude page content.
func drawStampLayer(
	pdf *fpdf.Fpdf,
	imgName string,
	opts fpdf.ImageOptions,
	pageH float64,
	p Placement,
	imgW, imgH float64,
	layerName string,
	pageNum int,
) {
	formattedLayerName := fmt.Sprintf("%s (Page %d)", layerName, pageNum)

	// Convert the name to ISO-8859-1 to avoid PDF encoding issues.
	latin1, err := charmap.ISO8859_1.NewEncoder().String(formattedLayerName)
	if err != nil {
		latin1 = formattedLayerName // fallback to raw text
	}

	layer := pdf.AddLayer(latin1, true)
	pdf.BeginLayer(layer)

	ax := p.X
	ay := pageH - p.Y

	pdf.TransformBegin()
	pdf.TransformRotate(p.Angle, ax, ay)
	pdf.ImageOptions(imgName, ax, ay-imgH, imgW, imgH, false, opts, 0, "")
	pdf.TransformEnd()

	pdf.EndLayer()
}
