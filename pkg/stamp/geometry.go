package stamp

// EffectiveSize returns the display dimensions of a page after accounting
// for its /Rotate value, plus whether the page is landscape. Rotations of
// 90 and 270 swap width and height; any other value (including a missing
// rotation reported as 0) leaves them untouched. A square page counts as
// portrait.
func EffectiveSize(width, height float64, rotation int) (w, h float64, landscape bool) {
	w, h = width, height
	if rotation == 90 || rotation == 270 {
		w, h = h, w
	}
	return w, h, w > h
}

// ScaleToWidth scales image dimensions down to maxWidth, preserving the
// aspect ratio exactly. Dimensions at or below maxWidth are returned
// unchanged; the image is never upscaled.
func ScaleToWidth(width, height, maxWidth float64) (float64, float64) {
	if width <= maxWidth {
		return width, height
	}
	return maxWidth, height * (maxWidth / width)
}

// Bounds is the rectangle of valid bottom-left placement coordinates for
// the image on one page, in points with the origin at the page's bottom
// left corner.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// PlacementBoundsIn computes the placement envelope for an image of
// imgW x imgH on a page of pageW x pageH under the given margins.
//
// A degenerate envelope is an error, not a clamp: the interval must be
// strictly positive in both axes so the sampler always has room to draw
// from. An image too large for the page and margins too large for the image
// fail identically.
func PlacementBoundsIn(pageW, pageH, imgW, imgH float64, m Margins) (Bounds, error) {
	b := Bounds{
		MinX: m.Side,
		MaxX: pageW - imgW - m.Side,
		MinY: m.Bottom,
		MaxY: pageH - imgH - m.Top,
	}
	if b.MaxX <= b.MinX || b.MaxY <= b.MinY {
		return Bounds{}, &InfeasiblePlacementError{
			PageWidth:  pageW,
			PageHeight: pageH,
			ImgWidth:   imgW,
			ImgHeight:  imgH,
			Margins:    m,
		}
	}
	return b, nil
}
