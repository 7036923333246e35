package stamp

import "fmt"

// NotFoundError reports a missing input file. It is returned before any
// processing starts and before the output path is touched.
type NotFoundError struct {
	Kind string // "input PDF" or "image"
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Kind, e.Path)
}

// InfeasiblePlacementError reports that a page's dimensions, margins and
// image size leave no valid placement rectangle. Page is the 1-based page
// index, or 0 when the error has not yet been attributed to a page.
//
// Infeasibility is a deterministic geometric fact, so the whole run aborts
// on the first occurrence and no output is written.
type InfeasiblePlacementError struct {
	Page       int
	PageWidth  float64
	PageHeight float64
	ImgWidth   float64
	ImgHeight  float64
	Margins    Margins
}

func (e *InfeasiblePlacementError) Error() string {
	msg := fmt.Sprintf("margins too large for image placement: image %gx%g with margins top=%g bottom=%g side=%g does not fit page %gx%g",
		e.ImgWidth, e.ImgHeight, e.Margins.Top, e.Margins.Bottom, e.Margins.Side, e.PageWidth, e.PageHeight)
	if e.Page > 0 {
		return fmt.Sprintf("page %d: %s", e.Page, msg)
	}
	return msg
}

// AlreadyStampedError reports that the input PDF already carries a stamp
// layer and Force is not set.
type AlreadyStampedError struct {
	Layer string // name of the detected layer
}

func (e *AlreadyStampedError) Error() string {
	return fmt.Sprintf("file already has a stamp (layer %q) - set Force to reapply", e.Layer)
}
