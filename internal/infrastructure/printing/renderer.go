package printing

import (
	"context"
	"fmt"
	"time"
)

// Paper is a page size in millimeters
type Paper struct {
	WidthMM  float64
	HeightMM float64
}

// PaperA4 is the size quotations are printed on
var PaperA4 = Paper{WidthMM: 210, HeightMM: 297}

// rotated swaps width and height
func (p Paper) rotated() Paper {
	return Paper{WidthMM: p.HeightMM, HeightMM: p.WidthMM}
}

// Margins are page margins in millimeters
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns equal margins on every side
func Uniform(mm float64) Margins {
	return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// DefaultMargins returns the 10mm margins used for quotations
func DefaultMargins() Margins {
	return Uniform(10)
}

// RenderRequest is one HTML document to print. Zero Paper and Margins
// fall back to PaperA4 and DefaultMargins.
type RenderRequest struct {
	HTML      string
	Paper     Paper
	Margins   Margins
	Landscape bool
	// Title ends up in the PDF metadata
	Title string
	// Timeout overrides the renderer default when positive
	Timeout time.Duration
}

// page resolves the effective paper size and margins
func (r *RenderRequest) page() (Paper, Margins) {
	paper, margins := r.Paper, r.Margins
	if paper == (Paper{}) {
		paper = PaperA4
	}
	if r.Landscape {
		paper = paper.rotated()
	}
	if margins == (Margins{}) {
		margins = DefaultMargins()
	}
	return paper, margins
}

// RenderResult is a printed PDF
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer prints HTML documents to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderErrorCode classifies a RenderError
type RenderErrorCode string

const (
	ErrCodeRenderTimeout RenderErrorCode = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  RenderErrorCode = "RENDER_FAILED"
	ErrCodeInvalidHTML   RenderErrorCode = "INVALID_HTML"
	ErrCodeTemplate      RenderErrorCode = "TEMPLATE_FAILED"
)

// RenderError is returned by renderers and templates of this package
type RenderError struct {
	Code    RenderErrorCode
	Message string
	Cause   error
}

// NewRenderError builds a RenderError. cause may be nil.
func NewRenderError(code RenderErrorCode, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }
