package printing

import (
	"context"
	"time"
)

// PaperSize is a receipt paper format
type PaperSize string

const (
	PaperThermal80 PaperSize = "thermal"
	PaperA5        PaperSize = "a5"
)

// ParsePaperSize maps a query value to a paper size; empty selects thermal
func ParsePaperSize(raw string) (PaperSize, bool) {
	switch PaperSize(raw) {
	case "", PaperThermal80:
		return PaperThermal80, true
	case PaperA5:
		return PaperA5, true
	default:
		return "", false
	}
}

// Dimensions returns width and height in millimeters. Thermal paper has no
// fixed height and reports zero.
func (p PaperSize) Dimensions() (width, height float64) {
	switch p {
	case PaperA5:
		return 148, 210
	default:
		return 80, 0
	}
}

// IsContinuous reports whether the paper is a roll
func (p PaperSize) IsContinuous() bool {
	return p == PaperThermal80
}

// MarginMM returns the print margin for the paper size
func (p PaperSize) MarginMM() float64 {
	if p.IsContinuous() {
		return 2
	}
	return 8
}

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	HTML      string
	PaperSize PaperSize
	// Title for the PDF document metadata
	Title string
	// Timeout overrides the default rendering timeout
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	RenderDuration time.Duration
}

// PDFRenderer defines the interface for rendering HTML to PDF
type PDFRenderer interface {
	// Render converts HTML content to a PDF document
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// RenderError represents an error during rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeUnknownTemplate  = "UNKNOWN_TEMPLATE"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
