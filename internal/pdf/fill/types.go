// Package fill implements the form-fill core: it indexes a document's
// field tree, resolves caller-supplied field names against that index,
// injects values, and records widget placements so the values can be
// redrawn either over the original pages (flatten) or on blank pages
// (text overlay). All document access goes through the Engine interface;
// the pdfcpu/fpdf-backed implementation lives in internal/pdf/engine.
package fill

import "errors"

// Structural rejections detected before any field processing begins.
var (
	// ErrNoFormRoot indicates the document has no AcroForm dictionary.
	ErrNoFormRoot = errors.New("document has no form root")

	// ErrXFAForm indicates the form is stored as an XFA data island,
	// which this service does not process.
	ErrXFAForm = errors.New("document uses an XFA form")

	// ErrNoFormFields indicates a form root exists but no usable fields
	// were found in it.
	ErrNoFormFields = errors.New("form contains no fields")
)

// DefaultFontSize is used for overlay text when a widget declares no
// usable font size.
const DefaultFontSize = 10

// Rect is a widget rectangle in page units, origin at the page's
// bottom-left corner.
type Rect struct {
	Left   float64
	Bottom float64
	Width  float64
	Height float64
}

// Top returns the y coordinate of the rectangle's upper edge.
func (r Rect) Top() float64 { return r.Bottom + r.Height }

// PageSize is a page's dimensions in page units.
type PageSize struct {
	Width  float64
	Height float64
}

// Field is a node in the document's field tree. Implementations hold
// non-owning references into the parsed document and are only valid for
// the lifetime of the request that opened it.
type Field interface {
	// Name returns the field's local (unqualified) name, empty when the
	// node carries none.
	Name() string

	// Kids returns the node's child fields in document order.
	Kids() []Field

	// Widgets returns the field's visual placements in document order.
	Widgets() []Widget

	// SetValue sets the field's value in the document.
	SetValue(value string) error

	// RegenerateAppearance asks the engine to rebuild the field's visual
	// appearance so the current value is visible.
	RegenerateAppearance() error
}

// Widget is a single visual placement of a field on a page.
type Widget interface {
	// Page returns the 1-based page number, or false when the widget
	// cannot be located on any page.
	Page() (int, bool)

	// Rect returns the widget rectangle, or false when it cannot be
	// resolved.
	Rect() (Rect, bool)

	// FontSize returns the declared font size; non-positive means
	// undeclared.
	FontSize() float64
}

// OverlayEntry records one "draw this text here" instruction. Entries
// are created once per matched field per widget and never mutated.
type OverlayEntry struct {
	Page     int
	Rect     Rect
	Text     string
	FontSize float64
}

// Canvas is the drawing surface the renderer targets. Coordinates
// passed to DrawText are measured from the current page's top-left
// corner; implementations handle font ascent placement.
type Canvas interface {
	AddPage(size PageSize) error
	SetFontSize(points float64)
	DrawText(x, y float64, text string) error
	Bytes() ([]byte, error)
}

// Document is an open, request-scoped document handle.
type Document interface {
	// TopLevelFields returns the root set of the field tree.
	TopLevelFields() []Field

	// PageSizes returns the document's page dimensions in page order.
	PageSizes() []PageSize

	// Bytes serializes the document in its current (post-injection)
	// state.
	Bytes() ([]byte, error)

	// Close releases the handle. The handle must not be used afterwards.
	Close() error
}

// Engine is the document-processing collaborator the core requires.
type Engine interface {
	// Open parses document bytes and performs the structural pre-checks,
	// returning ErrNoFormRoot, ErrXFAForm or ErrNoFormFields when the
	// document cannot be form-filled.
	Open(doc []byte) (Document, error)

	// NewBlankCanvas returns a canvas that produces a fresh document
	// containing only drawn text.
	NewBlankCanvas() Canvas

	// NewPageCanvas returns a canvas that stamps each added page with
	// the corresponding page of src, carrying over page content but no
	// interactive elements.
	NewPageCanvas(src []byte) (Canvas, error)
}

// FieldValue is one caller-supplied name/value pair.
type FieldValue struct {
	Name  string
	Value string
}

// Request is a validated fill request.
type Request struct {
	Document          []byte
	Fields            []FieldValue
	RenderTextOverlay bool
}

// Result is the outcome of a successful fill.
type Result struct {
	// Document holds the flattened or overlay-rendered output, chosen by
	// Request.RenderTextOverlay.
	Document []byte

	// Filled lists the original qualified names of the fields that were
	// matched and written, in processing order.
	Filled []string

	// Skipped lists caller-supplied names that matched no field.
	Skipped []string

	// KnownFields is a bounded sample of the document's field names,
	// populated only when something was skipped.
	KnownFields []string
}
