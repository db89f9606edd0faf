// Package engine implements the document-processing collaborator the
// fill core depends on. Document structure access goes through pdfcpu's
// low-level context API; rendered output is produced with fpdf, pulling
// original pages in through gofpdi when flattening.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/fillkit/fillkit/internal/pdf/fill"
)

// Fallback page size (US Letter, points) for pages without a resolvable
// MediaBox.
const (
	fallbackPageWidth  = 612
	fallbackPageHeight = 792
)

// Engine opens PDF documents and provides canvases for rendered output.
// It is stateless; every request gets its own Document.
type Engine struct {
	log *slog.Logger
}

// New creates a document engine.
func New(log *slog.Logger) *Engine {
	return &Engine{log: log}
}

// Document is one request's parsed PDF. It owns the pdfcpu context plus
// the page index built at open time and must not be shared across
// requests.
type Document struct {
	ctx      *model.Context
	acroForm types.Dict
	fields   types.Array

	pageSizes []fill.PageSize
	annotPage map[int]int // annotation object number -> 1-based page
	pageNr    map[int]int // page dict object number -> 1-based page
}

// Open parses document bytes and runs the structural pre-checks. The
// sentinel errors from the fill package signal documents that cannot be
// form-filled; everything else is a processing failure.
func (e *Engine) Open(doc []byte) (fill.Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(doc), conf)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("resolve page count: %w", err)
	}

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("read document catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, fill.ErrNoFormRoot
	}
	acroForm, err := ctx.DereferenceDict(acroFormObj)
	if err != nil || acroForm == nil {
		return nil, fill.ErrNoFormRoot
	}

	// Forms whose fields live in an XFA data island are rejected before
	// any field is touched; only the key's presence is checked.
	if _, found := acroForm.Find("XFA"); found {
		return nil, fill.ErrXFAForm
	}

	fieldsObj, found := acroForm.Find("Fields")
	if !found {
		return nil, fill.ErrNoFormFields
	}
	fields, err := ctx.DereferenceArray(fieldsObj)
	if err != nil || len(fields) == 0 {
		return nil, fill.ErrNoFormFields
	}

	d := &Document{
		ctx:       ctx,
		acroForm:  acroForm,
		fields:    fields,
		annotPage: make(map[int]int),
		pageNr:    make(map[int]int),
	}
	if err := d.indexPages(rootDict); err != nil {
		return nil, fmt.Errorf("index pages: %w", err)
	}

	e.log.Debug("document opened",
		"pages", len(d.pageSizes),
		"top_level_fields", len(fields),
	)
	return d, nil
}

// TopLevelFields returns the root set of the field tree. Entries that
// cannot be resolved to a dictionary are dropped.
func (d *Document) TopLevelFields() []fill.Field {
	out := make([]fill.Field, 0, len(d.fields))
	for _, obj := range d.fields {
		if f := d.fieldFromObject(obj); f != nil {
			out = append(out, f)
		}
	}
	return out
}

// PageSizes returns the page dimensions recorded at open time.
func (d *Document) PageSizes() []fill.PageSize {
	return d.pageSizes
}

// Bytes serializes the document in its current state.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the handle. The underlying context has no resources of
// its own, so dropping the references suffices.
func (d *Document) Close() error {
	d.ctx = nil
	d.acroForm = nil
	d.fields = nil
	return nil
}

// pageTreeNode is one pending node of the page-tree walk together with
// the MediaBox inherited from its ancestors.
type pageTreeNode struct {
	obj       types.Object
	inherited *[4]float64
}

// indexPages walks the page tree once, recording each page's size and a
// mapping from annotation object numbers to page numbers so widgets can
// be located later. The walk is iterative and keeps a visited set, so
// deep or cyclic trees cannot break it.
func (d *Document) indexPages(rootDict types.Dict) error {
	pagesObj, found := rootDict.Find("Pages")
	if !found {
		return errors.New("catalog has no page tree")
	}

	stack := []pageTreeNode{{obj: pagesObj}}
	visited := make(map[int]bool)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if ir, ok := n.obj.(types.IndirectRef); ok {
			objNr := int(ir.ObjectNumber)
			if visited[objNr] {
				continue
			}
			visited[objNr] = true
		}

		dict, err := d.ctx.DereferenceDict(n.obj)
		if err != nil || dict == nil {
			continue
		}

		mediaBox := n.inherited
		if mbObj, found := dict.Find("MediaBox"); found {
			if mb, ok := d.rect4(mbObj); ok {
				mediaBox = &mb
			}
		}

		if kidsObj, found := dict.Find("Kids"); found {
			kids, err := d.ctx.DereferenceArray(kidsObj)
			if err != nil {
				continue
			}
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, pageTreeNode{obj: kids[i], inherited: mediaBox})
			}
			continue
		}

		// No Kids: a leaf page, unless the node explicitly says
		// otherwise.
		if typeObj, found := dict.Find("Type"); found {
			if name, err := d.ctx.DereferenceName(typeObj, model.V10, nil); err == nil && name != "Page" {
				continue
			}
		}
		d.recordPage(n.obj, dict, mediaBox)
	}

	if len(d.pageSizes) == 0 {
		return errors.New("document has no pages")
	}
	return nil
}

func (d *Document) recordPage(obj types.Object, dict types.Dict, mediaBox *[4]float64) {
	size := fill.PageSize{Width: fallbackPageWidth, Height: fallbackPageHeight}
	if mediaBox != nil {
		size = fill.PageSize{
			Width:  mediaBox[2] - mediaBox[0],
			Height: mediaBox[3] - mediaBox[1],
		}
	}
	d.pageSizes = append(d.pageSizes, size)
	page := len(d.pageSizes)

	if ir, ok := obj.(types.IndirectRef); ok {
		d.pageNr[int(ir.ObjectNumber)] = page
	}

	annotsObj, found := dict.Find("Annots")
	if !found {
		return
	}
	annots, err := d.ctx.DereferenceArray(annotsObj)
	if err != nil {
		return
	}
	for _, a := range annots {
		if ir, ok := a.(types.IndirectRef); ok {
			d.annotPage[int(ir.ObjectNumber)] = page
		}
	}
}

// rect4 resolves a 4-element number array into normalized [llx lly urx
// ury] coordinates.
func (d *Document) rect4(obj types.Object) ([4]float64, bool) {
	arr, err := d.ctx.DereferenceArray(obj)
	if err != nil || len(arr) < 4 {
		return [4]float64{}, false
	}

	var c [4]float64
	for i := 0; i < 4; i++ {
		f, err := d.ctx.DereferenceNumber(arr[i])
		if err != nil {
			return [4]float64{}, false
		}
		c[i] = f
	}

	if c[0] > c[2] {
		c[0], c[2] = c[2], c[0]
	}
	if c[1] > c[3] {
		c[1], c[3] = c[3], c[1]
	}
	return c, true
}
