package engine

import (
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/fillkit/fillkit/internal/pdf/fill"
)

// acroField adapts an AcroForm field dictionary to the fill.Field
// interface. objNr is the field's indirect object number, 0 when the
// field was reached through a direct object.
type acroField struct {
	doc   *Document
	dict  types.Dict
	objNr int
}

// fieldFromObject resolves an object into a field adapter, or nil when
// the object is not a usable dictionary.
func (d *Document) fieldFromObject(obj types.Object) *acroField {
	dict, err := d.ctx.DereferenceDict(obj)
	if err != nil || dict == nil {
		return nil
	}
	objNr := 0
	if ir, ok := obj.(types.IndirectRef); ok {
		objNr = int(ir.ObjectNumber)
	}
	return &acroField{doc: d, dict: dict, objNr: objNr}
}

// Name returns the field's local name (the T entry).
func (f *acroField) Name() string {
	obj, found := f.dict.Find("T")
	if !found {
		return ""
	}
	name, err := f.doc.ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return ""
	}
	return name
}

// Kids returns the field's child fields. A Kids entry carrying its own
// T entry is a child field; an entry that looks like a widget
// annotation (Rect present or Widget subtype) belongs to Widgets
// instead. Unresolvable entries are skipped.
func (f *acroField) Kids() []fill.Field {
	var kids []fill.Field
	for _, obj := range f.kidObjects() {
		kid := f.doc.fieldFromObject(obj)
		if kid == nil || kid.isWidgetAnnotation() {
			continue
		}
		kids = append(kids, kid)
	}
	return kids
}

// Widgets returns the field's visual placements. A field whose own
// dictionary carries a Rect is a merged field/widget; otherwise the
// widgets are the annotation-shaped entries of the Kids array.
func (f *acroField) Widgets() []fill.Widget {
	if _, found := f.dict.Find("Rect"); found {
		return []fill.Widget{&acroWidget{doc: f.doc, field: f, dict: f.dict, objNr: f.objNr}}
	}

	var widgets []fill.Widget
	for _, obj := range f.kidObjects() {
		kid := f.doc.fieldFromObject(obj)
		if kid == nil || !kid.isWidgetAnnotation() {
			continue
		}
		widgets = append(widgets, &acroWidget{doc: f.doc, field: f, dict: kid.dict, objNr: kid.objNr})
	}
	return widgets
}

// SetValue writes the field's V entry as an escaped string literal.
func (f *acroField) SetValue(value string) error {
	f.dict["V"] = types.StringLiteral(escapeTextString(value))
	return nil
}

// RegenerateAppearance drops stale appearance streams and flags the
// form so viewers rebuild appearances from the new value.
func (f *acroField) RegenerateAppearance() error {
	delete(f.dict, "AP")
	for _, w := range f.Widgets() {
		if aw, ok := w.(*acroWidget); ok {
			delete(aw.dict, "AP")
		}
	}
	f.doc.acroForm["NeedAppearances"] = types.Boolean(true)
	return nil
}

func (f *acroField) kidObjects() types.Array {
	kidsObj, found := f.dict.Find("Kids")
	if !found {
		return nil
	}
	arr, err := f.doc.ctx.DereferenceArray(kidsObj)
	if err != nil {
		return nil
	}
	return arr
}

// isWidgetAnnotation reports whether this dictionary is a widget
// annotation rather than a child field.
func (f *acroField) isWidgetAnnotation() bool {
	if _, found := f.dict.Find("T"); found {
		return false
	}
	if _, found := f.dict.Find("Rect"); found {
		return true
	}
	if subObj, found := f.dict.Find("Subtype"); found {
		if name, err := f.doc.ctx.DereferenceName(subObj, model.V10, nil); err == nil && name == "Widget" {
			return true
		}
	}
	return false
}

// acroWidget adapts a widget annotation dictionary to fill.Widget.
type acroWidget struct {
	doc   *Document
	field *acroField
	dict  types.Dict
	objNr int
}

// Page locates the widget's page via the annotation index built at open
// time, falling back to the widget's P entry.
func (w *acroWidget) Page() (int, bool) {
	if w.objNr != 0 {
		if page, ok := w.doc.annotPage[w.objNr]; ok {
			return page, true
		}
	}
	if pObj, found := w.dict.Find("P"); found {
		if ir, ok := pObj.(types.IndirectRef); ok {
			if page, ok := w.doc.pageNr[int(ir.ObjectNumber)]; ok {
				return page, true
			}
		}
	}
	return 0, false
}

// Rect returns the widget rectangle in page units.
func (w *acroWidget) Rect() (fill.Rect, bool) {
	rectObj, found := w.dict.Find("Rect")
	if !found {
		return fill.Rect{}, false
	}
	c, ok := w.doc.rect4(rectObj)
	if !ok {
		return fill.Rect{}, false
	}
	return fill.Rect{
		Left:   c[0],
		Bottom: c[1],
		Width:  c[2] - c[0],
		Height: c[3] - c[1],
	}, true
}

// FontSize returns the font size declared in the nearest DA string:
// widget, then owning field, then the form default. Zero means
// undeclared; the core substitutes its own default.
func (w *acroWidget) FontSize() float64 {
	for _, dict := range []types.Dict{w.dict, w.field.dict, w.doc.acroForm} {
		if size := w.doc.fontSizeFromDA(dict); size > 0 {
			return size
		}
	}
	return 0
}

func (d *Document) fontSizeFromDA(dict types.Dict) float64 {
	daObj, found := dict.Find("DA")
	if !found {
		return 0
	}
	da, err := d.ctx.DereferenceStringOrHexLiteral(daObj, model.V10, nil)
	if err != nil {
		return 0
	}
	return fontSizeFromDA(da)
}

// fontSizeFromDA extracts the size operand of the Tf operator from a
// default appearance string such as "/Helv 12 Tf 0 g".
func fontSizeFromDA(da string) float64 {
	parts := strings.Fields(da)
	for i, p := range parts {
		if p != "Tf" || i < 1 {
			continue
		}
		if size, err := strconv.ParseFloat(parts[i-1], 64); err == nil {
			return size
		}
	}
	return 0
}

// escapeTextString escapes the characters that delimit PDF string
// literals.
func escapeTextString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', '(', ')':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
