package fill

// In-memory implementations of the engine-facing interfaces, shared by
// the tests in this package.

type fakeWidget struct {
	page     int
	hasPage  bool
	rect     Rect
	hasRect  bool
	fontSize float64
}

func (w *fakeWidget) Page() (int, bool)  { return w.page, w.hasPage }
func (w *fakeWidget) Rect() (Rect, bool) { return w.rect, w.hasRect }
func (w *fakeWidget) FontSize() float64  { return w.fontSize }

type fakeField struct {
	name    string
	kids    []Field
	widgets []Widget

	values        []string
	regenerated   int
	setValueErr   error
	appearanceErr error
}

func (f *fakeField) Name() string      { return f.name }
func (f *fakeField) Kids() []Field     { return f.kids }
func (f *fakeField) Widgets() []Widget { return f.widgets }

func (f *fakeField) SetValue(value string) error {
	if f.setValueErr != nil {
		return f.setValueErr
	}
	f.values = append(f.values, value)
	return nil
}

func (f *fakeField) RegenerateAppearance() error {
	if f.appearanceErr != nil {
		return f.appearanceErr
	}
	f.regenerated++
	return nil
}

type drawOp struct {
	page     int
	x, y     float64
	fontSize float64
	text     string
}

type fakeCanvas struct {
	pages    []PageSize
	draws    []drawOp
	fontSize float64
	out      []byte

	addPageErr error
	drawErr    error
	bytesErr   error
}

func (c *fakeCanvas) AddPage(size PageSize) error {
	if c.addPageErr != nil {
		return c.addPageErr
	}
	c.pages = append(c.pages, size)
	return nil
}

func (c *fakeCanvas) SetFontSize(points float64) { c.fontSize = points }

func (c *fakeCanvas) DrawText(x, y float64, text string) error {
	if c.drawErr != nil {
		return c.drawErr
	}
	c.draws = append(c.draws, drawOp{
		page:     len(c.pages),
		x:        x,
		y:        y,
		fontSize: c.fontSize,
		text:     text,
	})
	return nil
}

func (c *fakeCanvas) Bytes() ([]byte, error) {
	if c.bytesErr != nil {
		return nil, c.bytesErr
	}
	return c.out, nil
}

type fakeDocument struct {
	fields []Field
	sizes  []PageSize
	raw    []byte
	rawErr error
	closed int
}

func (d *fakeDocument) TopLevelFields() []Field { return d.fields }
func (d *fakeDocument) PageSizes() []PageSize   { return d.sizes }

func (d *fakeDocument) Bytes() ([]byte, error) {
	if d.rawErr != nil {
		return nil, d.rawErr
	}
	return d.raw, nil
}

func (d *fakeDocument) Close() error {
	d.closed++
	return nil
}

type fakeEngine struct {
	doc     *fakeDocument
	openErr error

	blank         *fakeCanvas
	pageCanvas    *fakeCanvas
	pageCanvasErr error
	pageSrc       []byte
}

func (e *fakeEngine) Open(doc []byte) (Document, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	return e.doc, nil
}

func (e *fakeEngine) NewBlankCanvas() Canvas { return e.blank }

func (e *fakeEngine) NewPageCanvas(src []byte) (Canvas, error) {
	if e.pageCanvasErr != nil {
		return nil, e.pageCanvasErr
	}
	e.pageSrc = src
	return e.pageCanvas, nil
}
