package fill

import "fmt"

// Render draws overlay entries onto a canvas, one page per entry in
// pageSizes, in order. For each page the entries targeting it are drawn
// in capture order, so overlapping text ends up layered the same way
// the fields were processed. Text is anchored at the rectangle's left
// and top edges; the vertical coordinate handed to the canvas is
// measured from the page top, converted here from the rectangle's
// bottom-up page coordinates.
//
// Render is a single stateless pass: it holds no state beyond the two
// input collections and the canvas it draws on.
func Render(c Canvas, pageSizes []PageSize, entries []OverlayEntry) ([]byte, error) {
	for i, size := range pageSizes {
		page := i + 1
		if err := c.AddPage(size); err != nil {
			return nil, fmt.Errorf("add page %d: %w", page, err)
		}

		for _, e := range entries {
			if e.Page != page {
				continue
			}
			c.SetFontSize(e.FontSize)
			x := e.Rect.Left
			y := size.Height - e.Rect.Top()
			if err := c.DrawText(x, y, e.Text); err != nil {
				return nil, fmt.Errorf("draw text on page %d: %w", page, err)
			}
		}
	}

	out, err := c.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serialize rendered document: %w", err)
	}
	return out, nil
}
