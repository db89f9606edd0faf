package fill

// CaptureOverlay records one overlay entry per resolvable widget of a
// field. An empty value produces nothing. A widget whose page or
// rectangle cannot be resolved is skipped individually; the field's
// other widgets are still captured. A field placed on several pages
// therefore yields one entry per occurrence, mirroring every place the
// value originally appeared.
func CaptureOverlay(f Field, value string) []OverlayEntry {
	if value == "" {
		return nil
	}

	var entries []OverlayEntry
	for _, w := range f.Widgets() {
		page, ok := w.Page()
		if !ok {
			continue
		}
		rect, ok := w.Rect()
		if !ok {
			continue
		}

		size := w.FontSize()
		if size <= 0 {
			size = DefaultFontSize
		}

		entries = append(entries, OverlayEntry{
			Page:     page,
			Rect:     rect,
			Text:     value,
			FontSize: size,
		})
	}
	return entries
}
