package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureOverlay(t *testing.T) {
	rect := Rect{Left: 100, Bottom: 700, Width: 120, Height: 14}

	tests := []struct {
		name     string
		field    *fakeField
		value    string
		expected []OverlayEntry
	}{
		{
			name: "empty_value_produces_nothing",
			field: &fakeField{widgets: []Widget{
				&fakeWidget{page: 1, hasPage: true, rect: rect, hasRect: true, fontSize: 12},
			}},
			value:    "",
			expected: nil,
		},
		{
			name: "one_entry_per_widget",
			field: &fakeField{widgets: []Widget{
				&fakeWidget{page: 1, hasPage: true, rect: rect, hasRect: true, fontSize: 12},
				&fakeWidget{page: 3, hasPage: true, rect: rect, hasRect: true, fontSize: 12},
			}},
			value: "Ada",
			expected: []OverlayEntry{
				{Page: 1, Rect: rect, Text: "Ada", FontSize: 12},
				{Page: 3, Rect: rect, Text: "Ada", FontSize: 12},
			},
		},
		{
			name: "widget_without_rect_skipped_others_kept",
			field: &fakeField{widgets: []Widget{
				&fakeWidget{page: 1, hasPage: true, hasRect: false, fontSize: 12},
				&fakeWidget{page: 2, hasPage: true, rect: rect, hasRect: true, fontSize: 12},
			}},
			value: "x",
			expected: []OverlayEntry{
				{Page: 2, Rect: rect, Text: "x", FontSize: 12},
			},
		},
		{
			name: "widget_without_page_skipped",
			field: &fakeField{widgets: []Widget{
				&fakeWidget{hasPage: false, rect: rect, hasRect: true, fontSize: 12},
			}},
			value:    "x",
			expected: nil,
		},
		{
			name: "default_font_size_substituted",
			field: &fakeField{widgets: []Widget{
				&fakeWidget{page: 1, hasPage: true, rect: rect, hasRect: true, fontSize: 0},
				&fakeWidget{page: 1, hasPage: true, rect: rect, hasRect: true, fontSize: -3},
			}},
			value: "x",
			expected: []OverlayEntry{
				{Page: 1, Rect: rect, Text: "x", FontSize: DefaultFontSize},
				{Page: 1, Rect: rect, Text: "x", FontSize: DefaultFontSize},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := CaptureOverlay(tt.field, tt.value)
			assert.Equal(t, tt.expected, entries)
		})
	}
}

func TestCaptureOverlay_FontSizeAlwaysPositive(t *testing.T) {
	rect := Rect{Left: 0, Bottom: 0, Width: 10, Height: 10}
	field := &fakeField{widgets: []Widget{
		&fakeWidget{page: 1, hasPage: true, rect: rect, hasRect: true, fontSize: -1},
		&fakeWidget{page: 1, hasPage: true, rect: rect, hasRect: true, fontSize: 8},
	}}

	entries := CaptureOverlay(field, "v")
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Greater(t, e.FontSize, 0.0)
	}
}
