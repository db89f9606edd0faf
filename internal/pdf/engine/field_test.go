package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFontSizeFromDA(t *testing.T) {
	tests := []struct {
		name     string
		da       string
		expected float64
	}{
		{name: "plain", da: "/Helv 12 Tf 0 g", expected: 12},
		{name: "fractional", da: "/Cour 9.5 Tf", expected: 9.5},
		{name: "auto_size_zero", da: "/Helv 0 Tf 0 g", expected: 0},
		{name: "no_tf_operator", da: "0 0 1 rg", expected: 0},
		{name: "empty", da: "", expected: 0},
		{name: "tf_first_token_ignored", da: "Tf 12", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fontSizeFromDA(tt.da))
		})
	}
}

func TestEscapeTextString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Ada", expected: "Ada"},
		{name: "parens", input: "a(b)c", expected: `a\(b\)c`},
		{name: "backslash", input: `a\b`, expected: `a\\b`},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeTextString(tt.input))
		})
	}
}
