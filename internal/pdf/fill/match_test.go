package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Name", expected: "name"},
		{name: "trims_whitespace", input: "  Addr.Line1 \t", expected: "addr.line1"},
		{name: "keeps_index_suffix", input: "Line1[0]", expected: "line1[0]"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, name := range []string{"Name", "  Addr.Line1[2] ", "f_2[0]", "x"} {
		once := Normalize(name)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestStripIndexes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single_suffix", input: "Line1[0]", expected: "Line1"},
		{name: "nested_suffixes", input: "topmostSubform[0].Page1[0].f1_01[0]", expected: "topmostSubform.Page1.f1_01"},
		{name: "no_suffix", input: "Addr.Line1", expected: "Addr.Line1"},
		{name: "non_numeric_brackets_kept", input: "a[x]", expected: "a[x]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripIndexes(tt.input))
		})
	}
}

func TestIndex_Resolve(t *testing.T) {
	f1 := &fakeField{name: "Name[0]"}
	f2 := &fakeField{name: "Addr.Line1"}
	idx := BuildIndex([]Field{f1, f2})

	tests := []struct {
		name     string
		lookup   string
		found    bool
		resolved string
	}{
		{name: "exact", lookup: "Name[0]", found: true, resolved: "Name[0]"},
		{name: "case_fold_only", lookup: "name[0]", found: true, resolved: "Name[0]"},
		{name: "stripped_alias", lookup: "name", found: true, resolved: "Name[0]"},
		{name: "caller_supplied_suffix_stripped", lookup: "Addr.Line1[2]", found: true, resolved: "Addr.Line1"},
		{name: "whitespace_trimmed", lookup: " ADDR.LINE1 ", found: true, resolved: "Addr.Line1"},
		{name: "unknown", lookup: "Nope", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := idx.Resolve(tt.lookup)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.resolved, entry.Name)
			}
		})
	}
}

func TestIndex_Resolve_NormalizedInputEquivalence(t *testing.T) {
	idx := BuildIndex([]Field{
		&fakeField{name: "Name[0]"},
		&fakeField{name: "Addr.Line1"},
	})

	for _, name := range []string{"Name[0]", "  name ", "ADDR.LINE1[3]"} {
		raw, okRaw := idx.Resolve(name)
		norm, okNorm := idx.Resolve(Normalize(name))
		assert.Equal(t, okRaw, okNorm, name)
		assert.Equal(t, raw.Name, norm.Name, name)
	}
}

func TestIndex_Resolve_StrippingNeverHijacksRegisteredName(t *testing.T) {
	// "Line1" is a real field of its own, so "Line1[5]" must not fall
	// through to it unless the stripped alias points there.
	plain := &fakeField{name: "Line1"}
	indexed := &fakeField{name: "Line1[0]"}
	idx := BuildIndex([]Field{plain, indexed})

	entry, ok := idx.Resolve("Line1")
	require.True(t, ok)
	assert.Same(t, plain, entry.Field)

	// The stripped form of Line1[5] is line1, which the plain field
	// owns exactly; resolution lands there, never on Line1[0].
	entry, ok = idx.Resolve("Line1[5]")
	require.True(t, ok)
	assert.Same(t, plain, entry.Field)
}

func TestIndex_Sample(t *testing.T) {
	idx := BuildIndex([]Field{
		&fakeField{name: "b"},
		&fakeField{name: "a[0]"},
		&fakeField{name: "c"},
	})

	assert.Equal(t, []string{"a[0]", "b", "c"}, idx.Sample(10))
	assert.Len(t, idx.Sample(2), 2)
	assert.Equal(t, []string{"a[0]", "b", "c"}, idx.Sample(0), "zero limit means unbounded")
}
