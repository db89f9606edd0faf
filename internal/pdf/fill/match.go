package fill

import (
	"regexp"
	"sort"
	"strings"
)

// indexSuffix matches bracketed numeric array subscripts such as the
// "[0]" in "topmostSubform[0].Page1[0].f1_01[0]".
var indexSuffix = regexp.MustCompile(`\[\d+\]`)

// Normalize prepares a field name for comparison: surrounding
// whitespace is trimmed and the name is folded to lower case.
// Normalizing an already-normalized name is a no-op.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// StripIndexes removes all bracketed numeric subscripts from a name.
func StripIndexes(name string) string {
	return indexSuffix.ReplaceAllString(name, "")
}

// Resolve looks up a caller-supplied field name. The exact normalized
// key is tried first; if absent, the index-stripped normalization of
// the original input is tried, but only when it differs from the exact
// key. A miss on both is not an error: the caller records the field as
// skipped and continues.
func (idx Index) Resolve(name string) (LookupEntry, bool) {
	exact := Normalize(name)
	if entry, ok := idx[exact]; ok {
		return entry, true
	}

	stripped := Normalize(StripIndexes(name))
	if stripped != exact {
		if entry, ok := idx[stripped]; ok {
			return entry, true
		}
	}

	return LookupEntry{}, false
}

// Sample returns up to limit original qualified field names, sorted for
// stable output. It backs the "known fields" diagnostic attached to
// unmatched-field reports.
func (idx Index) Sample(limit int) []string {
	seen := make(map[string]struct{}, len(idx))
	names := make([]string, 0, len(idx))
	for _, entry := range idx {
		if _, dup := seen[entry.Name]; dup {
			continue
		}
		seen[entry.Name] = struct{}{}
		names = append(names, entry.Name)
	}
	sort.Strings(names)

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names
}
