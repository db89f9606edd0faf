package fill

// LookupEntry associates a normalized lookup key with the field it
// resolves to and the field's original qualified name.
type LookupEntry struct {
	// Name is the original dot-joined qualified name.
	Name string

	// Field references the node inside the open document.
	Field Field
}

// Index maps normalized field names to lookup entries. A single field
// may be reachable through two keys: its exact normalized name and,
// when different, its index-stripped alias.
type Index map[string]LookupEntry

// pendingField is one unit of indexing work: a node plus the qualified
// name prefix inherited from its ancestors.
type pendingField struct {
	field  Field
	parent string
}

// BuildIndex flattens a field tree into a lookup structure. The walk is
// depth-first in document order and uses an explicit work stack, so
// arbitrarily deep nesting cannot exhaust the call stack. Nodes that
// cannot be resolved are skipped silently; the index holds whatever
// could be built.
func BuildIndex(topLevel []Field) Index {
	idx := make(Index)

	stack := make([]pendingField, 0, len(topLevel))
	for i := len(topLevel) - 1; i >= 0; i-- {
		stack = append(stack, pendingField{field: topLevel[i]})
	}

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if next.field == nil {
			continue
		}

		qualified := qualifiedName(next.parent, next.field.Name())
		if qualified != "" {
			idx.insert(qualified, next.field)
		}

		// Children always inherit the current prefix, even when this
		// node contributed no entry of its own.
		kids := next.field.Kids()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, pendingField{field: kids[i], parent: qualified})
		}
	}

	return idx
}

// insert registers a field under its exact normalized name, overwriting
// any previous holder of that key. Duplicate exact names are a
// malformed-template concern; last writer wins. The index-stripped
// alias is registered only when it differs from the exact key and no
// other field already claims it.
func (idx Index) insert(qualified string, f Field) {
	entry := LookupEntry{Name: qualified, Field: f}

	exact := Normalize(qualified)
	idx[exact] = entry

	stripped := Normalize(StripIndexes(qualified))
	if stripped == exact {
		return
	}
	if _, taken := idx[stripped]; !taken {
		idx[stripped] = entry
	}
}

// qualifiedName joins a parent prefix and a local name with a dot,
// returning whichever is non-empty when the other is absent.
func qualifiedName(parent, local string) string {
	switch {
	case parent == "":
		return local
	case local == "":
		return parent
	default:
		return parent + "." + local
	}
}
