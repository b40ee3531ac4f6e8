package cms

import "strings"

// Filter is a filter rule object. Keys are field names or the logical
// operators "_and" and "_or".
type Filter map[string]any

// Condition is an operator applied to a single field, such as {"_eq": "x"}.
type Condition map[string]any

// Where returns a filter holding one condition at a dot-separated path.
// Relation paths nest: "category.slug" becomes {"category":{"slug":cond}}.
func Where(path string, cond Condition) Filter {
	return Filter{}.Where(path, cond)
}

// Where adds a condition at path and returns the filter.
func (f Filter) Where(path string, cond Condition) Filter {
	if f == nil {
		f = Filter{}
	}

	parts := strings.Split(path, ".")
	node := map[string]any(f)
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}

	last := parts[len(parts)-1]
	existing, ok := node[last].(map[string]any)
	if !ok {
		existing = map[string]any{}
		node[last] = existing
	}
	for op, v := range cond {
		existing[op] = v
	}
	return f
}

// Or adds an "_or" group to f and returns the filter.
func (f Filter) Or(filters ...Filter) Filter {
	if f == nil {
		f = Filter{}
	}
	f["_or"] = filters
	return f
}

// Or matches when any of the filters matches.
func Or(filters ...Filter) Filter {
	return Filter{"_or": filters}
}

// And matches when all of the filters match.
func And(filters ...Filter) Filter {
	return Filter{"_and": filters}
}

// Eq matches values equal to v.
func Eq(v any) Condition {
	return Condition{"_eq": v}
}

// Neq matches values not equal to v.
func Neq(v any) Condition {
	return Condition{"_neq": v}
}

// IContains matches strings containing s, ignoring case.
func IContains(s string) Condition {
	return Condition{"_icontains": s}
}

// In matches values contained in vs.
func In[T any](vs ...T) Condition {
	return Condition{"_in": vs}
}

// Null matches null values.
func Null() Condition {
	return Condition{"_null": true}
}
