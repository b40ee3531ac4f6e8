package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Keyed is implemented by records that can be the target of a relation.
type Keyed interface {
	Key() string
}

// Ref is a relation field. The CMS returns either the related identifier or
// the related record, depending on the requested fields.
type Ref[T Keyed] struct {
	id   string
	item *T
}

// RefTo returns an unexpanded relation to id.
func RefTo[T Keyed](id string) Ref[T] {
	return Ref[T]{id: id}
}

// Expanded returns a relation carrying the full record.
func Expanded[T Keyed](item T) Ref[T] {
	return Ref[T]{id: item.Key(), item: &item}
}

// IsZero reports whether the relation is absent (JSON null or missing).
func (r Ref[T]) IsZero() bool {
	return r.id == "" && r.item == nil
}

// IsExpanded reports whether the related record was returned.
func (r Ref[T]) IsExpanded() bool {
	return r.item != nil
}

// ID returns the related identifier. It is set for both variants.
func (r Ref[T]) ID() string {
	return r.id
}

// Item returns the related record when it was expanded.
func (r Ref[T]) Item() (T, bool) {
	if r.item == nil {
		var zero T
		return zero, false
	}
	return *r.item, true
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch {
	case r.item != nil:
		return json.Marshal(r.item)
	case r.id != "":
		return json.Marshal(r.id)
	default:
		return []byte("null"), nil
	}
}

func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	*r = Ref[T]{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.id = id
	case '{':
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}
		r.item = &item
		r.id = item.Key()
	default:
		// join rows use integer keys
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("relation: unsupported value %s", data)
		}
		r.id = n.String()
	}
	return nil
}
