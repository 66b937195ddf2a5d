// Package optional implements the wire conventions for optional and
// tri-state update fields.
//
// On the wire an optional value is a zero-or-one element JSON array: [] is
// unset and [v] is set. An update field nests that encoding once more so the
// three cases stay distinct: absent or [] leaves the field unchanged, [[]]
// clears it and [[v]] sets it to v.
package optional

import (
	"encoding/json"
	"fmt"
)

// Value is an optional value. The zero Value is unset.
type Value[T any] struct {
	v   T
	set bool
}

// Some returns a set Value.
func Some[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// None returns an unset Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr converts a nil-able pointer into a Value.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Value[T]) IsSet() bool { return o.set }

// Get returns the value and whether it is set.
func (o Value[T]) Get() (T, bool) { return o.v, o.set }

// OrElse returns the value if set, otherwise def.
func (o Value[T]) OrElse(def T) T {
	if o.set {
		return o.v
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when unset.
func (o Value[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.v
	return &v
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("[]"), nil
	}
	return json.Marshal([]T{o.v})
}

func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Value[T]{}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("optional value must be an array: %w", err)
	}
	switch len(items) {
	case 0:
		*o = Value[T]{}
	case 1:
		*o = Some(items[0])
	default:
		return fmt.Errorf("optional value must have at most one element, got %d", len(items))
	}
	return nil
}

// UpdateKind enumerates the three states of an update field.
type UpdateKind int

const (
	Unchanged UpdateKind = iota
	Cleared
	SetTo
)

// Update is a tri-state update field. The zero Update is Unchanged.
type Update[T any] struct {
	kind UpdateKind
	v    T
}

// Keep returns an Unchanged update.
func Keep[T any]() Update[T] { return Update[T]{} }

// Clear returns a Cleared update.
func Clear[T any]() Update[T] { return Update[T]{kind: Cleared} }

// Set returns a SetTo(v) update.
func Set[T any](v T) Update[T] { return Update[T]{kind: SetTo, v: v} }

func (u Update[T]) Kind() UpdateKind { return u.kind }

// Value returns the new value when the update is SetTo.
func (u Update[T]) Value() (T, bool) { return u.v, u.kind == SetTo }

// Apply returns the result of applying the update to an optional current value.
func (u Update[T]) Apply(current Value[T]) Value[T] {
	switch u.kind {
	case Cleared:
		return None[T]()
	case SetTo:
		return Some(u.v)
	default:
		return current
	}
}

// ApplyRequired applies the update to a field that cannot be cleared.
// ok is false when the update tries to clear it.
func (u Update[T]) ApplyRequired(current T) (T, bool) {
	switch u.kind {
	case Cleared:
		return current, false
	case SetTo:
		return u.v, true
	default:
		return current, true
	}
}

func (u Update[T]) MarshalJSON() ([]byte, error) {
	switch u.kind {
	case Cleared:
		return []byte("[[]]"), nil
	case SetTo:
		return json.Marshal([][]T{{u.v}})
	default:
		return []byte("[]"), nil
	}
}

func (u *Update[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = Update[T]{}
		return nil
	}
	var outer []Value[T]
	if err := json.Unmarshal(data, &outer); err != nil {
		return fmt.Errorf("update field must be a nested array: %w", err)
	}
	switch len(outer) {
	case 0:
		*u = Keep[T]()
	case 1:
		if v, ok := outer[0].Get(); ok {
			*u = Set(v)
		} else {
			*u = Clear[T]()
		}
	default:
		return fmt.Errorf("update field must have at most one element, got %d", len(outer))
	}
	return nil
}
