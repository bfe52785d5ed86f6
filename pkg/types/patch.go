package types

import (
	"encoding/json"
	"strings"
)

// Optional is a tri-state JSON field for partial updates. It
// distinguishes a key omitted from the patch (leave the stored value
// untouched), a key set to null (clear the field), and a key set to a
// value. Plain JSON has no spare "absent" marker, so the convention is:
// omitted key = unset, literal null = clear.
type Optional[T any] struct {
	Set   bool // Key was present in the patch.
	Null  bool // Key was present with an explicit null.
	Value T    // Meaningful only when Set && !Null.
}

// Some returns an Optional carrying the given value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an Optional carrying an explicit clear.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON records presence; encoding/json only invokes it for
// keys that appear in the document, so the zero Optional means "unset".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON emits the value, or null when unset or cleared.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// TaskPatch is a partial update. Only fields whose Optional is Set are
// applied; Null clears the optional fields (due, step). Title and
// completed cannot be cleared, only replaced.
type TaskPatch struct {
	Title     Optional[string]   `json:"title"`
	Completed Optional[bool]     `json:"completed"`
	Due       Optional[string]   `json:"due"`
	Priority  Optional[Priority] `json:"priority"`
	Step      Optional[string]   `json:"step"`
}

// Empty reports whether the patch touches no fields.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Completed.Set && !p.Due.Set && !p.Priority.Set && !p.Step.Set
}

// Validate checks that the fields present in the patch are well-formed.
// A null or whitespace-only title returns ErrTitleRequired; a null or
// unrecognized priority returns ErrInvalidPriority.
func (p TaskPatch) Validate() error {
	if p.Title.Set {
		if p.Title.Null || strings.TrimSpace(p.Title.Value) == "" {
			return ErrTitleRequired
		}
	}
	if p.Priority.Set {
		if p.Priority.Null || !p.Priority.Value.Valid() {
			return ErrInvalidPriority
		}
	}
	return nil
}
