package editor

import (
	"errors"
	"sort"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrUnknownAttribute is returned by Update for attribute names outside
	// the Field shape (and for the immutable id).
	ErrUnknownAttribute = errors.New("editor: unknown attribute")
	// ErrInvalidValue is returned by Update when a value can not be converted
	// to the attribute's type.
	ErrInvalidValue = errors.New("editor: invalid value")
)

// List is an ordered field list. Every operation returns a fresh list and
// leaves its input untouched.
type List []model.Field

// Direction moves a field towards the start (Up) or the end (Down).
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Append adds a factory-created field of type t at the end.
func Append(list List, factory *model.Factory, t model.FieldType) List {
	if factory == nil {
		factory = model.NewFactory()
	}
	out := clone(list, 1)
	return append(out, factory.New(t))
}

// Remove drops the field with id. Unknown ids leave the list as is.
func Remove(list List, id string) List {
	out := make(List, 0, len(list))
	for _, field := range list {
		if field.ID == id {
			continue
		}
		out = append(out, field.Clone())
	}
	return out
}

// Move relocates the field with id to index+dir. Unknown ids and targets
// outside the list are no-ops; there is no wrap-around.
func Move(list List, id string, dir Direction) List {
	out := clone(list, 0)
	from := indexOf(out, id)
	if from < 0 {
		return out
	}
	to := from + int(dir)
	if to < 0 || to >= len(out) || to == from {
		return out
	}

	field := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(List{field}, out[to:]...)...)
	return out
}

// Update replaces one attribute of the field with id. The position and all
// other attributes are preserved. An unknown id is a no-op.
func Update(list List, id string, attr Attribute, value any) (List, error) {
	out := clone(list, 0)
	idx := indexOf(out, id)
	if idx < 0 {
		if !attr.Valid() {
			return out, ErrUnknownAttribute
		}
		return out, nil
	}

	updated, err := apply(out[idx], attr, value)
	if err != nil {
		return clone(list, 0), err
	}
	out[idx] = updated
	return out, nil
}

// Find returns the field with id, its index and whether it exists.
func Find(list List, id string) (model.Field, int, bool) {
	idx := indexOf(list, id)
	if idx < 0 {
		return model.Field{}, -1, false
	}
	return list[idx].Clone(), idx, true
}

// DuplicateNames returns the names used by more than one field, sorted.
// Collisions are allowed; callers surface them as warnings.
func DuplicateNames(list List) []string {
	counts := make(map[string]int, len(list))
	for _, field := range list {
		counts[field.Name]++
	}
	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

func indexOf(list List, id string) int {
	for i, field := range list {
		if field.ID == id {
			return i
		}
	}
	return -1
}

func clone(list List, extra int) List {
	out := make(List, len(list), len(list)+extra)
	for i, field := range list {
		out[i] = field.Clone()
	}
	return out
}
