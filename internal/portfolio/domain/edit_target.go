package domain

import "encoding/json"

// EditTarget is either None (create mode) or Editing(id) (update mode).
type EditTarget struct {
	id      int64
	editing bool
}

func NoTarget() EditTarget {
	return EditTarget{}
}

func Editing(id int64) EditTarget {
	return EditTarget{id: id, editing: true}
}

func (t EditTarget) IsEditing() bool { return t.editing }

// ID is only meaningful when IsEditing is true.
func (t EditTarget) ID() int64 { return t.id }

func (t EditTarget) MarshalJSON() ([]byte, error) {
	if !t.editing {
		return []byte("null"), nil
	}
	return json.Marshal(t.id)
}
