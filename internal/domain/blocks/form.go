package blocks

import "fmt"

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindMarkdown FieldKind = "markdown"
	KindURL      FieldKind = "url"
	KindColor    FieldKind = "color"
	KindList     FieldKind = "list"
)

// Field is one input of a block editor. List fields describe their item shape
// through Item.
type Field struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Kind  FieldKind `json:"kind"`
	Item  []Field   `json:"item,omitempty"`
}

type FormField struct {
	Field
	Value any `json:"value"`
}

// Form is the editor shown for a block. Unavailable forms carry only a
// message.
type Form struct {
	Type      string      `json:"type"`
	Available bool        `json:"available"`
	Message   string      `json:"message,omitempty"`
	Fields    []FormField `json:"fields,omitempty"`
}

// Change returns the partial props update produced by editing one field.
func (f Form) Change(name string, value any) (Props, error) {
	if !f.Available {
		return nil, fmt.Errorf("%s: %w", f.Type, ErrNoEditor)
	}
	for _, ff := range f.Fields {
		if ff.Name == name {
			return Props{name: cloneValue(value)}, nil
		}
	}
	return nil, fmt.Errorf("%s.%s: %w", f.Type, name, ErrUnknownField)
}

// Value returns the current value of a field, or nil.
func (f Form) Value(name string) any {
	for _, ff := range f.Fields {
		if ff.Name == name {
			return ff.Value
		}
	}
	return nil
}
