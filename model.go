package jsonmodel

import "sync/atomic"

// Field is the immutable declaration of one field of a Model.
type Field struct {
	name       string
	typ        Type
	required   bool
	def        any
	hasDefault bool
	validators []Validator
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Type returns the declared type.
func (f *Field) Type() Type { return f.typ }

// Kind is shorthand for Type().Kind().
func (f *Field) Kind() Kind { return f.typ.kind }

// Required reports whether the field must be set for validation to pass.
func (f *Field) Required() bool { return f.required }

// Default returns the declared default and whether one was declared.
func (f *Field) Default() (any, bool) { return cloneValue(f.def), f.hasDefault }

// Validators returns the validators in declaration order.
func (f *Field) Validators() []Validator { return append([]Validator(nil), f.validators...) }

// Model is a named, ordered collection of fields. A Model is created empty by
// NewModel so it can be referenced (including by itself) before Declare
// seals its fields; afterwards it never changes and may be shared freely.
type Model struct {
	name   string
	fields []*Field
	index  map[string]int
	// claimed is set by the first Build; sealed once fields are in place.
	claimed atomic.Bool
	sealed  atomic.Bool
}

// NewModel creates an undeclared model. Use Declare to add its fields.
func NewModel(name string) *Model {
	return &Model{name: name}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Declared reports whether the model's fields have been built.
func (m *Model) Declared() bool { return m.sealed.Load() }

// Fields returns the fields in declaration order.
func (m *Model) Fields() []*Field { return append([]*Field(nil), m.fields...) }

// Field looks up a field by name.
func (m *Model) Field(name string) (*Field, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.fields[i], true
}

// RequiredNames returns the names of required fields in declaration order.
func (m *Model) RequiredNames() []string {
	var out []string
	for _, f := range m.fields {
		if f.required {
			out = append(out, f.name)
		}
	}
	return out
}
