package jsonmodel

import "fmt"

type modelBuilder struct {
	model  *Model
	fields []*Field
	index  map[string]int
	err    error
}

type fieldStep struct {
	b *modelBuilder
	f *Field
}

// Declare opens a builder for the fields of m. Fields keep the order in which
// they are registered. The first declaration problem is kept and reported by
// Build.
func Declare(m *Model) *modelBuilder {
	b := &modelBuilder{model: m, index: map[string]int{}}
	if m == nil {
		b.err = &DeclarationError{Reason: "nil model"}
	} else if m.name == "" {
		b.err = &DeclarationError{Reason: "model name must not be empty"}
	}
	return b
}

// Field registers a field with its type.
func (b *modelBuilder) Field(name string, t Type) *fieldStep {
	f := &Field{name: name, typ: t}
	if b.err == nil {
		switch _, dup := b.index[name]; {
		case name == "":
			b.fail(name, "field name must not be empty")
		case dup:
			b.fail(name, "duplicate field name")
		default:
			if reason := t.check(); reason != "" {
				b.fail(name, reason)
			}
		}
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, f)
	return &fieldStep{b: b, f: f}
}

func (b *modelBuilder) fail(field, reason string) {
	if b.err == nil {
		b.err = &DeclarationError{Model: b.model.name, Field: field, Reason: reason}
	}
}

// Required marks the field as required.
func (f *fieldStep) Required() *fieldStep {
	f.f.required = true
	return f
}

// Optional marks the field as optional (default).
func (f *fieldStep) Optional() *fieldStep {
	f.f.required = false
	return f
}

// Default sets the value materialized into new instances. Scalar defaults
// must be accepted by Coerce for the field kind; list defaults must be
// sequences. Embedded fields take no default.
func (f *fieldStep) Default(v any) *fieldStep {
	k := f.f.typ.kind
	switch {
	case v == nil:
	case k.IsScalar():
		cv, err := Coerce(k, v)
		if err != nil {
			f.b.fail(f.f.name, fmt.Sprintf("invalid default: %v", err))
			return f
		}
		v = cv
	case k == KindList:
		if !isSequence(v) {
			f.b.fail(f.f.name, "invalid default: list default must be a sequence")
			return f
		}
	default:
		f.b.fail(f.f.name, "embedded fields take no default")
		return f
	}
	f.f.def = cloneValue(v)
	f.f.hasDefault = true
	return f
}

// Validate appends validators, run in order during validation.
func (f *fieldStep) Validate(vs ...Validator) *fieldStep {
	for _, v := range vs {
		if v == nil {
			f.b.fail(f.f.name, "nil validator")
			continue
		}
		f.f.validators = append(f.f.validators, v)
	}
	return f
}

// ValidateFunc appends function validators, adapted with ValidatorFunc.
func (f *fieldStep) ValidateFunc(fns ...func(any) error) *fieldStep {
	for _, fn := range fns {
		if fn == nil {
			f.b.fail(f.f.name, "nil validator")
			continue
		}
		f.f.validators = append(f.f.validators, ValidatorFunc(fn))
	}
	return f
}

func (f *fieldStep) Field(name string, t Type) *fieldStep { return f.b.Field(name, t) }
func (f *fieldStep) Build() (*Model, error)               { return f.b.Build() }
func (f *fieldStep) MustBuild() *Model                    { return f.b.MustBuild() }

// Build seals the model. A model can be declared only once.
func (b *modelBuilder) Build() (*Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.model.claimed.CompareAndSwap(false, true) {
		return nil, &DeclarationError{Model: b.model.name, Reason: "model already declared"}
	}
	b.model.fields = b.fields
	b.model.index = b.index
	b.model.sealed.Store(true)
	return b.model, nil
}

// MustBuild is like Build but panics on error.
func (b *modelBuilder) MustBuild() *Model {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
