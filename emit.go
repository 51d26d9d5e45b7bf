package jsonmodel

import (
	"strconv"

	js "github.com/reoring/jsonmodel/jsonschema"
)

// JSONSchema projects the model into a JSON Schema document. Models already
// being emitted on the current path are replaced by a "$ref" to the JSON
// Pointer where their emission started, so cyclic declarations terminate.
func (m *Model) JSONSchema() (*js.Schema, error) {
	e := &emitter{onPath: map[*Model]string{}}
	return e.object(m, "")
}

// ToJSONSchema returns the schema document of m as a plain nested value.
func ToJSONSchema(m *Model) (map[string]any, error) {
	s, err := m.JSONSchema()
	if err != nil {
		return nil, err
	}
	return s.Map(), nil
}

type emitter struct {
	// onPath maps models on the current recursion path to their pointer.
	onPath map[*Model]string
}

func (e *emitter) object(m *Model, ptr string) (*js.Schema, error) {
	if at, ok := e.onPath[m]; ok {
		return &js.Schema{Ref: "#" + at}, nil
	}
	if !m.Declared() {
		return nil, &DeclarationError{Model: m.name, Reason: "model referenced before declaration"}
	}
	e.onPath[m] = ptr
	defer delete(e.onPath, m)

	props := make(map[string]*js.Schema, len(m.fields))
	for _, f := range m.fields {
		ps, err := e.field(f, ptr+"/properties/"+escapePointer(f.name))
		if err != nil {
			return nil, err
		}
		props[f.name] = ps
	}
	return &js.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             m.RequiredNames(),
		AdditionalProperties: false,
	}, nil
}

func (e *emitter) field(f *Field, ptr string) (*js.Schema, error) {
	s, err := e.typ(f.typ, ptr)
	if err != nil {
		return nil, err
	}
	if f.hasDefault && f.def != nil {
		s.Default = structValue(f.typ, cloneValue(f.def))
	}
	if s.Ref != "" {
		return s, nil
	}
	for _, v := range f.validators {
		if sm, ok := v.(SchemaModifier); ok {
			sm.ModifySchema(s)
		}
	}
	return s, nil
}

func (e *emitter) typ(t Type, ptr string) (*js.Schema, error) {
	switch t.kind {
	case KindEmbedded:
		return e.alternatives(t.models, ptr)
	case KindList:
		items, err := e.members(t.members, ptr+"/items")
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "array", Items: items}, nil
	default:
		return scalarSchema(t.kind), nil
	}
}

// alternatives emits one object schema, or a oneOf over several models.
func (e *emitter) alternatives(models []*Model, ptr string) (*js.Schema, error) {
	if len(models) == 1 {
		return e.object(models[0], ptr)
	}
	out := &js.Schema{OneOf: make([]*js.Schema, 0, len(models))}
	for i, m := range models {
		s, err := e.object(m, ptr+"/oneOf/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, s)
	}
	return out, nil
}

func (e *emitter) members(members []Type, ptr string) (*js.Schema, error) {
	if len(members) == 1 {
		return e.typ(members[0], ptr)
	}
	out := &js.Schema{OneOf: make([]*js.Schema, 0, len(members))}
	for i, m := range members {
		s, err := e.typ(m, ptr+"/oneOf/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, s)
	}
	return out, nil
}

func scalarSchema(k Kind) *js.Schema {
	switch k {
	case KindString:
		return &js.Schema{Type: "string"}
	case KindInt:
		return &js.Schema{Type: "integer"}
	case KindFloat:
		return &js.Schema{Type: "number"}
	case KindBool:
		return &js.Schema{Type: "boolean"}
	case KindDate:
		return &js.Schema{Type: "string", Format: "date"}
	case KindTime:
		return &js.Schema{Type: "string", Format: "time"}
	default:
		return &js.Schema{Type: "string", Format: "date-time"}
	}
}
