package jsonmodel

import (
	"sort"

	"github.com/reoring/jsonmodel/i18n"
)

// FromStruct rebuilds an instance of m from a plain value such as the output
// of ToStruct or a decoded JSON document. Scalars go through Coerce; nested
// maps become instances. Reconstruction does not validate: required fields
// may stay unset.
//
// Polymorphic members are resolved in declared order and the first member
// that accepts the value wins. A scalar member accepts a value that Coerce
// accepts; a model member accepts a map whose keys all name its fields and
// whose nested values reconstruct without error.
//
// The last DecodeOpt wins when several are given.
func FromStruct(m *Model, v map[string]any, opts ...DecodeOpt) (*Instance, error) {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	d := decoder{opt: opt}
	in, err := d.instance(m, v, nil)
	if err != nil {
		return nil, err
	}
	return in, nil
}

type decoder struct {
	opt DecodeOpt
}

func (d decoder) instance(m *Model, src map[string]any, at Path) (*Instance, *ValidationError) {
	// unknown keys in key-sorted order for a deterministic first error
	if d.opt.Unknown == UnknownStrict {
		uks := make([]string, 0)
		for k := range src {
			if _, known := m.index[k]; !known {
				uks = append(uks, k)
			}
		}
		if len(uks) > 0 {
			sort.Strings(uks)
			return nil, &ValidationError{Path: at.Field(uks[0]), Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)}
		}
	}
	in := New(m, nil)
	for _, f := range m.fields {
		raw, ok := src[f.name]
		if !ok {
			continue
		}
		if raw == nil {
			in.set(f.name, nil)
			continue
		}
		val, err := d.value(f.typ, raw, at.Field(f.name))
		if err != nil {
			return nil, err
		}
		in.set(f.name, val)
	}
	return in, nil
}

func (d decoder) value(t Type, raw any, at Path) (any, *ValidationError) {
	switch t.kind {
	case KindEmbedded:
		in, err := d.embedded(t.models, raw, at)
		if err != nil {
			return nil, err
		}
		return in, nil
	case KindList:
		if !isSequence(raw) {
			return nil, typeMismatch(at, t.String(), describe(raw))
		}
		src := sequence(raw)
		out := make([]any, len(src))
		for i, el := range src {
			v, err := d.member(t.members, el, at.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		cv, ok := coerce(t.kind, raw)
		if !ok {
			return nil, typeMismatch(at, t.kind.String(), describe(raw))
		}
		return cv, nil
	}
}

// embedded picks the first model that reconstructs raw. With a single model
// its error is reported as is.
func (d decoder) embedded(models []*Model, raw any, at Path) (*Instance, *ValidationError) {
	if in, ok := raw.(*Instance); ok && instanceOfAny(in, models) {
		return in, nil
	}
	src, ok := raw.(map[string]any)
	if !ok {
		return nil, typeMismatch(at, Embedded(models...).String(), describe(raw))
	}
	if len(models) == 1 {
		return d.instance(models[0], src, at)
	}
	strict := decoder{opt: DecodeOpt{Unknown: UnknownStrict}}
	for _, m := range models {
		if in, err := strict.instance(m, src, at); err == nil {
			return in, nil
		}
	}
	return nil, typeMismatch(at, Embedded(models...).String(), describe(raw))
}

// member decodes one list element. A list with a single member, or a map
// with a single model member to go to, decodes with the caller's options and
// reports nested errors at their own path. Otherwise members are tried in
// order with strict unknown keys and the first that accepts el wins.
func (d decoder) member(members []Type, el any, at Path) (any, *ValidationError) {
	if len(members) == 1 {
		return d.value(members[0], el, at)
	}
	if _, ok := el.(map[string]any); ok {
		var only []Type
		for _, m := range members {
			if m.kind == KindEmbedded {
				only = append(only, m)
			}
		}
		if len(only) == 1 {
			return d.embedded(only[0].models, el, at)
		}
	}
	strict := decoder{opt: DecodeOpt{Unknown: UnknownStrict}}
	for _, m := range members {
		if m.kind == KindEmbedded {
			if in, err := strict.embedded(m.models, el, at); err == nil {
				return in, nil
			}
			continue
		}
		if cv, ok := coerce(m.kind, el); ok {
			return cv, nil
		}
	}
	return nil, typeMismatch(at, memberNames(members), describe(el))
}
