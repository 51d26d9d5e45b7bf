package jsonmodel

import "time"

// ToStruct converts the instance into a plain nested value: maps keyed by
// field name, []any sequences and scalars. Unset fields are absent; fields set
// to nil appear as nil. Scalars are emitted in the canonical form Coerce gives
// them, so FromStruct followed by ToStruct reproduces the output. ToStruct
// never validates: values outside the declared shape are emitted as they are.
func (in *Instance) ToStruct() map[string]any {
	out := make(map[string]any, len(in.values))
	for _, f := range in.model.fields {
		v, ok := in.values[f.name]
		if !ok {
			continue
		}
		out[f.name] = structValue(f.typ, v)
	}
	return out
}

func structValue(t Type, v any) any {
	switch t.kind {
	case KindEmbedded:
		if in, ok := v.(*Instance); ok {
			if in == nil {
				return nil
			}
			return in.ToStruct()
		}
		return v
	case KindList:
		if !isSequence(v) {
			return v
		}
		src := sequence(v)
		out := make([]any, len(src))
		for i, el := range src {
			out[i] = structElement(t.members, el)
		}
		return out
	default:
		return structScalar(t.kind, v)
	}
}

func structElement(members []Type, el any) any {
	if in, ok := el.(*Instance); ok {
		if in == nil {
			return nil
		}
		return in.ToStruct()
	}
	if m, ok := matchMember(members, el); ok {
		return structScalar(m.kind, el)
	}
	if t, ok := el.(time.Time); ok {
		return formatTemporal(KindDateTime, t)
	}
	return el
}

func structScalar(kind Kind, v any) any {
	if cv, ok := coerce(kind, v); ok {
		v = cv
	}
	if t, ok := v.(time.Time); ok {
		return formatTemporal(kind, t)
	}
	return v
}
