package jsonmodel

import "strings"

// Validate checks the instance depth-first in field declaration order and
// returns the first failure as a *ValidationError, or nil.
func (in *Instance) Validate() error {
	if err := validateInstance(in, nil); err != nil {
		return err
	}
	return nil
}

func validateInstance(in *Instance, at Path) *ValidationError {
	for _, f := range in.model.fields {
		if err := validateField(in, f, at.Field(f.name)); err != nil {
			return err
		}
	}
	return nil
}

func validateField(in *Instance, f *Field, at Path) *ValidationError {
	v, ok := in.values[f.name]
	if !ok || v == nil {
		if f.required {
			return missingRequired(at)
		}
		return nil
	}
	if err := checkShape(f.typ, v, at); err != nil {
		return err
	}
	// first failing validator wins; later ones never run
	for _, val := range f.validators {
		if cause := val.Check(v); cause != nil {
			return validatorFailure(at, cause)
		}
	}
	switch f.typ.kind {
	case KindEmbedded:
		return validateInstance(v.(*Instance), at)
	case KindList:
		for i, el := range sequence(v) {
			ep := at.Index(i)
			member, ok := matchMember(f.typ.members, el)
			if !ok {
				return typeMismatch(ep, memberNames(f.typ.members), describe(el))
			}
			if member.kind == KindEmbedded {
				if err := validateInstance(el.(*Instance), ep); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// checkShape verifies the top-level runtime shape of a present value.
func checkShape(t Type, v any, at Path) *ValidationError {
	switch t.kind {
	case KindEmbedded:
		if !instanceOfAny(v, t.models) {
			return typeMismatch(at, t.String(), describe(v))
		}
	case KindList:
		if !isSequence(v) {
			return typeMismatch(at, t.String(), describe(v))
		}
	default:
		if _, ok := coerce(t.kind, v); !ok {
			return typeMismatch(at, t.kind.String(), describe(v))
		}
	}
	return nil
}

// matchMember returns the first member type, in declared order, that accepts
// the runtime shape of el.
func matchMember(members []Type, el any) (Type, bool) {
	for _, m := range members {
		if m.kind == KindEmbedded {
			if instanceOfAny(el, m.models) {
				return m, true
			}
			continue
		}
		if _, ok := coerce(m.kind, el); ok {
			return m, true
		}
	}
	return Type{}, false
}

func instanceOfAny(v any, models []*Model) bool {
	in, ok := v.(*Instance)
	if !ok || in == nil {
		return false
	}
	for _, m := range models {
		if in.model == m {
			return true
		}
	}
	return false
}

func memberNames(members []Type) string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.String()
	}
	return strings.Join(names, "|")
}
