package jsonmodel

import "strings"

// Kind enumerates the semantic kinds a field can hold.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDate
	KindTime
	KindDateTime
	KindEmbedded
	KindList
)

var kindNames = [...]string{
	KindString:   "string",
	KindInt:      "integer",
	KindFloat:    "number",
	KindBool:     "boolean",
	KindDate:     "date",
	KindTime:     "time",
	KindDateTime: "datetime",
	KindEmbedded: "embedded",
	KindList:     "list",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsScalar reports whether k holds a single primitive value.
func (k Kind) IsScalar() bool { return k >= KindString && k <= KindDateTime }

// Type is a kind together with its closed set of allowed members: the models
// of an Embedded type or the member types of a List.
type Type struct {
	kind    Kind
	models  []*Model
	members []Type
}

// String declares a string field.
func String() Type { return Type{kind: KindString} }

// Int declares an integer field.
func Int() Type { return Type{kind: KindInt} }

// Float declares a floating point field.
func Float() Type { return Type{kind: KindFloat} }

// Bool declares a boolean field.
func Bool() Type { return Type{kind: KindBool} }

// Date declares a calendar date field (YYYY-MM-DD on the wire).
func Date() Type { return Type{kind: KindDate} }

// Time declares a time-of-day field (HH:MM:SS on the wire).
func Time() Type { return Type{kind: KindTime} }

// DateTime declares an RFC 3339 timestamp field.
func DateTime() Type { return Type{kind: KindDateTime} }

// Embedded declares a nested instance of one of the given models. With more
// than one model the value may be an instance of any of them.
func Embedded(models ...*Model) Type {
	return Type{kind: KindEmbedded, models: append([]*Model(nil), models...)}
}

// List declares an ordered sequence whose elements must match one of the
// member types. Members are scalar types or Embedded types with one model.
func List(members ...Type) Type {
	return Type{kind: KindList, members: append([]Type(nil), members...)}
}

// Kind returns the semantic kind.
func (t Type) Kind() Kind { return t.kind }

// Models returns the allowed models of an Embedded type.
func (t Type) Models() []*Model { return append([]*Model(nil), t.models...) }

// Members returns the allowed member types of a List type.
func (t Type) Members() []Type { return append([]Type(nil), t.members...) }

// String names the type for messages, e.g. "Cat|Dog" or "list[string]".
func (t Type) String() string {
	switch t.kind {
	case KindEmbedded:
		names := make([]string, len(t.models))
		for i, m := range t.models {
			names[i] = m.Name()
		}
		return strings.Join(names, "|")
	case KindList:
		return "list[" + memberNames(t.members) + "]"
	default:
		return t.kind.String()
	}
}

// check reports why t is not a valid field type, or "" when it is.
func (t Type) check() string {
	switch t.kind {
	case KindEmbedded:
		if len(t.models) == 0 {
			return "embedded type needs at least one model"
		}
		for _, m := range t.models {
			if m == nil {
				return "embedded type references a nil model"
			}
		}
	case KindList:
		if len(t.members) == 0 {
			return "list type needs at least one member"
		}
		for _, m := range t.members {
			switch {
			case m.kind.IsScalar():
			case m.kind == KindEmbedded && len(m.models) == 1 && m.models[0] != nil:
			default:
				return "list member must be a scalar type or an embedded type with one model, got " + m.kind.String()
			}
		}
	default:
		if !t.kind.IsScalar() {
			return "unknown kind"
		}
	}
	return ""
}
