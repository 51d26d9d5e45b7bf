package jsonmodel

import js "github.com/reoring/jsonmodel/jsonschema"

// Validator inspects a present field value. A nil error means the value passed.
type Validator interface {
	Check(v any) error
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(v any) error

// Check calls f(v).
func (f ValidatorFunc) Check(v any) error { return f(v) }

// SchemaModifier is implemented by validators that describe their constraint
// in the emitted schema of the field they guard. A field emitted as a "$ref"
// to an enclosing model is left untouched.
type SchemaModifier interface {
	ModifySchema(s *js.Schema)
}
