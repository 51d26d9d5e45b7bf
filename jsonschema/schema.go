package jsonschema

import (
	j "github.com/goccy/go-json"
)

// Schema is a minimal JSON Schema representation used for export.
// It covers the vocabulary emitted for declared models; validators may add
// keywords outside this set through Extra.
type Schema struct {
	// Core
	Ref     string `json:"$ref,omitempty"`
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Default any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Numbers
	Minimum          *float64 `json:"minimum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`

	// Strings (lengths also apply to arrays as minItems/maxItems, see Map)
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Extra carries keywords set by custom validators. Entries never override
	// the typed keywords above.
	Extra map[string]any `json:"-"`
}

// Map converts the schema into a plain nested value made of map[string]any,
// []any and scalars. Nil receivers yield an empty map.
func (s *Schema) Map() map[string]any {
	out := map[string]any{}
	if s == nil {
		return out
	}
	for k, v := range s.Extra {
		out[k] = v
	}
	if s.Ref != "" {
		out["$ref"] = s.Ref
	}
	if s.Type != "" {
		out["type"] = s.Type
	}
	if s.Format != "" {
		out["format"] = s.Format
	}
	if s.Default != nil {
		out["default"] = s.Default
	}
	if s.Properties != nil {
		props := make(map[string]any, len(s.Properties))
		for k, p := range s.Properties {
			props[k] = p.Map()
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		req := make([]any, len(s.Required))
		for i, r := range s.Required {
			req[i] = r
		}
		out["required"] = req
	}
	if s.AdditionalProperties != nil {
		out["additionalProperties"] = s.AdditionalProperties
	}
	if s.Items != nil {
		out["items"] = s.Items.Map()
	}
	putFloat(out, "minimum", s.Minimum)
	putFloat(out, "exclusiveMinimum", s.ExclusiveMinimum)
	putFloat(out, "maximum", s.Maximum)
	putFloat(out, "exclusiveMaximum", s.ExclusiveMaximum)
	minKey, maxKey := "minLength", "maxLength"
	if s.Type == "array" {
		minKey, maxKey = "minItems", "maxItems"
	}
	if s.MinLength != nil {
		out[minKey] = *s.MinLength
	}
	if s.MaxLength != nil {
		out[maxKey] = *s.MaxLength
	}
	if s.Pattern != "" {
		out["pattern"] = s.Pattern
	}
	if len(s.OneOf) > 0 {
		alts := make([]any, len(s.OneOf))
		for i, a := range s.OneOf {
			alts[i] = a.Map()
		}
		out["oneOf"] = alts
	}
	return out
}

// MarshalJSON renders the schema through Map so Extra keywords and the
// array length keywords are emitted.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return j.Marshal(s.Map())
}

func putFloat(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}
