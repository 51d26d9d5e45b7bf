package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

type hclRoot struct {
	Models []*hclModel `hcl:"model,block"`
}

type hclModel struct {
	Name   string      `hcl:"name,label"`
	Fields []*hclField `hcl:"field,block"`
}

type hclField struct {
	Name     string         `hcl:"name,label"`
	Type     string         `hcl:"type"`
	Required *bool          `hcl:"required,optional"`
	Default  hcl.Expression `hcl:"default,optional"`
	Of       []string       `hcl:"of,optional"`

	Min          *float64 `hcl:"min,optional"`
	Max          *float64 `hcl:"max,optional"`
	ExclusiveMin *float64 `hcl:"exclusive_min,optional"`
	ExclusiveMax *float64 `hcl:"exclusive_max,optional"`
	MinLength    *int     `hcl:"min_length,optional"`
	MaxLength    *int     `hcl:"max_length,optional"`
	Pattern      *string  `hcl:"pattern,optional"`
}

// ParseHCL decodes an HCL manifest. filename is used in diagnostics only.
func ParseHCL(data []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("manifest: failed to parse HCL file %s: %w", filename, diags)
	}
	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("manifest: failed to decode HCL file %s: %w", filename, diags)
	}

	out := &Manifest{Models: make([]ModelSpec, 0, len(root.Models))}
	for _, hm := range root.Models {
		ms := ModelSpec{Name: hm.Name, Fields: make([]FieldSpec, 0, len(hm.Fields))}
		for _, hf := range hm.Fields {
			fs, err := hf.spec()
			if err != nil {
				return nil, fmt.Errorf("manifest: model %q field %q: %w", hm.Name, hf.Name, err)
			}
			ms.Fields = append(ms.Fields, fs)
		}
		out.Models = append(out.Models, ms)
	}
	return out, nil
}

func (hf *hclField) spec() (FieldSpec, error) {
	fs := FieldSpec{
		Name:         hf.Name,
		Type:         hf.Type,
		Required:     hf.Required != nil && *hf.Required,
		Of:           hf.Of,
		Min:          hf.Min,
		Max:          hf.Max,
		ExclusiveMin: hf.ExclusiveMin,
		ExclusiveMax: hf.ExclusiveMax,
		MinLength:    hf.MinLength,
		MaxLength:    hf.MaxLength,
	}
	if hf.Pattern != nil {
		fs.Pattern = *hf.Pattern
	}
	if hf.Default != nil {
		// an absent attribute decodes to a static null expression
		val, diags := hf.Default.Value(nil)
		if diags.HasErrors() {
			return FieldSpec{}, fmt.Errorf("invalid default value: %w", diags)
		}
		def, err := ctyToNative(val)
		if err != nil {
			return FieldSpec{}, fmt.Errorf("invalid default value: %w", err)
		}
		fs.Default = def
	}
	return fs, nil
}

// ctyToNative converts a cty value into plain Go values: string, float64,
// bool, []any and map[string]any. Null and unknown values become nil.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number: %w", err)
		}
		return f, nil
	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, err
		}
		return b, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			nv, err := ctyToNative(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, nv)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			k, ev := it.Element()
			nv, err := ctyToNative(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", k.AsString(), err)
			}
			out[k.AsString()] = nv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
