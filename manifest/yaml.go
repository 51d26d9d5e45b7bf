package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML manifest. Unknown keys are rejected. Documents of a
// multi-document stream are concatenated.
func ParseYAML(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	out := &Manifest{}
	for {
		var doc Manifest
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("manifest: yaml: %w", err)
		}
		out.Models = append(out.Models, doc.Models...)
	}
	for i := range out.Models {
		for j := range out.Models[i].Fields {
			f := &out.Models[i].Fields[j]
			f.Default = normalizeYAML(f.Default)
		}
	}
	return out, nil
}

// normalizeYAML turns map[any]any nodes into map[string]any so defaults look
// like decoded JSON.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeYAML(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeYAML(vv)
			}
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeYAML(t[i])
		}
		return arr
	default:
		return v
	}
}
