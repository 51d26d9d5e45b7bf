// Package manifest declares jsonmodel models from YAML or HCL documents.
//
// A YAML manifest:
//
//	models:
//	  - name: Person
//	    fields:
//	      - {name: name, type: string, required: true}
//	      - {name: pets, type: list, of: [Cat, Dog]}
//
// The same in HCL:
//
//	model "Person" {
//	  field "name" {
//	    type     = "string"
//	    required = true
//	  }
//	  field "pets" {
//	    type = "list"
//	    of   = ["Cat", "Dog"]
//	  }
//	}
//
// Model names are resolved once every model has been read, so a manifest may
// reference models declared later in the file, including itself.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jm "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/internal/ctxlog"
	"github.com/reoring/jsonmodel/validators"
)

// Manifest is a decoded declaration document.
type Manifest struct {
	Models []ModelSpec `yaml:"models"`
}

// ModelSpec declares one model.
type ModelSpec struct {
	Name   string      `yaml:"name"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec declares one field. Type is one of string, int, float, bool,
// date, time, datetime, embedded or list. Of names the models of an embedded
// field, or the members (scalar type names or model names) of a list.
type FieldSpec struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Required bool     `yaml:"required"`
	Default  any      `yaml:"default"`
	Of       []string `yaml:"of"`

	Min          *float64 `yaml:"min"`
	Max          *float64 `yaml:"max"`
	ExclusiveMin *float64 `yaml:"exclusive_min"`
	ExclusiveMax *float64 `yaml:"exclusive_max"`
	MinLength    *int     `yaml:"min_length"`
	MaxLength    *int     `yaml:"max_length"`
	Pattern      string   `yaml:"pattern"`
}

// Load reads and parses the manifest at path. The decoder is chosen by
// extension: .yaml and .yml for YAML, .hcl for HCL.
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	logger.Debug("Parsing manifest.", "format", ext, "bytes", len(data))

	var m *Manifest
	switch ext {
	case ".yaml", ".yml":
		m, err = ParseYAML(data)
	case ".hcl":
		m, err = ParseHCL(data, path)
	default:
		return nil, fmt.Errorf("manifest: unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("Manifest parsed.", "models", len(m.Models))
	return m, nil
}

var scalars = map[string]jm.Type{
	"string":   jm.String(),
	"int":      jm.Int(),
	"float":    jm.Float(),
	"bool":     jm.Bool(),
	"date":     jm.Date(),
	"time":     jm.Time(),
	"datetime": jm.DateTime(),
}

// Build declares every model of the manifest and returns them by name.
func (m *Manifest) Build() (map[string]*jm.Model, error) {
	models := make(map[string]*jm.Model, len(m.Models))
	for _, ms := range m.Models {
		if _, dup := models[ms.Name]; dup {
			return nil, &jm.DeclarationError{Model: ms.Name, Reason: "duplicate model"}
		}
		models[ms.Name] = jm.NewModel(ms.Name)
	}
	for _, ms := range m.Models {
		if err := declare(models, ms); err != nil {
			return nil, err
		}
	}
	return models, nil
}

func declare(models map[string]*jm.Model, ms ModelSpec) error {
	if len(ms.Fields) == 0 {
		return &jm.DeclarationError{Model: ms.Name, Reason: "model has no fields"}
	}
	b := jm.Declare(models[ms.Name])
	for _, fs := range ms.Fields {
		t, err := resolveType(models, fs)
		if err != nil {
			return &jm.DeclarationError{Model: ms.Name, Field: fs.Name, Reason: err.Error()}
		}
		vs, err := fieldValidators(fs)
		if err != nil {
			return &jm.DeclarationError{Model: ms.Name, Field: fs.Name, Reason: err.Error()}
		}
		f := b.Field(fs.Name, t)
		if fs.Required {
			f.Required()
		}
		if fs.Default != nil {
			f.Default(fs.Default)
		}
		if len(vs) > 0 {
			f.Validate(vs...)
		}
	}
	_, err := b.Build()
	return err
}

func resolveType(models map[string]*jm.Model, fs FieldSpec) (jm.Type, error) {
	if t, ok := scalars[fs.Type]; ok {
		if len(fs.Of) > 0 {
			return jm.Type{}, fmt.Errorf("%s fields take no \"of\"", fs.Type)
		}
		return t, nil
	}
	switch fs.Type {
	case "embedded":
		ms := make([]*jm.Model, 0, len(fs.Of))
		for _, name := range fs.Of {
			m, ok := models[name]
			if !ok {
				return jm.Type{}, fmt.Errorf("unknown model %q", name)
			}
			ms = append(ms, m)
		}
		return jm.Embedded(ms...), nil
	case "list":
		members := make([]jm.Type, 0, len(fs.Of))
		for _, name := range fs.Of {
			if t, ok := scalars[name]; ok {
				members = append(members, t)
				continue
			}
			m, ok := models[name]
			if !ok {
				return jm.Type{}, fmt.Errorf("unknown list member %q", name)
			}
			members = append(members, jm.Embedded(m))
		}
		return jm.List(members...), nil
	case "":
		return jm.Type{}, errors.New("missing type")
	}
	return jm.Type{}, fmt.Errorf("unknown type %q", fs.Type)
}

func fieldValidators(fs FieldSpec) ([]jm.Validator, error) {
	var vs []jm.Validator
	if fs.Min != nil {
		vs = append(vs, validators.Min(*fs.Min))
	}
	if fs.ExclusiveMin != nil {
		vs = append(vs, validators.MinExclusive(*fs.ExclusiveMin))
	}
	if fs.Max != nil {
		vs = append(vs, validators.Max(*fs.Max))
	}
	if fs.ExclusiveMax != nil {
		vs = append(vs, validators.MaxExclusive(*fs.ExclusiveMax))
	}
	switch {
	case fs.MinLength != nil && fs.MaxLength != nil:
		vs = append(vs, validators.LengthBetween(*fs.MinLength, *fs.MaxLength))
	case fs.MinLength != nil:
		vs = append(vs, validators.Length(*fs.MinLength))
	case fs.MaxLength != nil:
		vs = append(vs, validators.LengthBetween(0, *fs.MaxLength))
	}
	if fs.Pattern != "" {
		re, err := validators.CompileRegex(fs.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		vs = append(vs, re)
	}
	return vs, nil
}
