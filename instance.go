package jsonmodel

import "reflect"

type unset struct{}

func (unset) String() string { return "<unset>" }

// Unset is returned by Get for fields that hold no value. It never compares
// equal to nil, which is a legitimate (explicit null) field value.
var Unset any = unset{}

// Instance stores the field values of one record shaped by a Model.
// Instances are not safe for concurrent mutation; callers serialize access.
type Instance struct {
	model    *Model
	values   map[string]any
	presence map[string]Presence
}

// New creates an instance of m. Declared defaults are materialized first,
// then initial is applied as by Populate.
func New(m *Model, initial map[string]any) *Instance {
	in := &Instance{
		model:    m,
		values:   make(map[string]any, len(m.fields)),
		presence: make(map[string]Presence, len(m.fields)),
	}
	for _, f := range m.fields {
		if !f.hasDefault {
			continue
		}
		in.values[f.name] = cloneValue(f.def)
		p := PresenceDefaultApplied
		if f.def == nil {
			p |= PresenceWasNull
		}
		in.presence[f.name] = p
	}
	in.Populate(initial)
	return in
}

// Model returns the model the instance is shaped by.
func (in *Instance) Model() *Model { return in.model }

// Populate merges partial into the instance. Supplied keys overwrite previous
// values, other fields are untouched, and keys naming no field are ignored.
// No type checking happens here; see Validate.
func (in *Instance) Populate(partial map[string]any) {
	for k, v := range partial {
		if _, ok := in.model.index[k]; !ok {
			continue
		}
		in.set(k, v)
	}
}

// Set stores a single field value. It reports false when the model has no
// such field.
func (in *Instance) Set(name string, v any) bool {
	if _, ok := in.model.index[name]; !ok {
		return false
	}
	in.set(name, v)
	return true
}

func (in *Instance) set(name string, v any) {
	in.values[name] = v
	p := PresenceSeen
	if v == nil {
		p |= PresenceWasNull
	}
	in.presence[name] = p
}

// Get returns the field value, or Unset when the field holds no value.
func (in *Instance) Get(name string) any {
	if v, ok := in.values[name]; ok {
		return v
	}
	return Unset
}

// Lookup returns the field value and whether the field is set.
func (in *Instance) Lookup(name string) (any, bool) {
	v, ok := in.values[name]
	return v, ok
}

// Clear returns a field to the unset state.
func (in *Instance) Clear(name string) {
	delete(in.values, name)
	delete(in.presence, name)
}

// Presence returns the presence flags of a field; zero means unset.
func (in *Instance) Presence(name string) Presence { return in.presence[name] }

// cloneValue copies the containers of a plain value so shared defaults are
// never aliased between instances.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && !rv.IsNil() {
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	}
	return v
}

// isSequence reports whether v is an ordered sequence (a slice or array).
func isSequence(v any) bool {
	if _, ok := v.([]any); ok {
		return true
	}
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// sequence returns the elements of a sequence as []any.
func sequence(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
