package jsonmodel

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: a field name or a list index.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// Path locates a value from the root instance. Paths are immutable; Field and
// Index return extended copies.
type Path []Segment

// Field returns p extended with a field name.
func (p Path) Field(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Name: name})
}

// Index returns p extended with a list index.
func (p Path) Index(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Index: i, IsIndex: true})
}

// String renders the path in dotted form, e.g. "pets[1].name".
func (p Path) String() string {
	b := &strings.Builder{}
	for i, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Name)
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer, e.g. "/pets/1/name".
// The empty path renders as "/".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		b.WriteString(escapePointer(s.Name))
	}
	return b.String()
}

// escapePointer escapes '~' -> '~0', '/' -> '~1' per RFC6901.
func escapePointer(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}
