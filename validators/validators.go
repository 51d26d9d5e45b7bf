// Package validators holds the built-in field validators. Each validator
// implements jsonmodel.Validator and jsonmodel.SchemaModifier, so its
// constraint is both enforced on instances and described in emitted schemas.
package validators

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reoring/jsonmodel/i18n"
	js "github.com/reoring/jsonmodel/jsonschema"
)

// Sentinels matched by *Error through errors.Is.
var (
	ErrTooSmall      = errors.New("too_small")
	ErrTooBig        = errors.New("too_big")
	ErrTooShort      = errors.New("too_short")
	ErrTooLong       = errors.New("too_long")
	ErrPattern       = errors.New("pattern")
	ErrNotComparable = errors.New("not_comparable")
)

var sentinels = map[string]error{
	"too_small":      ErrTooSmall,
	"too_big":        ErrTooBig,
	"too_short":      ErrTooShort,
	"too_long":       ErrTooLong,
	"pattern":        ErrPattern,
	"not_comparable": ErrNotComparable,
}

// Error is returned by the built-in validators.
type Error struct {
	Code   string
	Params map[string]string
}

func (e *Error) Error() string { return i18n.T(e.Code, e.Params) }

// Is matches the sentinel of the error code.
func (e *Error) Is(target error) bool { return sentinels[e.Code] == target }

func fail(code string, kv ...string) *Error {
	p := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		p[kv[i]] = kv[i+1]
	}
	return &Error{Code: code, Params: p}
}

// ---- Min / Max ----

// MinValidator enforces a numeric lower bound.
type MinValidator struct {
	Value     float64
	Exclusive bool
}

// Min requires values >= n.
func Min(n float64) *MinValidator { return &MinValidator{Value: n} }

// MinExclusive requires values > n.
func MinExclusive(n float64) *MinValidator { return &MinValidator{Value: n, Exclusive: true} }

func (m *MinValidator) Check(v any) error {
	f, ok := number(v)
	if !ok {
		return fail("not_comparable", "got", describe(v))
	}
	if f < m.Value || (m.Exclusive && f == m.Value) {
		return fail("too_small", "min", formatFloat(m.Value), "got", formatFloat(f))
	}
	return nil
}

func (m *MinValidator) ModifySchema(s *js.Schema) {
	if m.Exclusive {
		s.ExclusiveMinimum = ptr(m.Value)
		return
	}
	s.Minimum = ptr(m.Value)
}

// MaxValidator enforces a numeric upper bound.
type MaxValidator struct {
	Value     float64
	Exclusive bool
}

// Max requires values <= n.
func Max(n float64) *MaxValidator { return &MaxValidator{Value: n} }

// MaxExclusive requires values < n.
func MaxExclusive(n float64) *MaxValidator { return &MaxValidator{Value: n, Exclusive: true} }

func (m *MaxValidator) Check(v any) error {
	f, ok := number(v)
	if !ok {
		return fail("not_comparable", "got", describe(v))
	}
	if f > m.Value || (m.Exclusive && f == m.Value) {
		return fail("too_big", "max", formatFloat(m.Value), "got", formatFloat(f))
	}
	return nil
}

func (m *MaxValidator) ModifySchema(s *js.Schema) {
	if m.Exclusive {
		s.ExclusiveMaximum = ptr(m.Value)
		return
	}
	s.Maximum = ptr(m.Value)
}

// ---- Length ----

// LengthValidator bounds the length of strings (in runes) and sequences.
// A negative Max means no upper bound.
type LengthValidator struct {
	Min int
	Max int
}

// Length requires a length of at least min.
func Length(min int) *LengthValidator { return &LengthValidator{Min: min, Max: -1} }

// LengthBetween requires a length within [min, max].
func LengthBetween(min, max int) *LengthValidator { return &LengthValidator{Min: min, Max: max} }

func (l *LengthValidator) Check(v any) error {
	n, ok := length(v)
	if !ok {
		return fail("not_comparable", "got", describe(v))
	}
	if n < l.Min {
		return fail("too_short", "min", strconv.Itoa(l.Min), "got", strconv.Itoa(n))
	}
	if l.Max >= 0 && n > l.Max {
		return fail("too_long", "max", strconv.Itoa(l.Max), "got", strconv.Itoa(n))
	}
	return nil
}

func (l *LengthValidator) ModifySchema(s *js.Schema) {
	min := l.Min
	s.MinLength = &min
	if l.Max >= 0 {
		max := l.Max
		s.MaxLength = &max
	}
}

// ---- Regex ----

// Flag alters regular expression matching.
type Flag int

const (
	IgnoreCase Flag = 1 << iota
	Multiline
)

// RegexValidator requires string values to contain a match of a pattern.
type RegexValidator struct {
	pattern string
	flags   Flag
	re      *regexp.Regexp
}

// CompileRegex compiles pattern with flags. An ECMA literal such as
// "/^a+$/i" is accepted too; its own flags then replace the given ones.
func CompileRegex(pattern string, flags ...Flag) (*RegexValidator, error) {
	var fl Flag
	for _, f := range flags {
		fl |= f
	}
	if body, lf, ok := splitECMA(pattern); ok {
		pattern, fl = body, lf
	}
	prefix := ""
	if fl&IgnoreCase != 0 {
		prefix += "i"
	}
	if fl&Multiline != 0 {
		prefix += "m"
	}
	src := pattern
	if prefix != "" {
		src = "(?" + prefix + ")" + pattern
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	return &RegexValidator{pattern: pattern, flags: fl, re: re}, nil
}

// Regex is like CompileRegex but panics when the pattern does not compile.
func Regex(pattern string, flags ...Flag) *RegexValidator {
	r, err := CompileRegex(pattern, flags...)
	if err != nil {
		panic("validators: " + err.Error())
	}
	return r
}

// Pattern returns the pattern without flags.
func (r *RegexValidator) Pattern() string { return r.pattern }

func (r *RegexValidator) Check(v any) error {
	s, ok := v.(string)
	if !ok {
		return fail("not_comparable", "got", describe(v))
	}
	if !r.re.MatchString(s) {
		return fail("pattern", "pattern", r.pattern, "got", strconv.Quote(s))
	}
	return nil
}

// ModifySchema emits the bare pattern, or an ECMA literal carrying the flags
// when any are set.
func (r *RegexValidator) ModifySchema(s *js.Schema) {
	if r.flags == 0 {
		s.Pattern = r.pattern
		return
	}
	lit := "/" + r.pattern + "/"
	if r.flags&IgnoreCase != 0 {
		lit += "i"
	}
	if r.flags&Multiline != 0 {
		lit += "m"
	}
	s.Pattern = lit
}

// splitECMA parses "/body/flags". Unknown flags make it a plain pattern.
func splitECMA(p string) (string, Flag, bool) {
	if len(p) < 2 || p[0] != '/' {
		return "", 0, false
	}
	end := strings.LastIndexByte(p, '/')
	if end == 0 {
		return "", 0, false
	}
	var fl Flag
	for _, c := range p[end+1:] {
		switch c {
		case 'i':
			fl |= IgnoreCase
		case 'm':
			fl |= Multiline
		default:
			return "", 0, false
		}
	}
	return p[1:end], fl, true
}

// ---- helpers ----

func ptr(f float64) *float64 { return &f }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case float32, float64:
		return reflect.ValueOf(n).Float(), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

func length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).String()
}
