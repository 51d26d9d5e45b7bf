package jsonmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Coerce converts v to the canonical Go value of a scalar kind. The domain of
// each kind is closed:
//
//	String    string
//	Int       Go integers within int range, integral floats, integral json.Number -> int
//	Float     Go integers and floats, json.Number -> float64
//	Bool      bool
//	Date      time.Time, "YYYY-MM-DD" -> time.Time at midnight UTC
//	Time      time.Time, "HH:MM:SS[.fraction]" -> time.Time on 0000-01-01 UTC
//	DateTime  time.Time, RFC 3339 string -> time.Time
//
// Any other input, including nil, fails with ErrTypeMismatch. Embedded and
// List kinds are not scalar and always fail.
func Coerce(kind Kind, v any) (any, error) {
	out, ok := coerce(kind, v)
	if !ok {
		return nil, fmt.Errorf("%w: cannot use %s as %s", ErrTypeMismatch, describe(v), kind)
	}
	return out, nil
}

func coerce(kind Kind, v any) (any, bool) {
	switch kind {
	case KindString:
		s, ok := v.(string)
		return s, ok
	case KindBool:
		b, ok := v.(bool)
		return b, ok
	case KindInt:
		return toInt(v)
	case KindFloat:
		return toFloat(v)
	case KindDate:
		return toTemporal(v, func(s string) (time.Time, error) { return time.Parse(dateLayout, s) }, truncateDate)
	case KindTime:
		return toTemporal(v, parseClock, func(t time.Time) time.Time { return t })
	case KindDateTime:
		return toTemporal(v, parseRFC3339, func(t time.Time) time.Time { return t })
	}
	return nil, false
}

func toInt(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8, int16, int32, int64:
		i := reflect.ValueOf(n).Int()
		if i < math.MinInt || i > math.MaxInt {
			return nil, false
		}
		return int(i), true
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(n).Uint()
		if u > math.MaxInt {
			return nil, false
		}
		return int(u), true
	case float32, float64:
		f := reflect.ValueOf(n).Float()
		if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
			return nil, false
		}
		return int(f), true
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return toInt(i)
		}
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return toInt(f)
		}
	}
	return nil, false
}

func toFloat(v any) (any, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return nil, false
}

func toTemporal(v any, parse func(string) (time.Time, error), norm func(time.Time) time.Time) (any, bool) {
	switch t := v.(type) {
	case time.Time:
		return norm(t), true
	case string:
		parsed, err := parse(t)
		if err != nil {
			return nil, false
		}
		return parsed, true
	}
	return nil, false
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseClock(s string) (time.Time, error) {
	// time.Parse accepts an optional fractional second after the seconds field.
	return time.Parse(timeLayout, s)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// formatTemporal renders a time value for the given kind.
func formatTemporal(kind Kind, t time.Time) string {
	switch kind {
	case KindDate:
		return t.Format(dateLayout)
	case KindTime:
		return t.Format(timeLayout)
	default:
		// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
		return t.UTC().Format(time.RFC3339Nano)
	}
}

// describe names the runtime shape of v for type mismatch messages.
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case *Instance:
		if t == nil || t.model == nil {
			return "null"
		}
		return t.model.Name()
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case time.Time:
		return "time"
	case map[string]any:
		return "object"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map:
		return "object"
	}
	return rv.Type().String()
}
