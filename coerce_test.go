package jsonmodel_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jm "github.com/reoring/jsonmodel"
)

func TestCoerce(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	tests := []struct {
		name string
		kind jm.Kind
		in   any
		want any
	}{
		{"string", jm.KindString, "x", "x"},
		{"bool", jm.KindBool, true, true},
		{"int", jm.KindInt, 7, 7},
		{"int64", jm.KindInt, int64(7), 7},
		{"uint8", jm.KindInt, uint8(7), 7},
		{"integral float", jm.KindInt, 7.0, 7},
		{"json integer", jm.KindInt, json.Number("7"), 7},
		{"json integral float", jm.KindInt, json.Number("7.0"), 7},
		{"float", jm.KindFloat, 1.5, 1.5},
		{"float32", jm.KindFloat, float32(0.5), 0.5},
		{"int as float", jm.KindFloat, 2, 2.0},
		{"json float", jm.KindFloat, json.Number("2.25"), 2.25},
		{"date string", jm.KindDate, "2024-05-06", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"date from time", jm.KindDate, ts, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"time string", jm.KindTime, "07:08:09", time.Date(0, 1, 1, 7, 8, 9, 0, time.UTC)},
		{"datetime string", jm.KindDateTime, "2024-05-06T07:08:09Z", ts},
		{"datetime nanos", jm.KindDateTime, "2024-05-06T07:08:09.5Z", ts.Add(500 * time.Millisecond)},
		{"datetime time", jm.KindDateTime, ts, ts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jm.Coerce(tt.kind, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Rejects(t *testing.T) {
	tests := []struct {
		name string
		kind jm.Kind
		in   any
		msg  string
	}{
		{"nil", jm.KindString, nil, "cannot use null as string"},
		{"number as string", jm.KindString, 1, "cannot use integer as string"},
		{"string as bool", jm.KindBool, "true", "cannot use string as boolean"},
		{"fraction", jm.KindInt, 1.5, "cannot use number as integer"},
		{"overflow", jm.KindInt, uint64(math.MaxUint64), "cannot use integer as integer"},
		{"bool as float", jm.KindFloat, false, "cannot use boolean as number"},
		{"bad date", jm.KindDate, "2024-13-01", "cannot use string as date"},
		{"bad time", jm.KindTime, "25:00:00", "cannot use string as time"},
		{"bad datetime", jm.KindDateTime, "yesterday", "cannot use string as datetime"},
		{"list kind", jm.KindList, []any{}, "cannot use array as list"},
		{"embedded kind", jm.KindEmbedded, map[string]any{}, "cannot use object as embedded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jm.Coerce(tt.kind, tt.in)
			require.ErrorIs(t, err, jm.ErrTypeMismatch)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestKind_Names(t *testing.T) {
	assert.Equal(t, "integer", jm.KindInt.String())
	assert.Equal(t, "datetime", jm.KindDateTime.String())
	assert.True(t, jm.KindDate.IsScalar())
	assert.False(t, jm.KindList.IsScalar())
	assert.Equal(t, "list[integer|string]", jm.List(jm.Int(), jm.String()).String())
}
