package jsonmodel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	jm "github.com/reoring/jsonmodel"
)

func TestToStruct_Nested(t *testing.T) {
	z := newZoo()
	in := jm.New(z.person, map[string]any{
		"name":    "Chuck",
		"surname": "Norris",
		"car":     jm.New(z.car, map[string]any{"brand": "Ford", "registration": "TX-1"}),
		"pets": []any{
			jm.New(z.cat, map[string]any{"name": "Garfield"}),
			jm.New(z.dog, map[string]any{"name": "Odie", "breed": "beagle"}),
		},
	})

	want := map[string]any{
		"name":    "Chuck",
		"surname": "Norris",
		"car":     map[string]any{"brand": "Ford", "registration": "TX-1"},
		"pets": []any{
			map[string]any{"name": "Garfield"},
			map[string]any{"name": "Odie", "breed": "beagle"},
		},
	}
	assert.Equal(t, want, in.ToStruct())
}

func TestToStruct_UnsetAbsentNullKept(t *testing.T) {
	z := newZoo()
	in := jm.New(z.person, map[string]any{"name": "Chuck", "car": nil})

	out := in.ToStruct()
	assert.Equal(t, map[string]any{"name": "Chuck", "car": nil}, out)
	_, has := out["surname"]
	assert.False(t, has)
}

func TestToStruct_TemporalRendering(t *testing.T) {
	m := jm.NewModel("Event")
	jm.Declare(m).
		Field("day", jm.Date()).
		Field("at", jm.Time()).
		Field("when", jm.DateTime()).
		Field("history", jm.List(jm.DateTime())).
		MustBuild()

	est := time.FixedZone("EST", -5*3600)
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, est)
	in := jm.New(m, map[string]any{
		"day":     ts,
		"at":      time.Date(0, 1, 1, 9, 30, 15, 0, time.UTC),
		"when":    ts,
		"history": []any{ts},
	})

	assert.Equal(t, map[string]any{
		"day":     "2024-03-01",
		"at":      "09:30:15",
		"when":    "2024-03-01T14:30:00Z",
		"history": []any{"2024-03-01T14:30:00Z"},
	}, in.ToStruct())
}

func TestToStruct_NeverValidates(t *testing.T) {
	z := newZoo()
	in := jm.New(z.person, map[string]any{"age": "old", "car": 42})
	assert.Equal(t, map[string]any{"age": "old", "car": 42}, in.ToStruct())
}

func TestToStruct_CycleOfDeclarationsNotInstances(t *testing.T) {
	node := linked()
	leaf := jm.New(node, map[string]any{"value": 2})
	root := jm.New(node, map[string]any{"value": 1, "next": leaf, "children": []any{leaf}})

	assert.Equal(t, map[string]any{
		"value":    1,
		"next":     map[string]any{"value": 2},
		"children": []any{map[string]any{"value": 2}},
	}, root.ToStruct())
}

func TestToStruct_NilInstancesBecomeNull(t *testing.T) {
	z := newZoo()
	var none *jm.Instance
	in := jm.New(z.person, map[string]any{"car": none, "pets": []any{none}})

	assert.Equal(t, map[string]any{"car": nil, "pets": []any{nil}}, in.ToStruct())
}

func TestToStruct_CanonicalScalars(t *testing.T) {
	m := jm.NewModel("Reading")
	jm.Declare(m).
		Field("n", jm.Int()).
		Field("ratio", jm.Float()).
		Field("at", jm.DateTime()).
		Field("samples", jm.List(jm.Int())).
		MustBuild()

	in := jm.New(m, map[string]any{
		"n":       int64(3),
		"ratio":   2,
		"at":      "2024-01-02T10:11:12+02:00",
		"samples": []any{uint8(1), 2.0},
	})
	assert.Equal(t, map[string]any{
		"n":       3,
		"ratio":   2.0,
		"at":      "2024-01-02T08:11:12Z",
		"samples": []any{1, 2},
	}, in.ToStruct())
}
