package jsonmodel_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jm "github.com/reoring/jsonmodel"
)

func TestDeclare_FieldOrderAndAccessors(t *testing.T) {
	z := newZoo()

	names := []string{}
	for _, f := range z.person.Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"name", "surname", "age", "car", "pets"}, names)
	assert.Equal(t, []string{"name", "surname"}, z.person.RequiredNames())
	assert.True(t, z.person.Declared())

	car, ok := z.person.Field("car")
	require.True(t, ok)
	assert.Equal(t, jm.KindEmbedded, car.Kind())
	assert.Equal(t, []*jm.Model{z.car}, car.Type().Models())
	assert.False(t, car.Required())

	pets, _ := z.person.Field("pets")
	assert.Equal(t, "list[Cat|Dog]", pets.Type().String())
	assert.Len(t, pets.Type().Members(), 2)

	_, ok = z.person.Field("missing")
	assert.False(t, ok)
}

func TestDeclare_DuplicateFieldIsDeclarationError(t *testing.T) {
	m := jm.NewModel("Dup")
	_, err := jm.Declare(m).
		Field("name", jm.String()).
		Field("name", jm.Int()).
		Build()
	require.Error(t, err)

	var de *jm.DeclarationError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Dup", de.Model)
	assert.Equal(t, "name", de.Field)
	assert.Equal(t, "duplicate field name", de.Reason)
	assert.False(t, m.Declared(), "failed declarations must not seal the model")
}

func TestDeclare_MustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		jm.Declare(jm.NewModel("P")).
			Field("a", jm.String()).
			Field("a", jm.String()).
			MustBuild()
	})
}

func TestDeclare_Rejections(t *testing.T) {
	other := jm.NewModel("Other")
	tests := []struct {
		name   string
		build  func() (*jm.Model, error)
		reason string
	}{
		{
			name: "empty model name",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("")).Field("a", jm.String()).Build()
			},
			reason: "model name must not be empty",
		},
		{
			name: "empty field name",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("M")).Field("", jm.String()).Build()
			},
			reason: "field name must not be empty",
		},
		{
			name: "embedded without models",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("M")).Field("e", jm.Embedded()).Build()
			},
			reason: "embedded type needs at least one model",
		},
		{
			name: "empty list",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("M")).Field("l", jm.List()).Build()
			},
			reason: "list type needs at least one member",
		},
		{
			name: "nested list member",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("M")).Field("l", jm.List(jm.List(jm.Int()))).Build()
			},
			reason: "list member must be a scalar type or an embedded type with one model, got list",
		},
		{
			name: "list member with several models",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("M")).Field("l", jm.List(jm.Embedded(other, other))).Build()
			},
			reason: "list member must be a scalar type or an embedded type with one model, got embedded",
		},
		{
			name: "uncoercible default",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("M")).Field("age", jm.Int()).Default("ten").Build()
			},
			reason: "invalid default: jsonmodel: type mismatch: cannot use string as integer",
		},
		{
			name: "embedded default",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("M")).Field("o", jm.Embedded(other)).Default(map[string]any{}).Build()
			},
			reason: "embedded fields take no default",
		},
		{
			name: "nil validator",
			build: func() (*jm.Model, error) {
				return jm.Declare(jm.NewModel("M")).Field("a", jm.String()).Validate(jm.Validator(nil)).Build()
			},
			reason: "nil validator",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			var de *jm.DeclarationError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.reason, de.Reason)
		})
	}
}

func TestDeclare_OnlyOnce(t *testing.T) {
	m := jm.NewModel("Once")
	jm.Declare(m).Field("a", jm.String()).MustBuild()
	_, err := jm.Declare(m).Field("b", jm.String()).Build()
	var de *jm.DeclarationError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "model already declared", de.Reason)

	_, ok := m.Field("b")
	assert.False(t, ok, "a second declaration must not change the model")
}

func TestDeclare_ConcurrentBuildPublishesFields(t *testing.T) {
	m := jm.NewModel("Race")
	var built atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := jm.Declare(m).Field("a", jm.String()).Build(); err == nil {
				built.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			if m.Declared() {
				assert.Len(t, m.Fields(), 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), built.Load())
	assert.True(t, m.Declared())
	assert.Len(t, m.Fields(), 1)
}

func TestDeclare_DefaultsAreCoerced(t *testing.T) {
	m := jm.NewModel("D")
	jm.Declare(m).
		Field("count", jm.Int()).Default(3.0).
		Field("day", jm.Date()).Default("2024-02-29").
		Field("tags", jm.List(jm.String())).Default([]any{"a"}).
		MustBuild()

	count, _ := m.Field("count")
	v, ok := count.Default()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	day, _ := m.Field("day")
	v, _ = day.Default()
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), v)

	tags, _ := m.Field("tags")
	v, _ = tags.Default()
	v.([]any)[0] = "mutated"
	again, _ := tags.Default()
	assert.Equal(t, []any{"a"}, again, "defaults are copied on read")
}
