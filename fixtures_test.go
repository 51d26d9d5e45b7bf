package jsonmodel_test

import (
	jm "github.com/reoring/jsonmodel"
)

// zoo is the Person/Car/Cat/Dog declaration shared by the black-box tests.
type zoo struct {
	person, car, cat, dog *jm.Model
}

func newZoo() zoo {
	z := zoo{
		person: jm.NewModel("Person"),
		car:    jm.NewModel("Car"),
		cat:    jm.NewModel("Cat"),
		dog:    jm.NewModel("Dog"),
	}
	jm.Declare(z.car).
		Field("brand", jm.String()).Required().
		Field("registration", jm.String()).Required().
		MustBuild()
	jm.Declare(z.cat).
		Field("name", jm.String()).Required().
		MustBuild()
	jm.Declare(z.dog).
		Field("name", jm.String()).Required().
		Field("breed", jm.String()).
		MustBuild()
	jm.Declare(z.person).
		Field("name", jm.String()).Required().
		Field("surname", jm.String()).Required().
		Field("age", jm.Int()).
		Field("car", jm.Embedded(z.car)).
		Field("pets", jm.List(jm.Embedded(z.cat), jm.Embedded(z.dog))).
		MustBuild()
	return z
}

// linked declares Node{value, next: Node, children: [Node]}.
func linked() *jm.Model {
	node := jm.NewModel("Node")
	jm.Declare(node).
		Field("value", jm.Int()).Required().
		Field("next", jm.Embedded(node)).
		Field("children", jm.List(jm.Embedded(node))).
		MustBuild()
	return node
}
