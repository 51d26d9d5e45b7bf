package jsonmodel_test

import (
	"fmt"

	jm "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/validators"
)

func Example() {
	car := jm.NewModel("Car")
	person := jm.NewModel("Person")
	jm.Declare(car).
		Field("brand", jm.String()).Required().
		Field("registration", jm.String()).Required().
		MustBuild()
	jm.Declare(person).
		Field("name", jm.String()).Required().Validate(validators.Length(1)).
		Field("surname", jm.String()).Required().
		Field("car", jm.Embedded(car)).
		MustBuild()

	chuck := jm.New(person, map[string]any{"name": "Chuck"})
	fmt.Println(chuck.Validate())

	chuck.Populate(map[string]any{"surname": "Norris", "car": jm.New(car, map[string]any{"brand": "Ford"})})
	fmt.Println(chuck.Validate())

	chuck.Get("car").(*jm.Instance).Set("registration", "TX-1")
	fmt.Println(chuck.Validate())
	// Output:
	// required at surname: field is required
	// required at car.registration: field is required
	// <nil>
}
