// Package jsonmodel provides:
//
// - Declaration of record shapes (Model) made of typed, constrained fields
// - Mutable instances populated incrementally against a Model
// - First-failure recursive validation with path-carrying errors
// - Conversion of instances to plain nested values and back (ToStruct/FromStruct)
// - Export of a Model as a JSON Schema document, safe on cyclic declarations
//
// Design policy:
//   - Keep public APIs in the root package; validators live under validators/,
//     declaration manifests under manifest/, and the CLI under cmd/jsonmodel.
//   - Models are immutable once built and may be shared across goroutines;
//     instances follow single-writer discipline.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	car := jsonmodel.NewModel("Car")
//	jsonmodel.Declare(car).Field("brand", jsonmodel.String()).Required().MustBuild()
//
//	person := jsonmodel.NewModel("Person")
//	jsonmodel.Declare(person).
//		Field("name", jsonmodel.String()).Required().
//		Field("car", jsonmodel.Embedded(car)).
//		MustBuild()
//
//	chuck := jsonmodel.New(person, map[string]any{"name": "Chuck"})
//	err := chuck.Validate()
//	plain := chuck.ToStruct()
//	doc, err := person.JSONSchema()
package jsonmodel
