package jsonmodel

// UnknownPolicy controls how keys naming no field are handled by FromStruct.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                       // Drop unknown keys.
)

// DecodeOpt configures FromStruct.
type DecodeOpt struct {
	Unknown UnknownPolicy
}
