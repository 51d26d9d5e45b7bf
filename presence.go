package jsonmodel

// Presence is the bit flag recorded per field of an Instance.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field was populated by the caller.
	PresenceWasNull                             // Field value is an explicit nil.
	PresenceDefaultApplied                      // Field value came from the declared default.
)

// IsSet reports whether any value (including nil or a default) is stored.
func (p Presence) IsSet() bool { return p != 0 }

// String renders the flags for debugging, e.g. "seen|null".
func (p Presence) String() string {
	if p == 0 {
		return "unset"
	}
	s := ""
	add := func(part string) {
		if s != "" {
			s += "|"
		}
		s += part
	}
	if p&PresenceSeen != 0 {
		add("seen")
	}
	if p&PresenceWasNull != 0 {
		add("null")
	}
	if p&PresenceDefaultApplied != 0 {
		add("default")
	}
	return s
}
