package binding

import (
	"fmt"
	"strings"
)

// UnknownTypeError is returned when deserializing a binding whose type tag
// is not registered. The message lists every registered tag; this is the
// primary diagnostic for corrupted or version-skewed save files.
type UnknownTypeError struct {
	Tag   string
	Known []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown binding type %q; registered types are %s",
		e.Tag, strings.Join(e.Known, ", "))
}

// MissingResolverError indicates a required collaborator was not supplied.
// This is a programmer error, not a user-facing condition.
type MissingResolverError struct {
	What string
}

func (e *MissingResolverError) Error() string {
	return fmt.Sprintf("binding resolution requires a %s", e.What)
}
