package tsuiseki

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoSuchEntity is returned by single-entity operations when the entity is
// dead, despawned, or was never spawned by this world.
var ErrNoSuchEntity = errors.New("ecs: no such entity")

// MissingComponentError is returned when a read or removal targets a component
// type the entity's archetype does not contain.
type MissingComponentError struct {
	Type reflect.Type
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("ecs: missing component %s", e.Type)
}

// missingComponent builds a MissingComponentError for component type T.
func missingComponent[T any]() error {
	return MissingComponentError{Type: reflect.TypeOf((*T)(nil)).Elem()}
}
