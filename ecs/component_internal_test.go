package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRegistryCapacity(t *testing.T) {
	types := &typeRegistry{ids: make(map[reflect.Type]ComponentID)}

	for i := 0; i < MaxComponents; i++ {
		id := types.idFor(reflect.ArrayOf(i, reflect.TypeFor[byte]()))
		assert.Equal(t, ComponentID(i), id)
	}
	assert.Equal(t, MaxComponents, types.count())

	// already registered types still resolve at capacity
	assert.Equal(t, ComponentID(5), types.idFor(reflect.ArrayOf(5, reflect.TypeFor[byte]())))

	assert.PanicsWithValue(t,
		"cannot register component [32]uint8: maximum number of component types (32) reached",
		func() { types.idFor(reflect.ArrayOf(MaxComponents, reflect.TypeFor[byte]())) },
	)
}
