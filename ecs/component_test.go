package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/explore/ecs"
	"github.com/stretchr/testify/assert"
)

func TestComponentIDIsStable(t *testing.T) {
	pos := ecs.ComponentIDOf[Position]()
	vel := ecs.ComponentIDOf[Velocity]()

	assert.NotEqual(t, pos, vel)
	assert.Equal(t, pos, ecs.ComponentIDOf[Position]())
	assert.Equal(t, vel, ecs.ComponentIDOf[Velocity]())
	assert.Less(t, int(pos), ecs.MaxComponents)

	assert.Equal(t, reflect.TypeFor[Position](), ecs.ComponentTypeOf(pos))
	assert.Nil(t, ecs.ComponentTypeOf(ecs.ComponentID(ecs.MaxComponents)))
}

func TestComponentIDsAreMonotonic(t *testing.T) {
	before := ecs.RegisteredComponents()

	type freshA struct{}
	type freshB struct{}
	a := ecs.ComponentIDOf[freshA]()
	b := ecs.ComponentIDOf[freshB]()

	assert.Equal(t, ecs.ComponentID(before), a)
	assert.Equal(t, a+1, b)
	assert.Equal(t, before+2, ecs.RegisteredComponents())
}
