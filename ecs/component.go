package ecs

import (
	"fmt"
	"reflect"
	"sync"
)

// ComponentID is the dense, process-wide identifier of a component type.
type ComponentID uint8

// typeRegistry assigns ids to component types on first use.
type typeRegistry struct {
	mu    sync.Mutex
	ids   map[reflect.Type]ComponentID
	types []reflect.Type
}

// componentTypes is shared by every Registry in the process so signatures
// stay comparable between them.
var componentTypes = &typeRegistry{ids: make(map[reflect.Type]ComponentID)}

func (r *typeRegistry) idFor(t reflect.Type) ComponentID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[t]; ok {
		return id
	}
	if len(r.types) >= MaxComponents {
		panic(fmt.Sprintf("cannot register component %s: maximum number of component types (%d) reached", t, MaxComponents))
	}

	id := ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

func (r *typeRegistry) typeOf(id ComponentID) reflect.Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	if int(id) >= len(r.types) {
		return nil
	}
	return r.types[id]
}

func (r *typeRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.types)
}

// ComponentIDOf returns the id of component type T, assigning the next free id
// the first time T is seen. It panics once MaxComponents distinct types have
// been registered.
func ComponentIDOf[T any]() ComponentID {
	return componentTypes.idFor(reflect.TypeFor[T]())
}

// ComponentTypeOf returns the type registered under id, or nil when id has not
// been assigned.
func ComponentTypeOf(id ComponentID) reflect.Type {
	return componentTypes.typeOf(id)
}

// RegisteredComponents returns the number of component types assigned so far.
func RegisteredComponents() int {
	return componentTypes.count()
}
