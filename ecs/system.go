package ecs

import (
	"reflect"
	"slices"
)

// System is a named filter over entities plus the set of entities currently
// matching it. The Registry alone mutates membership, during its commit phase.
// Concrete systems embed BaseSystem and add their own Update methods with
// whatever per-frame inputs they need.
type System interface {
	Name() string
	Signature() Signature
	Entities() []Entity
	AddEntity(r *Registry, e Entity)
	RemoveEntity(e Entity) bool
}

// BaseSystem implements System with an insertion-ordered entity list.
type BaseSystem struct {
	name      string
	signature Signature
	entities  []Entity
}

// NewBaseSystem returns a BaseSystem with the given display name.
func NewBaseSystem(name string) BaseSystem {
	return BaseSystem{name: name}
}

// Require adds component T to the system's signature. Call it only while
// constructing the system, before it is added to a Registry.
func Require[T any](s *BaseSystem) {
	s.signature = s.signature.With(ComponentIDOf[T]())
}

func (s *BaseSystem) Name() string {
	return s.name
}

func (s *BaseSystem) Signature() Signature {
	return s.signature
}

// Entities returns the matched entities. The slice is owned by the system and
// must not be modified.
func (s *BaseSystem) Entities() []Entity {
	return s.entities
}

func (s *BaseSystem) AddEntity(_ *Registry, e Entity) {
	s.entities = append(s.entities, e)
}

// InsertAt places e at index i, keeping the relative order of the others.
// Systems that keep their list sorted by a secondary key use it from AddEntity.
func (s *BaseSystem) InsertAt(i int, e Entity) {
	s.entities = slices.Insert(s.entities, i, e)
}

func (s *BaseSystem) RemoveEntity(e Entity) bool {
	i := slices.Index(s.entities, e)
	if i < 0 {
		return false
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	return true
}

// Contains reports whether e is currently matched.
func (s *BaseSystem) Contains(e Entity) bool {
	return slices.Contains(s.entities, e)
}

// systemName derives a display name from a system's concrete type.
func systemName(s System) string {
	if name := s.Name(); name != "" {
		return name
	}
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
