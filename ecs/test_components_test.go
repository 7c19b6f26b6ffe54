package ecs_test

import "github.com/plus3/explore/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type Score int32

// moverSystem matches entities with Position and Velocity.
type moverSystem struct {
	ecs.BaseSystem
}

func newMoverSystem() *moverSystem {
	s := &moverSystem{BaseSystem: ecs.NewBaseSystem("mover")}
	ecs.Require[Position](&s.BaseSystem)
	ecs.Require[Velocity](&s.BaseSystem)
	return s
}

func (s *moverSystem) Update(r *ecs.Registry, dt float32) {
	for _, e := range s.Entities() {
		pos := ecs.GetComponent[Position](r, e)
		vel := ecs.GetComponent[Velocity](r, e)
		pos.X += vel.DX * dt
		pos.Y += vel.DY * dt
	}
}

// healthSystem matches entities with Health.
type healthSystem struct {
	ecs.BaseSystem
}

func newHealthSystem() *healthSystem {
	s := &healthSystem{BaseSystem: ecs.NewBaseSystem("health")}
	ecs.Require[Health](&s.BaseSystem)
	return s
}

func (s *healthSystem) Update(r *ecs.Registry) {
	for _, e := range s.Entities() {
		if ecs.GetComponent[Health](r, e).Current <= 0 {
			r.KillEntity(e)
		}
	}
}

// everythingSystem has an empty signature and matches every entity.
type everythingSystem struct {
	ecs.BaseSystem
}

// rankedSystem keeps its entities ordered by Score, reading the component
// of every listed entity on insert.
type rankedSystem struct {
	ecs.BaseSystem
}

func newRankedSystem() *rankedSystem {
	s := &rankedSystem{BaseSystem: ecs.NewBaseSystem("ranked")}
	ecs.Require[Score](&s.BaseSystem)
	return s
}

func (s *rankedSystem) AddEntity(r *ecs.Registry, e ecs.Entity) {
	score := *ecs.GetComponent[Score](r, e)
	entities := s.Entities()
	i := 0
	for i < len(entities) && *ecs.GetComponent[Score](r, entities[i]) <= score {
		i++
	}
	s.InsertAt(i, e)
}
