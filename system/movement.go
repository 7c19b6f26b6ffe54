// Package system implements the game's systems on top of the ecs registry.
package system

import (
	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
)

// Movement integrates velocity into position.
type Movement struct {
	ecs.BaseSystem
}

func NewMovement() *Movement {
	s := &Movement{BaseSystem: ecs.NewBaseSystem("MovementSystem")}
	ecs.Require[component.Transform](&s.BaseSystem)
	ecs.Require[component.RigidBody](&s.BaseSystem)
	return s
}

// Update moves every matched entity by velocity * dt, dt in seconds.
func (s *Movement) Update(r *ecs.Registry, dt float64) {
	for _, e := range s.Entities() {
		t := ecs.GetComponent[component.Transform](r, e)
		rb := ecs.GetComponent[component.RigidBody](r, e)
		t.Position = t.Position.Add(rb.Velocity.Scale(dt))
	}
}
