package main

import (
	"math/rand"

	"github.com/plus3/explore/ecs"
)

type (
	position struct{ X, Y float64 }
	velocity struct{ X, Y float64 }
	accel    struct{ X, Y float64 }
	health   struct{ HP int }
	armor    struct{ Value int }
	lifetime struct{ Frames int }
	label    struct{ Name string }
	score    struct{ Points int64 }
)

const componentCount = 8

// addRandomComponents attaches n distinct random components to e.
func addRandomComponents(r *ecs.Registry, rng *rand.Rand, e ecs.Entity, n int) {
	for _, i := range rng.Perm(componentCount)[:n] {
		switch i {
		case 0:
			ecs.AddComponent(r, e, position{X: rng.Float64() * 1000, Y: rng.Float64() * 1000})
		case 1:
			ecs.AddComponent(r, e, velocity{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5})
		case 2:
			ecs.AddComponent(r, e, accel{Y: 9.8})
		case 3:
			ecs.AddComponent(r, e, health{HP: 100})
		case 4:
			ecs.AddComponent(r, e, armor{Value: rng.Intn(10)})
		case 5:
			ecs.AddComponent(r, e, lifetime{Frames: 30 + rng.Intn(300)})
		case 6:
			ecs.AddComponent(r, e, label{Name: "stress"})
		case 7:
			ecs.AddComponent(r, e, score{})
		}
	}
}

type physics struct{ ecs.BaseSystem }

func newPhysics() *physics {
	s := &physics{ecs.NewBaseSystem("physics")}
	ecs.Require[position](&s.BaseSystem)
	ecs.Require[velocity](&s.BaseSystem)
	return s
}

func (s *physics) update(r *ecs.Registry, dt float64) {
	for _, e := range s.Entities() {
		p := ecs.GetComponent[position](r, e)
		v := ecs.GetComponent[velocity](r, e)
		p.X += v.X * dt
		p.Y += v.Y * dt
	}
}

type gravity struct{ ecs.BaseSystem }

func newGravity() *gravity {
	s := &gravity{ecs.NewBaseSystem("gravity")}
	ecs.Require[velocity](&s.BaseSystem)
	ecs.Require[accel](&s.BaseSystem)
	return s
}

func (s *gravity) update(r *ecs.Registry, dt float64) {
	for _, e := range s.Entities() {
		v := ecs.GetComponent[velocity](r, e)
		a := ecs.GetComponent[accel](r, e)
		v.X += a.X * dt
		v.Y += a.Y * dt
	}
}

type decay struct{ ecs.BaseSystem }

func newDecay() *decay {
	s := &decay{ecs.NewBaseSystem("decay")}
	ecs.Require[health](&s.BaseSystem)
	ecs.Require[armor](&s.BaseSystem)
	return s
}

func (s *decay) update(r *ecs.Registry) {
	for _, e := range s.Entities() {
		h := ecs.GetComponent[health](r, e)
		if ecs.GetComponent[armor](r, e).Value == 0 {
			h.HP--
		}
		if h.HP <= 0 {
			r.KillEntity(e)
		}
	}
}

// expiry kills entities when their lifetime runs out, exercising deferred
// kills from inside a system.
type expiry struct{ ecs.BaseSystem }

func newExpiry() *expiry {
	s := &expiry{ecs.NewBaseSystem("expiry")}
	ecs.Require[lifetime](&s.BaseSystem)
	return s
}

func (s *expiry) update(r *ecs.Registry) {
	for _, e := range s.Entities() {
		l := ecs.GetComponent[lifetime](r, e)
		l.Frames--
		if l.Frames <= 0 {
			r.KillEntity(e)
		}
	}
}

type scoring struct{ ecs.BaseSystem }

func newScoring() *scoring {
	s := &scoring{ecs.NewBaseSystem("scoring")}
	ecs.Require[score](&s.BaseSystem)
	ecs.Require[position](&s.BaseSystem)
	ecs.Require[label](&s.BaseSystem)
	return s
}

func (s *scoring) update(r *ecs.Registry) {
	for _, e := range s.Entities() {
		if ecs.GetComponent[position](r, e).X > 500 {
			ecs.GetComponent[score](r, e).Points++
		}
	}
}
