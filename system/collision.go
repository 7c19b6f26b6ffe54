package system

import (
	"go.uber.org/zap"

	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/events"
	"github.com/plus3/explore/geom"
)

// Collision tests every pair of colliders and emits events.Collision for each
// overlapping pair.
type Collision struct {
	ecs.BaseSystem
	log   *zap.Logger
	rects []geom.Rect
	pairs []events.Collision
}

func NewCollision(log *zap.Logger) *Collision {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Collision{BaseSystem: ecs.NewBaseSystem("CollisionSystem"), log: log}
	ecs.Require[component.Transform](&s.BaseSystem)
	ecs.Require[component.BoxCollider](&s.BaseSystem)
	return s
}

// Update finds all overlapping pairs first and emits afterwards, so handlers
// may change components without disturbing the scan.
func (s *Collision) Update(r *ecs.Registry, bus *events.Bus) {
	entities := s.Entities()

	s.rects = s.rects[:0]
	for _, e := range entities {
		t := ecs.GetComponent[component.Transform](r, e)
		c := ecs.GetComponent[component.BoxCollider](r, e)
		s.rects = append(s.rects, component.ColliderRect(*t, *c))
	}

	s.pairs = s.pairs[:0]
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			if s.rects[i].Intersects(s.rects[j]) {
				s.pairs = append(s.pairs, events.Collision{A: entities[i], B: entities[j]})
			}
		}
	}

	for _, p := range s.pairs {
		s.log.Debug("collision",
			zap.Uint32("a", uint32(p.A)), zap.String("a_name", r.EntityName(p.A)),
			zap.Uint32("b", uint32(p.B)), zap.String("b_name", r.EntityName(p.B)),
		)
		events.Emit(bus, p)
	}
}
