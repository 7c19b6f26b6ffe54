package system

import (
	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/events"
	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
)

// DebugRender outlines box colliders. Colliders that were part of a
// collision since the previous draw are outlined in gfx.HitColor.
type DebugRender struct {
	ecs.BaseSystem
	hits map[ecs.Entity]struct{}
}

func NewDebugRender() *DebugRender {
	s := &DebugRender{
		BaseSystem: ecs.NewBaseSystem("DebugRenderSystem"),
		hits:       make(map[ecs.Entity]struct{}),
	}
	ecs.Require[component.Transform](&s.BaseSystem)
	ecs.Require[component.BoxCollider](&s.BaseSystem)
	return s
}

func (s *DebugRender) SubscribeToEvents(bus *events.Bus) {
	events.Subscribe(bus, s.onCollision)
}

func (s *DebugRender) onCollision(ev events.Collision) {
	s.hits[ev.A] = struct{}{}
	s.hits[ev.B] = struct{}{}
}

func (s *DebugRender) Update(r *ecs.Registry, screen gfx.Screen, camera geom.Rect) {
	if screen == nil {
		panic("debug render system requires a screen")
	}

	for _, e := range s.Entities() {
		t := ecs.GetComponent[component.Transform](r, e)
		c := ecs.GetComponent[component.BoxCollider](r, e)
		rect := component.ColliderRect(*t, *c).Translate(camera.Min().Scale(-1))

		col := gfx.ColliderColor
		if _, hit := s.hits[e]; hit {
			col = gfx.HitColor
		}
		screen.DrawRectOutline(rect, col)
	}
	clear(s.hits)
}
