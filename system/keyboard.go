package system

import (
	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/events"
	"github.com/plus3/explore/geom"
)

// KeyboardControl steers controllable entities with the arrow keys. The
// sprite sheet row follows the heading: up, right, down, left.
type KeyboardControl struct {
	ecs.BaseSystem
	registry *ecs.Registry
}

func NewKeyboardControl(registry *ecs.Registry) *KeyboardControl {
	if registry == nil {
		panic("keyboard control system requires a registry")
	}
	s := &KeyboardControl{
		BaseSystem: ecs.NewBaseSystem("KeyboardControlSystem"),
		registry:   registry,
	}
	ecs.Require[component.KeyboardControl](&s.BaseSystem)
	ecs.Require[component.Sprite](&s.BaseSystem)
	ecs.Require[component.RigidBody](&s.BaseSystem)
	return s
}

func (s *KeyboardControl) SubscribeToEvents(bus *events.Bus) {
	events.Subscribe(bus, s.onKeyPressed)
}

func (s *KeyboardControl) onKeyPressed(ev events.KeyPressed) {
	for _, e := range s.Entities() {
		kc := ecs.GetComponent[component.KeyboardControl](s.registry, e)
		sprite := ecs.GetComponent[component.Sprite](s.registry, e)
		rb := ecs.GetComponent[component.RigidBody](s.registry, e)

		var (
			velocity geom.Vec2
			row      float64
		)
		switch ev.Key {
		case events.KeyUp:
			velocity, row = kc.Up, 0
		case events.KeyRight:
			velocity, row = kc.Right, 1
		case events.KeyDown:
			velocity, row = kc.Down, 2
		case events.KeyLeft:
			velocity, row = kc.Left, 3
		default:
			continue
		}
		rb.Velocity = velocity
		sprite.Src.Y = sprite.Src.H * row
	}
}
