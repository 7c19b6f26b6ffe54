package system

import (
	"time"

	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
)

// Animation advances sprite sheet frames along the x axis.
type Animation struct {
	ecs.BaseSystem
}

func NewAnimation() *Animation {
	s := &Animation{BaseSystem: ecs.NewBaseSystem("AnimationSystem")}
	ecs.Require[component.Sprite](&s.BaseSystem)
	ecs.Require[component.Animation](&s.BaseSystem)
	return s
}

// Update picks each animation's frame for simulated time now. Non-looping
// animations hold their last frame.
func (s *Animation) Update(r *ecs.Registry, now time.Duration) {
	for _, e := range s.Entities() {
		anim := ecs.GetComponent[component.Animation](r, e)
		sprite := ecs.GetComponent[component.Sprite](r, e)
		if anim.NumFrames <= 0 {
			continue
		}

		frame := int((now - anim.StartTime).Milliseconds() * int64(anim.FrameRate) / 1000)
		if anim.Loop {
			frame %= anim.NumFrames
		} else {
			frame = min(frame, anim.NumFrames-1)
		}
		anim.CurrentFrame = max(frame, 0)
		sprite.Src.X = float64(anim.CurrentFrame) * sprite.Width
	}
}
