package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/events"
	"github.com/plus3/explore/geom"
)

const (
	// ProjectileTexture is the texture every projectile is drawn with.
	ProjectileTexture = "bullet-tex"
	projectileSize    = 4
	projectileZ       = 5
)

// ProjectileEmit fires projectiles from emitters. Emitters with an interval
// fire on a fixed schedule; keyboard-controlled emitters also fire when space
// is pressed, in the direction the entity is moving.
type ProjectileEmit struct {
	ecs.BaseSystem
	registry *ecs.Registry
	log      *zap.Logger
	now      time.Duration
}

func NewProjectileEmit(registry *ecs.Registry, log *zap.Logger) *ProjectileEmit {
	if registry == nil {
		panic("projectile emit system requires a registry")
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &ProjectileEmit{
		BaseSystem: ecs.NewBaseSystem("ProjectileEmitSystem"),
		registry:   registry,
		log:        log,
	}
	ecs.Require[component.ProjectileEmitter](&s.BaseSystem)
	ecs.Require[component.Transform](&s.BaseSystem)
	return s
}

func (s *ProjectileEmit) SubscribeToEvents(bus *events.Bus) {
	events.Subscribe(bus, s.onKeyPressed)
}

// Update fires every emitter whose interval has elapsed at simulated time
// now. An emitter fires at most once per call and its schedule stays aligned
// to multiples of the interval, so a late update does not cause a burst.
func (s *ProjectileEmit) Update(now time.Duration) {
	s.now = now
	r := s.registry
	for _, e := range s.Entities() {
		em := ecs.GetComponent[component.ProjectileEmitter](r, e)
		if em.Interval <= 0 {
			continue
		}
		elapsed := now - em.LastEmission
		if elapsed < em.Interval {
			continue
		}
		s.fire(e, em, em.Velocity)
		em.LastEmission = now - elapsed%em.Interval
	}
}

func (s *ProjectileEmit) onKeyPressed(ev events.KeyPressed) {
	if ev.Key != events.KeySpace {
		return
	}
	r := s.registry
	for _, e := range s.Entities() {
		if !ecs.HasComponent[component.KeyboardControl](r, e) {
			continue
		}
		em := ecs.GetComponent[component.ProjectileEmitter](r, e)
		velocity := em.Velocity
		if rb, ok := ecs.TryComponent[component.RigidBody](r, e); ok {
			velocity = aim(rb.Velocity, em.Velocity)
		}
		s.fire(e, em, velocity)
	}
}

// aim points the emitter speed along the heading of velocity.
func aim(heading, emitter geom.Vec2) geom.Vec2 {
	speed := emitter.Len()
	if l := heading.Len(); l > 0 && speed > 0 {
		return heading.Scale(speed / l)
	}
	return emitter
}

func (s *ProjectileEmit) fire(source ecs.Entity, em *component.ProjectileEmitter, velocity geom.Vec2) ecs.Entity {
	r := s.registry
	t := ecs.GetComponent[component.Transform](r, source)

	pos := t.Position
	if sprite, ok := ecs.TryComponent[component.Sprite](r, source); ok {
		pos.X += sprite.Src.W * t.Scale.X / 2
		pos.Y += sprite.Src.H * t.Scale.Y / 2
	}

	p := r.CreateEntity("projectile")
	ecs.AddComponent(r, p, component.NewTransform(pos))
	ecs.AddComponent(r, p, component.RigidBody{Velocity: velocity})
	ecs.AddComponent(r, p, component.NewSprite(ProjectileTexture, projectileZ, projectileSize, projectileSize, 0, 0))
	ecs.AddComponent(r, p, component.BoxCollider{Width: projectileSize, Height: projectileSize})
	ecs.AddComponent(r, p, component.Projectile{
		Friendly:  em.Friendly,
		Damage:    em.Damage,
		Duration:  em.Duration,
		StartTime: s.now,
	})

	s.log.Debug("projectile fired",
		zap.String("source", r.EntityName(source)),
		zap.Float64("vx", velocity.X),
		zap.Float64("vy", velocity.Y),
	)
	return p
}

// ProjectileLifecycle kills projectiles once their duration has passed.
type ProjectileLifecycle struct {
	ecs.BaseSystem
}

func NewProjectileLifecycle() *ProjectileLifecycle {
	s := &ProjectileLifecycle{BaseSystem: ecs.NewBaseSystem("ProjectileLifecycleSystem")}
	ecs.Require[component.Projectile](&s.BaseSystem)
	return s
}

func (s *ProjectileLifecycle) Update(r *ecs.Registry, now time.Duration) {
	for _, e := range s.Entities() {
		p := ecs.GetComponent[component.Projectile](r, e)
		if now-p.StartTime > p.Duration {
			r.KillEntity(e)
		}
	}
}
