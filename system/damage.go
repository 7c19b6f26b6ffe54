package system

import (
	"go.uber.org/zap"

	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/events"
)

const (
	// PlayerTag names the player entity.
	PlayerTag = "player"
	// EnemiesGroup holds every hostile entity.
	EnemiesGroup = "enemies"
)

// Damage resolves projectile hits. Friendly projectiles hurt members of
// EnemiesGroup, hostile ones hurt the PlayerTag entity. A projectile is spent
// on its first hit and targets whose health drops to zero are killed.
type Damage struct {
	ecs.BaseSystem
	registry *ecs.Registry
	log      *zap.Logger
}

func NewDamage(registry *ecs.Registry, log *zap.Logger) *Damage {
	if registry == nil {
		panic("damage system requires a registry")
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Damage{
		BaseSystem: ecs.NewBaseSystem("DamageSystem"),
		registry:   registry,
		log:        log,
	}
	ecs.Require[component.BoxCollider](&s.BaseSystem)
	return s
}

func (s *Damage) SubscribeToEvents(bus *events.Bus) {
	events.Subscribe(bus, s.onCollision)
}

func (s *Damage) onCollision(ev events.Collision) {
	s.hit(ev.A, ev.B)
	s.hit(ev.B, ev.A)
}

// hit applies projectile to target if the pair qualifies.
func (s *Damage) hit(projectile, target ecs.Entity) {
	r := s.registry
	if r.IsDying(projectile) || r.IsDying(target) {
		return
	}
	p, ok := ecs.TryComponent[component.Projectile](r, projectile)
	if !ok {
		return
	}
	if ecs.HasComponent[component.Projectile](r, target) {
		return
	}
	health, ok := ecs.TryComponent[component.Health](r, target)
	if !ok {
		return
	}

	switch {
	case p.Friendly && r.HasGroup(target, EnemiesGroup):
	case !p.Friendly && r.HasTag(target, PlayerTag):
	default:
		return
	}

	health.Current -= p.Damage
	r.KillEntity(projectile)
	s.log.Debug("projectile hit",
		zap.String("target", r.EntityName(target)),
		zap.Int("damage", p.Damage),
		zap.Int("health", health.Current),
	)

	if health.Current <= 0 {
		r.KillEntity(target)
		s.log.Info("entity destroyed", zap.String("name", r.EntityName(target)))
	}
}
