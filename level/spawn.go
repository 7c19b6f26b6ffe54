package level

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
	"github.com/plus3/explore/tilemap"
)

// TextureLoader is the part of the asset manager a level needs.
type TextureLoader interface {
	gfx.TextureProvider
	LoadTexture(name, path string) error
}

// World is what Spawn created.
type World struct {
	Tilemap  *tilemap.Tilemap
	Entities map[string]ecs.Entity
	Width    float64
	Height   float64
}

// Spawn loads the level's textures and tilemap into assets and creates its
// entities in r. The level is validated first, so an invalid level leaves r
// and assets untouched. Entities become visible to systems at the next
// commit. Animations start at now.
func (l *Level) Spawn(r *ecs.Registry, assets TextureLoader, log *zap.Logger, now time.Duration) (*World, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", l.Name, err)
	}
	for _, t := range l.Assets.Textures {
		if err := assets.LoadTexture(t.Name, l.resolve(t.Path)); err != nil {
			return nil, err
		}
	}

	w := &World{Entities: make(map[string]ecs.Entity, len(l.Entities))}
	if tm := l.Tilemap; tm != nil {
		w.Tilemap = tilemap.New(r, log, tilemap.Options{
			Name:       l.Name,
			Texture:    tm.Texture,
			TileWidth:  tm.TileWidth,
			TileHeight: tm.TileHeight,
			Scale:      tm.Scale,
		})
		if err := w.Tilemap.LoadFile(l.resolve(tm.Path), assets); err != nil {
			return nil, err
		}
		w.Width, w.Height = w.Tilemap.WorldSize()
	}

	for i := range l.Entities {
		def := &l.Entities[i]
		e := def.spawn(r, now)
		if def.Name != "" {
			w.Entities[def.Name] = e
		}
	}

	log.Info("level spawned",
		zap.String("level", l.Name),
		zap.Int("textures", len(l.Assets.Textures)),
		zap.Int("entities", len(l.Entities)),
		zap.Float64("width", w.Width),
		zap.Float64("height", w.Height),
	)
	return w, nil
}

func (d *EntityDef) spawn(r *ecs.Registry, now time.Duration) ecs.Entity {
	e := r.CreateEntity(d.Name)
	if d.Tag != "" {
		r.AddTag(e, d.Tag)
	}
	if d.Group != "" {
		r.AddGroup(e, d.Group)
	}

	c := &d.Components
	if c.Transform != nil {
		t := component.NewTransform(c.Transform.Position.vec())
		if c.Transform.Scale != nil {
			t.Scale = c.Transform.Scale.vec()
		}
		t.Rotation = c.Transform.Rotation
		ecs.AddComponent(r, e, t)
	}
	if c.RigidBody != nil {
		ecs.AddComponent(r, e, component.RigidBody{Velocity: c.RigidBody.Velocity.vec()})
	}
	if s := c.Sprite; s != nil {
		sprite := component.NewSprite(s.Texture, s.Z, s.Width, s.Height, s.SrcX, s.SrcY)
		sprite.Fixed = s.Fixed
		ecs.AddComponent(r, e, sprite)
	}
	if a := c.Animation; a != nil {
		loop := a.Loop == nil || *a.Loop
		ecs.AddComponent(r, e, component.Animation{
			NumFrames: a.Frames,
			FrameRate: a.FrameRate,
			StartTime: now,
			Loop:      loop,
		})
	}
	if b := c.BoxCollider; b != nil {
		ecs.AddComponent(r, e, component.BoxCollider{Width: b.Width, Height: b.Height, Offset: b.Offset.vec()})
	}
	if k := c.KeyboardControl; k != nil {
		ecs.AddComponent(r, e, component.KeyboardControl{
			Up:    k.Up.vec(),
			Right: k.Right.vec(),
			Down:  k.Down.vec(),
			Left:  k.Left.vec(),
		})
	}
	if c.CameraFollow {
		ecs.AddComponent(r, e, component.CameraFollow{})
	}
	if c.Health != nil {
		ecs.AddComponent(r, e, component.NewHealth(c.Health.Max))
	}
	if p := c.ProjectileEmitter; p != nil {
		ecs.AddComponent(r, e, component.ProjectileEmitter{
			Velocity:     p.Velocity.vec(),
			Interval:     p.Interval,
			Duration:     p.Duration,
			Damage:       p.Damage,
			Friendly:     p.Friendly,
			LastEmission: now,
		})
	}
	return e
}

func (v Vec) vec() geom.Vec2 { return geom.V(v.X, v.Y) }
