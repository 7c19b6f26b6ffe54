// Package component defines the plain-data components attached to game
// entities.
package component

import (
	"time"

	"github.com/plus3/explore/geom"
)

// Transform places an entity in the world.
type Transform struct {
	Position geom.Vec2
	Scale    geom.Vec2
	Rotation float64
}

// NewTransform returns a transform at pos with unit scale.
func NewTransform(pos geom.Vec2) Transform {
	return Transform{Position: pos, Scale: geom.V(1, 1)}
}

// RigidBody moves an entity by Velocity units per second.
type RigidBody struct {
	Velocity geom.Vec2
}

// Sprite draws Src from the named texture. Width and Height are the
// unscaled size on screen; zero means the full texture size. Sprites with a
// lower ZIndex are drawn first. Fixed sprites ignore the camera.
type Sprite struct {
	TextureName string
	ZIndex      int
	Width       float64
	Height      float64
	Src         geom.Rect
	Fixed       bool
}

// NewSprite returns a sprite drawing a w x h frame at (srcX, srcY).
func NewSprite(texture string, z int, w, h, srcX, srcY float64) Sprite {
	return Sprite{
		TextureName: texture,
		ZIndex:      z,
		Width:       w,
		Height:      h,
		Src:         geom.R(srcX, srcY, w, h),
	}
}

// Animation cycles a sprite horizontally through NumFrames frames at
// FrameRate frames per second, counted from StartTime.
type Animation struct {
	NumFrames    int
	CurrentFrame int
	FrameRate    int
	StartTime    time.Duration
	Loop         bool
}

// BoxCollider is an axis-aligned hit box relative to the entity's position.
type BoxCollider struct {
	Width  float64
	Height float64
	Offset geom.Vec2
}

// ColliderRect returns the world-space rectangle covered by c on an entity
// with transform t.
func ColliderRect(t Transform, c BoxCollider) geom.Rect {
	return geom.Rect{
		X: t.Position.X + c.Offset.X,
		Y: t.Position.Y + c.Offset.Y,
		W: c.Width * t.Scale.X,
		H: c.Height * t.Scale.Y,
	}
}

// KeyboardControl holds the velocity applied for each arrow key.
type KeyboardControl struct {
	Up    geom.Vec2
	Right geom.Vec2
	Down  geom.Vec2
	Left  geom.Vec2
}

// CameraFollow marks the entity the camera tracks.
type CameraFollow struct{}

// ProjectileEmitter spawns projectiles. Emitters with a zero Interval only
// fire on demand (the player's space bar); others fire every Interval.
type ProjectileEmitter struct {
	Velocity     geom.Vec2
	Interval     time.Duration
	Duration     time.Duration
	Damage       int
	Friendly     bool
	LastEmission time.Duration
}

// Projectile is a short-lived damaging entity.
type Projectile struct {
	Friendly  bool
	Damage    int
	Duration  time.Duration
	StartTime time.Duration
}

// Health is an entity's remaining hit points.
type Health struct {
	Current int
	Max     int
}

// NewHealth returns full health of hp points.
func NewHealth(hp int) Health {
	return Health{Current: hp, Max: hp}
}

// Percent returns the remaining health in [0, 100].
func (h Health) Percent() int {
	if h.Max <= 0 || h.Current <= 0 {
		return 0
	}
	return h.Current * 100 / h.Max
}
