// Package game drives the frame loop: it owns the registry, the event bus
// and every system, and runs them in a fixed order each frame, either under
// Ebiten or headless.
package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/events"
	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
	"github.com/plus3/explore/level"
	"github.com/plus3/explore/system"
	"github.com/plus3/explore/tilemap"
)

// World is one running level.
type World struct {
	Registry *ecs.Registry
	Bus      *events.Bus
	Timer    *ecs.SystemTimer

	Camera        geom.Rect
	MapWidth      float64
	MapHeight     float64
	ShowColliders bool

	log     *zap.Logger
	tilemap *tilemap.Tilemap

	movement    *system.Movement
	render      *system.Render
	debugRender *system.DebugRender
	collision   *system.Collision
	damage      *system.Damage
	keyboard    *system.KeyboardControl
	emit        *system.ProjectileEmit
	lifecycle   *system.ProjectileLifecycle
	animation   *system.Animation
	camera      *system.CameraMovement
}

// NewWorld creates an empty world with every system registered. The camera
// starts at the origin with the given viewport size.
func NewWorld(log *zap.Logger, viewWidth, viewHeight int) *World {
	if log == nil {
		log = zap.NewNop()
	}
	r := ecs.NewRegistry(ecs.WithLogger(log.Named("ecs")))
	w := &World{
		Registry: r,
		Bus:      events.NewBus(),
		Timer:    ecs.NewSystemTimer(),
		Camera:   geom.R(0, 0, float64(viewWidth), float64(viewHeight)),
		log:      log,
	}

	w.movement = ecs.AddSystem(r, system.NewMovement())
	w.render = ecs.AddSystem(r, system.NewRender(log))
	w.debugRender = ecs.AddSystem(r, system.NewDebugRender())
	w.collision = ecs.AddSystem(r, system.NewCollision(log))
	w.damage = ecs.AddSystem(r, system.NewDamage(r, log))
	w.keyboard = ecs.AddSystem(r, system.NewKeyboardControl(r))
	w.emit = ecs.AddSystem(r, system.NewProjectileEmit(r, log))
	w.lifecycle = ecs.AddSystem(r, system.NewProjectileLifecycle())
	w.animation = ecs.AddSystem(r, system.NewAnimation())
	w.camera = ecs.AddSystem(r, system.NewCameraMovement())
	return w
}

// Load spawns lvl and commits it so the first frame already sees it.
func (w *World) Load(lvl *level.Level, assets level.TextureLoader, now time.Duration) error {
	spawned, err := lvl.Spawn(w.Registry, assets, w.log, now)
	if err != nil {
		return err
	}
	w.tilemap = spawned.Tilemap
	w.MapWidth, w.MapHeight = spawned.Width, spawned.Height
	w.Registry.Update()
	return nil
}

// Unload removes the tilemap. Other entities stay.
func (w *World) Unload() error {
	if w.tilemap == nil {
		return tilemap.ErrNotLoaded
	}
	err := w.tilemap.Unload()
	w.tilemap = nil
	w.MapWidth, w.MapHeight = 0, 0
	return err
}

// Resize changes the camera viewport.
func (w *World) Resize(width, height int) {
	w.Camera.W, w.Camera.H = float64(width), float64(height)
}

// Update runs one frame of simulation: keys are delivered as events, systems
// advance by dt, and the registry commits queued changes at the end. It
// reports whether the player asked to quit.
func (w *World) Update(keys []events.Key, dt, now time.Duration) (quit bool) {
	events.SubscribeAll(w.Bus, w.damage, w.keyboard, w.emit, w.debugRender)

	for _, k := range keys {
		switch k {
		case events.KeyEscape:
			quit = true
		case events.KeyD:
			w.ShowColliders = !w.ShowColliders
			w.log.Debug("collider drawing toggled", zap.Bool("on", w.ShowColliders))
		default:
			events.Emit(w.Bus, events.KeyPressed{Key: k})
		}
	}

	r := w.Registry
	w.Timer.Measure(w.movement, func() { w.movement.Update(r, dt.Seconds()) })
	w.Timer.Measure(w.animation, func() { w.animation.Update(r, now) })
	w.Timer.Measure(w.collision, func() { w.collision.Update(r, w.Bus) })
	w.Timer.Measure(w.emit, func() { w.emit.Update(now) })
	w.Timer.Measure(w.camera, func() { w.camera.Update(r, &w.Camera, w.MapWidth, w.MapHeight) })
	w.Timer.Measure(w.lifecycle, func() { w.lifecycle.Update(r, now) })

	start := time.Now()
	r.Update()
	w.Timer.Record("commit", time.Since(start))
	return quit
}

// Draw renders the committed world to screen.
func (w *World) Draw(screen gfx.Screen, textures gfx.TextureProvider) {
	screen.Clear()
	w.Timer.Measure(w.render, func() { w.render.Update(w.Registry, screen, textures, w.Camera) })
	if w.ShowColliders {
		w.debugRender.Update(w.Registry, screen, w.Camera)
	}
	screen.Present()
}
