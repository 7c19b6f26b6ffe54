package game

import (
	"context"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
)

// HeadlessStats summarises a headless run.
type HeadlessStats struct {
	Frames    int
	Sprites   int
	Outlines  int
	Entities  int
	Simulated time.Duration
}

// countingScreen is a gfx.Screen that only counts draw calls.
type countingScreen struct {
	w, h     int
	sprites  int
	outlines int
}

func (s *countingScreen) DrawTexture(gfx.Texture, geom.Rect, geom.Rect, float64) { s.sprites++ }
func (s *countingScreen) DrawRectOutline(geom.Rect, color.Color) { s.outlines++ }
func (s *countingScreen) Clear() {}
func (s *countingScreen) Present() {}
func (s *countingScreen) Dimensions() (int, int) { return s.w, s.h }

// RunHeadless runs w without a window for the given number of frames, or
// until ctx is done when frames is zero or negative. Frames are paced by
// clock.Cap. The game quitting on its own ends the run early.
func RunHeadless(ctx context.Context, w *World, clock *Clock, textures gfx.TextureProvider, frames int, log *zap.Logger) (HeadlessStats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	screen := &countingScreen{w: int(w.Camera.W), h: int(w.Camera.H)}

	var stats HeadlessStats
	for frames <= 0 || stats.Frames < frames {
		if err := ctx.Err(); err != nil {
			if frames <= 0 {
				break
			}
			return stats, err
		}

		dt := clock.Tick()
		quit := w.Update(nil, dt, clock.Now())
		w.Draw(screen, textures)
		stats.Frames++
		if quit {
			break
		}
		clock.Cap()
	}

	stats.Sprites = screen.sprites
	stats.Outlines = screen.outlines
	stats.Entities = w.Registry.EntityCount()
	stats.Simulated = clock.Now()
	log.Info("headless run finished",
		zap.Int("frames", stats.Frames),
		zap.Int("sprites", stats.Sprites),
		zap.Int("entities", stats.Entities),
		zap.Duration("simulated", stats.Simulated),
	)
	return stats, nil
}
