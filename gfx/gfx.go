// Package gfx declares the drawing collaborators the game systems depend on.
// Implementations live in the screen and asset packages; tests use fakes.
package gfx

import (
	"image/color"

	"github.com/plus3/explore/geom"
)

// Texture is an image that can be drawn to a Screen.
type Texture interface {
	Size() (w, h int)
}

// TextureProvider looks textures up by name.
type TextureProvider interface {
	Texture(name string) (Texture, bool)
}

// Screen is the draw surface for one frame.
type Screen interface {
	DrawTexture(tex Texture, src, dst geom.Rect, rotation float64)
	DrawRectOutline(r geom.Rect, c color.Color)
	Clear()
	Present()
	Dimensions() (w, h int)
}

var (
	// ColliderColor outlines box colliders in debug mode.
	ColliderColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	// HitColor outlines colliders that touched something this frame.
	HitColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)
