// Package screen draws to an ebiten image.
package screen

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/explore/asset"
	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
)

// Screen implements gfx.Screen on top of the image ebiten hands to Draw.
type Screen struct {
	target *ebiten.Image
	width  int
	height int
	bg     color.Color
}

var _ gfx.Screen = (*Screen)(nil)

// New creates a screen with the logical size of the window.
func New(width, height int) *Screen {
	return &Screen{width: width, height: height, bg: color.Black}
}

// SetTarget points the screen at this frame's draw target.
func (s *Screen) SetTarget(target *ebiten.Image) {
	s.target = target
}

// Resize updates the logical size reported by Dimensions.
func (s *Screen) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *Screen) DrawTexture(tex gfx.Texture, src, dst geom.Rect, rotation float64) {
	t, ok := tex.(*asset.Texture)
	if !ok {
		panic(fmt.Sprintf("screen: cannot draw texture of type %T", tex))
	}
	if src.W == 0 || src.H == 0 {
		return
	}

	sub := t.Image().SubImage(image.Rect(
		int(src.X), int(src.Y), int(src.X+src.W), int(src.Y+src.H),
	)).(*ebiten.Image)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM = Placement(src, dst, rotation)
	s.target.DrawImage(sub, opts)
}

// Placement maps a src-sized image onto dst, rotated by rotation degrees
// around dst's centre.
func Placement(src, dst geom.Rect, rotation float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(dst.W/src.W, dst.H/src.H)
	if rotation != 0 {
		m.Translate(-dst.W/2, -dst.H/2)
		m.Rotate(rotation * math.Pi / 180)
		m.Translate(dst.W/2, dst.H/2)
	}
	m.Translate(dst.X, dst.Y)
	return m
}

func (s *Screen) DrawRectOutline(r geom.Rect, c color.Color) {
	vector.StrokeRect(s.target, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, c, false)
}

func (s *Screen) Clear() {
	s.target.Fill(s.bg)
}

// Present is a no-op: ebiten presents the frame after Draw returns.
func (s *Screen) Present() {}

func (s *Screen) Dimensions() (int, int) {
	return s.width, s.height
}
