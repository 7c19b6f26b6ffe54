package system_test

import (
	"image/color"

	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
)

type fakeTexture struct {
	name string
	w, h int
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

type fakeTextures map[string]*fakeTexture

func (f fakeTextures) Texture(name string) (gfx.Texture, bool) {
	t, ok := f[name]
	if !ok {
		return nil, false
	}
	return t, true
}

type drawCall struct {
	texture  string
	src, dst geom.Rect
	rotation float64
}

type outlineCall struct {
	rect  geom.Rect
	color color.Color
}

type fakeScreen struct {
	w, h     int
	draws    []drawCall
	outlines []outlineCall
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{w: 800, h: 600}
}

func (s *fakeScreen) DrawTexture(tex gfx.Texture, src, dst geom.Rect, rotation float64) {
	s.draws = append(s.draws, drawCall{texture: tex.(*fakeTexture).name, src: src, dst: dst, rotation: rotation})
}

func (s *fakeScreen) DrawRectOutline(r geom.Rect, c color.Color) {
	s.outlines = append(s.outlines, outlineCall{rect: r, color: c})
}

func (s *fakeScreen) Clear()                 { s.draws, s.outlines = nil, nil }
func (s *fakeScreen) Present()               {}
func (s *fakeScreen) Dimensions() (int, int) { return s.w, s.h }
