package system

import (
	"sort"

	"go.uber.org/zap"

	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/gfx"
)

// Render draws sprites. Its entity list is kept in ascending z-index so
// iterating it is the draw order.
type Render struct {
	ecs.BaseSystem
	log     *zap.Logger
	missing map[string]struct{}
}

func NewRender(log *zap.Logger) *Render {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Render{
		BaseSystem: ecs.NewBaseSystem("RenderSystem"),
		log:        log,
		missing:    make(map[string]struct{}),
	}
	ecs.Require[component.Transform](&s.BaseSystem)
	ecs.Require[component.Sprite](&s.BaseSystem)
	return s
}

// AddEntity inserts e after every entity with a lower or equal z-index.
func (s *Render) AddEntity(r *ecs.Registry, e ecs.Entity) {
	z := ecs.GetComponent[component.Sprite](r, e).ZIndex
	entities := s.Entities()
	i := sort.Search(len(entities), func(i int) bool {
		return ecs.GetComponent[component.Sprite](r, entities[i]).ZIndex > z
	})
	s.InsertAt(i, e)
}

// Update draws every visible sprite relative to camera. Sprites whose
// texture is unknown are skipped and reported once per texture name.
func (s *Render) Update(r *ecs.Registry, screen gfx.Screen, textures gfx.TextureProvider, camera geom.Rect) {
	if screen == nil || textures == nil {
		panic("render system requires a screen and a texture provider")
	}

	sw, sh := screen.Dimensions()
	viewport := geom.R(0, 0, float64(sw), float64(sh))

	for _, e := range s.Entities() {
		t := ecs.GetComponent[component.Transform](r, e)
		sprite := ecs.GetComponent[component.Sprite](r, e)

		if t.Scale.X == 0 && t.Scale.Y == 0 {
			continue
		}

		tex, ok := textures.Texture(sprite.TextureName)
		if !ok {
			if _, seen := s.missing[sprite.TextureName]; !seen {
				s.missing[sprite.TextureName] = struct{}{}
				s.log.Warn("texture not found",
					zap.String("texture", sprite.TextureName),
					zap.String("entity", r.EntityName(e)),
				)
			}
			continue
		}

		w, h := sprite.Width, sprite.Height
		if w == 0 && h == 0 {
			tw, th := tex.Size()
			w, h = float64(tw), float64(th)
		}
		src := sprite.Src
		if src.W == 0 && src.H == 0 {
			tw, th := tex.Size()
			src = geom.R(src.X, src.Y, float64(tw), float64(th))
		}

		dst := geom.R(t.Position.X, t.Position.Y, w*t.Scale.X, h*t.Scale.Y)
		if !sprite.Fixed {
			dst = dst.Translate(camera.Min().Scale(-1))
		}
		if !dst.Intersects(viewport) {
			continue
		}

		screen.DrawTexture(tex, src, dst, t.Rotation)
	}
}
