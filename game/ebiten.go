package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	debugui "github.com/plus3/explore/ecs/debugui/ebiten"
	"github.com/plus3/explore/gfx"
	"github.com/plus3/explore/screen"
)

// Game adapts a World to ebiten.Game.
type Game struct {
	world    *World
	clock    *Clock
	input    *Input
	screen   *screen.Screen
	textures gfx.TextureProvider
	overlay  *debugui.ImguiBackend
	log      *zap.Logger
}

// NewGame wires w to Ebiten. overlay may be nil.
func NewGame(w *World, clock *Clock, textures gfx.TextureProvider, overlay *debugui.ImguiBackend, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	width, height := int(w.Camera.W), int(w.Camera.H)
	return &Game{
		world:    w,
		clock:    clock,
		input:    NewInput(),
		screen:   screen.New(width, height),
		textures: textures,
		overlay:  overlay,
		log:      log,
	}
}

func (g *Game) Update() error {
	dt := g.clock.Tick()

	keys := g.input.Poll()
	if g.overlay != nil && g.overlay.WantsKeyboard() {
		keys = nil
	}
	if g.world.Update(keys, dt, g.clock.Now()) {
		g.log.Info("quit requested", zap.Uint64("frames", g.clock.Frames()))
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.overlay.Update(float32(dt.Seconds()))
	}
	return nil
}

func (g *Game) Draw(img *ebiten.Image) {
	g.screen.SetTarget(img)
	g.world.Draw(g.screen, g.textures)
	if g.overlay != nil {
		g.overlay.Draw(img)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	g.screen.Resize(outsideWidth, outsideHeight)
	g.world.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
