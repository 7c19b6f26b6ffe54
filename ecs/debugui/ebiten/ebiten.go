// Package ebiten runs the debug overlay on top of an Ebiten game.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/explore/ecs/debugui"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend together with the overlay
// it draws.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// New creates the backend for a window of the given size. The backend owns
// the Ebiten window settings, so call it before ebiten.RunGame.
func New(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: b, Overlay: overlay}
}

// Update builds one ImGui frame. dt is the frame duration in seconds.
func (b *ImguiBackend) Update(dt float32) {
	b.BeginFrame()
	b.Overlay.Render(dt)
	b.EndFrame()
}

// WantsKeyboard reports whether ImGui consumed keyboard input last frame.
func (b *ImguiBackend) WantsKeyboard() bool {
	return b.Overlay.Input.WantCaptureKeyboard
}

// Draw renders the overlay onto screen.
func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	b.EbitenBackend.Draw(screen)
}
