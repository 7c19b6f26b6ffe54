// Package debugui draws a Dear ImGui overlay for inspecting a running
// registry: entities with their tags and groups, component values, system
// membership and timings.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/explore/ecs"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Game input should be ignored while the overlay wants the keyboard.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns every debug window. Call Render between the ImGui backend's
// BeginFrame and EndFrame.
type Overlay struct {
	registry *ecs.Registry
	timer    *ecs.SystemTimer

	Browser    *EntityBrowser
	Inspector  *ComponentInspector
	Stats      *PerformanceStats
	Signatures *SignatureDebugger
	Input      InputState
}

// NewOverlay creates the debug windows for r. timer may be nil when system
// timings are not collected.
func NewOverlay(r *ecs.Registry, timer *ecs.SystemTimer) *Overlay {
	if r == nil {
		panic("debug overlay requires a registry")
	}
	return &Overlay{
		registry:   r,
		timer:      timer,
		Browser:    NewEntityBrowser(100),
		Inspector:  NewComponentInspector(),
		Stats:      NewPerformanceStats(120),
		Signatures: NewSignatureDebugger(),
	}
}

// Render draws all windows. dt is the last frame's duration in seconds.
func (o *Overlay) Render(dt float32) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	o.Browser.Render(o.registry)
	selected, ok := o.Browser.Selected()
	o.Inspector.Render(o.registry, selected, ok)
	o.Stats.Render(o.registry, o.timer, dt)
	o.Signatures.Render(o.registry)
}
