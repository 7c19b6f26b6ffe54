package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/explore/ecs"
)

// SignatureDebugger builds a signature from ticked component types and shows
// which entities and systems it matches.
type SignatureDebugger struct {
	selected ecs.Signature
}

func NewSignatureDebugger() *SignatureDebugger {
	return &SignatureDebugger{}
}

// Toggle flips id in the signature being built.
func (sd *SignatureDebugger) Toggle(id ecs.ComponentID) {
	if sd.selected.Has(id) {
		sd.selected = sd.selected.Without(id)
	} else {
		sd.selected = sd.selected.With(id)
	}
}

func (sd *SignatureDebugger) Signature() ecs.Signature {
	return sd.selected
}

// Match returns the entities whose signature contains the selected one, and
// the names of systems that would accept such entities.
func (sd *SignatureDebugger) Match(r *ecs.Registry) (entities []ecs.Entity, systems []string) {
	if sd.selected.IsEmpty() {
		return nil, nil
	}
	r.Entities(func(e ecs.Entity) bool {
		if r.Signature(e).Contains(sd.selected) {
			entities = append(entities, e)
		}
		return true
	})
	for _, s := range r.Systems() {
		if sd.selected.Contains(s.Signature()) {
			systems = append(systems, s.Name())
		}
	}
	return entities, systems
}

func (sd *SignatureDebugger) Render(r *ecs.Registry) {
	if !imgui.BeginV("Signature Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		sd.selected = 0
	}

	for i := 0; i < ecs.RegisteredComponents(); i++ {
		id := ecs.ComponentID(i)
		checked := sd.selected.Has(id)
		if imgui.Checkbox(componentName(id), &checked) {
			sd.Toggle(id)
		}
	}

	imgui.Separator()

	if sd.selected.IsEmpty() {
		imgui.Text("No component types selected")
		return
	}

	entities, systems := sd.Match(r)
	imgui.Text(fmt.Sprintf("Signature: %s (0x%08X)", sd.selected, uint32(sd.selected)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(entities)))

	if imgui.TreeNodeStr("Systems accepting this signature") {
		for _, name := range systems {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}
}
