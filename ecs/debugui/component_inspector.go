package debugui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/explore/ecs"
)

// ComponentInspector shows and edits the component values of one entity.
// Edits write straight into the registry's pools.
type ComponentInspector struct {
	layouts layoutCache
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{layouts: make(layoutCache)}
}

func (ci *ComponentInspector) Render(r *ecs.Registry, selected ecs.Entity, ok bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !ok {
		imgui.Text("No entity selected")
		return
	}
	if !r.IsAlive(selected) {
		imgui.Text(fmt.Sprintf("%s no longer exists", selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d %s", selected, r.EntityName(selected)))
	if tag, ok := r.TagOf(selected); ok {
		imgui.Text("Tag: " + tag)
	}
	if group, ok := r.GroupOf(selected); ok {
		imgui.Text("Group: " + group)
	}
	imgui.Text("Signature: " + r.Signature(selected).String())
	imgui.Separator()

	for _, id := range r.Signature(selected).IDs() {
		value, ok := r.Component(selected, id)
		if !ok {
			continue
		}
		if imgui.TreeNodeStr(componentName(id)) {
			ci.renderStruct(reflect.ValueOf(value).Elem())
			imgui.TreePop()
		}
	}

	imgui.Separator()
	if imgui.Button("Kill") {
		r.KillEntity(selected)
	}
}

func (ci *ComponentInspector) renderStruct(val reflect.Value) {
	if val.Kind() != reflect.Struct {
		ci.renderField("value", kindOf(val.Type()), val)
		return
	}
	fields := ci.layouts.fields(val.Type())
	if len(fields) == 0 {
		imgui.Text("(no fields)")
	}
	for _, f := range fields {
		ci.renderField(f.Name, f.Kind, val.Field(f.Index))
	}
}

// renderField draws the editor for kind. val must be addressable for edits to
// stick, which holds for values reached through a component pointer.
func (ci *ComponentInspector) renderField(name string, kind fieldKind, val reflect.Value) {
	id := "##" + name
	if val.CanAddr() {
		id = fmt.Sprintf("##%s%p", name, val.Addr().Interface())
	}
	switch kind {
	case kindInt:
		v := int32(val.Int())
		ci.label(name, 150)
		if imgui.InputInt(id, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case kindFloat:
		v := float32(val.Float())
		ci.label(name, 150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case kindBool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case kindString:
		v := val.String()
		ci.label(name, 200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case kindDuration:
		// edited in seconds
		v := float32(time.Duration(val.Int()).Seconds())
		ci.label(name+" (s)", 150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetInt(int64(float64(v) * float64(time.Second)))
		}

	case kindVec2:
		x, y := val.FieldByName("X"), val.FieldByName("Y")
		vx, vy := float32(x.Float()), float32(y.Float())
		ci.label(name, 70)
		if imgui.InputFloat(id+"x", &vx) && x.CanSet() {
			x.SetFloat(float64(vx))
		}
		imgui.SameLine()
		imgui.SetNextItemWidth(70)
		if imgui.InputFloat(id+"y", &vy) && y.CanSet() {
			y.SetFloat(float64(vy))
		}

	case kindStruct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val)
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func (ci *ComponentInspector) label(name string, width float32) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}
