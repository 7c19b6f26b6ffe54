package debugui

import (
	"reflect"
	"time"

	"github.com/plus3/explore/geom"
)

// fieldKind selects the editor drawn for a component field.
type fieldKind int

const (
	kindReadOnly fieldKind = iota
	kindInt
	kindFloat
	kindBool
	kindString
	kindDuration
	kindVec2
	kindStruct
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	vec2Type     = reflect.TypeFor[geom.Vec2]()
)

func kindOf(t reflect.Type) fieldKind {
	switch t {
	case durationType:
		return kindDuration
	case vec2Type:
		return kindVec2
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return kindInt
	case reflect.Float32, reflect.Float64:
		return kindFloat
	case reflect.Bool:
		return kindBool
	case reflect.String:
		return kindString
	case reflect.Struct:
		return kindStruct
	}
	return kindReadOnly
}

type fieldLayout struct {
	Name  string
	Index int
	Kind  fieldKind
}

// layoutCache holds the exported fields of each component type inspected so
// far. It is only touched from the draw loop.
type layoutCache map[reflect.Type][]fieldLayout

func (c layoutCache) fields(t reflect.Type) []fieldLayout {
	if l, ok := c[t]; ok {
		return l
	}
	var l []fieldLayout
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			l = append(l, fieldLayout{Name: f.Name, Index: i, Kind: kindOf(f.Type)})
		}
	}
	c[t] = l
	return l
}
