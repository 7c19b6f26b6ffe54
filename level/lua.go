package level

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

// loadLua runs the script at path and decodes the table it assigns to the
// global Level.
func loadLua(path string) (*Level, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer vm.Close()

	// level scripts get no file or os access
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := vm.CallByParam(lua.P{
			Fn:      vm.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return nil, fmt.Errorf("open lua %s library: %w", lib.name, err)
		}
	}
	for _, name := range []string{"dofile", "loadfile", "require"} {
		vm.SetGlobal(name, lua.LNil)
	}
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	if err := vm.DoFile(path); err != nil {
		return nil, fmt.Errorf("run level script %s: %w", path, err)
	}

	tbl, ok := vm.GetGlobal("Level").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("level script %s: global Level is not a table", path)
	}

	// round-trip through yaml so Lua and YAML levels share one decoder
	data, err := yaml.Marshal(fromLua(tbl))
	if err != nil {
		return nil, fmt.Errorf("encode level script %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level script %s: %w", path, err)
	}
	return lvl, nil
}

// fromLua converts a Lua value to plain Go values. Tables with only a
// sequence part become slices, other tables become maps keyed by string.
func fromLua(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if n := v.MaxN(); n > 0 {
			list := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				list = append(list, fromLua(v.RawGetInt(i)))
			}
			return list
		}
		m := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			m[k.String()] = fromLua(val)
		})
		return m
	}
	return nil
}
