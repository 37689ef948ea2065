package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/lined/internal/input/keymap"
)

// RunScript runs the Lua init script at path and returns the bindings it
// made, in call order. The script gets the base, table, string and math
// libraries plus:
//
//	bind(keys, action)  -- bind keys to an action name
//	unbind(keys)        -- remove any binding for keys
func RunScript(path string) ([]keymap.Binding, error) {
	bindings, err := runScript(func(L *lua.LState) error {
		return L.DoFile(path)
	})
	if err != nil {
		return nil, &ScriptError{Path: path, Err: err}
	}
	return bindings, nil
}

// RunScriptString is RunScript for inline source.
func RunScriptString(code string) ([]keymap.Binding, error) {
	bindings, err := runScript(func(L *lua.LState) error {
		return L.DoString(code)
	})
	if err != nil {
		return nil, &ScriptError{Path: "<string>", Err: err}
	}
	return bindings, nil
}

func runScript(exec func(L *lua.LState) error) (bindings []keymap.Binding, err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// io, os, debug and package stay closed.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	L.SetGlobal("bind", L.NewFunction(func(L *lua.LState) int {
		keys := L.CheckString(1)
		action := L.CheckString(2)
		bindings = append(bindings, keymap.NewBinding(keys, action))
		return 0
	}))
	L.SetGlobal("unbind", L.NewFunction(func(L *lua.LState) int {
		bindings = append(bindings, keymap.NewBinding(L.CheckString(1), "None"))
		return 0
	}))

	defer func() {
		if r := recover(); r != nil {
			bindings, err = nil, fmt.Errorf("lua panic: %v", r)
		}
	}()
	if err := exec(L); err != nil {
		return nil, err
	}
	return bindings, nil
}
