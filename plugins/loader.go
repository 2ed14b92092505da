// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"
)

// EntryPointSymbol is the name of the global a plugin script assigns its
// entry point table to.
const EntryPointSymbol = "loader"

// LoadScript runs the plugin script of the specified candidate in its own Lua
// state and returns the resulting unit. If the script does not define an entry
// point, LoadScript returns a nil unit and nil error. Scripts failing to
// compile or raising errors when run result in a LoadError.
func LoadScript(fs afero.Fs, c Candidate) (*Unit, error) {
	src, err := afero.ReadFile(fs, c.Path)
	if err != nil {
		return nil, &LoadError{Path: c.Path, Err: err}
	}
	L := lua.NewState()
	fn, err := L.Load(bytes.NewReader(src), c.Path)
	if err != nil {
		L.Close()
		return nil, &LoadError{Path: c.Path, Err: err}
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, &LoadError{Path: c.Path, Err: err}
	}
	L.SetTop(0)

	entry, ok := L.GetGlobal(EntryPointSymbol).(*lua.LTable)
	if !ok {
		L.Close()
		log.Debugf("skipping %q: no %q entry point", c.Path, EntryPointSymbol)
		return nil, nil
	}
	run, ok := entry.RawGetString("run").(*lua.LFunction)
	if !ok {
		L.Close()
		log.Debugf("skipping %q: %q entry point lacks a run function", c.Path, EntryPointSymbol)
		return nil, nil
	}
	meta, err := metaFromLua(entry.RawGetString("meta"))
	if err != nil {
		L.Close()
		return nil, &LoadError{Path: c.Path, Err: err}
	}
	return &Unit{
		Identifier: identifier(L, entry, c.Path),
		GroupTag:   lua.LVAsString(entry.RawGetString("group")),
		Meta:       meta,
		Entry:      &scriptEntry{state: L, run: run},
	}, nil
}

// identifier returns the name of the global referencing the entry point
// table, other than the entry point symbol itself. If there are multiple such
// globals, the lexicographically first wins. Without any such global the
// script's file name without extension is used.
func identifier(L *lua.LState, entry *lua.LTable, path string) string {
	id := ""
	L.G.Global.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok || string(name) == EntryPointSymbol || v != lua.LValue(entry) {
			return
		}
		if id == "" || string(name) < id {
			id = string(name)
		}
	})
	if id != "" {
		return id
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// scriptEntry is the entry point of a plugin script, keeping the script's Lua
// state alive.
type scriptEntry struct {
	state *lua.LState
	run   *lua.LFunction
}

var _ EntryPoint = (*scriptEntry)(nil)

// Run calls the script's run function with the invocation args as a Lua list.
// Scripts can write output lines using display(text) and query configuration
// values using config(key).
func (e *scriptEntry) Run(ctx context.Context, inv *Invocation) error {
	L := e.state
	L.SetContext(ctx)
	defer L.RemoveContext()

	L.SetGlobal("display", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for idx := 1; idx <= L.GetTop(); idx++ {
			parts = append(parts, L.ToStringMeta(L.Get(idx)).String())
		}
		fmt.Fprintln(inv.Out, strings.Join(parts, " "))
		return 0
	}))
	L.SetGlobal("config", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		value := ""
		if inv.Config != nil {
			value = inv.Config.Get(key)
		}
		L.Push(lua.LString(value))
		return 1
	}))

	args := L.NewTable()
	for _, arg := range inv.Args {
		args.Append(lua.LString(arg))
	}
	if err := L.CallByParam(lua.P{Fn: e.run, NRet: 0, Protect: true}, args); err != nil {
		return fmt.Errorf("plugin %s failed: %w", inv.Name, err)
	}
	return nil
}

// Close releases the script's Lua state.
func (e *scriptEntry) Close() error {
	e.state.Close()
	return nil
}
