// Package lua wraps gopher-lua with the sandboxing and panic recovery the
// extension host needs.
package lua

import (
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"codesmith/internal/logger"
)

// State wraps a sandboxed Lua state for one extension.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes access
// from Go code, but Lua execution itself is single-threaded.
type State struct {
	mu sync.Mutex

	L      *lua.LState
	closed bool
}

// NewState creates a new sandboxed Lua state. Only the base, table,
// string, and math libraries are opened; io, os, debug, and package are
// withheld so extensions cannot reach outside the editor surface.
func NewState() *State {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Loading arbitrary code at runtime would bypass the one-shot
	// file-based loading model.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	// The editor owns stdout; route print to the log.
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		logger.Info("lua: " + strings.Join(parts, "\t"))
		return 0
	}))

	return &State{L: L}
}

// DoFile executes a Lua file in this state.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	return s.withRecovery(func() error {
		return s.L.DoFile(path)
	})
}

// Global returns the value of a global variable.
func (s *State) Global(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// CallGlobal calls the named global function with the given arguments,
// discarding return values.
func (s *State) CallGlobal(name string, args ...lua.LValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	fn := s.L.GetGlobal(name)
	if fn == lua.LNil {
		return fmt.Errorf("%w: %s", ErrNoFunction, name)
	}
	if fn.Type() != lua.LTFunction {
		return fmt.Errorf("%w: %s is a %s", ErrNoFunction, name, fn.Type())
	}

	return s.withRecovery(func() error {
		return s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	})
}

// CallFunction calls a Lua function value held by Go code, such as a
// command callback captured at registration time.
func (s *State) CallFunction(fn *lua.LFunction, args ...lua.LValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	return s.withRecovery(func() error {
		return s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	})
}

// NewTable returns a fresh table in this state.
func (s *State) NewTable() *lua.LTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.L.NewTable()
}

// NewFunction wraps a Go function for Lua.
func (s *State) NewFunction(fn lua.LGFunction) *lua.LFunction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.L.NewFunction(fn)
}

// SetField sets a field on a table.
func (s *State) SetField(t *lua.LTable, name string, v lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.L.SetField(t, name, v)
}

// Close releases the Lua state.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// withRecovery executes fn, converting Lua panics to errors. Callers must
// hold mu.
func (s *State) withRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
