package extension

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"

	"codesmith/internal/extension/lua"
	"codesmith/internal/logger"
)

// Host runs a single extension in its own sandboxed Lua state.
//
// The state stays alive for the life of the process because registered
// command callbacks are Lua functions that execute inside it.
type Host struct {
	name  string
	path  string
	state *lua.State
}

// NewHost creates a host for the given candidate. The Lua state is created
// eagerly but no code runs until Import.
func NewHost(c Candidate) *Host {
	return &Host{
		name:  c.Name,
		path:  c.Path,
		state: lua.NewState(),
	}
}

// Name returns the extension's module identifier.
func (h *Host) Name() string {
	return h.name
}

// Import executes the extension file. A failed import leaves the state
// unusable; callers should Close the host and move on.
func (h *Host) Import() error {
	if err := h.state.DoFile(h.path); err != nil {
		return fmt.Errorf("importing extension %s: %w", h.name, err)
	}
	return nil
}

// Register invokes the extension's global register function, passing an
// editor table that exposes the host surface. Every extension must expose
// the entry point; a missing register is an error, but the failure stays
// local to this extension.
func (h *Host) Register(surface Surface) error {
	if h.state.Global("register").Type() != glua.LTFunction {
		return fmt.Errorf("extension %s: %w", h.name, ErrNoRegister)
	}

	editor := h.editorTable(surface)
	if err := h.state.CallGlobal("register", editor); err != nil {
		return fmt.Errorf("registering extension %s: %w", h.name, err)
	}
	return nil
}

// editorTable builds the Lua-side view of the host surface:
//
//	editor.register_command(label, fn)
func (h *Host) editorTable(surface Surface) *glua.LTable {
	t := h.state.NewTable()

	register := h.state.NewFunction(func(L *glua.LState) int {
		label := L.CheckString(1)
		fn := L.CheckFunction(2)

		surface.RegisterCommand(label, func() {
			if err := h.state.CallFunction(fn); err != nil {
				logger.Warn("extension command failed",
					"extension", h.name, "command", label, "error", err)
			}
		})
		return 0
	})

	h.state.SetField(t, "register_command", register)
	return t
}

// Close releases the extension's Lua state. Only used when an extension
// fails to import; registered extensions live for the process.
func (h *Host) Close() {
	h.state.Close()
}
