// Package extension is the editor's plugin host.
//
// Extensions are standalone Lua files discovered once at startup from a
// single directory. Each runs in its own sandboxed state and must expose
// a global entry point:
//
//	function register(editor)
//	    editor.register_command("My Command", function()
//	        -- runs when the user picks the command
//	    end)
//	end
//
// The editor table is the entire surface: one capability, registering a
// labeled zero-argument command that appears in the Extensions menu.
//
// Failure handling is the load-bearing design point. The import of each
// file and the call to its register function are independently fault
// isolated: an extension that fails either step is logged and skipped
// without affecting other extensions or editor startup. A module whose
// register call fails still counts as imported. There is no mechanism to
// disable, reload, or version extensions; that is a deliberate simplicity
// boundary.
package extension
