package extension

// Surface is the editor capability handed to extensions at registration.
// It is deliberately narrow: one capability, registering a labeled command
// that shows up in the Extensions menu. Extensions borrow the surface for
// the duration of their register call and through command callbacks; they
// never own editor state.
type Surface interface {
	// RegisterCommand adds a named command with a zero-argument callback.
	RegisterCommand(label string, run func())
}
