package editor

import "sync"

// Command is a labeled action in the Extensions menu.
type Command struct {
	Label string
	Run   func()
}

// commandRegistry holds registered commands in registration order.
// Within one extension the order is its registration order; across
// extensions no order is guaranteed, matching the host contract.
type commandRegistry struct {
	mu       sync.Mutex
	commands []Command
}

func (r *commandRegistry) add(label string, run func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, Command{Label: label, Run: run})
}

func (r *commandRegistry) list() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

func (r *commandRegistry) find(label string) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.commands {
		if c.Label == label {
			return c, true
		}
	}
	return Command{}, false
}
