package birthday

import "sync/atomic"

// Current holds the active Builder. A config reload swaps in a new one while
// requests keep reading through the same Current.
type Current struct {
	b atomic.Pointer[Builder]
}

// NewCurrent returns a Current holding b.
func NewCurrent(b *Builder) *Current {
	c := &Current{}
	c.b.Store(b)
	return c
}

// Get returns the active Builder.
func (c *Current) Get() *Builder {
	return c.b.Load()
}

// Set replaces the active Builder.
func (c *Current) Set(b *Builder) {
	c.b.Store(b)
}

// SystemPrompt renders the system instruction with the active Builder.
func (c *Current) SystemPrompt() string {
	return c.Get().SystemPrompt()
}
