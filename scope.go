package lazy

import "github.com/AnatoleLucet/lazy/internal"

// Scope owns the values, actions and listeners created while it runs,
// and releases them all when disposed.
type Scope struct {
	owner *internal.Owner
}

// NewScope creates a scope. A scope created inside another scope's Run is its child.
func NewScope(opts ...Option) *Scope {
	return &Scope{resolveOptions(opts).graph.NewOwner()}
}

// Run calls fn with s as the owner of everything fn creates.
func (s *Scope) Run(fn func() error) error { return s.owner.Run(fn) }

// Dispose releases the children scopes, then everything created in s, newest first.
func (s *Scope) Dispose() { s.owner.Dispose() }

// OnDispose registers fn to be called when s is disposed.
// If s is already disposed, fn is called immediately.
func (s *Scope) OnDispose(fn func()) { s.owner.OnCleanup(fn) }
