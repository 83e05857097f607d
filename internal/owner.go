package internal

import (
	"iter"
)

// Owner is responsible for the lifetime of the nodes, actions and listeners created
// while it is the current owner. Graph edges never keep anything alive; owners do.
type Owner struct {
	graph *Graph

	// release functions, run once when the owner is disposed
	cleanups []func()

	disposed bool

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

// Run calls fn with o as the current owner.
func (o *Owner) Run(fn func() error) error {
	return o.graph.tracker.RunWithOwner(o, fn)
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (o *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := o.childrenHead

		for child != nil {
			if !yield(child) {
				return
			}

			child = child.nextSibling
		}
	}
}

// Dispose disposes the children first, then runs the cleanups in reverse registration order,
// so that dependents are released before what they read.
func (o *Owner) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true

	o.DisposeChildren()

	for i := len(o.cleanups) - 1; i >= 0; i-- {
		o.cleanups[i]()
	}
	o.cleanups = nil
}

func (o *Owner) DisposeChildren() {
	for child := range o.Children() {
		child.Dispose()
	}
	o.childrenHead = nil
}

func (o *Owner) Disposed() bool {
	return o.disposed
}

func (o *Owner) OnCleanup(fn func()) {
	if o.disposed {
		fn()
		return
	}

	o.cleanups = append(o.cleanups, fn)
}
