package lazy

import "github.com/AnatoleLucet/lazy/internal"

// Listener calls a function whenever one of a fixed set of values changes or becomes stale.
type Listener struct {
	listener *internal.Action
}

// Listen calls fn after any of deps becomes stale, or is written while it is a leaf. fn runs once the graph
// has settled: after propagation, outside of any recomputation and after the outermost Batch.
// Several changes before that produce a single call.
func Listen(name string, deps []Node, fn func(), opts ...Option) *Listener {
	o := resolveOptions(opts)
	return &Listener{o.graph.NewListener(name, baseNodes(deps), fn)}
}

func (l *Listener) Name() string { return l.listener.Name() }

func (l *Listener) Inputs() []Node {
	var inputs []*internal.Node
	for n := range l.listener.Inputs() {
		inputs = append(inputs, n)
	}
	return publicNodes(inputs)
}

// Close stops the listener.
func (l *Listener) Close() {
	l.listener.Release()
}
