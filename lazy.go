// Package lazy is an incremental, dependency-tracked value cache.
//
// Values are either leaves, written directly, or outputs of actions, computed on demand.
// Reading a value through Fetch or Get records a dependency edge from the running action
// and recomputes the value only if it is stale. Writing a value marks everything that
// transitively read it dirty, without recomputing anything until the next read.
package lazy

import (
	"log/slog"

	"github.com/AnatoleLucet/lazy/internal"
)

// Graph owns the propagation state shared by a set of values.
// A graph is single-threaded: use it from one goroutine at a time.
type Graph struct {
	graph *internal.Graph
}

type graphOptions struct {
	logger *slog.Logger
}

type GraphOption func(*graphOptions)

// WithLogger sets the logger receiving recomputation and failure records at debug level.
func WithLogger(logger *slog.Logger) GraphOption {
	return func(o *graphOptions) { o.logger = logger }
}

// NewGraph creates an empty graph.
func NewGraph(opts ...GraphOption) *Graph {
	o := &graphOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return &Graph{internal.NewGraph(o.logger)}
}

// Default returns the graph of the calling goroutine.
func Default() *Graph {
	return &Graph{internal.DefaultGraph()}
}

// SetLogger replaces the graph's logger. A nil logger discards everything.
func (g *Graph) SetLogger(logger *slog.Logger) {
	g.graph.SetLogger(logger)
}

// Batch runs fn and notifies listeners once, after it returns.
// Values written inside fn are invalidated immediately as usual.
func (g *Graph) Batch(fn func()) {
	g.graph.Batch(fn)
}

// Batch groups writes on the default graph.
func Batch(fn func()) {
	Default().Batch(fn)
}

type options struct {
	graph *internal.Graph
}

// Option configures the creation of a value, action, listener or scope.
type Option func(*options)

// In places the created node in g instead of the goroutine's default graph.
func In(g *Graph) Option {
	return func(o *options) { o.graph = g.graph }
}

func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.graph == nil {
		o.graph = internal.DefaultGraph()
	}

	return o
}

// Untrack runs fn without recording the values it reads as dependencies of the running action.
func Untrack[T any](fn func() T, opts ...Option) T {
	var result T
	resolveOptions(opts).graph.Untrack(func() { result = fn() })
	return result
}
