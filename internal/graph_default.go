//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var graphs sync.Map

// DefaultGraph returns the graph of the calling goroutine, creating it on first use.
func DefaultGraph() *Graph {
	gid := goid.Get()

	if g, ok := graphs.Load(gid); ok {
		return g.(*Graph)
	}

	g := NewGraph(nil)
	graphs.Store(gid, g)
	return g
}
