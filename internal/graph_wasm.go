//go:build wasm

package internal

import "sync"

var once sync.Once
var globalGraph *Graph

// DefaultGraph returns the single graph used on wasm, where everything runs on one goroutine.
func DefaultGraph() *Graph {
	once.Do(func() {
		globalGraph = NewGraph(nil)
	})

	return globalGraph
}
