package internal

import (
	"log/slog"
)

// Graph owns the scheduling state shared by a set of nodes: the propagation worklist,
// the read tracker and the listener queue. It is not safe for concurrent use.
type Graph struct {
	logger *slog.Logger

	arena     *Arena
	tracker   *Tracker
	batcher   *Batcher
	scheduler *Scheduler
	listeners *ListenerQueue

	// number of pulls in progress, listeners only run at depth 0
	depth int
}

func NewGraph(logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	listeners := NewListenerQueue()

	return &Graph{
		logger:    logger,
		arena:     NewArena(),
		tracker:   NewTracker(),
		batcher:   NewBatcher(),
		scheduler: NewScheduler(listeners),
		listeners: listeners,
	}
}

func (g *Graph) Logger() *slog.Logger {
	return g.logger
}

func (g *Graph) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g.logger = logger
}

func (g *Graph) Tracker() *Tracker {
	return g.tracker
}

// Signal propagates a change of node. When it returns, every reachable dependent is dirty.
func (g *Graph) Signal(node *Node) {
	if g.scheduler.Signal(node) {
		g.settle()
	}
}

// Batch groups writes so that listeners are notified once, after fn returns.
func (g *Graph) Batch(fn func()) {
	g.batcher.Batch(fn, g.settle)
}

func (g *Graph) Untrack(fn func()) {
	g.tracker.RunUntracked(fn)
}

// Resolve returns the live node behind a handle.
func (g *Graph) Resolve(h Handle) (*Node, error) {
	return g.arena.Resolve(h)
}

func (g *Graph) NewOwner() *Owner {
	o := &Owner{graph: g}

	if parent := g.tracker.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

// settle runs queued listeners once no drain, pull or batch is in progress.
func (g *Graph) settle() {
	if g.depth > 0 || g.scheduler.Draining() || g.batcher.IsBatching() {
		return
	}

	if g.listeners.Len() > 0 {
		g.logger.Debug("notify listeners", "count", g.listeners.Len())
		g.listeners.Run()
	}
}
