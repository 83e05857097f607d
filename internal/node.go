package internal

// Storage is the typed slot a node manages. The node decides when it is filled and cleared;
// the slot only knows how to hold and destroy one element.
type Storage interface {
	// Clear destroys the held element, if any.
	Clear()

	// TypeName describes the element type, for dumps.
	TypeName() string
}

type Node struct {
	graph   *Graph
	name    string
	storage Storage

	// true when no valid content is held
	dirty bool

	// set instead of a value when the producing action failed
	failure *Failure

	// the action allowed to write this node, nil for leaves
	owner *Action

	// set once the owner wrote this node during its current run
	published bool

	// head of the list of links to actions that read this node
	subsHead *Link

	pulling  bool
	released bool

	handle Handle
}

func (g *Graph) NewNode(name string, storage Storage) *Node {
	n := &Node{
		graph:   g,
		name:    name,
		storage: storage,
		dirty:   true,
	}
	n.handle = g.arena.register(n)

	if owner := g.tracker.CurrentOwner(); owner != nil {
		owner.OnCleanup(n.Release)
	}

	return n
}

func (n *Node) Name() string      { return n.name }
func (n *Node) Dirty() bool       { return n.dirty }
func (n *Node) Failure() *Failure { return n.failure }
func (n *Node) Storage() Storage  { return n.storage }
func (n *Node) Graph() *Graph     { return n.graph }
func (n *Node) Handle() Handle    { return n.handle }
func (n *Node) Released() bool    { return n.released }
func (n *Node) Owner() *Action    { return n.owner }

// State describes the node in one word.
func (n *Node) State() string {
	switch {
	case n.released:
		return "released"
	case n.dirty:
		return "dirty"
	case n.failure != nil:
		return "failed"
	default:
		return "clean"
	}
}

// Signal propagates a change of this node to everything that depends on it.
func (n *Node) Signal() {
	n.graph.Signal(n)
}

// Write replaces the node's content through store and notifies dependents.
func (n *Node) Write(store func()) {
	n.checkAlive()
	n.checkWritable()

	n.storage.Clear()
	n.failure = nil
	store()
	n.dirty = false
	n.published = true

	// an action's outputs are invalidated when its run starts, so their dependents are dirty already
	if n.owner == nil {
		n.graph.Signal(n)
	}
}

// SetDirty invalidates the node. Nothing is recomputed until the next read.
func (n *Node) SetDirty() {
	n.checkAlive()
	n.checkWritable()

	n.published = true
	if n.invalidate() {
		n.graph.Signal(n)
	}
}

// Pull brings the node up to date, running its action if it is dirty.
func (n *Node) Pull() {
	n.checkAlive()
	if !n.dirty {
		return
	}

	if n.pulling {
		panic(misuse(ErrCycle, "reentrant pull", "node", n.name))
	}
	if n.owner == nil {
		panic(misuse(ErrStaleRead, "no action produces this node", "node", n.name))
	}

	// listeners queued by an aborted run still run once the graph settles
	defer n.graph.settle()

	n.recompute()
}

func (n *Node) recompute() {
	n.pulling = true
	n.graph.depth++
	defer func() {
		n.pulling = false
		n.graph.depth--
	}()

	n.owner.Run()
}

// Read is the tracked read path: pull, record the edge to the running action,
// then report the captured failure if there is one.
func (n *Node) Read() error {
	n.checkAlive()

	// directly or through other actions, an output is never read while its action runs
	if n.owner != nil && n.owner.running {
		panic(misuse(ErrCycle, "output read while its action runs", "node", n.name))
	}

	n.Pull()
	if n.dirty {
		panic(misuse(ErrStaleRead, "action left its output dirty", "node", n.name))
	}

	n.graph.tracker.Track(n)

	if n.failure != nil {
		return n.failure
	}
	return nil
}

// CheckPeek fails fast unless the node already holds current content.
func (n *Node) CheckPeek() {
	n.checkAlive()
	if n.dirty {
		panic(misuse(ErrStaleRead, "peek at dirty node", "node", n.name))
	}
}

// Release destroys the node: every edge to it is detached, its content destroyed and its handle invalidated.
func (n *Node) Release() {
	if n.released {
		return
	}

	for link := n.subsHead; link != nil; {
		next := link.nextSub
		link.action.removeDepLink(link)
		link = next
	}
	n.subsHead = nil

	n.storage.Clear()
	n.failure = nil
	n.dirty = true
	n.released = true
	n.graph.arena.release(n.handle)

	if n.owner != nil {
		n.owner.outputReleased()
	}
}

// invalidate drops the content and reports whether the node was clean before.
func (n *Node) invalidate() bool {
	if n.dirty {
		return false
	}

	n.storage.Clear()
	n.failure = nil
	n.dirty = true
	return true
}

func (n *Node) fail(f *Failure) {
	if n.released {
		return
	}

	n.storage.Clear()
	n.failure = f
	n.dirty = false
}

func (n *Node) checkAlive() {
	if n.released {
		panic(misuse(ErrReleased, "use after release", "node", n.name))
	}
}

func (n *Node) checkWritable() {
	if n.owner != nil && n.graph.tracker.CurrentAction() != n.owner {
		panic(misuse(ErrNotWritable, "written outside of its action", "node", n.name))
	}
}
