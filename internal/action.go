package internal

import "iter"

type Action struct {
	graph *Graph
	name  string

	// called whenever an output is read while dirty
	run func() error

	// non-nil for listeners: called after a drain when an input signaled
	notify func()
	queued bool

	outputs []*Node

	depsHead *Link
	depsTail *Link
	inputs   map[*Node]*Link // for O(1) coalescing of repeated reads

	running  bool
	released bool
}

func (g *Graph) NewAction(name string, outputs []*Node, run func() error) *Action {
	a := &Action{
		graph:   g,
		name:    name,
		run:     run,
		outputs: outputs,
		inputs:  make(map[*Node]*Link),
	}

	for _, o := range outputs {
		o.checkAlive()
		if o.owner != nil {
			panic(misuse(ErrNotWritable, "output already bound to an action", "node", o.name))
		}
		o.owner = a

		if o.invalidate() {
			g.Signal(o)
		}
	}

	if owner := g.tracker.CurrentOwner(); owner != nil {
		owner.OnCleanup(a.Release)
	}

	return a
}

// NewListener creates an action without outputs whose inputs are fixed at creation.
// notify runs after any input signals, once per drain.
func (g *Graph) NewListener(name string, inputs []*Node, notify func()) *Action {
	a := &Action{
		graph:  g,
		name:   name,
		notify: notify,
		inputs: make(map[*Node]*Link),
	}

	for _, n := range inputs {
		n.checkAlive()
		a.link(n)
	}

	if owner := g.tracker.CurrentOwner(); owner != nil {
		owner.OnCleanup(a.Release)
	}

	return a
}

func (a *Action) Name() string      { return a.name }
func (a *Action) Outputs() []*Node  { return a.outputs }
func (a *Action) Running() bool     { return a.running }
func (a *Action) Released() bool    { return a.released }
func (a *Action) IsListener() bool  { return a.notify != nil }

// Run recomputes the action: its edges are rebuilt from scratch by the reads of this run,
// then either every output holds a fresh value or every output holds the same failure.
func (a *Action) Run() {
	if a.released {
		panic(misuse(ErrReleased, "run after release", "action", a.name))
	}
	if a.running {
		panic(misuse(ErrCycle, "reentrant run", "action", a.name))
	}

	a.ClearDeps()
	for _, o := range a.outputs {
		o.published = false

		// a rerun can be pulled by one dirty output while the others are still clean
		if o.invalidate() {
			a.graph.Signal(o)
		}
	}

	a.running = true
	defer func() {
		a.running = false

		// a programmer error aborted the run, leave no half-published outputs behind
		if r := recover(); r != nil {
			for _, o := range a.outputs {
				o.invalidate()
			}
			panic(r)
		}
	}()

	a.graph.logger.Debug("recompute", "action", a.name)

	failure := a.graph.tracker.RunWithAction(a, a.run)
	if failure == nil {
		for _, o := range a.outputs {
			if !o.published && !o.released {
				failure = newFailure(FailureUnpublished, a.name,
					misuse(ErrUnpublished, "run returned without writing output", "node", o.name))
				break
			}
		}
	}

	if failure != nil {
		a.graph.logger.Debug("computation failed",
			"action", a.name,
			"origin", failure.Origin,
			"kind", failure.Kind.String(),
			"error", failure.cause,
		)

		for _, o := range a.outputs {
			o.fail(failure)
		}
	}
}

// link records that the action read n, coalescing repeated reads into one edge.
func (a *Action) link(n *Node) {
	if _, ok := a.inputs[n]; ok {
		return
	}

	link := &Link{value: n, action: a}
	a.inputs[n] = link

	a.addDepLink(link)
	n.addSubLink(link)
}

// Inputs returns an iterator over the values read during the last run.
func (a *Action) Inputs() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for link := a.depsHead; link != nil; link = link.nextDep {
			if !yield(link.value) {
				return
			}
		}
	}
}

// ClearDeps detaches every input edge.
func (a *Action) ClearDeps() {
	for link := a.depsHead; link != nil; {
		next := link.nextDep
		link.value.removeSubLink(link)
		link.prevDep = nil
		link.nextDep = nil
		link = next
	}

	a.depsHead = nil
	a.depsTail = nil
	clear(a.inputs)
}

// Release detaches the action from the graph. Its outputs can no longer be recomputed.
func (a *Action) Release() {
	if a.released {
		return
	}

	a.ClearDeps()
	a.released = true
	a.queued = false
}

func (a *Action) outputReleased() {
	for _, o := range a.outputs {
		if !o.released {
			return
		}
	}

	a.Release()
}
