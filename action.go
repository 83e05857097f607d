package lazy

import (
	"go.trai.ch/zerr"

	"github.com/AnatoleLucet/lazy/internal"
)

// Action computes one or more output values. Its dependencies are not declared:
// they are the values it reads with Fetch or Get during its last run.
type Action struct {
	action *internal.Action
}

// NewAction binds run to outputs. run is called when a dirty output is read, and must
// Set (or SetDirty) every output before returning nil. If run fails, by returning an error
// or panicking, every output holds the same Failure and writes made during that run are discarded.
func NewAction(name string, outputs []Node, run func() error, opts ...Option) *Action {
	o := resolveOptions(opts)

	for _, out := range outputs {
		if out.base().Graph() != o.graph {
			panic(zerr.With(zerr.Wrap(internal.ErrNotWritable, "output belongs to another graph"), "node", out.Name()))
		}
	}

	return &Action{o.graph.NewAction(name, baseNodes(outputs), run)}
}

// NewCache creates a value computed by compute.
func NewCache[T any](name string, compute func() (T, error), opts ...Option) *Value[T] {
	out := NewOutput[T](name, opts...)

	NewAction(name, []Node{out}, func() error {
		v, err := compute()
		if err != nil {
			return err
		}

		out.Set(v)
		return nil
	}, opts...)

	return out
}

func (a *Action) Name() string { return a.action.Name() }

// Running reports whether the action's run is in progress.
func (a *Action) Running() bool { return a.action.Running() }

func (a *Action) Outputs() []Node {
	return publicNodes(a.action.Outputs())
}

// Inputs returns the values read during the last run.
func (a *Action) Inputs() []Node {
	var inputs []*internal.Node
	for n := range a.action.Inputs() {
		inputs = append(inputs, n)
	}
	return publicNodes(inputs)
}

// Release detaches the action. Reading one of its dirty outputs afterwards panics with ErrReleased.
func (a *Action) Release() {
	a.action.Release()
}
