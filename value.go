package lazy

import (
	"fmt"
	"io"
	"reflect"

	"go.trai.ch/zerr"

	"github.com/AnatoleLucet/lazy/internal"
)

// Handle is a weak reference to a value. It resolves only while the value is alive.
type Handle = internal.Handle

// Node is the part of a value that does not depend on its element type.
type Node interface {
	Name() string
	Dirty() bool
	Failed() bool
	Type() reflect.Type
	Handle() Handle

	// SetDirty invalidates the value and everything depending on it.
	SetDirty()

	// Release destroys the value. Any later use panics with ErrReleased.
	Release()

	Dependents() []Node
	AllDependents() []Node
	Dependencies() []Node
	AllDependencies() []Node

	// Dump writes the value and its dependencies, indented by depth.
	Dump(w io.Writer) error

	String() string

	base() *internal.Node
}

// cell is the in-place storage of a value. It is filled and cleared only by the node's transitions.
type cell[T any] struct {
	owner *Value[T]

	value T
	held  bool
}

func (c *cell[T]) emplace(v T) {
	c.value = v
	c.held = true
}

func (c *cell[T]) Clear() {
	var zero T
	c.value = zero
	c.held = false
}

func (c *cell[T]) TypeName() string {
	return reflect.TypeFor[T]().String()
}

func (c *cell[T]) public() Node {
	return c.owner
}

// Value is a named, cached element of type T.
type Value[T any] struct {
	node *internal.Node
	cell cell[T]
}

// NewLeaf creates a value written directly by the caller, holding initial.
func NewLeaf[T any](name string, initial T, opts ...Option) *Value[T] {
	v := newValue[T](name, resolveOptions(opts))
	v.Set(initial)
	return v
}

// NewOutput creates a dirty value to be produced by an action. See NewAction.
func NewOutput[T any](name string, opts ...Option) *Value[T] {
	return newValue[T](name, resolveOptions(opts))
}

func newValue[T any](name string, o *options) *Value[T] {
	checkElem[T](name)

	v := &Value[T]{}
	v.cell.owner = v
	v.node = o.graph.NewNode(name, &v.cell)
	return v
}

// checkElem rejects element types whose content the cache cannot own:
// raw addresses and live communication endpoints.
func checkElem[T any](name string) {
	t := reflect.TypeFor[T]()

	switch t.Kind() {
	case reflect.UnsafePointer, reflect.Uintptr, reflect.Chan:
		err := zerr.With(zerr.Wrap(internal.ErrConstruction, "cannot cache element type"), "type", t.String())
		panic(zerr.With(err, "node", name))
	}
}

func (v *Value[T]) Name() string       { return v.node.Name() }
func (v *Value[T]) Dirty() bool        { return v.node.Dirty() }
func (v *Value[T]) Failed() bool       { return v.node.Failure() != nil }
func (v *Value[T]) Type() reflect.Type { return reflect.TypeFor[T]() }
func (v *Value[T]) Handle() Handle     { return v.node.Handle() }
func (v *Value[T]) Released() bool     { return v.node.Released() }

func (v *Value[T]) base() *internal.Node { return v.node }

// Fetch returns the current value, recomputing it first if it is stale.
// Inside an action the read is recorded as a dependency. If the value holds a failure,
// Fetch panics with that *Failure, which the enclosing action captures as its own failure.
// Outside of actions prefer Get.
func (v *Value[T]) Fetch() T {
	if err := v.node.Read(); err != nil {
		panic(err)
	}

	return v.cell.value
}

// Get is Fetch returning the failure instead of panicking with it.
func (v *Value[T]) Get() (T, error) {
	if err := v.node.Read(); err != nil {
		var zero T
		return zero, err
	}

	return v.cell.value, nil
}

// Peek returns the value without recomputing it and without recording a dependency.
// It panics with ErrStaleRead if the value is dirty.
func (v *Value[T]) Peek() T {
	v.node.CheckPeek()

	if f := v.node.Failure(); f != nil {
		panic(f)
	}

	return v.cell.value
}

// Set stores x and invalidates everything depending on the value.
// An action output can only be set by its own action.
func (v *Value[T]) Set(x T) {
	v.node.Write(func() { v.cell.emplace(x) })
}

func (v *Value[T]) SetDirty() {
	v.node.SetDirty()
}

func (v *Value[T]) Release() {
	v.node.Release()
}

func (v *Value[T]) Dependents() []Node      { return publicNodes(v.node.Dependents()) }
func (v *Value[T]) AllDependents() []Node   { return publicNodes(v.node.AllDependents()) }
func (v *Value[T]) Dependencies() []Node    { return publicNodes(v.node.Dependencies()) }
func (v *Value[T]) AllDependencies() []Node { return publicNodes(v.node.AllDependencies()) }

func (v *Value[T]) Dump(w io.Writer) error {
	return v.node.Dump(w, 0)
}

func (v *Value[T]) String() string {
	return fmt.Sprintf("Value(%s)", v.node.Name())
}

// Resolve returns the value behind a handle, or ErrReleased if it no longer exists.
func Resolve[T any](h Handle, opts ...Option) (*Value[T], error) {
	n, err := resolveOptions(opts).graph.Resolve(h)
	if err != nil {
		return nil, err
	}

	v, ok := publicNode(n).(*Value[T])
	if !ok {
		err := zerr.With(zerr.Wrap(internal.ErrTypeMismatch, "cannot resolve handle"), "want", reflect.TypeFor[T]().String())
		return nil, zerr.With(err, "have", n.Storage().TypeName())
	}

	return v, nil
}

type publicStorage interface {
	public() Node
}

func publicNode(n *internal.Node) Node {
	return n.Storage().(publicStorage).public()
}

func publicNodes(nodes []*internal.Node) []Node {
	if len(nodes) == 0 {
		return nil
	}

	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = publicNode(n)
	}
	return out
}

func baseNodes(nodes []Node) []*internal.Node {
	out := make([]*internal.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.base()
	}
	return out
}
