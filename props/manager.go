// Package props is a store of named, ordered leaf values with defaults and metadata,
// settable from YAML documents and command-line flags.
package props

import (
	"errors"
	"io"
	"slices"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/lazy"
)

// Manager owns a set of props. Closing it releases every prop.
type Manager struct {
	graph *lazy.Graph
	scope *lazy.Scope

	props map[string]Entry
	order []string
}

// NewManager creates an empty manager whose props live in g, or in the default graph if g is nil.
func NewManager(g *lazy.Graph) *Manager {
	if g == nil {
		g = lazy.Default()
	}

	return &Manager{
		graph: g,
		scope: lazy.NewScope(lazy.In(g)),
		props: make(map[string]Entry),
		order: make([]string, 0),
	}
}

// Add declares a prop holding def. It panics with ErrDuplicateProp if name is taken.
func Add[T any](m *Manager, name string, def T) *Prop[T] {
	if m.Contains(name) {
		panic(zerr.With(zerr.Wrap(ErrDuplicateProp, "cannot add prop"), "prop", name))
	}

	p := &Prop[T]{def: def}
	_ = m.scope.Run(func() error {
		p.Value = lazy.NewLeaf(name, def, lazy.In(m.graph))
		return nil
	})

	m.props[name] = p
	m.order = append(m.order, name)
	return p
}

// Graph returns the graph the props live in.
func (m *Manager) Graph() *lazy.Graph {
	return m.graph
}

func (m *Manager) Get(name string) (Entry, bool) {
	p, ok := m.props[name]
	return p, ok
}

func (m *Manager) Contains(name string) bool {
	_, ok := m.props[name]
	return ok
}

// Names returns the prop names in declaration order.
func (m *Manager) Names() []string {
	return slices.Clone(m.order)
}

// Load sets props from a YAML mapping of name to value. Every entry is decoded before
// any prop is written, so a bad document leaves the props untouched. Props set from
// flags keep their value.
func (m *Manager) Load(r io.Reader) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return zerr.Wrap(err, "failed to parse props")
	}

	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return zerr.With(zerr.New("props document must be a mapping"), "line", root.Line)
	}

	var updates []func()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		entry, ok := m.props[key.Value]
		if !ok {
			err := zerr.With(zerr.Wrap(ErrUnknownProp, "cannot load props"), "prop", key.Value)
			return zerr.With(err, "line", key.Line)
		}
		if entry.fromFlag() {
			continue
		}

		apply, err := entry.decode(value)
		if err != nil {
			return zerr.With(err, "line", value.Line)
		}
		updates = append(updates, apply)
	}

	m.graph.Batch(func() {
		for _, apply := range updates {
			apply()
		}
	})

	return nil
}

// Validate reports the first required prop that was never set.
func (m *Manager) Validate() error {
	for _, name := range m.order {
		entry := m.props[name]
		if entry.Meta().Required && !entry.Explicit() {
			return zerr.With(zerr.Wrap(ErrMissingProp, "invalid props"), "prop", name)
		}
	}

	return nil
}

// Close releases every prop.
func (m *Manager) Close() {
	m.scope.Dispose()
}
