// Package springs is a small spring-chain energy model built on cached values.
// Particles sit on a line; consecutive particles are joined by identical springs.
package springs

import (
	"math"

	"go.trai.ch/zerr"

	"github.com/AnatoleLucet/lazy"
	"github.com/AnatoleLucet/lazy/props"
)

// ErrNegativeStiffness is the failure of every stiffness-dependent output when stiffness < 0.
var ErrNegativeStiffness = zerr.New("stiffness must not be negative")

type Model struct {
	Positions         *props.Prop[[]float64]
	Stiffness         *props.Prop[float64]
	RestLength        *props.Prop[float64]
	ResistCompression *props.Prop[bool]

	// validated stiffness
	K *lazy.Value[float64]

	Lengths    *lazy.Value[[]float64]
	Extensions *lazy.Value[[]float64]
	Energy     *lazy.Value[float64]

	// produced together by one action
	Forces   *lazy.Value[[]float64]
	MaxForce *lazy.Value[float64]

	scope *lazy.Scope
}

// Build declares the model's props in m and the values derived from them.
func Build(m *props.Manager) *Model {
	model := &Model{
		Positions: props.Add(m, "positions", []float64{0, 1}).
			Help("particle positions along the line").Abbrev("x").Category("geometry"),
		Stiffness: props.Add(m, "stiffness", 1.0).
			Help("spring stiffness").Abbrev("k").Category("material"),
		RestLength: props.Add(m, "restlength", 1.0).
			Help("spring rest length").Abbrev("l").Category("material"),
		ResistCompression: props.Add(m, "resist_compression", true).
			Help("whether compressed springs push back").Category("material"),
	}

	g := lazy.In(m.Graph())
	model.scope = lazy.NewScope(g)

	_ = model.scope.Run(func() error {
		model.K = lazy.NewCache("k", func() (float64, error) {
			k := model.Stiffness.Fetch()
			if k < 0 {
				return 0, zerr.With(zerr.Wrap(ErrNegativeStiffness, "invalid material"), "stiffness", k)
			}
			return k, nil
		}, g)

		model.Lengths = lazy.NewCache("lengths", func() ([]float64, error) {
			x := model.Positions.Fetch()
			if len(x) < 2 {
				return nil, nil
			}

			lengths := make([]float64, len(x)-1)
			for i := range lengths {
				lengths[i] = math.Abs(x[i+1] - x[i])
			}
			return lengths, nil
		}, g)

		model.Extensions = lazy.NewCache("extensions", func() ([]float64, error) {
			lengths := model.Lengths.Fetch()
			rest := model.RestLength.Fetch()

			extensions := make([]float64, len(lengths))
			for i, l := range lengths {
				extensions[i] = l - rest
			}
			return extensions, nil
		}, g)

		model.Energy = lazy.NewCache("energy", func() (float64, error) {
			k := model.K.Fetch()

			energy := 0.0
			for _, e := range model.active() {
				energy += k * e * e
			}
			return energy / 2, nil
		}, g)

		model.Forces = lazy.NewOutput[[]float64]("forces", g)
		model.MaxForce = lazy.NewOutput[float64]("max_force", g)
		lazy.NewAction("forces", []lazy.Node{model.Forces, model.MaxForce}, model.computeForces, g)

		return nil
	})

	return model
}

// active returns the extensions of the springs that resist, zero for the others.
// resist_compression is only read when some spring is compressed.
func (m *Model) active() []float64 {
	extensions := m.Extensions.Fetch()

	out := make([]float64, len(extensions))
	for i, e := range extensions {
		if e < 0 && !m.ResistCompression.Fetch() {
			continue
		}
		out[i] = e
	}
	return out
}

func (m *Model) computeForces() error {
	x := m.Positions.Fetch()
	k := m.K.Fetch()

	forces := make([]float64, len(x))
	for s, e := range m.active() {
		// tension pulls both ends towards each other
		t := k * e
		if x[s+1] < x[s] {
			t = -t
		}
		forces[s] += t
		forces[s+1] -= t
	}

	maxForce := 0.0
	for _, f := range forces {
		maxForce = max(maxForce, math.Abs(f))
	}

	m.Forces.Set(forces)
	m.MaxForce.Set(maxForce)
	return nil
}

// Close releases the derived values. The props stay with their manager.
func (m *Model) Close() {
	m.scope.Dispose()
}
