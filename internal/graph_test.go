package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intStorage struct {
	value int
	held  bool
}

func (s *intStorage) Clear()           { s.value, s.held = 0, false }
func (s *intStorage) TypeName() string { return "int" }

func leaf(g *Graph, name string, v int) (*Node, *intStorage) {
	s := &intStorage{}
	n := g.NewNode(name, s)
	n.Write(func() { s.value, s.held = v, true })
	return n, s
}

// derived binds an action computing fn of its inputs' values to a new node.
func derived(g *Graph, name string, fn func() (int, error)) (*Node, *intStorage, *Action) {
	s := &intStorage{}
	n := g.NewNode(name, s)

	a := g.NewAction(name, []*Node{n}, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		n.Write(func() { s.value, s.held = v, true })
		return nil
	})

	return n, s, a
}

func read(n *Node, s *intStorage) int {
	if err := n.Read(); err != nil {
		panic(err)
	}
	return s.value
}

func TestScheduler(t *testing.T) {
	t.Run("drains a long chain iteratively", func(t *testing.T) {
		const length = 200_000

		g := NewGraph(nil)
		head, headStorage := leaf(g, "head", 0)

		nodes := []*Node{head}
		storages := []*intStorage{headStorage}
		for i := 1; i < length; i++ {
			prev, prevStorage := nodes[i-1], storages[i-1]
			n, s, _ := derived(g, "link", func() (int, error) {
				return read(prev, prevStorage) + 1, nil
			})
			nodes = append(nodes, n)
			storages = append(storages, s)
		}

		for i, n := range nodes {
			read(n, storages[i])
		}
		assert.Equal(t, length-1, storages[length-1].value)

		head.Write(func() { headStorage.value = 1 })

		for _, n := range nodes[1:] {
			require.True(t, n.Dirty())
		}
		assert.False(t, g.scheduler.Draining())
		assert.Empty(t, g.scheduler.pending)
	})

	t.Run("nested signals only enqueue", func(t *testing.T) {
		g := NewGraph(nil)
		a, _ := leaf(g, "a", 1)

		g.scheduler.draining = true
		assert.False(t, g.scheduler.Signal(a))
		g.scheduler.draining = false
	})
}

func TestLink(t *testing.T) {
	t.Run("coalesces repeated reads", func(t *testing.T) {
		g := NewGraph(nil)
		a, as := leaf(g, "a", 2)

		n, _, act := derived(g, "sum", func() (int, error) {
			return read(a, as) + read(a, as), nil
		})
		n.Pull()

		count := 0
		for range act.Inputs() {
			count++
		}
		assert.Equal(t, 1, count)
		assert.Len(t, act.inputs, 1)
		assert.Same(t, act.depsHead, a.subsHead)
		assert.Nil(t, a.subsHead.nextSub)
	})

	t.Run("detaches in constant time from both lists", func(t *testing.T) {
		g := NewGraph(nil)
		a, as := leaf(g, "a", 1)
		b, bs := leaf(g, "b", 2)
		c, cs := leaf(g, "c", 3)

		n, _, act := derived(g, "sum", func() (int, error) {
			return read(a, as) + read(b, bs) + read(c, cs), nil
		})
		n.Pull()

		b.Release()

		inputs := []string{}
		for in := range act.Inputs() {
			inputs = append(inputs, in.Name())
		}
		assert.Equal(t, []string{"a", "c"}, inputs)
		assert.Same(t, act.depsTail, c.subsHead)
		assert.Len(t, act.inputs, 2)
	})
}

func TestArena(t *testing.T) {
	t.Run("reuses slots with a new generation", func(t *testing.T) {
		g := NewGraph(nil)

		a, _ := leaf(g, "a", 1)
		h := a.Handle()
		assert.Equal(t, 1, g.arena.Len())

		a.Release()
		assert.Equal(t, 0, g.arena.Len())

		b, _ := leaf(g, "b", 2)
		assert.Equal(t, h.index, b.Handle().index)
		assert.NotEqual(t, h.gen, b.Handle().gen)

		_, err := g.Resolve(h)
		assert.True(t, errors.Is(err, ErrReleased))

		got, err := g.Resolve(b.Handle())
		require.NoError(t, err)
		assert.Same(t, b, got)
	})

	t.Run("rejects unknown handles", func(t *testing.T) {
		g := NewGraph(nil)

		_, err := g.Resolve(Handle{index: 7, gen: 1})
		assert.True(t, errors.Is(err, ErrReleased))
		assert.True(t, Handle{}.IsZero())
		assert.Equal(t, "7@1", Handle{index: 7, gen: 1}.String())
	})
}

func TestFailureCapture(t *testing.T) {
	t.Run("keeps a replayed capsule", func(t *testing.T) {
		f := newFailure(FailureError, "origin", errors.New("boom"))
		assert.Same(t, f, capture("other", f, true))
	})

	t.Run("does not capture misuse", func(t *testing.T) {
		assert.True(t, IsProgrammerError(misuse(ErrCycle, "cycle", "node", "a")))
		assert.False(t, IsProgrammerError(errors.New("boom")))
		assert.False(t, IsProgrammerError("boom"))
	})

	t.Run("names failure kinds", func(t *testing.T) {
		assert.Equal(t, "error", FailureError.String())
		assert.Equal(t, "panic", FailurePanic.String())
		assert.Equal(t, "unpublished", FailureUnpublished.String())
		assert.Equal(t, "unknown", FailureKind(42).String())
	})
}
