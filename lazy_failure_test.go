package lazy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure(t *testing.T) {
	t.Run("replays a returned error without recomputing", func(t *testing.T) {
		log := []string{}
		boom := errors.New("boom")

		count := NewLeaf("count", 1)
		fails := NewCache("fails", func() (int, error) {
			log = append(log, "computing")
			if count.Fetch() > 0 {
				return 0, boom
			}
			return 1, nil
		})

		_, first := fails.Get()
		_, second := fails.Get()

		require.Error(t, first)
		assert.Same(t, first, second)
		assert.True(t, fails.Failed())
		assert.False(t, fails.Dirty())
		assert.Equal(t, []string{"computing"}, log)

		assert.True(t, errors.Is(first, boom))
		assert.True(t, errors.Is(first, ErrComputation))
		assert.Equal(t, "computation failed: fails error: boom", first.Error())

		var f *Failure
		require.True(t, errors.As(first, &f))
		assert.Equal(t, FailureError, f.Kind)
		assert.Equal(t, "fails", f.Origin)
		assert.Equal(t, "boom", f.Message)
		assert.Equal(t, boom, f.Cause())
	})

	t.Run("propagates the same failure to dependents", func(t *testing.T) {
		fails := NewCache("fails", func() (int, error) {
			return 0, errors.New("boom")
		})
		double := NewCache("double", func() (int, error) {
			return fails.Fetch() * 2, nil
		})
		plustwo := NewCache("plustwo", func() (int, error) {
			return double.Fetch() + 2, nil
		})

		_, err := plustwo.Get()
		require.Error(t, err)

		_, direct := fails.Get()
		_, middle := double.Get()
		assert.Same(t, direct, err)
		assert.Same(t, direct, middle)

		var f *Failure
		require.True(t, errors.As(err, &f))
		assert.Equal(t, "fails", f.Origin)
	})

	t.Run("captures a panic", func(t *testing.T) {
		oops := NewCache("oops", func() (int, error) {
			panic("oops")
		})

		_, err := oops.Get()
		require.Error(t, err)
		assert.Equal(t, "computation failed: oops panic: oops", err.Error())

		var f *Failure
		require.True(t, errors.As(err, &f))
		assert.Equal(t, FailurePanic, f.Kind)
		assert.Equal(t, "panic", f.Kind.String())
	})

	t.Run("keeps the error a computation panicked with", func(t *testing.T) {
		boom := errors.New("boom")
		oops := NewCache("oops", func() (int, error) {
			panic(boom)
		})

		_, err := oops.Get()
		assert.True(t, errors.Is(err, boom))
	})

	t.Run("fetch panics with the failure", func(t *testing.T) {
		fails := NewCache("fails", func() (int, error) {
			return 0, errors.New("boom")
		})

		_, err := fails.Get()
		assert.Same(t, err, recovered(func() { fails.Fetch() }))
		assert.Same(t, err, recovered(func() { fails.Peek() }))
	})

	t.Run("recovers once an input changes", func(t *testing.T) {
		divisor := NewLeaf("divisor", 0)
		ratio := NewCache("ratio", func() (int, error) {
			d := divisor.Fetch()
			if d == 0 {
				return 0, errors.New("division by zero")
			}
			return 12 / d, nil
		})
		double := NewCache("double", func() (int, error) {
			return ratio.Fetch() * 2, nil
		})

		_, err := double.Get()
		require.Error(t, err)

		divisor.Set(4)
		assert.True(t, ratio.Dirty())
		assert.True(t, double.Dirty())

		v, err := double.Get()
		require.NoError(t, err)
		assert.Equal(t, 6, v)
		assert.False(t, ratio.Failed())
	})

	t.Run("discards outputs written before the failure", func(t *testing.T) {
		sum := NewOutput[int]("sum")
		product := NewOutput[int]("product")

		NewAction("arith", []Node{sum, product}, func() error {
			sum.Set(1)
			return errors.New("half done")
		})

		_, err := product.Get()
		require.Error(t, err)

		_, other := sum.Get()
		assert.Same(t, err, other)
		assert.True(t, sum.Failed())
	})

	t.Run("misuse is not captured", func(t *testing.T) {
		gone := NewLeaf("gone", 1)
		reader := NewCache("reader", func() (int, error) {
			return gone.Fetch(), nil
		})

		gone.Release()

		err := recovered(func() { reader.Get() })
		assert.True(t, errors.Is(err, ErrReleased))
		assert.False(t, errors.Is(err, ErrComputation))
		assert.True(t, reader.Dirty())
		assert.False(t, reader.Failed())
	})
}
