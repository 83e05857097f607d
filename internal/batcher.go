package internal

// Batcher holds listener notifications back while writes are grouped.
// Dirty propagation is never held back, only the listeners.
type Batcher struct {
	// each nested batch increases the depth by 1
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Batch runs fn and calls settle when the outermost batch returns normally.
// If fn panics the queued listeners stay queued until the graph settles again.
func (b *Batcher) Batch(fn, settle func()) {
	b.depth++
	returned := false
	defer func() {
		b.depth--
		if returned && b.depth == 0 && settle != nil {
			settle()
		}
	}()

	fn()
	returned = true
}
