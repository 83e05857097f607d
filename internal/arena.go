package internal

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Handle is a weak reference to a node: a slot index plus the generation the slot had
// when the node was registered. Releasing the node bumps the generation, so a kept
// handle fails to resolve instead of aliasing whatever reuses the slot.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.index, h.gen)
}

type arenaSlot struct {
	node *Node
	gen  uint32
}

type Arena struct {
	slots []arenaSlot
	free  []uint32
}

func NewArena() *Arena {
	return &Arena{
		slots: make([]arenaSlot, 0),
		free:  make([]uint32, 0),
	}
}

func (a *Arena) register(n *Node) Handle {
	if last := len(a.free) - 1; last >= 0 {
		index := a.free[last]
		a.free = a.free[:last]

		slot := &a.slots[index]
		slot.node = n
		return Handle{index: index, gen: slot.gen}
	}

	a.slots = append(a.slots, arenaSlot{node: n, gen: 1})
	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

func (a *Arena) release(h Handle) {
	if int(h.index) >= len(a.slots) {
		return
	}

	slot := &a.slots[h.index]
	if slot.gen != h.gen {
		return
	}

	slot.node = nil
	slot.gen++
	a.free = append(a.free, h.index)
}

func (a *Arena) Resolve(h Handle) (*Node, error) {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil, zerr.With(zerr.Wrap(ErrReleased, "unknown handle"), "handle", h.String())
	}

	slot := a.slots[h.index]
	if slot.gen != h.gen || slot.node == nil {
		return nil, zerr.With(zerr.Wrap(ErrReleased, "stale handle"), "handle", h.String())
	}

	return slot.node, nil
}

// Len returns the number of live nodes.
func (a *Arena) Len() int {
	return len(a.slots) - len(a.free)
}
