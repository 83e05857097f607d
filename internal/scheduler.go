package internal

// Scheduler propagates dirtiness through the graph with a single worklist.
// Propagation is iterative, so the stack depth stays constant however long the chains are.
type Scheduler struct {
	// links whose action still has to be invalidated
	pending []*Link

	// set while a drain is in progress, nested signals only enqueue
	draining bool

	listeners *ListenerQueue
}

func NewScheduler(listeners *ListenerQueue) *Scheduler {
	return &Scheduler{
		pending:   make([]*Link, 0),
		listeners: listeners,
	}
}

// Signal enqueues the dependents of node. The first call of a cascade becomes the drainer
// and returns true once every reachable dependent is dirty; nested calls return false immediately.
func (s *Scheduler) Signal(node *Node) bool {
	s.enqueueSubs(node)

	if s.draining {
		return false
	}

	s.drain()
	return true
}

func (s *Scheduler) Draining() bool {
	return s.draining
}

func (s *Scheduler) enqueueSubs(node *Node) {
	for link := node.subsHead; link != nil; link = link.nextSub {
		s.pending = append(s.pending, link)
	}
}

func (s *Scheduler) drain() {
	s.draining = true
	defer func() {
		s.pending = s.pending[:0]
		s.draining = false
	}()

	// breadth-first: entries appended while draining are processed by this same loop
	for i := 0; i < len(s.pending); i++ {
		link := s.pending[i]
		s.pending[i] = nil

		action := link.action
		if action.IsListener() {
			s.listeners.Enqueue(action)
			continue
		}

		for _, output := range action.outputs {
			if output.invalidate() {
				s.enqueueSubs(output)
			}
		}
	}
}
