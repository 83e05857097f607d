package internal

// ListenerQueue holds the listeners notified by a drain until the graph settles.
type ListenerQueue struct {
	actions []*Action
}

func NewListenerQueue() *ListenerQueue {
	return &ListenerQueue{
		actions: make([]*Action, 0),
	}
}

// Enqueue adds a listener once, however many of its inputs signaled.
func (q *ListenerQueue) Enqueue(action *Action) {
	if action.queued || action.released {
		return
	}

	action.queued = true
	q.actions = append(q.actions, action)
}

func (q *ListenerQueue) Len() int {
	return len(q.actions)
}

// Run notifies queued listeners, including the ones queued by listeners themselves.
func (q *ListenerQueue) Run() {
	for len(q.actions) > 0 {
		actions := q.actions
		q.actions = make([]*Action, 0)

		for _, action := range actions {
			action.queued = false
		}

		for _, action := range actions {
			if !action.released {
				action.notify()
			}
		}
	}
}
