package internal

type Tracker struct {
	tracking bool

	currentOwner  *Owner  // for lifecycle/release tracking
	currentAction *Action // for dependency tracking
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
	}
}

func (t *Tracker) CurrentOwner() *Owner {
	return t.currentOwner
}

func (t *Tracker) CurrentAction() *Action {
	return t.currentAction
}

func (t *Tracker) RunWithOwner(owner *Owner, fn func() error) error {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	return fn()
}

// RunWithAction runs fn with action as the reader of every tracked value.
// A returned error or a panic becomes the failure; misuse panics keep unwinding.
func (t *Tracker) RunWithAction(action *Action, fn func() error) (failure *Failure) {
	prevAction := t.currentAction
	prevTracking := t.tracking

	t.currentAction = action
	t.tracking = true

	defer func() {
		t.currentAction = prevAction
		t.tracking = prevTracking
	}()

	defer func() {
		if r := recover(); r != nil {
			if IsProgrammerError(r) {
				panic(r)
			}
			failure = capture(action.name, r, true)
		}
	}()

	if err := fn(); err != nil {
		return capture(action.name, err, false)
	}
	return nil
}

func (t *Tracker) RunUntracked(fn func()) {
	prev := t.tracking
	t.tracking = false
	defer func() { t.tracking = prev }()

	fn()
}

func (t *Tracker) Track(node *Node) {
	if t.ShouldTrack() {
		t.currentAction.link(node)
	}
}

func (t *Tracker) ShouldTrack() bool {
	return t.currentAction != nil && t.tracking
}
