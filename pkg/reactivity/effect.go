package reactivity

// Effect re-runs a function whenever the reactive state it read changes.
type Effect struct {
	fn        func()
	scheduler func()
	deps      []*Dep
	active    bool
	dirty     bool

	// OnTrack is called for every new dependency collected during Run.
	OnTrack func(DebugEvent)
	// OnTrigger is called before the effect reacts to a trigger.
	OnTrigger func(DebugEvent)
}

// NewEffect creates an effect for fn without running it. When scheduler is
// non-nil a trigger calls it instead of re-running fn; the scheduler decides
// when to call Run. The effect is owned by the innermost active scope.
func NewEffect(fn func(), scheduler func()) *Effect {
	e := &Effect{
		fn:        fn,
		scheduler: scheduler,
		active:    true,
		dirty:     true,
	}
	if s := CurrentScope(); s != nil && s.active {
		s.effects = append(s.effects, e)
	}
	return e
}

// Run executes the effect's function, collecting a fresh set of
// dependencies. A stopped effect runs its function without tracking.
func (e *Effect) Run() {
	if !e.active {
		e.fn()
		return
	}
	e.cleanupDeps()

	prevEffect := activeEffect
	activeEffect = e
	EnableTracking()
	defer func() {
		ResetTracking()
		activeEffect = prevEffect
	}()

	e.dirty = false
	e.fn()
}

// Dirty reports whether a dependency changed since the last Run.
func (e *Effect) Dirty() bool {
	return e.dirty
}

// Active reports whether the effect has not been stopped.
func (e *Effect) Active() bool {
	return e.active
}

// DepCount returns the number of dependencies collected by the last Run.
func (e *Effect) DepCount() int {
	return len(e.deps)
}

// Stop unsubscribes the effect from all of its dependencies. Safe to call
// more than once.
func (e *Effect) Stop() {
	if !e.active {
		return
	}
	e.cleanupDeps()
	e.active = false
}

func (e *Effect) cleanupDeps() {
	for _, dep := range e.deps {
		dep.remove(e)
	}
	e.deps = e.deps[:0]
}
