package reactivity

import (
	"github.com/go-drift/vapor/pkg/errors"
)

// Scope owns a tree of subscriptions: effects, child scopes and cleanup
// functions. Stopping a scope releases everything it owns, transitively.
type Scope struct {
	parent   *Scope
	index    int // position in parent.scopes
	scopes   []*Scope
	effects  []*Effect
	cleanups []func()
	active   bool
	detached bool
}

var scopeStack []*Scope

// NewScope creates an active scope. Unless detached, the scope is owned by
// the innermost active scope and is stopped when that scope stops.
func NewScope(detached bool) *Scope {
	s := &Scope{active: true, detached: detached}
	if detached {
		return s
	}
	if parent := CurrentScope(); parent != nil && parent.active {
		s.parent = parent
		s.index = len(parent.scopes)
		parent.scopes = append(parent.scopes, s)
	}
	return s
}

// CurrentScope returns the innermost active scope, or nil.
func CurrentScope() *Scope {
	if n := len(scopeStack); n > 0 {
		return scopeStack[n-1]
	}
	return nil
}

// Parent returns the owning scope, or nil for a detached or root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Detached reports whether the scope was created without an owner.
func (s *Scope) Detached() bool {
	return s.detached
}

// Active reports whether the scope has not been stopped.
func (s *Scope) Active() bool {
	return s.active
}

// IsOn reports whether the scope is anywhere on the active-scope stack.
func (s *Scope) IsOn() bool {
	for _, on := range scopeStack {
		if on == s {
			return true
		}
	}
	return false
}

// EffectCount returns the number of effects owned directly by the scope.
func (s *Scope) EffectCount() int {
	return len(s.effects)
}

// On makes s the innermost active scope. Every On must be paired with an
// Off in last-on-first-off order.
func (s *Scope) On() {
	scopeStack = append(scopeStack, s)
}

// Off removes s from the top of the active-scope stack. It returns an error
// wrapping errors.ErrScopeOrder, and leaves the stack untouched, if s is not
// the innermost active scope.
func (s *Scope) Off() error {
	n := len(scopeStack)
	if n == 0 || scopeStack[n-1] != s {
		return &errors.VaporError{
			Op:   "reactivity.Scope.Off",
			Kind: errors.KindContext,
			Err:  errors.ErrScopeOrder,
		}
	}
	scopeStack[n-1] = nil
	scopeStack = scopeStack[:n-1]
	return nil
}

// Run calls fn with s as the innermost active scope. A stopped scope does
// not run fn.
func (s *Scope) Run(fn func()) {
	if !s.active {
		return
	}
	s.On()
	defer func() { _ = s.Off() }()
	fn()
}

// OnDispose registers a cleanup function to be called when the scope stops.
// If the scope has already stopped the cleanup runs immediately.
func (s *Scope) OnDispose(cleanup func()) {
	if cleanup == nil {
		return
	}
	if !s.active {
		cleanup()
		return
	}
	s.cleanups = append(s.cleanups, cleanup)
}

// Stop releases every subscription the scope owns: child scopes first, then
// effects, then cleanups in reverse registration order. Stop is idempotent.
func (s *Scope) Stop() {
	s.stop(false)
}

func (s *Scope) stop(fromParent bool) {
	if !s.active {
		return
	}
	s.active = false

	for _, child := range s.scopes {
		child.stop(true)
	}
	for _, e := range s.effects {
		e.Stop()
	}
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.scopes = nil
	s.effects = nil
	s.cleanups = nil

	// A parent being stopped drops its whole child list; otherwise unlink
	// ourselves by moving the parent's last child into our slot.
	if !fromParent && s.parent != nil {
		siblings := s.parent.scopes
		last := siblings[len(siblings)-1]
		s.parent.scopes = siblings[:len(siblings)-1]
		if last != s {
			s.parent.scopes[s.index] = last
			last.index = s.index
		}
	}
	s.parent = nil
}
