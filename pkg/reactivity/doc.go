// Package reactivity provides the dependency-tracking primitives the
// component runtime is built on.
//
// A read of reactive state calls [Track] with a (target, key) pair; a write
// calls [Trigger] with the same pair. While an [Effect] runs, every tracked
// read subscribes it to that pair, so a later trigger re-runs the effect or
// hands it to the effect's scheduler.
//
// # Scopes
//
// A [Scope] owns subscriptions. Every effect created while a scope is the
// innermost active one (see [Scope.On] and [Scope.Run]) is recorded under it,
// and [Scope.Stop] cancels all of them together along with any child scopes
// and cleanups registered with [Scope.OnDispose]:
//
//	scope := reactivity.NewScope(true)
//	scope.Run(func() {
//	    reactivity.NewEffect(func() {
//	        fmt.Println(count.Value())
//	    }, nil).Run()
//	})
//	scope.Stop() // the effect no longer reacts to count
//
// A scope created with detached=false becomes a child of the scope active at
// construction time and is stopped together with it. A detached scope is only
// ever stopped explicitly.
//
// # Threading
//
// Nothing in this package is safe for concurrent use. All tracking state is
// process-wide and must only be touched from the UI goroutine.
package reactivity
