package component

import (
	"go.uber.org/zap"

	"github.com/go-drift/vapor/pkg/errors"
)

// activation is one SetCurrent call that has not been restored yet.
type activation struct {
	instance *Instance
	prev     *Instance
}

var (
	currentInstance *Instance
	activations     []*activation
)

// Restore undoes one SetCurrent. It returns a *errors.ContextError, and
// changes nothing, when called out of last-set-first-restored order or more
// than once.
type Restore func() error

// Current returns the instance whose setup, render or hook code is running,
// or nil.
func Current() *Instance {
	return currentInstance
}

// SetCurrent makes i the current instance and turns its reactive scope on,
// so reactive reads from here on are owned by i. The returned Restore turns
// the scope off and reinstates the previous current instance.
//
// Nested activations must be restored innermost first:
//
//	restoreA := component.SetCurrent(a)
//	restoreB := component.SetCurrent(b)
//	restoreB()
//	restoreA()
//
// WithCurrent pairs the two calls automatically.
func SetCurrent(i *Instance) Restore {
	a := &activation{instance: i, prev: currentInstance}
	activations = append(activations, a)
	currentInstance = i
	if i != nil {
		i.scope.On()
	}

	restored := false
	return func() error {
		if restored {
			return contextError(a, errors.ErrAlreadyRestored)
		}
		n := len(activations)
		if n == 0 || activations[n-1] != a {
			return contextError(a, errors.ErrOutOfOrder)
		}
		restored = true
		activations[n-1] = nil
		activations = activations[:n-1]

		var err error
		if i != nil {
			err = i.scope.Off()
		}
		currentInstance = a.prev
		return err
	}
}

// WithCurrent runs fn with i as the current instance and restores the
// previous one afterwards, even if fn panics.
func WithCurrent(i *Instance, fn func()) (err error) {
	restore := SetCurrent(i)
	defer func() {
		if rerr := restore(); err == nil {
			err = rerr
		}
	}()
	fn()
	return nil
}

// UnsetCurrent turns off the scopes of every outstanding activation,
// innermost first, and empties the current-instance slot without
// reinstating anything. Restores obtained before the call fail with
// errors.ErrOutOfOrder afterwards.
func UnsetCurrent() {
	for n := len(activations) - 1; n >= 0; n-- {
		a := activations[n]
		if a.instance == nil {
			continue
		}
		if err := a.instance.scope.Off(); err != nil {
			Logger().Debug("scope was not innermost during UnsetCurrent",
				zap.Uint64("uid", a.instance.uid),
				zap.Error(err),
			)
		}
	}
	clear(activations)
	activations = activations[:0]
	currentInstance = nil
}

func contextError(a *activation, err error) *errors.ContextError {
	ce := &errors.ContextError{Op: "component.Restore", Err: err}
	if a.instance != nil {
		ce.Instance = a.instance.uid
	}
	if currentInstance != nil {
		ce.Current = currentInstance.uid
	}
	return ce
}
