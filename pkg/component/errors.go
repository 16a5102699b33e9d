package component

import (
	"fmt"
	"time"

	"github.com/go-drift/vapor/pkg/errors"
)

// callWithErrorHandling runs fn, recovering a panic into handleError. It
// returns fn's result, or fallback when fn panicked.
func callWithErrorHandling(i *Instance, kind errors.ErrorKind, info string, fn func() bool, fallback bool) (result bool) {
	defer func() {
		if r := recover(); r != nil {
			result = fallback
			hookErr := &errors.HookError{
				Kind:       kind,
				Info:       info,
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
			if err, ok := r.(error); ok {
				hookErr.Err = err
			}
			handleError(i, hookErr)
		}
	}()
	return fn()
}

// handleError offers err to the error-captured hooks of each ancestor of i,
// nearest first. A hook returning false stops propagation; otherwise the
// error reaches the global error handler.
func handleError(i *Instance, err *errors.HookError) {
	if i != nil {
		err.Instance = i.uid
		err.Component = i.Name()
	}
	var cause error = err
	if err.Err != nil {
		cause = err.Err
	} else if err.Recovered != nil {
		cause = fmt.Errorf("%v", err.Recovered)
	}

	if i != nil {
		for cur := i.parent; cur != nil; cur = cur.parent {
			hooks := cur.Hooks(ErrorCaptured)
			for _, h := range hooks {
				if !h(HookEvent{Err: cause, Source: i, Info: err.Info}) {
					return
				}
			}
		}
	}
	errors.ReportHookError(err)
}
