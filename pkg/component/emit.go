package component

import (
	"fmt"

	"github.com/go-drift/vapor/pkg/errors"
)

// EmitFn dispatches a component event.
type EmitFn func(event string, args ...any)

// Handler is the preferred listener signature for component events.
type Handler = func(args ...any)

// bindEmit closes over the constructed instance; the result is stored once
// and never rebound.
func bindEmit(i *Instance) EmitFn {
	return func(event string, args ...any) {
		guard("component.Emit", func() { i.collab.Emit(i, event, args...) })
	}
}

// Emit dispatches event to the listener supplied in the instance's raw
// props.
func (i *Instance) Emit(event string, args ...any) {
	i.emit(event, args...)
}

// EmitFunc returns the instance's bound emit function.
func (i *Instance) EmitFunc() EmitFn {
	return i.emit
}

// DefaultEmit is the built-in emit dispatcher. It looks up the "onEvent"
// listener (or the camelized form for kebab-case events) in the raw props
// and calls it. An "onEventOnce" listener is called at most once per
// instance; the firing is recorded in Emitted. Events on an unmounted
// instance are dropped.
//
// In debug mode an event that is neither declared in the emits schema nor
// declared as an "onEvent" prop is reported.
func DefaultEmit(i *Instance, event string, args ...any) {
	if i.isUnmounted {
		return
	}

	handlerName := HandlerKey(event)
	if DebugMode && i.emitsOptions != nil && !i.emitsOptions.Has(event) {
		if _, declared := i.propsOptions.Lookup(handlerName); !declared {
			i.Warn(fmt.Sprintf(
				"Component emitted event %q but it is neither declared in the emits option nor as an %q prop.",
				event, handlerName))
		}
	}

	handler, ok := i.rawProps[handlerName]
	if !ok {
		handlerName = HandlerKey(Camelize(event))
		handler, ok = i.rawProps[handlerName]
	}
	if ok && handler != nil {
		callHandler(i, event, handler, args)
	}

	onceName := handlerName + "Once"
	if once, ok := i.rawProps[onceName]; ok && once != nil {
		if i.emitted == nil {
			i.emitted = make(map[string]bool)
		}
		if i.emitted[handlerName] {
			return
		}
		i.emitted[handlerName] = true
		callHandler(i, event, once, args)
	}
}

func callHandler(i *Instance, event string, handler any, args []any) {
	var call func()
	switch h := handler.(type) {
	case Handler:
		call = func() { h(args...) }
	case func():
		call = h
	case func(any):
		call = func() {
			var arg any
			if len(args) > 0 {
				arg = args[0]
			}
			h(arg)
		}
	case EmitFn:
		call = func() { h(event, args...) }
	default:
		i.Warn(fmt.Sprintf("Listener for event %q has unsupported type %T.", event, handler))
		return
	}
	callWithErrorHandling(i, errors.KindEmit, "component event handler", func() bool {
		call()
		return true
	}, true)
}
