package component

import (
	"github.com/go-drift/vapor/pkg/errors"
	"github.com/go-drift/vapor/pkg/reactivity"
)

// Phase is a point in a component's lifecycle at which hooks fire.
type Phase uint8

const (
	BeforeMount Phase = iota
	Mounted
	BeforeUpdate
	Updated
	BeforeUnmount
	Unmounted
	RenderTracked
	RenderTriggered
	Activated
	Deactivated
	ErrorCaptured

	phaseCount
)

// Phases lists every lifecycle phase in declaration order.
var Phases = [phaseCount]Phase{
	BeforeMount, Mounted, BeforeUpdate, Updated, BeforeUnmount, Unmounted,
	RenderTracked, RenderTriggered, Activated, Deactivated, ErrorCaptured,
}

var phaseNames = [phaseCount]string{
	BeforeMount:     "beforeMount",
	Mounted:         "mounted",
	BeforeUpdate:    "beforeUpdate",
	Updated:         "updated",
	BeforeUnmount:   "beforeUnmount",
	Unmounted:       "unmounted",
	RenderTracked:   "renderTracked",
	RenderTriggered: "renderTriggered",
	Activated:       "activated",
	Deactivated:     "deactivated",
	ErrorCaptured:   "errorCaptured",
}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// HookEvent carries the arguments of a hook invocation. Only the fields
// relevant to the phase are set: Debug for the render-tracked and
// render-triggered phases, Err, Source and Info for error-captured.
type HookEvent struct {
	Debug  reactivity.DebugEvent
	Err    error
	Source *Instance
	Info   string
}

// Hook is a registered lifecycle callback. The return value only matters for
// error-captured hooks, where false stops the error from propagating
// further up the parent chain.
type Hook func(ev HookEvent) bool

// Hooks returns the callbacks registered for phase, in registration order.
// The result is nil if none were registered.
func (i *Instance) Hooks(phase Phase) []Hook {
	if phase >= phaseCount {
		return nil
	}
	return i.hooks[phase]
}

// AddHook appends h to the phase's list. The hook is stored as given; use
// RegisterHook for hooks that should run with the instance current.
func (i *Instance) AddHook(phase Phase, h Hook) {
	if phase >= phaseCount || h == nil {
		return
	}
	i.hooks[phase] = append(i.hooks[phase], h)
}

// RegisterHook registers h on target, or on the current instance when target
// is nil. When the hook fires it runs with target current, with dependency
// tracking paused and with panics routed to error handling.
// It reports whether the hook was registered.
func RegisterHook(phase Phase, h Hook, target *Instance) bool {
	if target == nil {
		target = Current()
	}
	if target == nil {
		if DebugMode {
			defaultWarn(phase.String() + " is called when there is no active component instance to be associated with. " +
				"Lifecycle injection APIs can only be used during execution of setup().")
		}
		return false
	}
	if h == nil {
		return false
	}
	target.AddHook(phase, func(ev HookEvent) (keep bool) {
		keep = true
		if target.isUnmounted && phase != Unmounted {
			return keep
		}
		reactivity.PauseTracking()
		defer reactivity.ResetTracking()
		_ = WithCurrent(target, func() {
			keep = callWithErrorHandling(target, errors.KindHook, phase.String()+" hook", func() bool {
				return h(ev)
			}, true)
		})
		return keep
	})
	return true
}

func simple(fn func()) Hook {
	if fn == nil {
		return nil
	}
	return func(HookEvent) bool {
		fn()
		return true
	}
}

// OnBeforeMount registers fn to run before the instance is mounted.
func OnBeforeMount(fn func()) { RegisterHook(BeforeMount, simple(fn), nil) }

// OnMounted registers fn to run after the instance is mounted.
func OnMounted(fn func()) { RegisterHook(Mounted, simple(fn), nil) }

// OnBeforeUpdate registers fn to run before each re-render.
func OnBeforeUpdate(fn func()) { RegisterHook(BeforeUpdate, simple(fn), nil) }

// OnUpdated registers fn to run after each re-render.
func OnUpdated(fn func()) { RegisterHook(Updated, simple(fn), nil) }

// OnBeforeUnmount registers fn to run before the instance is unmounted.
func OnBeforeUnmount(fn func()) { RegisterHook(BeforeUnmount, simple(fn), nil) }

// OnUnmounted registers fn to run after the instance is unmounted.
func OnUnmounted(fn func()) { RegisterHook(Unmounted, simple(fn), nil) }

// OnActivated registers fn to run when a kept-alive instance is reinserted.
func OnActivated(fn func()) { RegisterHook(Activated, simple(fn), nil) }

// OnDeactivated registers fn to run when a kept-alive instance is removed.
func OnDeactivated(fn func()) { RegisterHook(Deactivated, simple(fn), nil) }

// OnRenderTracked registers fn to observe every dependency the render
// collects.
func OnRenderTracked(fn func(reactivity.DebugEvent)) {
	if fn == nil {
		return
	}
	RegisterHook(RenderTracked, func(ev HookEvent) bool {
		fn(ev.Debug)
		return true
	}, nil)
}

// OnRenderTriggered registers fn to observe every dependency change that
// schedules a re-render.
func OnRenderTriggered(fn func(reactivity.DebugEvent)) {
	if fn == nil {
		return
	}
	RegisterHook(RenderTriggered, func(ev HookEvent) bool {
		fn(ev.Debug)
		return true
	}, nil)
}

// OnErrorCaptured registers fn to receive errors raised by descendant
// component code. Returning false stops further propagation.
func OnErrorCaptured(fn func(err error, source *Instance, info string) bool) {
	if fn == nil {
		return
	}
	RegisterHook(ErrorCaptured, func(ev HookEvent) bool {
		return fn(ev.Err, ev.Source, ev.Info)
	}, nil)
}

// Dispatch invokes every hook registered for phase in registration order.
// Dispatching a phase with no hooks does nothing.
func Dispatch(i *Instance, phase Phase, ev HookEvent) {
	hooks := i.Hooks(phase)
	if len(hooks) == 0 {
		return
	}
	// Hooks registered during dispatch fire from the next dispatch on.
	hooks = append([]Hook(nil), hooks...)
	for _, h := range hooks {
		notify(func(o Observer) { o.HookInvoked(i, phase) })
		h(ev)
	}
}
