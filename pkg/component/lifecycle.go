package component

import (
	"go.uber.org/zap"

	"github.com/go-drift/vapor/pkg/errors"
	"github.com/go-drift/vapor/pkg/reactivity"
)

// Mount runs the instance's setup, fires the before-mount hooks, performs
// the first render and fires the mounted hooks.
//
// Setup and render run with the instance current and its scope on, so the
// render effect and every effect created during setup are owned by the
// instance and released by Unmount. The render effect re-renders
// synchronously whenever a dependency it read changes.
func Mount(i *Instance) error {
	if err := checkTransition(i, "component.Mount", false); err != nil {
		return err
	}

	var result any
	if err := WithCurrent(i, func() { result = setupComponent(i) }); err != nil {
		return err
	}

	Dispatch(i, BeforeMount, HookEvent{})

	if err := WithCurrent(i, func() { renderComponent(i, result) }); err != nil {
		return err
	}
	i.isMounted = true
	Logger().Debug("instance mounted", zap.Uint64("uid", i.uid), zap.String("component", i.Name()))
	notify(func(o Observer) { o.InstanceMounted(i) })
	Dispatch(i, Mounted, HookEvent{})
	return nil
}

// Update re-renders a mounted instance, firing the before-update and
// updated hooks around the render.
func Update(i *Instance) error {
	if err := checkTransition(i, "component.Update", true); err != nil {
		return err
	}
	rerender(i)
	return nil
}

// Unmount fires the before-unmount hooks, stops the instance's scope,
// releasing every subscription it owns, and fires the unmounted hooks.
// Child instances are not unmounted; callers unmount them first.
func Unmount(i *Instance) error {
	if err := checkTransition(i, "component.Unmount", true); err != nil {
		return err
	}

	Dispatch(i, BeforeUnmount, HookEvent{})
	i.scope.Stop()
	i.isUnmounted = true
	if i.parent != nil {
		delete(i.parent.children, i)
	}
	Logger().Debug("instance unmounted", zap.Uint64("uid", i.uid), zap.String("component", i.Name()))
	notify(func(o Observer) { o.InstanceUnmounted(i) })
	Dispatch(i, Unmounted, HookEvent{})
	return nil
}

// Activate fires the activated hooks of a mounted, kept-alive instance.
func Activate(i *Instance) error {
	if err := checkTransition(i, "component.Activate", true); err != nil {
		return err
	}
	Dispatch(i, Activated, HookEvent{})
	return nil
}

// Deactivate fires the deactivated hooks of a mounted, kept-alive instance.
func Deactivate(i *Instance) error {
	if err := checkTransition(i, "component.Deactivate", true); err != nil {
		return err
	}
	Dispatch(i, Deactivated, HookEvent{})
	return nil
}

func checkTransition(i *Instance, op string, wantMounted bool) error {
	var err error
	switch {
	case i.isUnmounted:
		err = errors.ErrUnmounted
	case wantMounted && !i.isMounted:
		err = errors.ErrNotMounted
	case !wantMounted && i.isMounted:
		err = errors.ErrAlreadyMounted
	default:
		return nil
	}
	return &errors.VaporError{Op: op, Kind: errors.KindLifecycle, Instance: i.uid, Err: err}
}

// setupComponent runs the setup function and returns its result. A Data
// result becomes the setup state and nil is returned in its place.
func setupComponent(i *Instance) any {
	var result any
	var setup SetupFunc
	switch def := i.def.(type) {
	case *Functional:
		setup = def.Setup
	case *Object:
		setup = def.Setup
	}
	if setup != nil {
		callWithErrorHandling(i, errors.KindSetup, "setup function", func() bool {
			result = setup(i.props, i.SetupContext())
			return true
		}, false)
	}
	if state, ok := result.(Data); ok {
		i.setupState = state
		result = nil
	}
	return result
}

// renderComponent runs the first render inside a render effect owned by the
// instance scope. Definitions without a render function keep the setup
// result as their block.
func renderComponent(i *Instance, result any) {
	var render RenderFunc
	if def, ok := i.def.(*Object); ok {
		render = def.Render
	}
	if render == nil {
		i.block = result
		return
	}

	i.render = reactivity.NewEffect(func() {
		callWithErrorHandling(i, errors.KindRender, "render function", func() bool {
			i.block = render(i.setupState)
			return true
		}, false)
	}, func() {
		if i.isMounted && !i.isUnmounted && !i.isUpdating {
			rerender(i)
		}
	})
	i.render.OnTrack = func(ev reactivity.DebugEvent) {
		Dispatch(i, RenderTracked, HookEvent{Debug: ev})
	}
	i.render.OnTrigger = func(ev reactivity.DebugEvent) {
		Dispatch(i, RenderTriggered, HookEvent{Debug: ev})
	}
	i.render.Run()
}

func rerender(i *Instance) {
	i.isUpdating = true
	Dispatch(i, BeforeUpdate, HookEvent{})
	if i.render != nil {
		if err := WithCurrent(i, i.render.Run); err != nil {
			errors.Report(&errors.VaporError{
				Op:       "component.Update",
				Kind:     errors.KindContext,
				Instance: i.uid,
				Err:      err,
			})
		}
	}
	i.isUpdating = false
	Dispatch(i, Updated, HookEvent{})
}
