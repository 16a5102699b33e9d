// Package component implements component instances: their construction,
// the ambient current-instance context, lifecycle hooks, events and the
// read-only attrs view.
//
// # Instances
//
// New builds an [Instance] from a [Definition], which is either a
// [*Functional] (a single setup function) or an [*Object]. Every instance
// owns a detached [reactivity.Scope]; effects created while the instance is
// current belong to that scope and are released together by [Unmount].
//
//	counter := &component.Object{
//	    Name:  "Counter",
//	    Props: []component.Prop{{Name: "start", Default: 0}},
//	    Setup: func(props component.Data, ctx *component.SetupContext) any {
//	        component.OnMounted(func() { log.Println("mounted") })
//	        return component.Data{"label": "count"}
//	    },
//	    Render: func(state component.Data) component.Block {
//	        return fmt.Sprintf("%s: %v", state["label"], component.Current().Prop("start"))
//	    },
//	}
//
//	i := component.New(counter, component.Data{"start": 3, "class": "wide"})
//	component.Mount(i)
//
// # Current Instance
//
// Setup, render and hook code find their instance through [Current] rather
// than a parameter. [SetCurrent] installs an instance and returns a
// [Restore]; nested activations must be restored innermost first, and an
// out-of-order restore is rejected with an error instead of corrupting the
// context. [WithCurrent] pairs the two calls.
//
// # Attrs
//
// Inputs that are not declared props fall through to attrs. [Instance.AttrsView]
// exposes them read-only; every read tracks one dependency on the attrs as a
// whole, so changing any attribute re-runs every effect that read any of them.
//
// # Threading
//
// Like the reactivity package, this package must only be used from the UI
// goroutine.
package component
