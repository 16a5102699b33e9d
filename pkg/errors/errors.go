// Package errors provides structured error handling for the vapor runtime.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSetup indicates a failure inside a component setup function.
	KindSetup
	// KindRender indicates a failure inside a render function.
	KindRender
	// KindHook indicates a failure inside a lifecycle hook.
	KindHook
	// KindEmit indicates a failure inside a component event handler.
	KindEmit
	// KindLifecycle indicates a mount/update/unmount transition that is not
	// valid for the instance's current state.
	KindLifecycle
	// KindContext indicates misuse of the current-instance context.
	KindContext
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindRender:
		return "render"
	case KindHook:
		return "hook"
	case KindEmit:
		return "emit"
	case KindLifecycle:
		return "lifecycle"
	case KindContext:
		return "context"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrOutOfOrder is returned when an activation is restored while a more
	// recent activation is still in effect.
	ErrOutOfOrder = stderrors.New("restore out of order")
	// ErrAlreadyRestored is returned when an activation is restored twice.
	ErrAlreadyRestored = stderrors.New("activation already restored")
	// ErrScopeOrder is returned when a reactive scope is turned off while it
	// is not the innermost active scope.
	ErrScopeOrder = stderrors.New("scope is not the innermost active scope")
	// ErrAlreadyMounted is returned when mounting a mounted instance.
	ErrAlreadyMounted = stderrors.New("instance is already mounted")
	// ErrNotMounted is returned when updating or unmounting an instance that
	// was never mounted.
	ErrNotMounted = stderrors.New("instance is not mounted")
	// ErrUnmounted is returned for any transition on an unmounted instance.
	ErrUnmounted = stderrors.New("instance is unmounted")
)

// VaporError represents a structured error in the vapor runtime.
type VaporError struct {
	// Op is the operation that failed (e.g., "component.Mount").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Instance is the uid of the component instance involved, if any.
	Instance uint64
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *VaporError) Error() string {
	return fmt.Sprintf("%s [%s] instance=%d: %v", e.Op, e.Kind, e.Instance, e.Err)
}

func (e *VaporError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "component.Emit").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// HookError represents a failure raised by user code that the runtime
// invoked on behalf of a component: a setup or render function, a
// lifecycle hook or an event handler.
type HookError struct {
	// Kind is one of KindSetup, KindRender, KindHook or KindEmit.
	Kind ErrorKind
	// Instance is the uid of the instance whose code failed.
	Instance uint64
	// Component is the component name, if known.
	Component string
	// Info describes where the failure happened (e.g., "mounted hook").
	Info string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *HookError) Error() string {
	name := e.Component
	if name == "" {
		name = "anonymous"
	}
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s (%s #%d): %v", e.Info, name, e.Instance, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s (%s #%d): %v", e.Info, name, e.Instance, e.Err)
	}
	return fmt.Sprintf("unknown error in %s (%s #%d)", e.Info, name, e.Instance)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// ContextError reports misuse of the current-instance context, such as
// restoring nested activations in the wrong order. The context is left
// unchanged when one is returned.
type ContextError struct {
	// Op is the operation that failed.
	Op string
	// Instance is the uid of the instance whose activation was restored.
	Instance uint64
	// Current is the uid of the innermost active instance, or 0 if none.
	Current uint64
	// Err is ErrOutOfOrder or ErrAlreadyRestored.
	Err error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s: instance=%d current=%d: %v", e.Op, e.Instance, e.Current, e.Err)
}

func (e *ContextError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the vapor runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *VaporError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleHookError is called when component code fails and no
	// error-captured hook stopped its propagation.
	HandleHookError(err *HookError)
}
