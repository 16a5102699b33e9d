package component

import "github.com/go-drift/vapor/pkg/errors"

// Collaborators are the pluggable routines an instance delegates to. Any
// field left nil in WithCollaborators falls back to the default.
type Collaborators struct {
	// NormalizeProps resolves a definition's props schema.
	NormalizeProps func(Definition) PropsOptions
	// NormalizeEmits resolves a definition's emits schema.
	NormalizeEmits func(Definition) EmitsOptions
	// InitProps populates props and attrs from raw input. isObjectForm is
	// false for functional definitions.
	InitProps func(i *Instance, raw Data, isObjectForm bool)
	// Emit validates and dispatches one event.
	Emit func(i *Instance, event string, args ...any)
	// Warn receives diagnostics.
	Warn func(msg string)
}

// DefaultCollaborators returns the built-in collaborators.
func DefaultCollaborators() Collaborators {
	return Collaborators{
		NormalizeProps: NormalizePropsOptions,
		NormalizeEmits: NormalizeEmitsOptions,
		InitProps:      InitProps,
		Emit:           DefaultEmit,
		Warn:           defaultWarn,
	}
}

func (c Collaborators) merge(override Collaborators) Collaborators {
	if override.NormalizeProps != nil {
		c.NormalizeProps = override.NormalizeProps
	}
	if override.NormalizeEmits != nil {
		c.NormalizeEmits = override.NormalizeEmits
	}
	if override.InitProps != nil {
		c.InitProps = override.InitProps
	}
	if override.Emit != nil {
		c.Emit = override.Emit
	}
	if override.Warn != nil {
		c.Warn = override.Warn
	}
	return c
}

// Warn sends msg to the instance's diagnostic sink.
func (i *Instance) Warn(msg string) {
	guard("component.Warn", func() { i.collab.Warn(msg) })
}

// guard runs a collaborator call, reporting a panic to the global error
// handler instead of unwinding into the runtime.
func guard(op string, fn func()) {
	defer errors.Recover(op)
	fn()
}
