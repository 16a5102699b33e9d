package component

// SetupContext is the second argument of a setup function.
type SetupContext struct {
	instance *Instance
}

// SetupContext returns the instance's setup context, creating it on first
// use.
func (i *Instance) SetupContext() *SetupContext {
	if i.setupContext == nil {
		i.setupContext = &SetupContext{instance: i}
	}
	return i.setupContext
}

// Attrs returns the instance's attrs view.
func (c *SetupContext) Attrs() *AttrsView {
	return c.instance.AttrsView()
}

// Emit dispatches a component event.
func (c *SetupContext) Emit(event string, args ...any) {
	c.instance.Emit(event, args...)
}

// Expose publishes values to the component's parent. A later call replaces
// the earlier mapping.
func (c *SetupContext) Expose(exposed Data) {
	c.instance.exposed = exposed
}
