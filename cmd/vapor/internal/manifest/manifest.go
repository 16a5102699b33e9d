// Package manifest describes components, instances and scripted steps in
// YAML and drives them through the component runtime.
package manifest

import (
	"fmt"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/vapor/pkg/component"
	"github.com/go-drift/vapor/pkg/reactivity"
)

// Manifest is the root of a manifest file.
type Manifest struct {
	Components []ComponentSpec `yaml:"components"`
	Instances  []InstanceSpec  `yaml:"instances"`
	Steps      []Step          `yaml:"steps"`
}

// ComponentSpec declares one component definition.
type ComponentSpec struct {
	Name       string         `yaml:"name"`
	Functional bool           `yaml:"functional,omitempty"`
	Props      []PropSpec     `yaml:"props,omitempty"`
	Emits      []string       `yaml:"emits,omitempty"`
	NoInherit  bool           `yaml:"noInheritAttrs,omitempty"`
	State      map[string]any `yaml:"state,omitempty"`
	Render     string         `yaml:"render,omitempty"`
}

// PropSpec declares one prop. A plain string is shorthand for {name: ...}.
type PropSpec struct {
	Name     string `yaml:"name"`
	Default  any    `yaml:"default,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

// UnmarshalYAML accepts either a scalar prop name or a mapping.
func (p *PropSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Name = node.Value
		return nil
	}
	type plain PropSpec
	return node.Decode((*plain)(p))
}

// InstanceSpec declares one instance to create and mount.
type InstanceSpec struct {
	ID        string         `yaml:"id"`
	Component string         `yaml:"component"`
	Parent    string         `yaml:"parent,omitempty"`
	Props     map[string]any `yaml:"props,omitempty"`
	// Listen lists events to attach a tracing listener for.
	Listen []string `yaml:"listen,omitempty"`
}

// Step is one scripted action applied after every instance is mounted.
type Step struct {
	// Action is one of update, emit, set, attr, activate or deactivate.
	Action   string         `yaml:"action"`
	Instance string         `yaml:"instance"`
	Props    map[string]any `yaml:"props,omitempty"`
	Event    string         `yaml:"event,omitempty"`
	Args     []any          `yaml:"args,omitempty"`
	Key      string         `yaml:"key,omitempty"`
	Value    any            `yaml:"value,omitempty"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks names and references. Parents must be declared before
// their children.
func (m *Manifest) Validate() error {
	components := make(map[string]bool, len(m.Components))
	for _, c := range m.Components {
		if c.Name == "" {
			return fmt.Errorf("component without a name")
		}
		if components[c.Name] {
			return fmt.Errorf("duplicate component %q", c.Name)
		}
		components[c.Name] = true
	}

	instances := make(map[string]bool, len(m.Instances))
	for _, inst := range m.Instances {
		if inst.ID == "" {
			return fmt.Errorf("instance without an id")
		}
		if instances[inst.ID] {
			return fmt.Errorf("duplicate instance %q", inst.ID)
		}
		if !components[inst.Component] {
			return fmt.Errorf("instance %q: unknown component %q", inst.ID, inst.Component)
		}
		if inst.Parent != "" && !instances[inst.Parent] {
			return fmt.Errorf("instance %q: parent %q must be declared first", inst.ID, inst.Parent)
		}
		instances[inst.ID] = true
	}

	for n, step := range m.Steps {
		if !instances[step.Instance] {
			return fmt.Errorf("step %d: unknown instance %q", n+1, step.Instance)
		}
		switch step.Action {
		case "update", "activate", "deactivate":
		case "emit":
			if step.Event == "" {
				return fmt.Errorf("step %d: emit needs an event", n+1)
			}
		case "set", "attr":
			if step.Key == "" {
				return fmt.Errorf("step %d: %s needs a key", n+1, step.Action)
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", n+1, step.Action)
		}
	}
	return nil
}

// definition builds the runtime definition for spec. Hooks and renders
// report through tr.
func definition(spec ComponentSpec, tr *tracer) component.Definition {
	props := make([]component.Prop, len(spec.Props))
	for n, p := range spec.Props {
		props[n] = component.Prop{Name: p.Name, Default: p.Default, Required: p.Required}
	}

	if spec.Functional {
		return &component.Functional{
			Name:                spec.Name,
			Props:               props,
			Emits:               spec.Emits,
			DisableInheritAttrs: spec.NoInherit,
			Setup: func(_ component.Data, _ *component.SetupContext) any {
				traceHooks(tr)
				self := component.Current()
				block := Render(spec.Render, lookup(self))
				tr.printf(self, "render: %s", block)
				return block
			},
		}
	}

	return &component.Object{
		Name:                spec.Name,
		Props:               props,
		Emits:               spec.Emits,
		DisableInheritAttrs: spec.NoInherit,
		Setup: func(_ component.Data, _ *component.SetupContext) any {
			traceHooks(tr)
			state := make(component.Data, len(spec.State))
			for k, v := range spec.State {
				state[k] = reactivity.NewRefFunc[any](v, reflect.DeepEqual)
			}
			return state
		},
		Render: func(component.Data) component.Block {
			self := component.Current()
			block := Render(spec.Render, lookup(self))
			tr.printf(self, "render: %s", block)
			return block
		},
	}
}

// lookup resolves template keys against setup state, then props, then
// attrs. Every read is tracked.
func lookup(i *component.Instance) func(string) (any, bool) {
	return func(key string) (any, bool) {
		if v, ok := i.SetupState()[key]; ok {
			if ref, ok := v.(*reactivity.Ref[any]); ok {
				return ref.Value(), true
			}
			return v, true
		}
		if _, ok := i.PropsOptions().Lookup(key); ok {
			return i.Prop(key), true
		}
		return i.AttrsView().Get(key)
	}
}

func traceHooks(tr *tracer) {
	for _, phase := range []component.Phase{
		component.BeforeMount, component.Mounted,
		component.BeforeUpdate, component.Updated,
		component.BeforeUnmount, component.Unmounted,
		component.Activated, component.Deactivated,
	} {
		phase := phase
		component.RegisterHook(phase, func(component.HookEvent) bool {
			tr.printf(component.Current(), "%s", phase)
			return true
		}, nil)
	}
}
