package manifest

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/vapor/pkg/component"
	"github.com/go-drift/vapor/pkg/reactivity"
)

type tracer struct {
	w   io.Writer
	ids map[*component.Instance]string
}

func (t *tracer) printf(i *component.Instance, format string, args ...any) {
	id, ok := t.ids[i]
	if !ok {
		id = "?"
	}
	t.line(id, format, args...)
}

func (t *tracer) line(id, format string, args ...any) {
	fmt.Fprintf(t.w, "[%s] %s\n", id, fmt.Sprintf(format, args...))
}

// Run creates every instance in declaration order, mounts them, applies the
// steps and unmounts everything in reverse order, writing a trace to w.
// Instances mounted before a failure are still unmounted.
func (m *Manifest) Run(w io.Writer) (err error) {
	tr := &tracer{w: w, ids: make(map[*component.Instance]string)}

	defs := make(map[string]component.Definition, len(m.Components))
	for _, spec := range m.Components {
		defs[spec.Name] = definition(spec, tr)
	}

	byID := make(map[string]*component.Instance, len(m.Instances))
	order := make([]*component.Instance, 0, len(m.Instances))
	specs := make(map[string]InstanceSpec, len(m.Instances))
	for _, spec := range m.Instances {
		var opts []component.Option
		if spec.Parent != "" {
			opts = append(opts, component.WithParent(byID[spec.Parent]))
		}
		i := component.New(defs[spec.Component], rawProps(spec, tr), opts...)
		tr.ids[i] = spec.ID
		byID[spec.ID] = i
		specs[spec.ID] = spec
		order = append(order, i)
	}

	var mounted []*component.Instance
	defer func() {
		for n := len(mounted) - 1; n >= 0; n-- {
			if uerr := component.Unmount(mounted[n]); uerr != nil && err == nil {
				err = uerr
			}
		}
	}()

	for _, i := range order {
		if err := component.Mount(i); err != nil {
			return err
		}
		mounted = append(mounted, i)
	}

	for _, step := range m.Steps {
		i := byID[step.Instance]
		if err := apply(i, specs[step.Instance], step, tr); err != nil {
			return fmt.Errorf("step %s on %q: %w", step.Action, step.Instance, err)
		}
	}
	return nil
}

func rawProps(spec InstanceSpec, tr *tracer) component.Data {
	raw := make(component.Data, len(spec.Props)+len(spec.Listen))
	for k, v := range spec.Props {
		raw[k] = v
	}
	for _, event := range spec.Listen {
		event := event
		raw[component.HandlerKey(component.Camelize(event))] = component.Handler(func(args ...any) {
			tr.line(spec.ID, "emitted %s%s", event, formatArgs(args))
		})
	}
	return raw
}

func apply(i *component.Instance, spec InstanceSpec, step Step, tr *tracer) error {
	switch step.Action {
	case "update":
		raw := rawProps(spec, tr)
		for k, v := range step.Props {
			raw[k] = v
		}
		component.UpdateProps(i, raw)
	case "emit":
		i.Emit(step.Event, step.Args...)
	case "set":
		ref, ok := i.SetupState()[step.Key].(*reactivity.Ref[any])
		if !ok {
			return fmt.Errorf("no state key %q", step.Key)
		}
		ref.Set(step.Value)
	case "attr":
		if !i.AttrsView().Set(step.Key, step.Value) {
			tr.printf(i, "attrs write to %q rejected", step.Key)
		}
	case "activate":
		return component.Activate(i)
	case "deactivate":
		return component.Deactivate(i)
	}
	return nil
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for n, a := range args {
		parts[n] = fmt.Sprint(a)
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
