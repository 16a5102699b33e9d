package component

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-drift/vapor/pkg/reactivity"
)

// PropsOptions is a normalized props schema. The zero value declares no
// props.
type PropsOptions struct {
	props []Prop
	index map[string]int
}

// Declared reports whether the schema declares any props.
func (p PropsOptions) Declared() bool {
	return len(p.props) > 0
}

// Keys returns the declared prop names in declaration order.
func (p PropsOptions) Keys() []string {
	keys := make([]string, len(p.props))
	for i, prop := range p.props {
		keys[i] = prop.Name
	}
	return keys
}

// Lookup returns the declaration for name.
func (p PropsOptions) Lookup(name string) (Prop, bool) {
	idx, ok := p.index[name]
	if !ok {
		return Prop{}, false
	}
	return p.props[idx], true
}

// EmitsOptions is a normalized emits schema. A nil EmitsOptions means the
// definition declared no emits at all, which disables event validation.
type EmitsOptions map[string]struct{}

// Has reports whether event is declared.
func (e EmitsOptions) Has(event string) bool {
	_, ok := e[event]
	return ok
}

// NormalizePropsOptions resolves def's props schema. Prop names are
// camelized; a later duplicate replaces an earlier declaration.
func NormalizePropsOptions(def Definition) PropsOptions {
	if def == nil {
		return PropsOptions{}
	}
	declared := def.schema().props
	if len(declared) == 0 {
		return PropsOptions{}
	}
	opts := PropsOptions{index: make(map[string]int, len(declared))}
	for _, prop := range declared {
		prop.Name = Camelize(prop.Name)
		if prop.Name == "" {
			continue
		}
		if idx, ok := opts.index[prop.Name]; ok {
			opts.props[idx] = prop
			continue
		}
		opts.index[prop.Name] = len(opts.props)
		opts.props = append(opts.props, prop)
	}
	return opts
}

// NormalizeEmitsOptions resolves def's emits schema.
func NormalizeEmitsOptions(def Definition) EmitsOptions {
	if def == nil {
		return nil
	}
	declared := def.schema().emits
	if declared == nil {
		return nil
	}
	opts := make(EmitsOptions, len(declared))
	for _, event := range declared {
		opts[event] = struct{}{}
	}
	return opts
}

// InitProps splits raw input into declared props and fallthrough attrs.
//
// Keys matching a declared prop (after camelizing) become props; listeners
// for declared events are dropped; everything else becomes an attr.
// Declared props missing from raw take their default. A functional
// definition without a props schema receives the attrs as its props.
func InitProps(i *Instance, raw Data, isObjectForm bool) {
	i.SetRawProps(raw)
	props, attrs := resolveProps(i, raw)
	if !isObjectForm && !i.propsOptions.Declared() {
		props = attrs
	}
	i.props = props
	i.attrs = attrs
}

// UpdateProps re-resolves props and attrs from new raw input and notifies
// readers of every prop that changed and, if any attribute changed, every
// reader of the attrs view.
func UpdateProps(i *Instance, raw Data) {
	oldProps, oldAttrs := i.props, i.attrs
	guard("component.InitProps", func() { i.collab.InitProps(i, raw, IsObjectForm(i.def)) })

	for _, key := range i.propsOptions.Keys() {
		if !reflect.DeepEqual(oldProps[key], i.props[key]) {
			reactivity.Trigger(i, propKey(key))
		}
	}
	if !reflect.DeepEqual(oldAttrs, i.attrs) {
		reactivity.Trigger(i, attrsKey)
	}
}

func resolveProps(i *Instance, raw Data) (props, attrs Data) {
	opts := i.propsOptions
	for key, value := range raw {
		if _, ok := opts.Lookup(Camelize(key)); ok {
			if props == nil {
				props = make(Data)
			}
			props[Camelize(key)] = value
			continue
		}
		if isEmitListener(i.emitsOptions, key) {
			continue
		}
		if attrs == nil {
			attrs = make(Data)
		}
		attrs[key] = value
	}

	for _, prop := range opts.props {
		if _, ok := props[prop.Name]; ok {
			continue
		}
		if prop.Default != nil {
			if props == nil {
				props = make(Data)
			}
			props[prop.Name] = prop.Default
		} else if prop.Required && DebugMode {
			i.Warn(fmt.Sprintf("Missing required prop: %q", prop.Name))
		}
	}
	return props, attrs
}

// isEmitListener reports whether key is an "onX" listener for an event
// declared in opts.
func isEmitListener(opts EmitsOptions, key string) bool {
	if opts == nil || !isOn(key) {
		return false
	}
	name := strings.TrimSuffix(key[2:], "Once")
	if opts.Has(name) {
		return true
	}
	lower := uncapitalize(name)
	return opts.Has(lower) || opts.Has(Hyphenate(lower))
}

func isOn(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on") && unicode.IsUpper(rune(key[2]))
}

// Camelize converts kebab-case to camelCase: "foo-bar" becomes "fooBar".
func Camelize(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Hyphenate converts camelCase to kebab-case: "fooBar" becomes "foo-bar".
func Hyphenate(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func uncapitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// HandlerKey returns the listener prop name for event: "click" becomes
// "onClick".
func HandlerKey(event string) string {
	if event == "" {
		return ""
	}
	return "on" + capitalize(event)
}
