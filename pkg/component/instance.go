package component

import (
	"sort"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/go-drift/vapor/pkg/reactivity"
)

var uid atomic.Uint64

// Instance is one running component. Instances are only produced by New;
// holding an *Instance is proof that the value went through construction.
type Instance struct {
	uid      uint64
	def      Definition
	parent   *Instance
	children map[*Instance]struct{}

	scope  *reactivity.Scope
	render *reactivity.Effect
	dirs   map[Node][]*DirectiveBinding

	collab       Collaborators
	rawProps     Data
	propsOptions PropsOptions
	emitsOptions EmitsOptions

	setupState   Data
	setupContext *SetupContext
	exposed      Data
	props        Data
	attrs        Data
	refs         Data
	emit         EmitFn
	emitted      map[string]bool
	attrsView    *AttrsView
	block        Block

	isMounted   bool
	isUnmounted bool
	isUpdating  bool

	hooks [phaseCount][]Hook
}

// Option configures an instance during New.
type Option func(*options)

type options struct {
	parent *Instance
	collab *Collaborators
}

// WithParent records p as the new instance's parent and adds the instance to
// p's children registry. Neither link implies ownership.
func WithParent(p *Instance) Option {
	return func(o *options) {
		o.parent = p
	}
}

// WithCollaborators replaces the default schema normalizers, props
// initializer, emit dispatcher and diagnostic sink. Nil fields keep the
// defaults.
func WithCollaborators(c Collaborators) Option {
	return func(o *options) {
		o.collab = &c
	}
}

// New creates an instance of def. rawProps may be nil. Props and attrs are
// populated by the props initializer as the last construction step.
func New(def Definition, rawProps Data, opts ...Option) *Instance {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	collab := DefaultCollaborators()
	if o.collab != nil {
		collab = collab.merge(*o.collab)
	}

	i := &Instance{
		uid:      uid.Add(1),
		def:      def,
		parent:   o.parent,
		children: make(map[*Instance]struct{}),
		// Detached: the instance's reactive lifetime follows its own
		// mount/unmount, never the scope that happens to be active now.
		scope:  reactivity.NewScope(true),
		dirs:   make(map[Node][]*DirectiveBinding),
		collab: collab,
	}
	guard("component.NormalizeProps", func() { i.propsOptions = collab.NormalizeProps(def) })
	guard("component.NormalizeEmits", func() { i.emitsOptions = collab.NormalizeEmits(def) })

	if o.parent != nil {
		o.parent.children[i] = struct{}{}
	}

	i.emit = bindEmit(i)
	guard("component.InitProps", func() { collab.InitProps(i, rawProps, IsObjectForm(def)) })

	Logger().Debug("instance created",
		zap.Uint64("uid", i.uid),
		zap.String("component", NameOf(def)),
	)
	notify(func(o Observer) { o.InstanceCreated(i) })
	return i
}

// AsInstance reports whether v is a component instance.
func AsInstance(v any) (*Instance, bool) {
	i, ok := v.(*Instance)
	return i, ok && i != nil
}

// UID returns the instance's process-unique id. Ids increase in creation
// order.
func (i *Instance) UID() uint64 { return i.uid }

// Definition returns the component definition the instance was created from.
func (i *Instance) Definition() Definition { return i.def }

// Name returns the component name, or "" for anonymous components.
func (i *Instance) Name() string { return NameOf(i.def) }

// Parent returns the enclosing instance, or nil.
func (i *Instance) Parent() *Instance { return i.parent }

// Children returns the registered child instances in creation order.
func (i *Instance) Children() []*Instance {
	children := make([]*Instance, 0, len(i.children))
	for c := range i.children {
		children = append(children, c)
	}
	sort.Slice(children, func(a, b int) bool {
		return children[a].uid < children[b].uid
	})
	return children
}

// Scope returns the reactive scope the instance owns.
func (i *Instance) Scope() *reactivity.Scope { return i.scope }

// PropsOptions returns the normalized props schema.
func (i *Instance) PropsOptions() PropsOptions { return i.propsOptions }

// EmitsOptions returns the normalized emits schema.
func (i *Instance) EmitsOptions() EmitsOptions { return i.emitsOptions }

// RawProps returns the raw input the props were populated from.
func (i *Instance) RawProps() Data { return i.rawProps }

// Props returns the declared props. Reads through the returned map are not
// tracked; use Prop inside render to react to prop updates.
func (i *Instance) Props() Data { return i.props }

// Prop returns one declared prop and tracks the read.
func (i *Instance) Prop(key string) any {
	reactivity.Track(i, propKey(key))
	return i.props[key]
}

// Attrs returns the fallthrough attributes. Reads through the returned map
// are not tracked; use AttrsView for tracked reads.
func (i *Instance) Attrs() Data { return i.attrs }

// SetupState returns the state produced by the setup function.
func (i *Instance) SetupState() Data { return i.setupState }

// Refs returns the template refs registered on the instance.
func (i *Instance) Refs() Data { return i.refs }

// Emitted returns the handler keys whose once-listeners have fired, or nil.
func (i *Instance) Emitted() map[string]bool { return i.emitted }

// Exposed returns the mapping passed to SetupContext.Expose, or nil.
func (i *Instance) Exposed() Data { return i.exposed }

// Block returns the last rendered block.
func (i *Instance) Block() Block { return i.block }

// IsMounted reports whether the instance has been mounted.
func (i *Instance) IsMounted() bool { return i.isMounted }

// IsUnmounted reports whether the instance has been unmounted.
func (i *Instance) IsUnmounted() bool { return i.isUnmounted }

// IsUpdating reports whether the instance is re-rendering.
func (i *Instance) IsUpdating() bool { return i.isUpdating }

// SetProps replaces the declared props. Intended for props initializers.
func (i *Instance) SetProps(props Data) { i.props = props }

// SetAttrs replaces the fallthrough attributes. Intended for props
// initializers; readers of the attrs view are notified.
func (i *Instance) SetAttrs(attrs Data) {
	i.attrs = attrs
	reactivity.Trigger(i, attrsKey)
}

// SetRawProps replaces the stored raw input. Intended for props
// initializers.
func (i *Instance) SetRawProps(raw Data) { i.rawProps = raw }

// SetSetupState replaces the setup state.
func (i *Instance) SetSetupState(state Data) { i.setupState = state }

// SetBlock records the rendered block.
func (i *Instance) SetBlock(b Block) { i.block = b }

// SetRef records a template ref.
func (i *Instance) SetRef(name string, value any) {
	if i.refs == nil {
		i.refs = make(Data)
	}
	i.refs[name] = value
}

// SetMounted, SetUnmounted and SetUpdating let an external driver walk the
// lifecycle state machine.
func (i *Instance) SetMounted(v bool) { i.isMounted = v }

// SetUnmounted records the unmounted flag.
func (i *Instance) SetUnmounted(v bool) { i.isUnmounted = v }

// SetUpdating records the updating flag.
func (i *Instance) SetUpdating(v bool) { i.isUpdating = v }

type propKey string
