package component

// Node identifies a rendered node. Any comparable value works.
type Node = any

// DirectiveBinding is one directive applied to a node.
type DirectiveBinding struct {
	Instance  *Instance
	Name      string
	Value     any
	OldValue  any
	Arg       string
	Modifiers map[string]bool
}

// Directives returns the bindings on node in application order.
func (i *Instance) Directives(node Node) []*DirectiveBinding {
	return i.dirs[node]
}

// BindDirective appends b to node's bindings and sets b.Instance.
func (i *Instance) BindDirective(node Node, b *DirectiveBinding) {
	b.Instance = i
	i.dirs[node] = append(i.dirs[node], b)
}

// UnbindDirectives drops every binding on node.
func (i *Instance) UnbindDirectives(node Node) {
	delete(i.dirs, node)
}

// DirectiveNodes returns the number of nodes with bindings.
func (i *Instance) DirectiveNodes() int {
	return len(i.dirs)
}
