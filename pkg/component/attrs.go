package component

import (
	"sort"

	"github.com/go-drift/vapor/pkg/reactivity"
)

// attrsKey is the single dependency key for every attrs read. Writing any
// attribute notifies every reader, whichever key it read.
const attrsKey = "$attrs"

const readonlyAttrsMessage = "setupContext.attrs is readonly."

// AttrsView is a read-only, dependency-tracked view of an instance's
// fallthrough attributes.
//
// Every read tracks one coarse dependency on the attrs object as a whole.
// The view reads through the instance, so it stays accurate after a props
// update replaces the attrs mapping.
type AttrsView struct {
	instance *Instance
}

// AttrsView returns the instance's attrs view, creating it on first use.
// Later calls return the same *AttrsView.
func (i *Instance) AttrsView() *AttrsView {
	if i.attrsView == nil {
		i.attrsView = &AttrsView{instance: i}
	}
	return i.attrsView
}

// Get returns the attribute stored under key.
func (v *AttrsView) Get(key string) (any, bool) {
	reactivity.Track(v.instance, attrsKey)
	value, ok := v.instance.attrs[key]
	return value, ok
}

// Value returns the attribute stored under key, or nil.
func (v *AttrsView) Value(key string) any {
	value, _ := v.Get(key)
	return value
}

// Has reports whether key is present.
func (v *AttrsView) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Len returns the number of attributes.
func (v *AttrsView) Len() int {
	reactivity.Track(v.instance, attrsKey)
	return len(v.instance.attrs)
}

// Keys returns the attribute keys in sorted order.
func (v *AttrsView) Keys() []string {
	reactivity.Track(v.instance, attrsKey)
	keys := make([]string, 0, len(v.instance.attrs))
	for k := range v.instance.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the attributes.
func (v *AttrsView) Snapshot() Data {
	reactivity.Track(v.instance, attrsKey)
	out := make(Data, len(v.instance.attrs))
	for k, val := range v.instance.attrs {
		out[k] = val
	}
	return out
}

// Set is rejected: the attributes are left untouched and Set returns false.
// In debug mode a diagnostic is reported.
func (v *AttrsView) Set(key string, value any) bool {
	v.reject()
	return false
}

// Delete is rejected like Set.
func (v *AttrsView) Delete(key string) bool {
	v.reject()
	return false
}

func (v *AttrsView) reject() {
	notify(func(o Observer) { o.AttrsWriteRejected(v.instance) })
	if DebugMode {
		v.instance.Warn(readonlyAttrsMessage)
	}
}
