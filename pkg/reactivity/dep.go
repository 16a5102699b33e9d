package reactivity

// DebugEvent describes a tracked read or a trigger observed by an effect.
type DebugEvent struct {
	Effect *Effect
	Target any
	Key    any
}

// Dep is the ordered set of effects subscribed to one (target, key) pair.
type Dep struct {
	target any
	key    any
	subs   []*Effect
}

// Len returns the number of subscribed effects.
func (d *Dep) Len() int {
	return len(d.subs)
}

func (d *Dep) has(e *Effect) bool {
	for _, sub := range d.subs {
		if sub == e {
			return true
		}
	}
	return false
}

func (d *Dep) remove(e *Effect) {
	for i, sub := range d.subs {
		if sub == e {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			break
		}
	}
	if len(d.subs) == 0 {
		dropDep(d)
	}
}

var (
	targets = make(map[any]map[any]*Dep)

	activeEffect *Effect
	shouldTrack  = true
	trackStack   []bool
)

// DepOf returns the dep for (target, key), or nil when nothing has
// subscribed to it.
func DepOf(target, key any) *Dep {
	return targets[target][key]
}

func depFor(target, key any) *Dep {
	deps := targets[target]
	if deps == nil {
		deps = make(map[any]*Dep)
		targets[target] = deps
	}
	dep := deps[key]
	if dep == nil {
		dep = &Dep{target: target, key: key}
		deps[key] = dep
	}
	return dep
}

func dropDep(d *Dep) {
	deps := targets[d.target]
	if deps[d.key] != d {
		return
	}
	delete(deps, d.key)
	if len(deps) == 0 {
		delete(targets, d.target)
	}
}

// Track subscribes the running effect, if any, to (target, key).
// Target must be comparable; pointers are the usual choice.
func Track(target, key any) {
	if !shouldTrack || activeEffect == nil {
		return
	}
	dep := depFor(target, key)
	if dep.has(activeEffect) {
		return
	}
	dep.subs = append(dep.subs, activeEffect)
	activeEffect.deps = append(activeEffect.deps, dep)
	if activeEffect.OnTrack != nil {
		activeEffect.OnTrack(DebugEvent{Effect: activeEffect, Target: target, Key: key})
	}
}

// Trigger notifies every effect subscribed to (target, key). The running
// effect is never re-entered by its own writes.
func Trigger(target, key any) {
	dep := targets[target][key]
	if dep == nil {
		return
	}
	subs := append([]*Effect(nil), dep.subs...)
	for _, e := range subs {
		if e == activeEffect || !e.active {
			continue
		}
		e.dirty = true
		if e.OnTrigger != nil {
			e.OnTrigger(DebugEvent{Effect: e, Target: target, Key: key})
		}
		if e.scheduler != nil {
			e.scheduler()
		} else {
			e.Run()
		}
	}
}

// PauseTracking disables dependency collection until the matching
// ResetTracking call.
func PauseTracking() {
	trackStack = append(trackStack, shouldTrack)
	shouldTrack = false
}

// EnableTracking re-enables dependency collection until the matching
// ResetTracking call.
func EnableTracking() {
	trackStack = append(trackStack, shouldTrack)
	shouldTrack = true
}

// ResetTracking restores the tracking state saved by the most recent
// PauseTracking or EnableTracking.
func ResetTracking() {
	if n := len(trackStack); n > 0 {
		shouldTrack = trackStack[n-1]
		trackStack = trackStack[:n-1]
		return
	}
	shouldTrack = true
}

// IsTracking reports whether a read right now would subscribe an effect.
func IsTracking() bool {
	return shouldTrack && activeEffect != nil
}
