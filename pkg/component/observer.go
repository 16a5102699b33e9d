package component

import (
	"sync"

	"github.com/go-drift/vapor/pkg/errors"
)

// Observer receives lifecycle notifications, for metrics and tracing.
// Methods run synchronously on the UI goroutine and must not block.
type Observer interface {
	InstanceCreated(i *Instance)
	InstanceMounted(i *Instance)
	InstanceUnmounted(i *Instance)
	HookInvoked(i *Instance, phase Phase)
	AttrsWriteRejected(i *Instance)
}

var (
	observer   Observer
	observerMu sync.RWMutex
)

// SetObserver installs o. Pass nil to remove the observer.
func SetObserver(o Observer) {
	observerMu.Lock()
	defer observerMu.Unlock()
	observer = o
}

func notify(fn func(Observer)) {
	observerMu.RLock()
	o := observer
	observerMu.RUnlock()
	if o == nil {
		return
	}
	defer errors.Recover("component.notify")
	fn(o)
}
