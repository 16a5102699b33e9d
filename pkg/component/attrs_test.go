package component

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/vapor/pkg/reactivity"
)

func TestAttrsView_Memoized(t *testing.T) {
	isolate(t)
	i := New(&Object{Props: msgSchema}, Data{"extra": "x"})

	first := i.AttrsView()
	second := i.AttrsView()
	if first != second {
		t.Error("attrs view should be created once and reused")
	}
	if i.SetupContext().Attrs() != first {
		t.Error("setup context should expose the same view")
	}

	UpdateProps(i, Data{"other": "y"})
	if i.AttrsView() != first {
		t.Error("a props update must not rebuild the view")
	}
	if got := first.Value("other"); got != "y" {
		t.Errorf("view should read the replaced attrs, got %v", got)
	}
	if first.Has("extra") {
		t.Error("view should not see removed attrs")
	}
}

func TestAttrsView_Reads(t *testing.T) {
	isolate(t)
	i := New(&Object{Props: msgSchema}, Data{"msg": "hi", "b": 2, "a": 1})
	view := i.AttrsView()

	if diff := cmp.Diff([]string{"a", "b"}, view.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if view.Len() != 2 {
		t.Errorf("Len() = %d, want 2", view.Len())
	}
	if _, ok := view.Get("msg"); ok {
		t.Error("declared props are not attrs")
	}
	snap := view.Snapshot()
	snap["a"] = 100
	if view.Value("a") != 1 {
		t.Error("snapshot must be a copy")
	}
}

func TestAttrsView_CoarseTracking(t *testing.T) {
	isolate(t)
	i := New(&Object{}, Data{"a": 1, "b": 1})
	view := i.AttrsView()

	var readsA, readsB int
	consumerA := reactivity.NewEffect(func() { view.Get("a") }, func() { readsA++ })
	consumerB := reactivity.NewEffect(func() { view.Get("b") }, func() { readsB++ })
	consumerA.Run()
	consumerB.Run()
	defer consumerA.Stop()
	defer consumerB.Stop()

	UpdateProps(i, Data{"a": 2, "b": 1})

	if readsA != 1 || readsB != 1 {
		t.Errorf("both consumers should be notified, got a=%d b=%d", readsA, readsB)
	}
	if !consumerA.Dirty() || !consumerB.Dirty() {
		t.Error("both consumers should be marked for re-evaluation")
	}

	UpdateProps(i, Data{"a": 2, "b": 1})
	if readsA != 1 || readsB != 1 {
		t.Error("an update that changes no attrs should not notify")
	}

	i.SetAttrs(Data{"c": 3})
	if readsA != 2 || readsB != 2 {
		t.Error("replacing attrs should notify every reader")
	}
}

func TestAttrsView_WritesRejected(t *testing.T) {
	isolate(t)
	var w warnings
	i := New(&Object{}, Data{"a": 1}, w.sink())
	view := i.AttrsView()

	if view.Set("a", 2) {
		t.Error("Set should report failure")
	}
	if view.Set("new", 2) {
		t.Error("Set of a new key should report failure")
	}
	if view.Delete("a") {
		t.Error("Delete should report failure")
	}
	if diff := cmp.Diff(Data{"a": 1}, i.Attrs()); diff != "" {
		t.Errorf("attrs must be untouched (-want +got):\n%s", diff)
	}
	want := []string{readonlyAttrsMessage, readonlyAttrsMessage, readonlyAttrsMessage}
	if diff := cmp.Diff(want, w.messages); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestAttrsView_WritesSilentInProduction(t *testing.T) {
	isolate(t)
	SetDebugMode(false)
	var w warnings
	i := New(&Object{}, Data{"a": 1}, w.sink())

	if i.AttrsView().Delete("a") {
		t.Error("Delete should report failure")
	}
	if i.Attrs()["a"] != 1 {
		t.Error("attrs must be untouched")
	}
	if len(w.messages) != 0 {
		t.Errorf("production mode should not warn, got %v", w.messages)
	}
}
