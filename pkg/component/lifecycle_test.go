package component

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/vapor/pkg/errors"
	"github.com/go-drift/vapor/pkg/reactivity"
)

// traced builds a definition that records every lifecycle step.
func traced(log *[]string, count *reactivity.Ref[int]) *Object {
	return &Object{
		Name: "Counter",
		Setup: func(props Data, ctx *SetupContext) any {
			OnBeforeMount(func() { *log = append(*log, "beforeMount") })
			OnMounted(func() { *log = append(*log, "mounted") })
			OnBeforeUpdate(func() { *log = append(*log, "beforeUpdate") })
			OnUpdated(func() { *log = append(*log, "updated") })
			OnBeforeUnmount(func() { *log = append(*log, "beforeUnmount") })
			OnUnmounted(func() { *log = append(*log, "unmounted") })
			return Data{"label": "count"}
		},
		Render: func(state Data) Block {
			*log = append(*log, "render")
			return fmt.Sprintf("%s=%d", state["label"], count.Value())
		},
	}
}

func TestMount_Sequence(t *testing.T) {
	isolate(t)
	var log []string
	count := reactivity.NewRef(0)
	i := New(traced(&log, count), nil)

	if err := Mount(i); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"beforeMount", "render", "mounted"}, log); diff != "" {
		t.Errorf("mount sequence mismatch (-want +got):\n%s", diff)
	}
	if !i.IsMounted() || i.Block() != "count=0" {
		t.Errorf("mounted=%v block=%v", i.IsMounted(), i.Block())
	}
	if i.SetupState()["label"] != "count" {
		t.Error("setup data should become setup state")
	}
	if Current() != nil {
		t.Error("current should be restored after mount")
	}
}

func TestMount_BeforeMountWriteReachesFirstRender(t *testing.T) {
	isolate(t)
	count := reactivity.NewRef(0)
	renders := 0
	i := New(&Object{
		Setup: func(Data, *SetupContext) any {
			OnBeforeMount(func() { count.Set(1) })
			return nil
		},
		Render: func(Data) Block {
			renders++
			return count.Value()
		},
	}, nil)

	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	if i.Block() != 1 {
		t.Errorf("block = %v, want 1", i.Block())
	}
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}

	count.Set(2)
	if i.Block() != 2 {
		t.Errorf("block = %v after update, want 2", i.Block())
	}
}

func TestMount_ReactiveUpdate(t *testing.T) {
	isolate(t)
	var log []string
	count := reactivity.NewRef(0)
	i := New(traced(&log, count), nil)
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	log = nil

	count.Set(1)

	if diff := cmp.Diff([]string{"beforeUpdate", "render", "updated"}, log); diff != "" {
		t.Errorf("update sequence mismatch (-want +got):\n%s", diff)
	}
	if i.Block() != "count=1" || i.IsUpdating() {
		t.Errorf("block=%v updating=%v", i.Block(), i.IsUpdating())
	}
}

func TestUnmount_DisposesScope(t *testing.T) {
	isolate(t)
	var log []string
	count := reactivity.NewRef(0)
	parent := New(&Object{}, nil)
	i := New(traced(&log, count), nil, WithParent(parent))
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}

	if err := Unmount(i); err != nil {
		t.Fatal(err)
	}
	log = nil
	count.Set(5)

	if len(log) != 0 {
		t.Errorf("no render or hook should follow disposal, got %v", log)
	}
	if i.Scope().Active() || !i.IsUnmounted() {
		t.Error("unmount should stop the scope and flag the instance")
	}
	if len(parent.Children()) != 0 {
		t.Error("unmounted child should leave the registry")
	}
}

func TestUnmount_HookOrder(t *testing.T) {
	isolate(t)
	var log []string
	i := New(traced(&log, reactivity.NewRef(0)), nil)
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	log = nil
	if err := Unmount(i); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"beforeUnmount", "unmounted"}, log); diff != "" {
		t.Errorf("unmount sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestLifecycle_InvalidTransitions(t *testing.T) {
	isolate(t)
	i := New(&Object{}, nil)

	if err := Update(i); !stderrors.Is(err, errors.ErrNotMounted) {
		t.Errorf("Update before mount: got %v", err)
	}
	if err := Unmount(i); !stderrors.Is(err, errors.ErrNotMounted) {
		t.Errorf("Unmount before mount: got %v", err)
	}
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	if err := Mount(i); !stderrors.Is(err, errors.ErrAlreadyMounted) {
		t.Errorf("second Mount: got %v", err)
	}
	if err := Unmount(i); err != nil {
		t.Fatal(err)
	}
	err := Activate(i)
	if !stderrors.Is(err, errors.ErrUnmounted) {
		t.Errorf("Activate after unmount: got %v", err)
	}
	var ve *errors.VaporError
	if !stderrors.As(err, &ve) || ve.Kind != errors.KindLifecycle || ve.Instance != i.UID() {
		t.Errorf("unexpected error: %+v", err)
	}
}

func TestLifecycle_KeepAlive(t *testing.T) {
	isolate(t)
	var log []string
	def := &Object{Setup: func(Data, *SetupContext) any {
		OnActivated(func() { log = append(log, "activated") })
		OnDeactivated(func() { log = append(log, "deactivated") })
		return nil
	}}
	i := New(def, nil)
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	if err := Deactivate(i); err != nil {
		t.Fatal(err)
	}
	if err := Activate(i); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"deactivated", "activated"}, log); diff != "" {
		t.Errorf("keep-alive mismatch (-want +got):\n%s", diff)
	}
}

func TestLifecycle_ForcedUpdate(t *testing.T) {
	isolate(t)
	renders := 0
	i := New(&Object{Render: func(Data) Block {
		renders++
		return renders
	}}, nil)
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	if err := Update(i); err != nil {
		t.Fatal(err)
	}
	if renders != 2 || i.Block() != 2 {
		t.Errorf("renders=%d block=%v", renders, i.Block())
	}
}

func TestLifecycle_RenderDebugHooks(t *testing.T) {
	isolate(t)
	count := reactivity.NewRef(0)
	var tracked, triggered int
	def := &Object{
		Setup: func(Data, *SetupContext) any {
			OnRenderTracked(func(ev reactivity.DebugEvent) { tracked++ })
			OnRenderTriggered(func(ev reactivity.DebugEvent) { triggered++ })
			return nil
		},
		Render: func(Data) Block { return count.Value() },
	}
	i := New(def, nil)
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	count.Set(1)

	if tracked != 2 || triggered != 1 {
		t.Errorf("tracked=%d triggered=%d, want 2 and 1", tracked, triggered)
	}
}

func TestLifecycle_RenderReadsPropsAndAttrs(t *testing.T) {
	isolate(t)
	def := &Object{
		Props: msgSchema,
		Render: func(Data) Block {
			self := Current()
			return fmt.Sprintf("%v/%v", self.Prop("msg"), self.AttrsView().Value("extra"))
		},
	}
	i := New(def, Data{"msg": "hi", "extra": "x"})
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	if i.Block() != "hi/x" {
		t.Fatalf("block = %v", i.Block())
	}

	UpdateProps(i, Data{"msg": "bye", "extra": "x"})
	if i.Block() != "bye/x" {
		t.Errorf("prop change should re-render, block = %v", i.Block())
	}
	UpdateProps(i, Data{"msg": "bye", "extra": "y"})
	if i.Block() != "bye/y" {
		t.Errorf("attr change should re-render, block = %v", i.Block())
	}
}

func TestLifecycle_FunctionalBlock(t *testing.T) {
	isolate(t)
	def := &Functional{Setup: func(props Data, ctx *SetupContext) any {
		return fmt.Sprintf("hello %v", ctx.Attrs().Value("name"))
	}}
	i := New(def, Data{"name": "ada"})
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	if i.Block() != "hello ada" {
		t.Errorf("block = %v", i.Block())
	}
}

func TestLifecycle_SetupPanicReported(t *testing.T) {
	isolate(t)
	captured := captureHookErrors(t)
	i := New(&Object{Setup: func(Data, *SetupContext) any { panic("setup failed") }}, nil)
	if err := Mount(i); err != nil {
		t.Fatal(err)
	}
	if len(*captured) != 1 || (*captured)[0].Kind != errors.KindSetup {
		t.Errorf("expected one setup error, got %+v", *captured)
	}
	if !i.IsMounted() {
		t.Error("a failed setup still mounts")
	}
}
