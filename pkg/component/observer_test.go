package component

import "testing"

type panickingObserver struct{ created int }

func (o *panickingObserver) InstanceCreated(*Instance) {
	o.created++
	panic("observer failed")
}
func (o *panickingObserver) InstanceMounted(*Instance) {}

func (o *panickingObserver) InstanceUnmounted(*Instance) {}

func (o *panickingObserver) HookInvoked(*Instance, Phase) {}

func (o *panickingObserver) AttrsWriteRejected(*Instance) {}

func TestNotify_ObserverPanicIsReported(t *testing.T) {
	isolate(t)
	panics := capturePanics(t)
	o := &panickingObserver{}
	SetObserver(o)

	i := New(&Object{Props: msgSchema}, Data{"msg": "hi"})
	if err := Mount(i); err != nil {
		t.Fatalf("mount after observer panic: %v", err)
	}

	if o.created != 1 {
		t.Errorf("observer called %d times, want 1", o.created)
	}
	if len(*panics) != 1 {
		t.Fatalf("expected one reported panic, got %d", len(*panics))
	}
	if got := (*panics)[0]; got.Op != "component.notify" || got.Value != "observer failed" {
		t.Errorf("panic = %q %v", got.Op, got.Value)
	}
}

func TestNew_CollaboratorPanicIsReported(t *testing.T) {
	isolate(t)
	panics := capturePanics(t)

	i := New(&Object{Props: msgSchema}, Data{"msg": "hi"}, WithCollaborators(Collaborators{
		InitProps: func(*Instance, Data, bool) { panic("bad props") },
	}))

	if i == nil || i.UID() == 0 {
		t.Fatal("instance should still be constructed")
	}
	if len(*panics) != 1 {
		t.Fatalf("expected one reported panic, got %d", len(*panics))
	}
	if got := (*panics)[0].Op; got != "component.InitProps" {
		t.Errorf("Op = %q, want component.InitProps", got)
	}
	if !i.PropsOptions().Declared() {
		t.Error("normalizers before the failing collaborator should have run")
	}
}

func TestEmit_CollaboratorPanicIsReported(t *testing.T) {
	isolate(t)
	panics := capturePanics(t)

	i := New(&Object{}, nil, WithCollaborators(Collaborators{
		Emit: func(*Instance, string, ...any) { panic("bad emit") },
	}))
	i.Emit("change")

	if len(*panics) != 1 || (*panics)[0].Op != "component.Emit" {
		t.Fatalf("expected component.Emit panic, got %v", *panics)
	}
}
