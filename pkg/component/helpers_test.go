package component

import (
	"testing"

	"go.uber.org/zap"
	zapobserver "go.uber.org/zap/zaptest/observer"

	"github.com/go-drift/vapor/pkg/errors"
)

// warnings collects diagnostics sent to an instance's sink.
type warnings struct {
	messages []string
}

func (w *warnings) sink() Option {
	return WithCollaborators(Collaborators{
		Warn: func(msg string) { w.messages = append(w.messages, msg) },
	})
}

// isolate resets package-level state before and after a test.
func isolate(t *testing.T) {
	t.Helper()
	UnsetCurrent()
	SetDebugMode(true)
	t.Cleanup(func() {
		UnsetCurrent()
		SetDebugMode(true)
		SetObserver(nil)
		SetLogger(nil)
		SetWarnHandler(nil)
	})
}

// observeLogs routes the package logger to an in-memory core.
func observeLogs(t *testing.T) *zapobserver.ObservedLogs {
	t.Helper()
	core, logs := zapobserver.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

// captureHookErrors installs an error handler recording hook errors.
func captureHookErrors(t *testing.T) *[]*errors.HookError {
	t.Helper()
	var captured []*errors.HookError
	old := errors.DefaultHandler
	errors.SetHandler(&hookErrorHandler{onHookError: func(err *errors.HookError) {
		captured = append(captured, err)
	}})
	t.Cleanup(func() { errors.SetHandler(old) })
	return &captured
}

// capturePanics installs an error handler recording recovered panics.
func capturePanics(t *testing.T) *[]*errors.PanicError {
	t.Helper()
	var captured []*errors.PanicError
	old := errors.DefaultHandler
	errors.SetHandler(&hookErrorHandler{onPanic: func(err *errors.PanicError) {
		captured = append(captured, err)
	}})
	t.Cleanup(func() { errors.SetHandler(old) })
	return &captured
}

type hookErrorHandler struct {
	onHookError func(*errors.HookError)
	onPanic     func(*errors.PanicError)
}

func (h *hookErrorHandler) HandleError(*errors.VaporError) {}

func (h *hookErrorHandler) HandlePanic(err *errors.PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *hookErrorHandler) HandleHookError(err *errors.HookError) {
	if h.onHookError != nil {
		h.onHookError(err)
	}
}

var msgSchema = []Prop{{Name: "msg"}}
