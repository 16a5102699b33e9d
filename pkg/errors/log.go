package errors

import (
	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that writes errors through a zap logger.
type LogHandler struct {
	// Logger receives the entries. A nil Logger uses zap.L().
	Logger *zap.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.L()
}

// HandleError logs a VaporError.
func (h *LogHandler) HandleError(err *VaporError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Uint64("instance", err.Instance),
		zap.Error(err.Err),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("vapor error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{zap.String("op", err.Op), zap.Any("value", err.Value)}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("vapor panic", fields...)
}

// HandleHookError logs a HookError.
func (h *LogHandler) HandleHookError(err *HookError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.Stringer("kind", err.Kind),
		zap.Uint64("instance", err.Instance),
		zap.String("component", err.Component),
		zap.String("info", err.Info),
	}
	if err.Recovered != nil {
		fields = append(fields, zap.Any("recovered", err.Recovered))
	}
	if err.Err != nil {
		fields = append(fields, zap.Error(err.Err))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("unhandled error in component code", fields...)
}
