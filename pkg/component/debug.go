package component

// DebugMode controls instrumented behaviour: readonly-attrs warnings, emit
// validation and missing-instance warnings for hook registration.
// When false the runtime behaves identically but stays silent.
var DebugMode = true

// SetDebugMode enables or disables debug mode for the runtime.
func SetDebugMode(debug bool) {
	DebugMode = debug
}
