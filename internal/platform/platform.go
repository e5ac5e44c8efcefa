package platform

import "runtime"

// GraphSupported reports whether the embedded graph engine can run on the
// current platform. The engine is a Unix-only key-value store module;
// Windows builds ship without it and graph-backed features degrade.
func GraphSupported() bool {
	return GraphSupportedOn(runtime.GOOS)
}

// GraphSupportedOn is the capability check for an explicit GOOS value.
// Kept as a runtime check (instead of build tags) so every branch of the
// startup sequence is exercisable in a single build.
func GraphSupportedOn(goos string) bool {
	return goos != "windows"
}
