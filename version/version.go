// Package version carries the build version, set with
// -ldflags "-X github.com/ormenio/engine/version.Version=..."
package version

// Version of the engine binaries.
var Version = "dev"
