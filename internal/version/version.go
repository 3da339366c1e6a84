// Package version holds the single build version string shared by the CLI
// and the HTTP API.
package version

// Version is set at build time via -ldflags.
var Version = "1.0.0"
