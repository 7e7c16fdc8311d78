// Package version holds the application version, overridden at build time with
// -ldflags "-X github.com/ndewijer/Portfolio-Tracker/internal/version.Version=v1.2.3".
package version

// Version is the application version.
var Version = "dev"
