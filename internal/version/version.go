// Package version exposes the build version of the application.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/Tafita-R/Examen-Web2/internal/version.Version=v1.2.3".
var Version = "dev"
