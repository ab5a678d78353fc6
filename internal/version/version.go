// Package version carries the service version string reported by the API.
package version

// Version is the reported service version. Overridable at build time:
//
//	go build -ldflags "-X chatbackend/internal/version.Version=1.2.3"
var Version = "1.0.0" //nolint: gochecknoglobals
