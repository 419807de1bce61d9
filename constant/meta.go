// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

import _ "embed"

const (
	// Beachcam is the canonical application identifier used for filesystem paths and CLI branding.
	Beachcam = "beachcam"

	// Version is the current application semantic version string.
	Version = "1.0.0"

	// UserAgent is the HTTP User-Agent sent to the resolution endpoint.
	UserAgent = Beachcam + "/" + Version
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Values of runtime.GOOS the opener branches on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)

//go:embed ascii.txt
var AsciiArtLogo string
