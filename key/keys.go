// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 8

// Source Resolution - these keys configure the remote endpoint that turns page URLs into playable sources.
const (
	ResolverEndpoint      = "resolver.endpoint"
	ResolverRememberPages = "resolver.remember_pages"
)

// Stream References - these keys select among the built-in live camera feeds.
const (
	StreamsDefault = "streams.default"
)

const (
	OpenApp = "open.app"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the command-line behavior.
const (
	CliColored = "cli.colored"
)
