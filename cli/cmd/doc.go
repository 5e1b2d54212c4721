// Package cmd implements the subcommands of the minilang command line:
// run, check, dump, repl, init, and version.
//
// Commands read the global settings and the parsed [kong.Context] from the
// [context.Context] they are run with (see [WithSettings] and
// [WithContext]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
