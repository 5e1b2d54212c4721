// Package cli contains the command line interface for minilang.
//
// # Usage
//
//	minilang [flags] [run] [source ...]
//	minilang check [-x EXPR ...] [source ...]
//	minilang dump [ir|ast|json|yaml] [source ...]
//	minilang repl [source ...]
//	minilang init [--force]
//	minilang version
//
// A source is a file path, a name found in the directories given with -I or
// listed in $MINILANG_PATH (".mini" is appended when the name has no
// extension), or "-" for stdin. Without sources, stdin is read.
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the user
// configuration directory (for example ~/.config/minilang). The init command
// writes config.yaml from the current flag values. Keys use the long flag
// names, with hyphens or underscores:
//
//	log-level: debug
//	max_depth: 4096
//	path:
//	  - ~/lib/minilang
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o minilang .
//
// The --pprof-mode flag selects the profile (allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, trace) and --pprof-dir the output
// directory (default ~/.cache/minilang/pprof).
//
// # Examples
//
//	# Evaluate lazily with trace logging
//	minilang --log-level=trace run --lazy prog.mini
//
//	# Verify both evaluators print 120
//	minilang check -x 'out == [120]' fact.mini
//
//	# CPU profile of a long evaluation
//	minilang --pprof-mode=cpu tarai.mini
package cli
