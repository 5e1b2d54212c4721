// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time with functional options and are
// immutable afterwards; [Logger.Wrap] and [Logger.With] derive new loggers.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
//	logger.Info("program loaded", slog.Int("vars", 3))
//
// Attributes are [slog.Attr] values only; there is no alternating key/value
// form.
//
// # Levels
//
// In addition to the four [slog] levels the package defines [LevelTrace],
// which the evaluator uses for per-run diagnostics.
//
// # Zero Value
//
// The zero [Logger] discards every message. Library packages accept a Logger
// through an option and log unconditionally.
//
// # Package Logger
//
// The package-level functions ([Info], [ErrorContext], ...) write through a
// default logger that the CLI reconfigures with [Config] while parsing flags.
// Context-unaware functions use [DefaultContextProvider].
package log
