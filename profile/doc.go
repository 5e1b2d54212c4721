// Package profile provides optional runtime profiling for minilang.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only when
// building with the pprof tag:
//
//	go build -tags pprof .
//
// Without the tag, [Profiler.Start] always returns a no-op and [Modes]
// returns nothing, so callers need no conditional code.
//
// With the tag, a profile of the selected mode is written to the configured
// directory when the returned value is stopped:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/minilang"}
//	defer p.Start().Stop()
//
// Analyze the result with go tool pprof:
//
//	go tool pprof -http=: /tmp/minilang/cpu.pprof
//
// Builds with the tag also register the net/http/pprof handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
