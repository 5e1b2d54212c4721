package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/minilang/lang"
	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Settings holds the global options shared by every command.
type Settings struct {
	Path     []string  // directories searched for named sources
	MaxDepth int       // call depth limit; zero selects the default
	Stdin    io.Reader // nil selects os.Stdin
	Stdout   io.Writer // nil selects os.Stdout
	Stderr   io.Writer // nil selects os.Stderr
}

type settingsKey struct{}

// WithSettings returns a new context.Context containing s.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)

	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}

	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}

	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}

	return s
}

// langOptions returns the compile and evaluation options implied by s.
func (s Settings) langOptions() []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithEvalOptions(eval.WithMaxCallDepth(s.MaxDepth)),
	}
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// loadSources reads and concatenates the named sources, one after another
// with a line break between them.
//
// Names that are not existing files are looked up in the search path of the
// settings in ctx. Files reached through several names (symlinks, relative
// and absolute paths) are read once. All occurrences of "-" are replaced with
// a single read of stdin placed last. No names reads stdin alone.
func loadSources(ctx context.Context, names []string) (string, error) {
	s := settingsFrom(ctx)

	if len(names) == 0 {
		names = []string{stdinSource}
	}

	paths, hasStdin, err := uniqueSources(names, s.Path)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(paths)+1)

	for _, p := range paths {
		src, err := lang.ReadFile(p)
		if err != nil {
			return "", err
		}

		parts = append(parts, src)
	}

	if hasStdin {
		src, err := lang.ReadSource(s.Stdin)
		if err != nil {
			return "", err
		}

		parts = append(parts, src)
	}

	var sb strings.Builder

	for _, p := range parts {
		sb.WriteString(p)

		if p != "" && !strings.HasSuffix(p, "\n") {
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}

// uniqueSources resolves names to file paths in order, dropping duplicates
// and reporting whether stdin was requested.
func uniqueSources(names, dirs []string) (paths []string, stdin bool, err error) {
	seen := make(map[fileKey]struct{})

	for _, name := range names {
		if name == stdinSource {
			stdin = true

			continue
		}

		path, err := lang.Lookup(name, dirs...)
		if err != nil {
			return nil, false, err
		}

		resolved, key, ok := identify(path)
		if !ok {
			paths = append(paths, path)

			continue
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		paths = append(paths, resolved)
	}

	return paths, stdin, nil
}

// identify resolves symlinks in path and returns the target with its
// device/inode key.
func identify(path string) (string, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fileKey{}, false
	}

	key, ok := makeFileKey(info)

	return resolved, key, ok
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}
