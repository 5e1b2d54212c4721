package lang

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/mung"
	"github.com/klauspost/readahead"
	"github.com/xyproto/env/v2"
)

// PathEnv names the environment variable listing directories searched by
// [Lookup].
const PathEnv = "MINILANG_PATH"

// Ext is the file extension tried by [Lookup] when a name has none.
const Ext = ".mini"

// ReadSource reads all of r as source text.
func ReadSource(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadSource.Wrap(err)
	}

	return string(data), nil
}

// ReadFile reads the source file at path.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ErrReadSource.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	return ReadSource(f)
}

// SearchPath returns the directories searched by [Lookup]: dirs, followed by
// the entries of $MINILANG_PATH.
func SearchPath(dirs ...string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(env.Str(PathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	var list []string

	for _, d := range filepath.SplitList(joined) {
		if d != "" {
			list = append(list, d)
		}
	}

	return list
}

// Lookup resolves name to a source file. A name that is an existing file is
// returned unchanged. Otherwise each directory of [SearchPath] is tried in
// order, first with name as given and then with [Ext] appended if name has no
// extension.
func Lookup(name string, dirs ...string) (string, error) {
	if isFile(name) {
		return name, nil
	}

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+Ext)
	}

	if !filepath.IsAbs(name) {
		for _, dir := range SearchPath(dirs...) {
			for _, c := range candidates {
				if p := filepath.Join(dir, c); isFile(p) {
					return p, nil
				}
			}
		}
	}

	return "", ErrSourceNotFound.With(slog.String("name", name))
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
