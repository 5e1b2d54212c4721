package syntax

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/minilang/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrParse        = pkg.NewError("parse error")
	ErrUnexpected   = ErrParse.Sub("unexpected input")
	ErrLiteralRange = ErrParse.Sub("integer literal out of range")
	ErrReadInput    = pkg.NewError("failed to read input")
)

// Position returns the source position recorded by the outermost error in
// the chain of err that carries one.
func Position(err error) (Pos, bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		e, ok := err.(*pkg.Error)
		if !ok {
			continue
		}

		line, okl := e.Attr("line")
		col, okc := e.Attr("col")

		if okl && okc {
			return Pos{Line: int(line.Int64()), Col: int(col.Int64())}, true
		}
	}

	return Pos{}, false
}

// Snippet renders the source line at the position recorded in err with a
// caret under the offending column:
//
//	  2 | let x = 3 +
//	    |            ^
//
// It returns "" if err carries no position within src.
func Snippet(src string, err error) string {
	pos, ok := Position(err)
	if !ok {
		return ""
	}

	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}

	num := strconv.Itoa(pos.Line)
	pad := strings.Repeat(" ", len(num))
	line := strings.TrimRight(lines[pos.Line-1], "\r")

	var sb strings.Builder

	sb.WriteString("  " + num + " | " + line + "\n")
	sb.WriteString("  " + pad + " | ")

	// Keep tabs so the caret lines up with the source.
	col := 1
	for _, r := range line {
		if col >= pos.Col {
			break
		}

		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}

		col++
	}

	sb.WriteString("^\n")

	return sb.String()
}

func posAttrs(p Pos) []slog.Attr {
	return []slog.Attr{slog.Int("line", p.Line), slog.Int("col", p.Col)}
}
