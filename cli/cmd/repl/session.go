package repl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/minilang/lang/eval"
	"github.com/ardnew/minilang/lang/ir"
	"github.com/ardnew/minilang/lang/syntax"
	"github.com/ardnew/minilang/log"
)

// Session holds the bindings and definitions entered so far and evaluates
// new input against them.
//
// Every input is checked by resolving and evaluating the whole session with
// the input appended; input that fails leaves the session unchanged.
type Session struct {
	stmts  []syntax.Stmt // let and def statements, in entry order
	kind   eval.Kind
	opts   []eval.Option
	logger log.Logger
}

// Result describes the effect of one accepted input.
type Result struct {
	Values  []int32  // values printed by the input
	Defined []string // names bound or defined by the input
}

// NewSession returns an empty session evaluating with the given strategy.
func NewSession(kind eval.Kind, logger log.Logger, opts ...eval.Option) *Session {
	return &Session{kind: kind, opts: opts, logger: logger}
}

// Kind returns the evaluation strategy of s.
func (s *Session) Kind() eval.Kind { return s.kind }

// SetKind changes the evaluation strategy of s.
func (s *Session) SetKind(kind eval.Kind) { s.kind = kind }

// Len returns the number of statements held by s.
func (s *Session) Len() int { return len(s.stmts) }

// Clear removes every statement from s.
func (s *Session) Clear() { s.stmts = nil }

// Exec parses one line of input and applies it to s. A line that does not
// start with let, def, or print is evaluated as a print statement.
func (s *Session) Exec(ctx context.Context, line string) (Result, error) {
	line = strings.TrimSpace(line)
	if !isStatement(line) {
		line = "print " + line
	}

	return s.apply(ctx, line, s.stmts)
}

// Load replaces the statements of s with those of src. Print statements in
// src are evaluated once and not kept.
func (s *Session) Load(ctx context.Context, src string) (Result, error) {
	return s.apply(ctx, src, nil)
}

// Source returns the statements of s as canonical source text.
func (s *Session) Source() string {
	var sb strings.Builder

	_ = syntax.Format(&sb, s.stmts)

	return sb.String()
}

// Names returns the distinct variable and function names visible at the end
// of s, in order of first appearance.
func (s *Session) Names() []string {
	var names []string

	for _, st := range s.stmts {
		name := stmtName(st)
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names
}

// Signature returns the parameters of the last function named name.
func (s *Session) Signature(name string) ([]string, bool) {
	for _, st := range slices.Backward(s.stmts) {
		if d, ok := st.(*syntax.Define); ok && d.Name == name {
			return d.Params, true
		}
	}

	return nil, false
}

// fork returns a copy of s that can be changed independently.
func (s *Session) fork() *Session {
	c := *s
	c.stmts = slices.Clone(s.stmts)

	return &c
}

// Definitions returns the statements of s.
func (s *Session) Definitions() []syntax.Stmt { return slices.Clone(s.stmts) }

// apply parses src, runs base followed by it, and on success makes base plus
// the non-print statements of src the new session.
func (s *Session) apply(ctx context.Context, src string, base []syntax.Stmt) (Result, error) {
	var res Result

	stmts, err := syntax.Parse(ctx, src, syntax.WithLogger(s.logger))
	if err != nil {
		return res, err
	}

	prog, err := ir.Resolve(ctx, append(slices.Clone(base), stmts...),
		ir.WithLogger(s.logger))
	if err != nil {
		return res, err
	}

	ev, err := eval.New(s.kind, append([]eval.Option{eval.WithLogger(s.logger)}, s.opts...)...)
	if err != nil {
		return res, err
	}

	var out eval.Collector

	if err := ev.Evaluate(ctx, prog, &out); err != nil {
		return res, err
	}

	next := slices.Clone(base)

	for _, st := range stmts {
		if _, ok := st.(*syntax.Print); ok {
			continue
		}

		next = append(next, st)
		res.Defined = append(res.Defined, stmtName(st))
	}

	s.stmts = next
	res.Values = out.Values

	s.logger.TraceContext(ctx, "session update",
		slog.Int("stmt_count", len(s.stmts)),
		slog.Int("value_count", len(res.Values)),
	)

	return res, nil
}

// isStatement reports whether line starts with a statement keyword.
func isStatement(line string) bool {
	word, _, _ := strings.Cut(line, " ")
	word, _, _ = strings.Cut(word, "\t")

	switch word {
	case "let", "def", "print":
		return true
	}

	return false
}

func stmtName(st syntax.Stmt) string {
	switch st := st.(type) {
	case *syntax.Binding:
		return st.Name
	case *syntax.Define:
		return st.Name
	default:
		return ""
	}
}
