package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/minilang/lang"
	"github.com/ardnew/minilang/lang/ir"
	"github.com/ardnew/minilang/lang/syntax"
	"github.com/ardnew/minilang/log"
)

// Dump prints a program in the chosen representation.
type Dump struct {
	IR   IR   `cmd:"" default:"withargs" help:"Print the resolved program (default)."`
	AST  AST  `cmd:""                    help:"Print the canonical source."`
	JSON JSON `cmd:""                    help:"Print the resolved program as JSON."`
	YAML YAML `cmd:""                    help:"Print the resolved program as YAML."`
}

// IR prints the resolved program as text.
type IR struct {
	Frame int `default:"0" help:"Shift variable depths as if evaluated N frames deep." placeholder:"N"`

	Sources []string `arg:"" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the ir command.
func (d *IR) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := compileSources(ctx, d.Sources)
	if err != nil {
		return err
	}

	_, err = prog.Dump(settingsFrom(ctx).Stdout, d.Frame)

	return err
}

// AST prints the parsed program as canonical source text.
type AST struct {
	Sources []string `arg:"" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the ast command.
func (d *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)

	src, err := loadSources(ctx, d.Sources)
	if err != nil {
		return err
	}

	stmts, err := syntax.Parse(ctx, src, syntax.WithLogger(log.Default()))
	if err != nil {
		showSnippet(s.Stderr, src, err)

		return err
	}

	return syntax.Format(s.Stdout, stmts)
}

// JSON prints the resolved program as JSON.
type JSON struct {
	Frame  int `default:"0" help:"Shift variable depths as if evaluated N frames deep." placeholder:"N"`
	Indent int `default:"2" help:"Indent width for JSON output."                       short:"i"`

	Sources []string `arg:"" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the json command.
func (d *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := compileSources(ctx, d.Sources)
	if err != nil {
		return err
	}

	data, err := marshalJSON(prog.Document(d.Frame), d.Indent)
	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", "json"))
	}

	_, err = settingsFrom(ctx).Stdout.Write(append(data, '\n'))

	return err
}

// YAML prints the resolved program as YAML.
type YAML struct {
	Frame  int `default:"0" help:"Shift variable depths as if evaluated N frames deep." placeholder:"N"`
	Indent int `default:"2" help:"Indent width for YAML output."                       short:"i"`

	Sources []string `arg:"" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the yaml command.
func (d *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := compileSources(ctx, d.Sources)
	if err != nil {
		return err
	}

	data, err := yaml.MarshalContext(ctx, prog.Document(d.Frame),
		yaml.Indent(d.Indent))
	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", "yaml"))
	}

	_, err = settingsFrom(ctx).Stdout.Write(data)

	return err
}

// compileSources loads and resolves the named sources.
func compileSources(ctx context.Context, names []string) (*ir.Program, error) {
	s := settingsFrom(ctx)

	src, err := loadSources(ctx, names)
	if err != nil {
		return nil, err
	}

	prog, err := lang.Compile(ctx, src, s.langOptions()...)
	if err != nil {
		showSnippet(s.Stderr, src, err)

		return nil, err
	}

	return prog, nil
}

func marshalJSON(v any, indent int) ([]byte, error) {
	if indent <= 0 {
		return json.Marshal(v)
	}

	return json.MarshalIndent(v, "", strings.Repeat(" ", indent))
}
