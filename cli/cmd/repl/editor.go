package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/ardnew/minilang/lang"
	"github.com/ardnew/minilang/lang/syntax"
	"github.com/ardnew/minilang/log"
)

const defaultEditor = "vi"

// editSessionCommand implements [tea.ExecCommand] for the edit-load-retry
// loop. It writes the session source to a temp file, opens the user's
// editor, and loads the result into a copy of the session. On error the user
// is prompted to re-edit; declining exits the program.
type editSessionCommand struct {
	session *Session
	ctxFunc func() context.Context
	edited  *Session // nil if the edit was cancelled
	result  Result
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editSessionCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editSessionCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editSessionCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-load-retry loop. If the user declines to re-edit, it
// returns [ErrEditDeclined].
func (c *editSessionCommand) Run() error {
	ctx := c.ctxFunc()
	content := c.session.Source()

	f, err := os.CreateTemp(os.TempDir(), "minilang-repl-*"+lang.Ext)
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		data, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		// An emptied file cancels the edit.
		if strings.TrimSpace(data) == "" {
			return nil
		}

		trial := c.session.fork()

		res, loadErr := trial.Load(ctx, data)
		c.logger.TraceContext(
			ctx,
			"editor load attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", loadErr == nil),
		)

		if loadErr == nil {
			c.edited, c.result = trial, res

			return nil
		}

		fmt.Fprintf(c.stderr, "\nerror: %s\n%s", loadErr, syntax.Snippet(data, loadErr))
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		content = data
	}
}

// runEditor launches the user's editor on the given file path and returns
// the edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) (string, error) {
	editor := env.Str("VISUAL", env.Str("EDITOR", defaultEditor))

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return lang.ReadFile(path)
}
