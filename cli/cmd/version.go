package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/minilang/pkg"
)

// Version prints the version of the program.
type Version struct{}

// Run executes the version command.
func (*Version) Run(ctx context.Context) error {
	_, err := fmt.Fprintln(settingsFrom(ctx).Stdout, pkg.Name, pkg.Version)

	return err
}
