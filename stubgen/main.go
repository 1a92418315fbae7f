// stubgen generates behaviorless stubs of Go interfaces, registered as impersonate
// factories so the interface can be synthesized by an Impersonator.
// Install it with `go install github.com/toejough/impersonate/stubgen@latest` and add
// `//go:generate stubgen <Interface>` in the package that declares the interface.
// The stub is named <Interface>Stub unless `--name` is given, and is written to
// generated_<name>.go (generated_<name>_test.go when invoked from a test file).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toejough/impersonate/stubgen/run"
)

// main is the entry point of the stubgen tool.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg run.Config

	cmd := &cobra.Command{
		Use:           "stubgen <Interface>",
		Short:         "Generate a behaviorless stub and impersonate factory for an interface",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Interface = args[0]

			return run.Run(cfg, os.Getenv, &realFileSystem{}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cfg.Name, "name", "", "name for the generated stub (defaults to <Interface>Stub)")
	cmd.Flags().StringVar(&cfg.Dir, "dir", ".", "directory of the package declaring the interface")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "fail if the generated file is out of date instead of writing it")

	return cmd
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
