// Package run implements the main logic for the stubgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
)

// Config holds the resolved command-line options.
type Config struct {
	// Interface is the name of the interface to stub.
	Interface string
	// Name of the generated stub type. Defaults to <Interface>Stub.
	Name string
	// Dir is the package directory. Defaults to the working directory.
	Dir string
	// Check reports drift instead of writing.
	Check bool
}

// FileSystem interface for mocking.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// ErrOutOfDate is returned by a Check run when the file on disk differs.
var ErrOutOfDate = errors.New("generated stub is out of date")

// Run generates a stub for cfg.Interface in the package go generate is running for.
// GOPACKAGE and GOFILE are read through getEnv, as set by go generate.
func Run(cfg Config, getEnv func(string) string, fileSys FileSystem, out io.Writer) error {
	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return errNoGoPackage
	}

	if strings.HasSuffix(pkgName, "_test") {
		return fmt.Errorf("%w: %s", errBlackBoxPackage, pkgName)
	}

	if cfg.Name == "" {
		cfg.Name = cfg.Interface + "Stub"
	}

	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	files, err := PackageDST(cfg.Dir, pkgName)
	if err != nil {
		return err
	}

	iface, err := findInterface(files, cfg.Interface)
	if err != nil {
		return err
	}

	code, err := generateStub(iface, pkgName, cfg.Name)
	if err != nil {
		return err
	}

	// Reorder declarations according to project conventions
	reordered, err := reorder.Source(code)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", cfg.Name, err)

		reordered = code
	}

	filename := filepath.Join(cfg.Dir, outputFilename(cfg.Name, getEnv("GOFILE")))

	if cfg.Check {
		return checkDrift(filename, reordered, fileSys, out)
	}

	const generatedFilePermissions = 0o600

	err = fileSys.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

// unexported variables.
var (
	errBlackBoxPackage = errors.New("black-box test packages are not supported; generate from the package under test")
	errNoGoPackage     = errors.New("GOPACKAGE is not set; run stubgen through go generate")
)

func checkDrift(filename, want string, fileSys FileSystem, out io.Writer) error {
	current, err := fileSys.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfDate, err)
	}

	if string(current) == want {
		_, _ = fmt.Fprintf(out, "%s is up to date.\n", filename)

		return nil
	}

	diff := textdiff.Unified(filename+" (current)", filename+" (generated)", string(current), want)
	_, _ = fmt.Fprintf(out, "%s\n", diff)

	return fmt.Errorf("%w: %s", ErrOutOfDate, filename)
}

// outputFilename names the generated file, keeping stubs out of non-test builds when
// go generate was invoked from a test file.
func outputFilename(stubName, goFile string) string {
	if strings.HasSuffix(goFile, "_test.go") {
		return generatedPrefix + stubName + "_test.go"
	}

	return generatedPrefix + stubName + ".go"
}
