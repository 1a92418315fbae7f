package run

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// PackageDST parses the files of package pkgName found in dir.
// Test files are included so interfaces declared for white-box tests can be stubbed.
// Files that fail to parse, or that belong to another package, are skipped.
func PackageDST(dir, pkgName string) ([]*dst.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasPrefix(name, generatedPrefix) {
			continue
		}

		file, err := dec.ParseFile(filepath.Join(dir, name), nil, 0)
		if err != nil {
			continue
		}

		if file.Name.Name != pkgName {
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no parsable files for package %q in %s", errNoPackagesFound, pkgName, dir)
	}

	return files, nil
}

// unexported constants.
const (
	generatedPrefix = "generated_"
)

// unexported variables.
var (
	errNoPackagesFound = errors.New("no packages found")
)
