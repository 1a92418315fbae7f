package run

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/dave/dst"
)

// method is one method of the stubbed interface, already rendered as source.
type method struct {
	Name    string
	Params  []string
	Results []string
}

// stubbedInterface is everything the generator needs about the interface.
type stubbedInterface struct {
	Name    string
	Methods []method
	// Imports maps each package identifier used in method signatures to its import path.
	Imports map[string]string
}

// unexported variables.
var (
	errEmbeddedForeign = errors.New("embedded interfaces from other packages are not supported")
	errGeneric         = errors.New("generic interfaces are not supported")
	errInterfaceNotFnd = errors.New("interface not found")
	errNotInterface    = errors.New("not an interface")
	errUnknownImport   = errors.New("unknown package identifier")
	//nolint:gochecknoglobals // compiled once
	majorVersionSuffix = regexp.MustCompile(`^v[0-9]+$`)
)

// declaration is a type spec together with the file that declares it.
type declaration struct {
	spec *dst.TypeSpec
	file *dst.File
}

// findInterface locates name among files and flattens its method set, expanding
// interfaces embedded from the same package.
func findInterface(files []*dst.File, name string) (stubbedInterface, error) {
	decls := typeDeclarations(files)

	result := stubbedInterface{Name: name, Imports: map[string]string{}}
	seen := map[string]bool{}

	err := collectMethods(decls, name, &result, seen)
	if err != nil {
		return stubbedInterface{}, err
	}

	return result, nil
}

func collectMethods(
	decls map[string]declaration,
	name string,
	result *stubbedInterface,
	seen map[string]bool,
) error {
	if seen[name] {
		return nil
	}

	seen[name] = true

	decl, ok := decls[name]
	if !ok {
		return fmt.Errorf("%w: %s", errInterfaceNotFnd, name)
	}

	if decl.spec.TypeParams != nil && len(decl.spec.TypeParams.List) > 0 {
		return fmt.Errorf("%w: %s", errGeneric, name)
	}

	iface, ok := decl.spec.Type.(*dst.InterfaceType)
	if !ok {
		return fmt.Errorf("%w: %s", errNotInterface, name)
	}

	if iface.Methods == nil {
		return nil
	}

	for _, field := range iface.Methods.List {
		switch fieldType := field.Type.(type) {
		case *dst.FuncType:
			err := recordImports(decl.file, fieldType, result.Imports)
			if err != nil {
				return err
			}

			for _, methodName := range field.Names {
				result.Methods = append(result.Methods, method{
					Name:    methodName.Name,
					Params:  expandFieldList(fieldType.Params),
					Results: expandFieldList(fieldType.Results),
				})
			}
		case *dst.Ident:
			if fieldType.Name == "error" {
				result.Methods = append(result.Methods, method{Name: "Error", Results: []string{"string"}})

				continue
			}

			err := collectMethods(decls, fieldType.Name, result, seen)
			if err != nil {
				return fmt.Errorf("embedded in %s: %w", name, err)
			}
		default:
			return fmt.Errorf("%w: %s embeds %s", errEmbeddedForeign, name, stringifyExpr(field.Type))
		}
	}

	return nil
}

// importName returns the identifier a package is referred to by when imported
// without an alias, skipping major version suffixes like /v2.
func importName(importPath string) string {
	base := path.Base(importPath)
	if majorVersionSuffix.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}

	return strings.ReplaceAll(base, "-", "_")
}

// recordImports resolves every package qualifier in funcType against file's imports.
func recordImports(file *dst.File, funcType *dst.FuncType, imports map[string]string) error {
	var missing []string

	dst.Inspect(funcType, func(node dst.Node) bool {
		selector, ok := node.(*dst.SelectorExpr)
		if !ok {
			return true
		}

		ident, ok := selector.X.(*dst.Ident)
		if !ok {
			return true
		}

		importPath, found := resolveImport(file, ident.Name)
		if !found {
			missing = append(missing, ident.Name)

			return false
		}

		imports[ident.Name] = importPath

		return false
	})

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", errUnknownImport, strings.Join(missing, ", "))
	}

	return nil
}

func resolveImport(file *dst.File, ident string) (string, bool) {
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		name := importName(importPath)
		if spec.Name != nil {
			name = spec.Name.Name
		}

		if name == ident {
			return importPath, true
		}
	}

	return "", false
}

func typeDeclarations(files []*dst.File) map[string]declaration {
	decls := map[string]declaration{}

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok {
					continue
				}

				decls[typeSpec.Name.Name] = declaration{spec: typeSpec, file: file}
			}
		}
	}

	return decls
}
