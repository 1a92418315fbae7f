package run

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"
	"text/template"
)

// unexported constants.
const (
	impersonateImportPath = "github.com/toejough/impersonate"
)

// unexported variables.
var (
	errNameClash = errors.New("name clash")
	//nolint:gochecknoglobals // Template is a hardcoded constant; parsing cannot fail at runtime
	stubTmpl = template.Must(template.New("stub").Parse(`// Code generated by stubgen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)

// {{.StubName}} is a behaviorless {{.Iface}}: every method returns zero values.
type {{.StubName}} struct{}

// New{{.StubName}} creates a {{.StubName}}.
func New{{.StubName}}() *{{.StubName}} {
	return &{{.StubName}}{}
}

// Register{{.StubName}} makes f synthesize {{.Iface}} as a {{.StubName}}.
func Register{{.StubName}}(f *impersonate.Factories) {
	impersonate.RegisterFactory(f, func() {{.Iface}} { return New{{.StubName}}() })
}

// Impersonates reports the interface {{.StubName}} stands in for.
func (*{{.StubName}}) Impersonates() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[{{.Iface}}]()}
}
{{range .Methods}}
func (*{{$.StubName}}) {{.Name}}({{.Params}}) {{.Results}} {
{{- range .ZeroVars}}
	var {{.}}
{{- end}}
	return {{.Returns}}
}
{{end}}
var _ {{.Iface}} = (*{{.StubName}})(nil)
`))
)

type stubData struct {
	PkgName  string
	StubName string
	Iface    string
	Imports  []string
	Methods  []stubMethod
}

type stubMethod struct {
	Name     string
	Params   string
	Results  string
	ZeroVars []string
	Returns  string
}

// generateStub renders and gofmts the stub source for iface.
func generateStub(iface stubbedInterface, pkgName, stubName string) (string, error) {
	data := stubData{
		PkgName:  pkgName,
		StubName: stubName,
		Iface:    iface.Name,
	}

	imports, err := importLines(iface.Imports)
	if err != nil {
		return "", err
	}

	data.Imports = imports

	for _, m := range iface.Methods {
		if m.Name == "Impersonates" {
			return "", fmt.Errorf("%w: %s already has a method named Impersonates", errNameClash, iface.Name)
		}

		data.Methods = append(data.Methods, stubMethodFor(m))
	}

	var buf bytes.Buffer

	err = stubTmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to render stub: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to format stub: %w", err)
	}

	return string(formatted), nil
}

// importLines returns sorted import lines, aliasing only where the identifier differs
// from the package's default name.
func importLines(used map[string]string) ([]string, error) {
	reserved := map[string]string{
		"reflect":     "reflect",
		"impersonate": impersonateImportPath,
	}

	lines := []string{strconv.Quote("reflect"), strconv.Quote(impersonateImportPath)}

	for ident, importPath := range used {
		if reservedPath, ok := reserved[ident]; ok {
			if reservedPath != importPath {
				return nil, fmt.Errorf("%w: package identifier %q is needed for %s", errNameClash, ident, reservedPath)
			}

			continue
		}

		line := strconv.Quote(importPath)
		if importName(importPath) != ident {
			line = ident + " " + line
		}

		lines = append(lines, line)
	}

	slices.Sort(lines)

	return lines, nil
}

func stubMethodFor(m method) stubMethod {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, "_ "+p)
	}

	zeroVars := make([]string, 0, len(m.Results))
	names := make([]string, 0, len(m.Results))

	for i, r := range m.Results {
		name := "r" + strconv.Itoa(i)
		zeroVars = append(zeroVars, name+" "+r)
		names = append(names, name)
	}

	return stubMethod{
		Name:     m.Name,
		Params:   strings.Join(params, ", "),
		Results:  resultList(m.Results),
		ZeroVars: zeroVars,
		Returns:  strings.Join(names, ", "),
	}
}
