package run

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// expandFieldList renders a field list as one type string per declared name.
// For fields with multiple names (e.g., "a, b int"), outputs the type once per name.
func expandFieldList(list *dst.FieldList) []string {
	if list == nil {
		return nil
	}

	var parts []string

	for _, f := range list.List {
		typeStr := stringifyExpr(f.Type)

		count := len(f.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// stringifyExpr converts a type expression back to Go source.
//
//nolint:cyclop // Type-switch dispatcher handling all type expression kinds
func stringifyExpr(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		return typedExpr.Name
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		return stringifyExpr(typedExpr.X) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + stringifyExpr(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + stringifyExpr(typedExpr.Len) + "]" + stringifyExpr(typedExpr.Elt)
		}

		return "[]" + stringifyExpr(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + stringifyExpr(typedExpr.Key) + "]" + stringifyExpr(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + stringifyExpr(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + stringifyExpr(typedExpr.Value)
		default:
			return "chan " + stringifyExpr(typedExpr.Value)
		}
	case *dst.InterfaceType:
		if typedExpr.Methods == nil || len(typedExpr.Methods.List) == 0 {
			return "interface{}"
		}

		return "interface{ " + strings.Join(stringifyMethods(typedExpr.Methods), "; ") + " }"
	case *dst.StructType:
		return stringifyStructType(typedExpr)
	case *dst.FuncType:
		return "func" + signature(typedExpr)
	case *dst.Ellipsis:
		return "..." + stringifyExpr(typedExpr.Elt)
	case *dst.IndexExpr:
		return stringifyExpr(typedExpr.X) + "[" + stringifyExpr(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			indices[i] = stringifyExpr(idx)
		}

		return stringifyExpr(typedExpr.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + stringifyExpr(typedExpr.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// resultList renders result types the way they appear after a parameter list.
func resultList(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return results[0]
	default:
		return "(" + strings.Join(results, ", ") + ")"
	}
}

// signature renders "(params) results" for a func type.
func signature(funcType *dst.FuncType) string {
	sig := "(" + strings.Join(expandFieldList(funcType.Params), ", ") + ")"

	if results := resultList(expandFieldList(funcType.Results)); results != "" {
		sig += " " + results
	}

	return sig
}

func stringifyMethods(methods *dst.FieldList) []string {
	parts := make([]string, 0, len(methods.List))

	for _, method := range methods.List {
		funcType, ok := method.Type.(*dst.FuncType)
		if !ok || len(method.Names) == 0 {
			parts = append(parts, stringifyExpr(method.Type))

			continue
		}

		parts = append(parts, method.Names[0].Name+signature(funcType))
	}

	return parts
}

func stringifyStructType(structType *dst.StructType) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var fieldStr strings.Builder

		if len(field.Names) > 0 {
			nameStrs := make([]string, len(field.Names))
			for i, name := range field.Names {
				nameStrs[i] = name.Name
			}

			fieldStr.WriteString(strings.Join(nameStrs, ", "))
			fieldStr.WriteString(" ")
		}

		fieldStr.WriteString(stringifyExpr(field.Type))

		if field.Tag != nil {
			fieldStr.WriteString(" ")
			fieldStr.WriteString(field.Tag.Value)
		}

		fields = append(fields, fieldStr.String())
	}

	return "struct{ " + strings.Join(fields, "; ") + " }"
}
