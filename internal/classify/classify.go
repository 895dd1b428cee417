package classify

import (
	"errors"
	"fmt"
	"go/ast"

	"derive-generator/internal/schema"
)

// WrapperName is the reserved name of the optional wrapper type.
const WrapperName = "Optional"

// ErrUnsupportedTypeShape matches every *UnsupportedTypeShapeError via errors.Is.
var ErrUnsupportedTypeShape = errors.New("unsupported type shape")

// UnsupportedTypeShapeError reports a field whose type is not a plain named
// type path, or a record shape the generators cannot handle.
type UnsupportedTypeShapeError struct {
	Record string // Record type name, empty if unknown
	Field  string // Field name, empty for record-level shapes
	Type   string // Offending type expression
	Reason string
}

func (e *UnsupportedTypeShapeError) Error() string {
	where := e.Record
	if e.Field != "" {
		if where != "" {
			where += "."
		}

		where += e.Field
	}

	msg := e.Reason
	if e.Type != "" {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Reason)
	}

	if where == "" {
		return "unsupported type shape: " + msg
	}

	return fmt.Sprintf("%s: unsupported type shape: %s", where, msg)
}

// Is reports whether target is ErrUnsupportedTypeShape.
func (e *UnsupportedTypeShapeError) Is(target error) bool {
	return target == ErrUnsupportedTypeShape
}

// Classify builds the descriptor of a single field.
func Classify(name string, declared schema.TypeExpr) (schema.FieldDescriptor, error) {
	fd := schema.FieldDescriptor{
		Name:         name,
		DeclaredType: declared,
	}

	qualifier, ident, args, ok := namedPath(declared.Expr)
	if !ok {
		return schema.FieldDescriptor{}, &UnsupportedTypeShapeError{
			Field:  name,
			Type:   declared.String(),
			Reason: describe(declared.Expr) + " is not a named type",
		}
	}

	if ident != WrapperName {
		return fd, nil
	}

	if len(args) == 0 {
		return schema.FieldDescriptor{}, &UnsupportedTypeShapeError{
			Field:  name,
			Type:   declared.String(),
			Reason: WrapperName + " without a type argument",
		}
	}

	fd.IsOptional = true
	fd.InnerType = schema.TypeExpr{Expr: args[0]}
	fd.WrapperQualifier = qualifier

	return fd, nil
}

// ClassifyRecord classifies every field of s and returns an annotated copy.
// The first failing field aborts the whole record.
func ClassifyRecord(s schema.RecordSchema) (schema.RecordSchema, error) {
	if err := s.Validate(); err != nil {
		return schema.RecordSchema{}, err
	}

	out := s
	out.Fields = make([]schema.FieldDescriptor, 0, len(s.Fields))

	for _, f := range s.Fields {
		fd, err := Classify(f.Name, f.DeclaredType)
		if err != nil {
			var shapeErr *UnsupportedTypeShapeError
			if errors.As(err, &shapeErr) {
				shapeErr.Record = s.TypeName
			}

			return schema.RecordSchema{}, err
		}

		out.Fields = append(out.Fields, fd)
	}

	return out, nil
}

// namedPath matches Name, pkg.Name and their instantiations.
func namedPath(expr ast.Expr) (qualifier, ident string, args []ast.Expr, ok bool) {
	switch e := expr.(type) {
	case *ast.IndexExpr:
		args = []ast.Expr{e.Index}
		expr = e.X
	case *ast.IndexListExpr:
		args = e.Indices
		expr = e.X
	}

	switch e := expr.(type) {
	case *ast.Ident:
		return "", e.Name, args, true
	case *ast.SelectorExpr:
		pkg, isIdent := e.X.(*ast.Ident)
		if !isIdent {
			return "", "", nil, false
		}

		return pkg.Name, e.Sel.Name, args, true
	default:
		return "", "", nil, false
	}
}

func describe(expr ast.Expr) string {
	switch expr.(type) {
	case nil:
		return "missing type"
	case *ast.StarExpr:
		return "pointer type"
	case *ast.ArrayType:
		return "array or slice type"
	case *ast.MapType:
		return "map type"
	case *ast.ChanType:
		return "channel type"
	case *ast.FuncType:
		return "function type"
	case *ast.StructType:
		return "struct literal type"
	case *ast.InterfaceType:
		return "interface literal type"
	case *ast.ParenExpr:
		return "parenthesized type"
	case *ast.Ellipsis:
		return "variadic type"
	default:
		return "type expression"
	}
}
