package schema

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
)

// ErrDuplicateField is returned by Validate when two fields share a name.
var ErrDuplicateField = errors.New("duplicate field name")

// TypeExpr is a Go type expression as written in the source.
type TypeExpr struct {
	Expr ast.Expr
}

// ParseType parses a type expression such as "derive.Optional[int]".
func ParseType(src string) (TypeExpr, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return TypeExpr{}, fmt.Errorf("parsing type %q: %w", src, err)
	}

	return TypeExpr{Expr: expr}, nil
}

// MustParseType is like ParseType but panics on error. Intended for tests
// and statically known types.
func MustParseType(src string) TypeExpr {
	t, err := ParseType(src)
	if err != nil {
		panic(err)
	}

	return t
}

// IsZero reports whether the expression is unset.
func (t TypeExpr) IsZero() bool {
	return t.Expr == nil
}

// String returns the canonical source text of the expression.
func (t TypeExpr) String() string {
	if t.Expr == nil {
		return ""
	}

	return types.ExprString(t.Expr)
}

// Qualifiers returns the package qualifiers referenced by the expression,
// in order of first appearance.
func (t TypeExpr) Qualifiers() []string {
	if t.Expr == nil {
		return nil
	}

	var (
		out  []string
		seen = make(map[string]bool)
	)

	ast.Inspect(t.Expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok && !seen[id.Name] {
			seen[id.Name] = true
			out = append(out, id.Name)
		}

		return false
	})

	return out
}

// FieldDescriptor describes one named field of a record.
type FieldDescriptor struct {
	Name         string   // Field identifier
	DeclaredType TypeExpr // Type as declared on the record
	IsOptional   bool     // Declared type is the reserved Optional wrapper
	InnerType    TypeExpr // Wrapper's first type argument, set iff IsOptional
	// WrapperQualifier is the package qualifier written on the wrapper
	// ("derive" for derive.Optional[T]), empty when unqualified.
	WrapperQualifier string
}

// ValueType returns the type a setter for this field accepts: the inner
// type for optional fields, the declared type otherwise.
func (f FieldDescriptor) ValueType() TypeExpr {
	if f.IsOptional {
		return f.InnerType
	}

	return f.DeclaredType
}

// Derive names a generator that can be requested for a record.
type Derive string

const (
	DeriveBuilder Derive = "builder"
	DeriveDebug   Derive = "debug"
)

// ParseDerive converts a derive name into a Derive.
func ParseDerive(s string) (Derive, error) {
	switch d := Derive(s); d {
	case DeriveBuilder, DeriveDebug:
		return d, nil
	default:
		return "", fmt.Errorf("unknown derive %q (want %q or %q)", s, DeriveBuilder, DeriveDebug)
	}
}

// Import is one import spec of the file a record is declared in.
type Import struct {
	Name string // Package name the file refers to the import by, "." for dot imports
	Path string // Import path
	// Alias is the explicit import name, empty when none was written.
	Alias string
}

// RecordSchema is the ordered, named-field description of a record type.
type RecordSchema struct {
	TypeName string
	Fields   []FieldDescriptor

	// Emission context.
	Package    string   // Go package name of the declaring file
	PkgPath    string   // Import path of the package, if known
	SourceFile string   // Path of the declaring file, if known
	Imports    []Import // Imports of the declaring file
	Derives    []Derive // Requested generators, in request order
}

// Wants reports whether d was requested for the record.
func (s *RecordSchema) Wants(d Derive) bool {
	for _, w := range s.Derives {
		if w == d {
			return true
		}
	}

	return false
}

// Field returns the field with the given name.
func (s *RecordSchema) Field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return FieldDescriptor{}, false
}

// Validate checks the structural invariants of the schema: a type name and
// unique, non-empty field names.
func (s *RecordSchema) Validate() error {
	if s.TypeName == "" {
		return errors.New("record has no type name")
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%s: field %d has no name", s.TypeName, i)
		}

		if seen[f.Name] {
			return fmt.Errorf("%s.%s: %w", s.TypeName, f.Name, ErrDuplicateField)
		}

		seen[f.Name] = true
	}

	return nil
}

// Qualifiers returns every package qualifier referenced by a field type, in
// field order.
func (s *RecordSchema) Qualifiers() []string {
	var (
		out  []string
		seen = make(map[string]bool)
	)

	for _, f := range s.Fields {
		for _, q := range f.DeclaredType.Qualifiers() {
			if !seen[q] {
				seen[q] = true
				out = append(out, q)
			}
		}
	}

	return out
}
