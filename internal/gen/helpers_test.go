package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"derive-generator/internal/classify"
	"derive-generator/internal/schema"
)

const runtimePath = "derive-generator/derive"

// field builds an unclassified field descriptor.
func field(name, typ string) schema.FieldDescriptor {
	return schema.FieldDescriptor{Name: name, DeclaredType: schema.MustParseType(typ)}
}

// configSchema is the record used throughout: one required, one optional.
func configSchema() schema.RecordSchema {
	return schema.RecordSchema{
		TypeName: "Config",
		Package:  "config",
		Fields: []schema.FieldDescriptor{
			field("name", "string"),
			field("retries", "derive.Optional[int]"),
		},
		Imports: []schema.Import{{Name: "derive", Path: runtimePath}},
		Derives: []schema.Derive{schema.DeriveBuilder, schema.DeriveDebug},
	}
}

func classified(t *testing.T, s schema.RecordSchema) schema.RecordSchema {
	t.Helper()

	out, err := classify.ClassifyRecord(s)
	require.NoError(t, err)

	return out
}

// methods parses src and returns "Recv.Name" for methods and "Name" for
// functions, in source order.
func methods(t *testing.T, src []byte) []string {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err, "generated code must parse:\n%s", src)

	var out []string

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		if fn.Recv == nil {
			out = append(out, fn.Name.Name)
			continue
		}

		recv := fn.Recv.List[0].Type
		if star, ok := recv.(*ast.StarExpr); ok {
			recv = star.X
		}

		out = append(out, recv.(*ast.Ident).Name+"."+fn.Name.Name)
	}

	return out
}
