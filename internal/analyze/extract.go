package analyze

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"derive-generator/internal/classify"
	"derive-generator/internal/common"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

// fileContext carries what extraction needs to know about one file.
type fileContext struct {
	fset    *token.FileSet
	file    *ast.File
	path    string // File path, as reported by the FileSet
	pkgPath string
	// importName resolves the package name of an unaliased import.
	importName func(spec *ast.ImportSpec, path string) string
}

// extractFile returns the schemas of every selected struct in the file.
// Problems are added to diags; affected records are left out.
func extractFile(fc fileContext, selected []Selection, diags *diagnostic.Diagnostics) []schema.RecordSchema {
	imports := fileImports(fc)

	var out []schema.RecordSchema

	for _, decl := range fc.file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)

			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}

			pos := fc.fset.Position(ts.Pos()).String()

			derives, err := directiveDerives(doc)
			if err != nil {
				diags.AddError(diagnostic.CodeUnknownDerive, err.Error(), ts.Name.Name, pos)
				continue
			}

			for _, sel := range selected {
				if sel.Name == ts.Name.Name {
					for _, d := range sel.Derives {
						derives = appendDerive(derives, d)
					}
				}
			}

			if len(derives) == 0 {
				continue
			}

			rec, err := extractRecord(ts)
			if err != nil {
				diags.AddError(diagnostic.CodeFor(err), err.Error(), ts.Name.Name, pos)
				continue
			}

			rec.Package = fc.file.Name.Name
			rec.PkgPath = fc.pkgPath
			rec.SourceFile = fc.path
			rec.Imports = imports
			rec.Derives = derives

			out = append(out, rec)
		}
	}

	return out
}

// directiveDerives collects the derives named by directive lines in doc.
func directiveDerives(doc *ast.CommentGroup) ([]schema.Derive, error) {
	if doc == nil {
		return nil, nil
	}

	var out []schema.Derive

	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}

		derives, err := parseDirective(text)
		if err != nil {
			return nil, err
		}

		for _, d := range derives {
			out = appendDerive(out, d)
		}
	}

	return out, nil
}

// extractRecord builds the unclassified schema of a struct type spec.
func extractRecord(ts *ast.TypeSpec) (schema.RecordSchema, error) {
	name := ts.Name.Name

	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return schema.RecordSchema{}, &classify.UnsupportedTypeShapeError{
			Record: name,
			Reason: "generic types are not supported",
		}
	}

	if ts.Assign.IsValid() {
		return schema.RecordSchema{}, &classify.UnsupportedTypeShapeError{
			Record: name,
			Reason: "type aliases are not supported",
		}
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return schema.RecordSchema{}, &classify.UnsupportedTypeShapeError{
			Record: name,
			Reason: "only struct types are supported",
		}
	}

	rec := schema.RecordSchema{TypeName: name}

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return schema.RecordSchema{}, &classify.UnsupportedTypeShapeError{
				Record: name,
				Type:   schema.TypeExpr{Expr: field.Type}.String(),
				Reason: "embedded fields are not supported",
			}
		}

		for _, id := range field.Names {
			rec.Fields = append(rec.Fields, schema.FieldDescriptor{
				Name:         id.Name,
				DeclaredType: schema.TypeExpr{Expr: field.Type},
			})
		}
	}

	return rec, rec.Validate()
}

// fileImports lists the imports of the file. Blank imports can never name
// a field type and are skipped. Dot imports are kept with Name ".".
func fileImports(fc fileContext) []schema.Import {
	var out []schema.Import

	for _, spec := range fc.file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := schema.Import{Path: path}

		switch {
		case spec.Name != nil && spec.Name.Name == "_":
			continue
		case spec.Name != nil:
			imp.Alias = spec.Name.Name
			imp.Name = spec.Name.Name
		case fc.importName != nil:
			imp.Name = fc.importName(spec, path)
		}

		if imp.Name == "" {
			imp.Name = common.PkgAlias(path)
		}

		out = append(out, imp)
	}

	return out
}
