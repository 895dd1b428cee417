package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"

	"golang.org/x/tools/go/packages"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer extracts record schemas from Go sources.
type Analyzer struct {
	fset  *token.FileSet
	diags diagnostic.Diagnostics
	// Dir is the working directory for package patterns; empty means the
	// current directory.
	Dir string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{fset: token.NewFileSet()}
}

// Diagnostics returns the problems found so far.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	return a.diags
}

// ParseFile parses one Go file and returns its selected records. src
// follows go/parser.ParseFile: nil reads filename from disk.
func (a *Analyzer) ParseFile(filename string, src any, selected ...Selection) ([]schema.RecordSchema, error) {
	file, err := parser.ParseFile(a.fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	fc := fileContext{
		fset: a.fset,
		file: file,
		path: filename,
	}

	return extractFile(fc, selected, &a.diags), nil
}

// LoadPackages loads the packages matching patterns and returns their
// selected records, ordered by package path then declaration order.
// Patterns are standard Go package patterns (e.g., "./examples/...").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns []string, selected ...Selection) ([]schema.RecordSchema, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.Dir,
		Fset:    a.fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Type errors are expected while generated files are stale or missing;
	// only errors that leave no syntax behind are fatal.
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				a.diags.AddWarning(diagnostic.CodeTypeCheck, e.Msg, "", e.Pos)
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].PkgPath < pkgs[j].PkgPath
	})

	var out []schema.RecordSchema

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			fc := fileContext{
				fset:       a.fset,
				file:       file,
				path:       a.fset.Position(file.Package).Filename,
				pkgPath:    pkg.PkgPath,
				importName: importNameFrom(pkg),
			}

			out = append(out, extractFile(fc, selected, &a.diags)...)
		}
	}

	a.reportMissing(out, selected)

	return out, nil
}

// reportMissing adds an error for every selection that matched no type.
func (a *Analyzer) reportMissing(records []schema.RecordSchema, selected []Selection) {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.TypeName] = true
	}

	for _, d := range a.diags.Errors {
		seen[d.Record] = true
	}

	for _, sel := range selected {
		if !seen[sel.Name] {
			a.diags.AddError(diagnostic.CodeTypeNotFound,
				fmt.Sprintf("type %s not found", sel.Name), sel.Name, "")
		}
	}
}

// importNameFrom resolves import names through the package's type info.
func importNameFrom(pkg *packages.Package) func(*ast.ImportSpec, string) string {
	return func(spec *ast.ImportSpec, path string) string {
		if pkg.TypesInfo != nil {
			if pn := pkg.TypesInfo.PkgNameOf(spec); pn != nil {
				return pn.Imported().Name()
			}
		}

		if imp, ok := pkg.Imports[path]; ok && imp.Name != "" {
			return imp.Name
		}

		return ""
	}
}
