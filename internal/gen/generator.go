package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"
	"sort"
	"text/template"

	"golang.org/x/sync/errgroup"

	"derive-generator/internal/classify"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

// DefaultRuntimeImport is the import path of the package generated code
// depends on.
const DefaultRuntimeImport = "derive-generator/derive"

// ErrNoDerives is returned when a record requests no generator.
var ErrNoDerives = errors.New("no derives requested")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RuntimeImport is the import path of the runtime support package.
	RuntimeImport string
	// Suffix is appended to the snake_case record name to form the filename.
	Suffix string
	// OutputDir, if set, is the directory every file is written to. It also
	// receives unformatted sidecar files when formatting fails. Otherwise the
	// record's source directory is used.
	OutputDir string
	// Concurrency limits how many records Generate processes at once.
	// Zero or less means no limit.
	Concurrency int
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RuntimeImport: DefaultRuntimeImport,
		Suffix:        "_derive.go",
		Concurrency:   4,
	}
}

// Generator turns record schemas into formatted Go files.
// It holds no state between calls and is safe for concurrent use.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.RuntimeImport == "" {
		config.RuntimeImport = DefaultRuntimeImport
	}

	if config.Suffix == "" {
		config.Suffix = DefaultGeneratorConfig().Suffix
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "config_derive.go").
	Filename string
	// Dir is the directory of the record's source file, empty if unknown.
	Dir string
	// Record is the name of the record the file was generated for.
	Record string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the file path, relative to Dir.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Filename returns the name of the file generated for record.
func (g *Generator) Filename(record string) string {
	return snakeCase(record) + g.config.Suffix
}

// GenerateRecord classifies s and emits every requested derive into one
// file. Any failure aborts the record: no file is returned.
func (g *Generator) GenerateRecord(s schema.RecordSchema) (*GeneratedFile, error) {
	if len(s.Derives) == 0 {
		return nil, fmt.Errorf("%s: %w", s.TypeName, ErrNoDerives)
	}

	classified, err := classify.ClassifyRecord(s)
	if err != nil {
		return nil, err
	}

	var artifacts []Artifact

	if classified.Wants(schema.DeriveBuilder) {
		art, err := GenerateBuilder(classified, g.config.RuntimeImport)
		if err != nil {
			return nil, fmt.Errorf("generating builder for %s: %w", s.TypeName, err)
		}

		artifacts = append(artifacts, art)
	}

	if classified.Wants(schema.DeriveDebug) {
		art, err := GenerateDebug(classified, g.config.RuntimeImport)
		if err != nil {
			return nil, fmt.Errorf("generating debug for %s: %w", s.TypeName, err)
		}

		artifacts = append(artifacts, art)
	}

	return g.assemble(&classified, artifacts)
}

// Generate processes records concurrently. A record that fails yields no
// file and an error diagnostic; the others are unaffected. A record whose
// file would land on the path of an earlier record's file is reported as a
// collision and dropped. Files are sorted by path. The returned error is
// non-nil only if ctx is done.
func (g *Generator) Generate(ctx context.Context, records []schema.RecordSchema) ([]GeneratedFile, diagnostic.Diagnostics, error) {
	files := make([]*GeneratedFile, len(records))
	errs := make([]error, len(records))

	eg, ctx := errgroup.WithContext(ctx)
	if g.config.Concurrency > 0 {
		eg.SetLimit(g.config.Concurrency)
	}

	for i := range records {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			files[i], errs[i] = g.GenerateRecord(records[i])

			return nil
		})
	}

	var diags diagnostic.Diagnostics
	if err := eg.Wait(); err != nil {
		return nil, diags, err
	}

	var out []GeneratedFile

	owners := make(map[string]string)

	for i, f := range files {
		if errs[i] != nil {
			diags.AddError(diagnostic.CodeFor(errs[i]), errs[i].Error(), records[i].TypeName, "")
			continue
		}

		target := g.targetPath(f)
		if owner, ok := owners[target]; ok {
			diags.AddError(diagnostic.CodeFilenameCollision,
				fmt.Sprintf("%s: output file %s is already generated for %s", f.Record, target, owner),
				f.Record, "")

			continue
		}

		owners[target] = f.Record
		out = append(out, *f)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path() < out[j].Path()
	})

	return out, diags, nil
}

// targetPath returns where f will be written.
func (g *Generator) targetPath(f *GeneratedFile) string {
	if g.config.OutputDir != "" {
		return filepath.Join(g.config.OutputDir, f.Filename)
	}

	return f.Path()
}

// fileData holds all data needed for the file template.
type fileData struct {
	PackageName string
	Imports     []importSpec
	Artifacts   []Artifact
}

// assemble merges artifacts into one formatted file.
func (g *Generator) assemble(s *schema.RecordSchema, artifacts []Artifact) (*GeneratedFile, error) {
	if s.Package == "" {
		return nil, fmt.Errorf("%s: record has no package name", s.TypeName)
	}

	data := &fileData{
		PackageName: s.Package,
		Artifacts:   artifacts,
	}

	// Dedupe by path, keeping the first alias seen.
	imports := make(map[string]importSpec)
	for _, art := range artifacts {
		for _, imp := range art.Imports {
			if _, ok := imports[imp.Path]; !ok {
				imports[imp.Path] = imp
			}
		}
	}

	for _, imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	file := &GeneratedFile{
		Filename: g.Filename(s.TypeName),
		Record:   s.TypeName,
	}
	if s.SourceFile != "" {
		file.Dir = filepath.Dir(s.SourceFile)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		sidecarDir := g.config.OutputDir
		if sidecarDir == "" {
			sidecarDir = file.Dir
		}

		if sidecarDir != "" {
			_ = writeDebugUnformatted(sidecarDir, file.Filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting code for %s: %w", s.TypeName, err)
	}

	file.Content = formatted

	return file, nil
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by derive-gen. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}{{range .Artifacts}}{{.Source}}{{end}}`))
