package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/classify"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

func TestGenerator_GenerateRecord_Config(t *testing.T) {
	s := configSchema()
	s.SourceFile = filepath.Join("examples", "config", "config.go")

	file, err := NewGenerator(DefaultGeneratorConfig()).GenerateRecord(s)
	require.NoError(t, err)

	assert.Equal(t, "config_derive.go", file.Filename)
	assert.Equal(t, filepath.Join("examples", "config"), file.Dir)
	assert.Equal(t, "Config", file.Record)
	assert.Equal(t, filepath.Join("examples", "config", "config_derive.go"), file.Path())

	content := string(file.Content)
	assert.Contains(t, content, "// Code generated by derive-gen. DO NOT EDIT.")
	assert.Contains(t, content, "package config")
	assert.Contains(t, content, "\"derive-generator/derive\"")
	assert.Contains(t, content, "\"fmt\"")

	// gofmt aligned the slots.
	assert.Contains(t, content, "name    derive.Optional[string]")
	assert.Contains(t, content, "retries derive.Optional[int]")

	assert.Equal(t, []string{
		"Config.Builder",
		"NewConfigBuilder",
		"ConfigBuilder.name",
		"ConfigBuilder.retries",
		"ConfigBuilder.Build",
		"Config.Format",
	}, methods(t, file.Content))
}

func TestGenerator_GenerateRecord_OnlyRequestedDerives(t *testing.T) {
	s := configSchema()
	s.Derives = []schema.Derive{schema.DeriveDebug}

	file, err := NewGenerator(DefaultGeneratorConfig()).GenerateRecord(s)
	require.NoError(t, err)

	assert.Equal(t, []string{"Config.Format"}, methods(t, file.Content))
	assert.NotContains(t, string(file.Content), "ConfigBuilder")

	s.Derives = []schema.Derive{schema.DeriveBuilder}

	file, err = NewGenerator(DefaultGeneratorConfig()).GenerateRecord(s)
	require.NoError(t, err)

	assert.NotContains(t, string(file.Content), "Format")
	assert.NotContains(t, string(file.Content), "\"fmt\"")
}

func TestGenerator_GenerateRecord_KeepsOnlyUsedImports(t *testing.T) {
	s := schema.RecordSchema{
		TypeName: "Job",
		Package:  "jobs",
		Fields: []schema.FieldDescriptor{
			field("timeout", "time.Duration"),
			field("owner", "users.ID"),
		},
		Imports: []schema.Import{
			{Name: "http", Path: "net/http"},
			{Name: "time", Path: "time"},
			{Name: "users", Alias: "users", Path: "example.com/app/internal/user"},
		},
		Derives: []schema.Derive{schema.DeriveBuilder},
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).GenerateRecord(s)
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "\"time\"")
	assert.Contains(t, content, "users \"example.com/app/internal/user\"")
	assert.NotContains(t, content, "net/http")
}

func TestGenerator_GenerateRecord_Failures(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	t.Run("unsupported shape aborts the record", func(t *testing.T) {
		s := configSchema()
		s.Fields = append(s.Fields, field("next", "*Config"))

		file, err := g.GenerateRecord(s)
		assert.Nil(t, file)
		assert.ErrorIs(t, err, classify.ErrUnsupportedTypeShape)
	})

	t.Run("no derives", func(t *testing.T) {
		s := configSchema()
		s.Derives = nil

		file, err := g.GenerateRecord(s)
		assert.Nil(t, file)
		assert.ErrorIs(t, err, ErrNoDerives)
	})

	t.Run("no package", func(t *testing.T) {
		s := configSchema()
		s.Package = ""

		_, err := g.GenerateRecord(s)
		assert.ErrorContains(t, err, "no package name")
	})
}

func TestGenerator_GenerateRecord_UnformattedSidecar(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultGeneratorConfig()
	cfg.OutputDir = dir

	s := configSchema()
	s.TypeName = "Bad-Name"

	_, err := NewGenerator(cfg).GenerateRecord(s)
	require.ErrorContains(t, err, "formatting code")

	_, statErr := os.Stat(filepath.Join(dir, "bad-name_derive.go.unformatted"))
	assert.NoError(t, statErr)
}

func TestGenerator_Generate(t *testing.T) {
	good := configSchema()
	good.SourceFile = "b/config.go"

	bad := configSchema()
	bad.TypeName = "Broken"
	bad.Fields = []schema.FieldDescriptor{field("tags", "[]string")}

	other := configSchema()
	other.TypeName = "Another"
	other.SourceFile = "a/another.go"

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).
		Generate(context.Background(), []schema.RecordSchema{good, bad, other})
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "Another", files[0].Record)
	assert.Equal(t, "Config", files[1].Record)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnsupportedTypeShape, diags.Errors[0].Code)
	assert.Equal(t, "Broken", diags.Errors[0].Record)
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	var records []schema.RecordSchema
	for _, name := range []string{"Delta", "Alpha", "Charlie", "Bravo"} {
		s := configSchema()
		s.TypeName = name
		records = append(records, s)
	}

	cfg := DefaultGeneratorConfig()
	cfg.Concurrency = 2
	g := NewGenerator(cfg)

	first, _, err := g.Generate(context.Background(), records)
	require.NoError(t, err)

	second, _, err := g.Generate(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 4)
	assert.Equal(t, "alpha_derive.go", first[0].Filename)
	assert.Equal(t, "delta_derive.go", first[3].Filename)
}

func TestGenerator_Generate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewGenerator(DefaultGeneratorConfig()).
		Generate(ctx, []schema.RecordSchema{configSchema()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_Filename(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Suffix: ".gen.go"})

	assert.Equal(t, "http_config.gen.go", g.Filename("HTTPConfig"))
	assert.Equal(t, "config.gen.go", g.Filename("Config"))
}

func TestGenerator_Generate_FilenameCollision(t *testing.T) {
	upper := configSchema()
	upper.TypeName = "HTTPConfig"
	upper.SourceFile = "svc/http.go"

	mixed := configSchema()
	mixed.TypeName = "HttpConfig"
	mixed.SourceFile = "svc/http_legacy.go"

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).
		Generate(context.Background(), []schema.RecordSchema{upper, mixed})
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "HTTPConfig", files[0].Record)
	assert.Equal(t, filepath.Join("svc", "http_config_derive.go"), files[0].Path())

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeFilenameCollision, diags.Errors[0].Code)
	assert.Equal(t, "HttpConfig", diags.Errors[0].Record)
	assert.Contains(t, diags.Errors[0].Message, "already generated for HTTPConfig")
}

func TestGenerator_Generate_CollisionInOutputDir(t *testing.T) {
	a := configSchema()
	a.SourceFile = "a/config.go"

	b := configSchema()
	b.SourceFile = "b/config.go"

	cfg := DefaultGeneratorConfig()

	files, diags, err := NewGenerator(cfg).Generate(context.Background(), []schema.RecordSchema{a, b})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.False(t, diags.HasErrors())

	cfg.OutputDir = t.TempDir()

	files, diags, err = NewGenerator(cfg).Generate(context.Background(), []schema.RecordSchema{a, b})
	require.NoError(t, err)
	assert.Len(t, files, 1)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeFilenameCollision, diags.Errors[0].Code)
}

func TestGenerator_GenerateRecord_DotImportedRuntime(t *testing.T) {
	s := schema.RecordSchema{
		TypeName: "Job",
		Package:  "jobs",
		Fields: []schema.FieldDescriptor{
			field("Name", "string"),
			field("Retries", "Optional[int]"),
		},
		Imports: []schema.Import{{Name: ".", Alias: ".", Path: runtimePath}},
		Derives: []schema.Derive{schema.DeriveBuilder, schema.DeriveDebug},
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).GenerateRecord(s)
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "\"derive-generator/derive\"")
	assert.NotContains(t, content, ". \"derive-generator/derive\"")
	assert.NotContains(t, content, " Optional[int]")
	assert.NotContains(t, content, "= Some(")
	assert.Contains(t, content, "derive.DebugStruct(f, \"Job\")")
}
