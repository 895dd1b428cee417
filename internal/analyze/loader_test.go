package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/classify"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

const storeSrc = `package store

import (
	"time"

	"derive-generator/derive"
	u "example.com/users"
	_ "embed"
)

// Order is placed by a customer.
//
//derive:builder,debug
type Order struct {
	ID, Ref   string
	Customer  u.ID
	PlacedAt  time.Time
	Note      derive.Optional[string]
}

// Item is not selected.
type Item struct {
	SKU string
}

type (
	// Receipt is selected inside a group.
	//
	//derive:debug
	Receipt struct {
		Total int
	}

	Refund struct {
		Amount int
	}
)
`

func TestAnalyzer_ParseFile(t *testing.T) {
	a := NewAnalyzer()

	records, err := a.ParseFile("store.go", storeSrc)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.False(t, a.Diagnostics().HasErrors())

	order := records[0]
	assert.Equal(t, "Order", order.TypeName)
	assert.Equal(t, "store", order.Package)
	assert.Equal(t, "store.go", order.SourceFile)
	assert.Equal(t, []schema.Derive{schema.DeriveBuilder, schema.DeriveDebug}, order.Derives)

	var names, types []string
	for _, f := range order.Fields {
		names = append(names, f.Name)
		types = append(types, f.DeclaredType.String())
	}

	assert.Equal(t, []string{"ID", "Ref", "Customer", "PlacedAt", "Note"}, names)
	assert.Equal(t, []string{"string", "string", "u.ID", "time.Time", "derive.Optional[string]"}, types)

	assert.Equal(t, []schema.Import{
		{Name: "time", Path: "time"},
		{Name: "derive", Path: "derive-generator/derive"},
		{Name: "u", Alias: "u", Path: "example.com/users"},
	}, order.Imports)

	receipt := records[1]
	assert.Equal(t, "Receipt", receipt.TypeName)
	assert.Equal(t, []schema.Derive{schema.DeriveDebug}, receipt.Derives)
}

func TestAnalyzer_ParseFile_Selection(t *testing.T) {
	a := NewAnalyzer()

	records, err := a.ParseFile("store.go", storeSrc,
		Selection{Name: "Item", Derives: []schema.Derive{schema.DeriveBuilder}},
		Selection{Name: "Receipt", Derives: []schema.Derive{schema.DeriveBuilder}},
	)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Item", records[1].TypeName)
	assert.Equal(t, []schema.Derive{schema.DeriveBuilder}, records[1].Derives)

	// Directive derives come first, selections are merged in.
	assert.Equal(t, "Receipt", records[2].TypeName)
	assert.Equal(t, []schema.Derive{schema.DeriveDebug, schema.DeriveBuilder}, records[2].Derives)
}

func TestAnalyzer_ParseFile_UnsupportedRecords(t *testing.T) {
	src := `package shapes

type Base struct{ ID int }

//derive:builder
type Embeds struct {
	Base
	Name string
}

//derive:debug
type Pair[K comparable] struct {
	Key K
}

//derive:builder
type Names []string

//derive:builder
type Alias = Base

//derive:builder
type Fine struct {
	Name string
}
`

	a := NewAnalyzer()

	records, err := a.ParseFile("shapes.go", src)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Fine", records[0].TypeName)

	diags := a.Diagnostics()
	require.Len(t, diags.Errors, 4)

	for _, d := range diags.Errors {
		assert.Equal(t, diagnostic.CodeUnsupportedTypeShape, d.Code)
		assert.Contains(t, d.Position, "shapes.go:")
	}

	assert.Equal(t, "Embeds", diags.Errors[0].Record)
	assert.Contains(t, diags.Errors[0].Message, "embedded fields")
	assert.Equal(t, "Pair", diags.Errors[1].Record)
	assert.Contains(t, diags.Errors[1].Message, "generic types")
	assert.Equal(t, "Names", diags.Errors[2].Record)
	assert.Contains(t, diags.Errors[2].Message, "only struct types")
	assert.Equal(t, "Alias", diags.Errors[3].Record)
	assert.Contains(t, diags.Errors[3].Message, "type aliases")
}

func TestAnalyzer_ParseFile_UnknownDerive(t *testing.T) {
	src := `package p

//derive:builder,clone
type T struct {
	A int
}
`

	a := NewAnalyzer()

	records, err := a.ParseFile("p.go", src)
	require.NoError(t, err)
	assert.Empty(t, records)

	diags := a.Diagnostics()
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnknownDerive, diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Message, `unknown derive "clone"`)
}

func TestAnalyzer_ParseFile_SyntaxError(t *testing.T) {
	_, err := NewAnalyzer().ParseFile("bad.go", "package p\ntype T struct {")
	assert.Error(t, err)
}

func TestAnalyzer_ParseFile_FieldsClassify(t *testing.T) {
	records, err := NewAnalyzer().ParseFile("store.go", storeSrc)
	require.NoError(t, err)

	order, err := classify.ClassifyRecord(records[0])
	require.NoError(t, err)

	note, ok := order.Field("Note")
	require.True(t, ok)
	assert.True(t, note.IsOptional)
	assert.Equal(t, "string", note.InnerType.String())
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		text    string
		want    []schema.Derive
		wantErr bool
	}{
		{text: "builder", want: []schema.Derive{schema.DeriveBuilder}},
		{text: "builder,debug", want: []schema.Derive{schema.DeriveBuilder, schema.DeriveDebug}},
		{text: "debug builder", want: []schema.Derive{schema.DeriveDebug, schema.DeriveBuilder}},
		{text: "debug, debug", want: []schema.Derive{schema.DeriveDebug}},
		{text: "", wantErr: true},
		{text: "json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseDirective(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	a := NewAnalyzer()

	records, err := a.LoadPackages(context.Background(), []string{"derive-generator/examples/config"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Config", records[0].TypeName)
	assert.Equal(t, "derive-generator/examples/config", records[0].PkgPath)
	assert.Contains(t, records[0].SourceFile, "config.go")
	assert.Equal(t, []schema.Import{{Name: "derive", Path: "derive-generator/derive"}}, records[0].Imports)

	assert.Equal(t, "Pair", records[1].TypeName)
}

func TestAnalyzer_LoadPackages_SelectionNotFound(t *testing.T) {
	a := NewAnalyzer()

	_, err := a.LoadPackages(context.Background(), []string{"derive-generator/examples/config"},
		Selection{Name: "Missing", Derives: []schema.Derive{schema.DeriveDebug}})
	require.NoError(t, err)

	diags := a.Diagnostics()
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeTypeNotFound, diags.Errors[0].Code)
}

func TestAnalyzer_ParseFile_KeepsDotImports(t *testing.T) {
	const src = `package jobs

import (
	. "derive-generator/derive"
	_ "embed"
)

//derive:builder
type Job struct {
	Retries Optional[int]
}
`

	records, err := NewAnalyzer().ParseFile("jobs.go", src)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, []schema.Import{
		{Name: ".", Alias: ".", Path: "derive-generator/derive"},
	}, records[0].Imports)

	job, err := classify.ClassifyRecord(records[0])
	require.NoError(t, err)
	assert.True(t, job.Fields[0].IsOptional)
	assert.Empty(t, job.Fields[0].WrapperQualifier)
}
