package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"derive-generator/internal/schema"
)

// builderData holds all data needed for the builder template.
type builderData struct {
	Record      string
	Builder     string
	Factory     string
	Slots       string // Name of the struct field holding the slots
	Receiver    string
	Param       string
	Runtime     string // Qualifier of the runtime package
	Fields      []builderField
	HasRequired bool
}

// builderField describes how one record field is stored and set.
type builderField struct {
	Name      string
	SlotType  string // Type of the slot in the builder
	ValueType string // Type accepted by the setter
	SomeFunc  string // Constructor marking the slot present
	Optional  bool
}

// GenerateBuilder emits the builder for a classified record: the builder
// type, one setter per field, Build, and the factories.
func GenerateBuilder(s schema.RecordSchema, runtimeImport string) (Artifact, error) {
	rt := resolveRuntime(&s, runtimeImport)

	names := newNamer(&s, rt.Qualifier, builderTypeName(s.TypeName), factoryFuncName(s.TypeName), "Build")
	data := builderData{
		Record:   s.TypeName,
		Builder:  builderTypeName(s.TypeName),
		Factory:  factoryFuncName(s.TypeName),
		Slots:    names.fresh("slots"),
		Receiver: names.fresh("b"),
		Param:    names.fresh("value"),
		Runtime:  rt.Qualifier,
	}

	// Dot imports do not reach the generated file, so an unqualified wrapper
	// from a dot-imported runtime is referred to through the runtime.
	runtimeDotted := dotImported(&s, runtimeImport)
	usesRuntime := false

	for _, f := range s.Fields {
		if f.IsOptional && f.InnerType.IsZero() {
			return Artifact{}, fmt.Errorf("%s.%s: optional field has no inner type", s.TypeName, f.Name)
		}

		bf := builderField{
			Name:      f.Name,
			ValueType: f.ValueType().String(),
			Optional:  f.IsOptional,
		}

		switch {
		case f.IsOptional && f.WrapperQualifier == "" && runtimeDotted:
			bf.SlotType = fmt.Sprintf("%s.Optional[%s]", rt.Qualifier, bf.ValueType)
			bf.SomeFunc = qualify(rt.Qualifier, "Some")
			usesRuntime = true
		case f.IsOptional:
			// Already wrapped: keep the declared type and use the wrapper's
			// own constructor.
			bf.SlotType = f.DeclaredType.String()
			bf.SomeFunc = qualify(f.WrapperQualifier, "Some")
		default:
			bf.SlotType = fmt.Sprintf("%s.Optional[%s]", rt.Qualifier, bf.ValueType)
			bf.SomeFunc = qualify(rt.Qualifier, "Some")
			data.HasRequired = true
			usesRuntime = true
		}

		data.Fields = append(data.Fields, bf)
	}

	var buf bytes.Buffer
	if err := builderTemplate.Execute(&buf, data); err != nil {
		return Artifact{}, fmt.Errorf("executing builder template: %w", err)
	}

	art := Artifact{
		Kind:    ArtifactBuilder,
		Record:  s.TypeName,
		Source:  buf.String(),
		Imports: sourceImports(&s),
	}
	if usesRuntime {
		art.Imports = append(art.Imports, rt.Import)
	}

	return art, nil
}

func qualify(qualifier, name string) string {
	if qualifier == "" {
		return name
	}

	return qualifier + "." + name
}

var builderTemplate = template.Must(template.New("builder").Parse(`
// {{.Builder}} accumulates field values for {{.Record}}.
type {{.Builder}} struct {
	{{.Slots}} struct {
{{range .Fields}}		{{.Name}} {{.SlotType}}
{{end}}	}
}

// Builder returns an empty {{.Builder}}.
func ({{.Record}}) Builder() *{{.Builder}} {
	return &{{.Builder}}{}
}

// {{.Factory}} returns an empty {{.Builder}}.
func {{.Factory}}() *{{.Builder}} {
	return &{{.Builder}}{}
}
{{range .Fields}}
// {{.Name}} sets {{.Name}}{{if .Optional}} to a present value{{end}}.
func ({{$.Receiver}} *{{$.Builder}}) {{.Name}}({{$.Param}} {{.ValueType}}) *{{$.Builder}} {
	{{$.Receiver}}.{{$.Slots}}.{{.Name}} = {{.SomeFunc}}({{$.Param}})
	return {{$.Receiver}}
}
{{end}}
// Build returns a {{.Record}} holding the values set so far.{{if .HasRequired}} It fails with
// *{{.Runtime}}.MissingFieldError naming the first unset required field.{{end}}
func ({{.Receiver}} *{{.Builder}}) Build() ({{.Record}}, error) {
{{range .Fields}}{{if not .Optional}}	if !{{$.Receiver}}.{{$.Slots}}.{{.Name}}.IsSet() {
		return {{$.Record}}{}, {{$.Runtime}}.MissingField({{printf "%q" $.Record}}, {{printf "%q" .Name}})
	}
{{end}}{{end}}{{if .HasRequired}}
{{end}}	return {{.Record}}{
{{range .Fields}}		{{.Name}}: {{$.Receiver}}.{{$.Slots}}.{{.Name}}{{if not .Optional}}.Value(){{end}},
{{end}}	}, nil
}
`))
