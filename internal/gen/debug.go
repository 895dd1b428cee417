package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"derive-generator/internal/schema"
)

// debugData holds all data needed for the debug template.
type debugData struct {
	Record   string
	Receiver string
	State    string
	Runtime  string
	Fields   []string
}

// GenerateDebug emits a fmt.Formatter for the record that renders its type
// name and every field as name: value in declaration order. Values are
// rendered by their own formatting.
func GenerateDebug(s schema.RecordSchema, runtimeImport string) (Artifact, error) {
	rt := resolveRuntime(&s, runtimeImport)

	names := newNamer(&s, rt.Qualifier, "fmt")
	data := debugData{
		Record:   s.TypeName,
		Receiver: names.fresh("r"),
		State:    names.fresh("f"),
		Runtime:  rt.Qualifier,
	}

	for _, f := range s.Fields {
		data.Fields = append(data.Fields, f.Name)
	}

	var buf bytes.Buffer
	if err := debugTemplate.Execute(&buf, data); err != nil {
		return Artifact{}, fmt.Errorf("executing debug template: %w", err)
	}

	return Artifact{
		Kind:    ArtifactDebug,
		Record:  s.TypeName,
		Source:  buf.String(),
		Imports: []importSpec{{Path: "fmt"}, rt.Import},
	}, nil
}

var debugTemplate = template.Must(template.New("debug").Parse(`
// Format implements fmt.Formatter. It renders {{.Record}} as its type name
// followed by each field in declaration order.
func ({{.Receiver}} {{.Record}}) Format({{.State}} fmt.State, _ rune) {
	{{.Runtime}}.DebugStruct({{.State}}, {{printf "%q" .Record}}).
{{range .Fields}}		Field({{printf "%q" .}}, {{$.Receiver}}.{{.}}).
{{end}}		Finish()
}
`))
