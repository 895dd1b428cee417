// Package gen emits Go source for derived builders and debug formatters.
//
// Generation approach uses text/template + go/format, the same way for
// every derive:
//   - GenerateBuilder: builder type, one setter per field, Build, factories
//   - GenerateDebug: fmt.Formatter rendering fields in declaration order
//
// Each generator turns one classified schema.RecordSchema into an Artifact.
// Generator assembles the artifacts of a record into one formatted file and
// can process many records concurrently.
package gen
