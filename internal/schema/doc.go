// Package schema defines the structural description of a record type that
// the generators consume.
//
// Key types:
//   - TypeExpr: a Go type expression together with its source text
//   - FieldDescriptor: one field's name, declared type and optional status
//   - RecordSchema: a named, ordered list of fields plus emission context
package schema
