// Package analyze turns Go struct declarations into record schemas.
//
// It parses single files with go/parser or whole packages with
// golang.org/x/tools/go/packages. A struct is selected when its doc comment
// carries a directive such as
//
//	//derive:builder,debug
//
// or when the caller selects it by name. Records the generators cannot
// handle (embedded fields, generic or non-struct types) are reported as
// diagnostics instead of schemas.
package analyze
