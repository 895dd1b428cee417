package gen

import (
	"strconv"
	"strings"
	"unicode"

	"derive-generator/internal/common"
	"derive-generator/internal/schema"
)

// namer hands out identifiers that do not collide with names the generated
// code has to refer to.
type namer struct {
	taken map[string]bool
}

// newNamer reserves the record's type name, its field names, every package
// qualifier used by its field types, and extra.
func newNamer(s *schema.RecordSchema, extra ...string) *namer {
	n := &namer{taken: make(map[string]bool)}
	n.reserve(s.TypeName)

	for _, f := range s.Fields {
		n.reserve(f.Name)
	}

	for _, q := range s.Qualifiers() {
		n.reserve(q)
	}

	for _, e := range extra {
		n.reserve(e)
	}

	return n
}

func (n *namer) reserve(name string) {
	if name != "" {
		n.taken[name] = true
	}
}

// fresh returns base, or base with a numeric suffix, and reserves it.
func (n *namer) fresh(base string) string {
	name := base
	for i := 2; n.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}

	n.taken[name] = true

	return name
}

// builderTypeName returns the name of the builder generated for record.
func builderTypeName(record string) string {
	return record + "Builder"
}

// factoryFuncName returns the free factory function name, exported iff the
// record is.
func factoryFuncName(record string) string {
	if isExported(record) {
		return "New" + builderTypeName(record)
	}

	return "new" + upperFirst(builderTypeName(record))
}

func isExported(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}

	return false
}

func upperFirst(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// snakeCase converts a Go identifier to snake_case, keeping acronyms
// together: "HTTPConfig" becomes "http_config".
func snakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// runtimeRef describes how generated code refers to the runtime package.
type runtimeRef struct {
	Qualifier string
	Import    importSpec
}

// resolveRuntime picks the qualifier for the runtime package. The package
// name is used unless the record's file already binds that name to another
// import, in which case the runtime is imported under an alias.
func resolveRuntime(s *schema.RecordSchema, importPath string) runtimeRef {
	name := common.PkgAlias(importPath)

	for _, imp := range s.Imports {
		if imp.Path == importPath && imp.Name != "." {
			return runtimeRef{Qualifier: imp.Name, Import: importSpec{Alias: imp.Alias, Path: imp.Path}}
		}
	}

	for _, imp := range s.Imports {
		if imp.Name == name {
			alias := newNamer(s).fresh(name + "rt")
			return runtimeRef{Qualifier: alias, Import: importSpec{Alias: alias, Path: importPath}}
		}
	}

	return runtimeRef{Qualifier: name, Import: importSpec{Path: importPath}}
}

// dotImported reports whether the record's file dot-imports path.
func dotImported(s *schema.RecordSchema, path string) bool {
	for _, imp := range s.Imports {
		if imp.Name == "." && imp.Path == path {
			return true
		}
	}

	return false
}

// sourceImports returns the imports of the record's file that its field
// types refer to.
func sourceImports(s *schema.RecordSchema) []importSpec {
	var out []importSpec

	for _, q := range s.Qualifiers() {
		for _, imp := range s.Imports {
			if imp.Name == q {
				out = append(out, importSpec{Alias: imp.Alias, Path: imp.Path})
				break
			}
		}
	}

	return out
}
