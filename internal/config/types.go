package config

// File is the root of a derive.yaml configuration file.
type File struct {
	Version       string      `yaml:"version"`
	RuntimeImport string      `yaml:"runtime_import,omitempty"`
	Suffix        string      `yaml:"suffix,omitempty"`
	Concurrency   int         `yaml:"concurrency,omitempty"`
	Types         []TypeEntry `yaml:"types,omitempty"`
}

// TypeEntry selects one type for generation.
type TypeEntry struct {
	// Package is a Go package pattern the type is declared in.
	Package string `yaml:"package"`
	// Name is the type name.
	Name string `yaml:"name"`
	// Derive lists the generators to run: "builder", "debug".
	Derive []string `yaml:"derive"`
}

// Packages returns the distinct packages named by type entries, in order of
// first appearance.
func (f *File) Packages() []string {
	var out []string

	seen := make(map[string]bool)
	for _, t := range f.Types {
		if !seen[t.Package] {
			seen[t.Package] = true
			out = append(out, t.Package)
		}
	}

	return out
}

// TypesIn returns the entries declared for package pkg.
func (f *File) TypesIn(pkg string) []TypeEntry {
	var out []TypeEntry

	for _, t := range f.Types {
		if t.Package == pkg {
			out = append(out, t)
		}
	}

	return out
}
