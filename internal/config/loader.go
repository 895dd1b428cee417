package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults used when the file leaves a setting empty.
const (
	DefaultVersion       = "1"
	DefaultRuntimeImport = "derive-generator/derive"
	DefaultSuffix        = "_derive.go"
	DefaultConcurrency   = 4
)

// Default returns the configuration used when no file exists.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOptional is like LoadFile but returns Default when path does not
// exist.
func LoadOptional(path string) (*File, error) {
	f, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return f, err
}

// Parse parses YAML data into a File and validates it.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&f)

	if err := Validate(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = DefaultVersion
	}

	if f.RuntimeImport == "" {
		f.RuntimeImport = DefaultRuntimeImport
	}

	if f.Suffix == "" {
		f.Suffix = DefaultSuffix
	}

	if f.Concurrency == 0 {
		f.Concurrency = DefaultConcurrency
	}

	for i := range f.Types {
		t := &f.Types[i]
		if t.Package == "" {
			t.Package = "."
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
