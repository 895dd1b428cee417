package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"derive-generator/internal/schema"
)

// Validate checks a configuration file for semantic errors. All problems
// are reported together.
func Validate(f *File) error {
	var errs []error

	if f.Version != DefaultVersion {
		errs = append(errs, fmt.Errorf("unsupported version %q", f.Version))
	}

	if !strings.HasSuffix(f.Suffix, ".go") {
		errs = append(errs, fmt.Errorf("suffix %q must end in .go", f.Suffix))
	}

	if f.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", f.Concurrency))
	}

	seen := make(map[string]bool)

	for i, t := range f.Types {
		where := fmt.Sprintf("types[%d]", i)

		if !token.IsIdentifier(t.Name) {
			errs = append(errs, fmt.Errorf("%s: name %q is not a Go identifier", where, t.Name))
		}

		key := t.Package + "." + t.Name
		if seen[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate entry for %s", where, key))
		}

		seen[key] = true

		if len(t.Derive) == 0 {
			errs = append(errs, fmt.Errorf("%s: derive must list at least one of builder, debug", where))
		}

		for _, d := range t.Derive {
			if _, err := schema.ParseDerive(d); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", where, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// Derives converts the entry's derive names. Call on validated entries.
func (t TypeEntry) Derives() []schema.Derive {
	out := make([]schema.Derive, 0, len(t.Derive))

	for _, name := range t.Derive {
		if d, err := schema.ParseDerive(name); err == nil {
			out = append(out, d)
		}
	}

	return out
}
