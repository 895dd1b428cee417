package analyze

import (
	"fmt"
	"strings"

	"derive-generator/internal/schema"
)

// DirectivePrefix starts a derive directive comment.
const DirectivePrefix = "//derive:"

// Selection requests derives for a type by name, in addition to any
// directive on the type itself.
type Selection struct {
	Name    string
	Derives []schema.Derive
}

// parseDirective parses the text after DirectivePrefix. Names may be
// separated by commas or spaces.
func parseDirective(text string) ([]schema.Derive, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty %s directive", strings.TrimSuffix(DirectivePrefix, ":"))
	}

	out := make([]schema.Derive, 0, len(fields))
	for _, f := range fields {
		d, err := schema.ParseDerive(f)
		if err != nil {
			return nil, err
		}

		out = appendDerive(out, d)
	}

	return out, nil
}

// appendDerive appends d unless already present.
func appendDerive(list []schema.Derive, d schema.Derive) []schema.Derive {
	for _, have := range list {
		if have == d {
			return list
		}
	}

	return append(list, d)
}
