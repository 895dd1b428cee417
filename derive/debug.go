package derive

import (
	"fmt"
	"io"
	"strings"
)

const debugIndent = "    "

// DebugBuilder renders a record as its type name followed by name: value
// pairs. Obtain one with DebugStruct and end with Finish.
type DebugBuilder struct {
	w      io.Writer
	format string
	pretty bool
	fields int
}

// DebugStruct starts rendering a record called name into f.
//
// Field values are formatted with %v carrying the '#' and '+' flags of f, so
// each value renders through its own Format or String method. With '+' every
// field goes on its own indented line.
func DebugStruct(f fmt.State, name string) *DebugBuilder {
	d := &DebugBuilder{
		w:      f,
		format: valueFormat(f),
		pretty: f.Flag('+'),
	}
	_, _ = io.WriteString(d.w, name+"{")

	return d
}

// Field appends one name: value pair.
func (d *DebugBuilder) Field(name string, value any) *DebugBuilder {
	rendered := fmt.Sprintf(d.format, value)

	if d.pretty {
		if d.fields == 0 {
			_, _ = io.WriteString(d.w, "\n")
		}

		rendered = strings.ReplaceAll(rendered, "\n", "\n"+debugIndent)
		_, _ = io.WriteString(d.w, debugIndent+name+": "+rendered+",\n")
	} else {
		if d.fields > 0 {
			_, _ = io.WriteString(d.w, ", ")
		}

		_, _ = io.WriteString(d.w, name+": "+rendered)
	}

	d.fields++

	return d
}

// Finish closes the record.
func (d *DebugBuilder) Finish() {
	_, _ = io.WriteString(d.w, "}")
}

func valueFormat(f fmt.State) string {
	format := "%"
	if f.Flag('#') {
		format += "#"
	}

	if f.Flag('+') {
		format += "+"
	}

	return format + "v"
}
