package outline

import (
	"fmt"
	"io"
	"strings"
)

// WriteText prints a Def forest as an indented debugging dump. Each nesting
// level indents by two spaces; every def prints its name, kind, position,
// span, and modifiers followed by a blank separator line.
func WriteText(w io.Writer, defs []Def) error {
	for _, d := range defs {
		if err := writeDefText(w, d, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeDefText(w io.Writer, d Def, depth int) error {
	indent := strings.Repeat("  ", depth)
	modifiers := make([]string, 0, len(d.Modifiers))
	for _, m := range d.Modifiers {
		modifiers = append(modifiers, m.String())
	}
	modLine := indent + "modifiers:"
	if len(modifiers) > 0 {
		modLine += " " + strings.Join(modifiers, " ")
	}
	_, err := fmt.Fprintf(w, "%s%s\n%skind: %s\n%sposition: %s\n%sspan: %s\n%s\n\n",
		indent, d.Name,
		indent, d.Kind,
		indent, d.Pos,
		indent, d.Span,
		modLine)
	if err != nil {
		return err
	}
	for _, child := range d.Children {
		if err := writeDefText(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
