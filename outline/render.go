package outline

import (
	"github.com/lexcodex/outlinify/pos"
)

// DefJSON is the structured-tree serialization of one Def. Children is
// always present, empty for leaves, so consumers can recurse blindly.
type DefJSON struct {
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Position  pos.Pos   `json:"position"`
	Span      pos.Span  `json:"span"`
	Modifiers []string  `json:"modifiers"`
	Children  []DefJSON `json:"children"`
}

// TreeJSON renders a Def forest into the structured-tree shape.
func TreeJSON(defs []Def) []DefJSON {
	out := make([]DefJSON, 0, len(defs))
	for _, d := range defs {
		out = append(out, defJSON(d))
	}
	return out
}

func defJSON(d Def) DefJSON {
	modifiers := make([]string, 0, len(d.Modifiers))
	for _, m := range d.Modifiers {
		modifiers = append(modifiers, m.String())
	}
	children := make([]DefJSON, 0, len(d.Children))
	for _, child := range d.Children {
		children = append(children, defJSON(child))
	}
	return DefJSON{
		Kind:      d.Kind.String(),
		Name:      d.Name,
		Position:  d.Pos,
		Span:      d.Span,
		Modifiers: modifiers,
		Children:  children,
	}
}

// EntryJSON is the legacy flat serialization. The kind label lands in a
// field named "type" for compatibility with the old wire format.
type EntryJSON struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Line      int    `json:"line"`
	CharStart int    `json:"char_start"`
	CharEnd   int    `json:"char_end"`
}

// LegacyJSON renders flattened entries into the legacy wire shape.
func LegacyJSON(entries []Entry) []EntryJSON {
	out := make([]EntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryJSON{
			Name:      e.Name,
			Type:      e.Kind,
			Line:      e.Pos.Line,
			CharStart: e.Pos.CharStart,
			CharEnd:   e.Pos.CharEnd,
		})
	}
	return out
}
