package outline

import "github.com/lexcodex/outlinify/pos"

// Entry is one row of the legacy flat outline: an anchor position, a
// "::"-qualified name, and the legacy kind label.
type Entry struct {
	Pos  pos.Pos
	Name string
	Kind string
}

// Flatten produces the legacy flat view of a Def forest in forward pre-order:
// each def's own entry first, then its children left to right, matching
// source declaration order. Properties, constants, and type constants are
// invisible to the legacy consumer.
func Flatten(defs []Def) []Entry {
	var out []Entry
	for _, d := range defs {
		out = flattenDef(out, d, "")
	}
	return out
}

func flattenDef(acc []Entry, d Def, prefix string) []Entry {
	switch d.Kind {
	case KindFunction:
		return append(acc, Entry{Pos: d.Pos, Name: prefix + d.Name, Kind: "function"})
	case KindClass, KindEnum, KindInterface, KindTrait:
		// every container flattens to "class" for the legacy consumer
		acc = append(acc, Entry{Pos: d.Pos, Name: prefix + d.Name, Kind: "class"})
		childPrefix := prefix + d.Name + "::"
		for _, child := range d.Children {
			acc = flattenDef(acc, child, childPrefix)
		}
		return acc
	case KindMethod:
		kind := "method"
		if d.HasModifier(ModifierStatic) {
			kind = "static method"
		}
		return append(acc, Entry{Pos: d.Pos, Name: prefix + d.Name, Kind: kind})
	case KindProperty, KindConst, KindTypeconst:
		return acc
	}
	panic("outline: invalid kind in flatten")
}
