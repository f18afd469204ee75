// Package outline converts parsed declaration trees into hierarchical,
// typed outlines: the structure behind editor document-outline views, the
// flat listing kept for the legacy command surface, and a plain-text dump
// for debugging.
package outline

import (
	"fmt"

	"github.com/lexcodex/outlinify/pos"
)

// Kind classifies one outline entry. The set is closed; every consumer
// switches exhaustively over it.
type Kind int

const (
	KindFunction Kind = iota
	KindClass
	KindMethod
	KindProperty
	KindConst
	KindEnum
	KindInterface
	KindTrait
	KindTypeconst
)

// kindLabels is the single label table for Kind.
var kindLabels = [...]string{
	KindFunction:  "function",
	KindClass:     "class",
	KindMethod:    "method",
	KindProperty:  "property",
	KindConst:     "const",
	KindEnum:      "enum",
	KindInterface: "interface",
	KindTrait:     "trait",
	KindTypeconst: "typeconst",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindLabels) {
		panic(fmt.Sprintf("outline: invalid kind %d", int(k)))
	}
	return kindLabels[k]
}

// Container reports whether defs of this kind can hold children.
func (k Kind) Container() bool {
	switch k {
	case KindClass, KindEnum, KindInterface, KindTrait:
		return true
	case KindFunction, KindMethod, KindProperty, KindConst, KindTypeconst:
		return false
	}
	panic(fmt.Sprintf("outline: invalid kind %d", int(k)))
}

// Modifier is a canonical declaration modifier.
type Modifier int

const (
	ModifierFinal Modifier = iota
	ModifierStatic
	ModifierAbstract
	ModifierPrivate
	ModifierPublic
	ModifierProtected
	ModifierAsync
)

// modifierLabels is the single label table for Modifier.
var modifierLabels = [...]string{
	ModifierFinal:     "final",
	ModifierStatic:    "static",
	ModifierAbstract:  "abstract",
	ModifierPrivate:   "private",
	ModifierPublic:    "public",
	ModifierProtected: "protected",
	ModifierAsync:     "async",
}

func (m Modifier) String() string {
	if m < 0 || int(m) >= len(modifierLabels) {
		panic(fmt.Sprintf("outline: invalid modifier %d", int(m)))
	}
	return modifierLabels[m]
}

// Def is one outline entry. Defs are immutable once built; Pos always lies
// within Span, and Children is non-empty only for container kinds.
type Def struct {
	Kind      Kind
	Name      string
	Pos       pos.Pos
	Span      pos.Span
	Modifiers []Modifier
	Children  []Def
}

// HasModifier reports whether m appears in the def's modifier list.
func (d Def) HasModifier(m Modifier) bool {
	for _, have := range d.Modifiers {
		if have == m {
			return true
		}
	}
	return false
}
