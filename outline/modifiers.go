package outline

import (
	"fmt"

	"github.com/lexcodex/outlinify/syntax"
)

// modifierFromKeyword maps a declaration-modifier keyword to its canonical
// modifier. The keyword domain is closed; anything else is a programming
// error in the parser, not a recoverable input condition. Async never comes
// from a keyword; it is derived from the declaration's async flag and
// appended separately.
func modifierFromKeyword(kw syntax.ModifierKeyword) Modifier {
	switch kw {
	case syntax.KeywordFinal:
		return ModifierFinal
	case syntax.KeywordStatic:
		return ModifierStatic
	case syntax.KeywordAbstract:
		return ModifierAbstract
	case syntax.KeywordPrivate:
		return ModifierPrivate
	case syntax.KeywordPublic:
		return ModifierPublic
	case syntax.KeywordProtected:
		return ModifierProtected
	}
	panic(fmt.Sprintf("outline: unknown modifier keyword %d", int(kw)))
}

// modifiersOf normalizes a keyword list preserving source order, appending
// Async last when the declaration is async. Duplicates pass through.
func modifiersOf(keywords []syntax.ModifierKeyword, async bool) []Modifier {
	var out []Modifier
	for _, kw := range keywords {
		out = append(out, modifierFromKeyword(kw))
	}
	if async {
		out = append(out, ModifierAsync)
	}
	return out
}
