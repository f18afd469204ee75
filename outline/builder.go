package outline

import (
	"strings"

	"github.com/lexcodex/outlinify/syntax"
)

// FromSource outlines content best-effort: parse diagnostics are discarded
// here, and only here, so a file with syntax errors still yields whatever
// declarations could be recovered. Callers cannot distinguish an empty file
// from an unparseable one; that trade-off is deliberate for editor use.
func FromSource(content string) []Def {
	tree, _ := syntax.Parse(content)
	return Build(tree)
}

// Build walks the top-level declarations of a parsed tree in source order and
// summarizes each into a Def. Only functions and class-like declarations
// appear in an outline; every other top-level construct is ignored.
func Build(tree *syntax.Tree) []Def {
	if tree == nil {
		return nil
	}
	var defs []Def
	for _, decl := range tree.Decls {
		switch d := decl.(type) {
		case *syntax.FunctionDecl:
			defs = append(defs, summarizeFunction(d))
		case *syntax.ClassDecl:
			defs = append(defs, summarizeClass(d))
		case *syntax.StmtDecl:
			// type aliases, file constants, bare statements: not outlined
		}
	}
	return defs
}

func summarizeFunction(d *syntax.FunctionDecl) Def {
	return Def{
		Kind:      KindFunction,
		Name:      stripNamespace(d.Name.Name),
		Pos:       d.Name.Pos,
		Span:      d.Span,
		Modifiers: modifiersOf(nil, d.Async),
	}
}

func summarizeClass(d *syntax.ClassDecl) Def {
	var kind Kind
	switch d.Kind {
	case syntax.ClassKindInterface:
		kind = KindInterface
	case syntax.ClassKindTrait:
		kind = KindTrait
	case syntax.ClassKindEnum:
		kind = KindEnum
	default:
		// abstract classes are still plain classes here
		kind = KindClass
	}
	var modifiers []Modifier
	if d.Final {
		modifiers = append(modifiers, ModifierFinal)
	}
	if d.Abstract {
		modifiers = append([]Modifier{ModifierAbstract}, modifiers...)
	}
	var children []Def
	for _, member := range d.Members {
		children = append(children, summarizeMember(member)...)
	}
	return Def{
		Kind:      kind,
		Name:      stripNamespace(d.Name.Name),
		Pos:       d.Name.Pos,
		Span:      d.Span,
		Modifiers: modifiers,
		Children:  children,
	}
}

// summarizeMember maps one class-body construct to zero or more Defs. The
// switch is exhaustive over the member shapes the parser produces: the last
// three arms are the shapes the outline deliberately omits.
func summarizeMember(member syntax.Member) []Def {
	switch m := member.(type) {
	case *syntax.MethodDecl:
		return []Def{{
			Kind:      KindMethod,
			Name:      m.Name.Name,
			Pos:       m.Name.Pos,
			Span:      m.Span,
			Modifiers: modifiersOf(m.Modifiers, m.Async),
		}}
	case *syntax.PropertyDecl:
		defs := make([]Def, 0, len(m.Vars))
		for _, v := range m.Vars {
			defs = append(defs, Def{
				Kind:      KindProperty,
				Name:      v.Name,
				Pos:       v.Pos,
				Span:      v.Span,
				Modifiers: modifiersOf(m.Modifiers, false),
			})
		}
		return defs
	case *syntax.AttributeDecl:
		defs := make([]Def, 0, len(m.Vars))
		for _, v := range m.Vars {
			defs = append(defs, Def{
				Kind: KindProperty,
				Name: v.Name,
				Pos:  v.Pos,
				Span: v.Span,
			})
		}
		return defs
	case *syntax.ConstDecl:
		defs := make([]Def, 0, len(m.Entries))
		for _, entry := range m.Entries {
			defs = append(defs, Def{
				Kind: KindConst,
				Name: entry.Name.Name,
				Pos:  entry.Name.Pos,
				Span: entry.Span,
			})
		}
		return defs
	case *syntax.AbstractConstDecl:
		return []Def{{
			Kind:      KindConst,
			Name:      m.Name.Name,
			Pos:       m.Name.Pos,
			Span:      m.Name.Pos.AsSpan(),
			Modifiers: []Modifier{ModifierAbstract},
		}}
	case *syntax.TypeConstDecl:
		var modifiers []Modifier
		if m.Abstract {
			modifiers = []Modifier{ModifierAbstract}
		}
		return []Def{{
			Kind:      KindTypeconst,
			Name:      m.Name.Name,
			Pos:       m.Name.Pos,
			Span:      m.Span,
			Modifiers: modifiers,
		}}
	case *syntax.UseDecl, *syntax.RequireDecl, *syntax.CategoryDecl:
		// omitted from outlines, not represented as placeholders
		return nil
	}
	return nil
}

// stripNamespace drops the namespace qualification from a top-level name.
// Member names never carry one and are left untouched by callers.
func stripNamespace(name string) string {
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		return name[i+1:]
	}
	return name
}
