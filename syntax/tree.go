// Package syntax parses the declaration structure of Hack-style source files.
// The parser is deliberately shallow: it recovers declaration names, modifier
// keywords, and source ranges, and skips expression and statement bodies. It
// never fails outright; malformed regions are skipped and reported as
// diagnostics so callers can still outline the rest of the file.
package syntax

import "github.com/lexcodex/outlinify/pos"

// Tree is the parsed declaration structure of one file.
type Tree struct {
	Decls []Decl
}

// Diagnostic is an advisory parse problem. Outline construction discards
// these; other callers may surface them.
type Diagnostic struct {
	Pos     pos.Pos
	Message string
}

// Ident is a declaration name with its source location.
type Ident struct {
	Name string
	Pos  pos.Pos
}

// Decl is a top-level declaration.
type Decl interface{ decl() }

// FunctionDecl is a top-level function.
type FunctionDecl struct {
	Name  Ident
	Async bool
	Span  pos.Span
}

// ClassKind distinguishes the four class-like source forms.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindTrait
	ClassKindEnum
)

// ClassDecl is a class, interface, trait, or enum declaration.
type ClassDecl struct {
	Kind     ClassKind
	Name     Ident
	Abstract bool
	Final    bool
	Span     pos.Span
	Members  []Member
}

// StmtDecl stands in for any other top-level construct (type aliases,
// file-level constants, bare statements). It carries no outline content.
type StmtDecl struct {
	Span pos.Span
}

func (*FunctionDecl) decl() {}
func (*ClassDecl) decl()    {}
func (*StmtDecl) decl()     {}

// ModifierKeyword is one of the six declaration-modifier keywords. async is
// not a ModifierKeyword; it is tracked as a flag on the declaration.
type ModifierKeyword int

const (
	KeywordFinal ModifierKeyword = iota
	KeywordStatic
	KeywordAbstract
	KeywordPrivate
	KeywordPublic
	KeywordProtected
)

// Member is a single construct inside a class-like body.
type Member interface{ member() }

// MethodDecl is a class method. Modifiers preserve source order.
type MethodDecl struct {
	Name      Ident
	Modifiers []ModifierKeyword
	Async     bool
	Span      pos.Span
}

// PropertyVar is one variable of a property group, named without the leading
// dollar sign.
type PropertyVar struct {
	Name string
	Pos  pos.Pos
	Span pos.Span
}

// PropertyDecl is one property group: a single modifier list applied to one
// or more variables.
type PropertyDecl struct {
	Modifiers []ModifierKeyword
	Vars      []PropertyVar
}

// AttributeDecl is an XHP attribute declaration. Attribute members take no
// modifier keywords.
type AttributeDecl struct {
	Vars []PropertyVar
}

// ConstEntry is one constant of a const group; Span runs from the name
// through the end of its initializer.
type ConstEntry struct {
	Name Ident
	Span pos.Span
}

// ConstDecl is a const group with initializers.
type ConstDecl struct {
	Entries []ConstEntry
}

// AbstractConstDecl is a declared constant without an initializer.
type AbstractConstDecl struct {
	Name Ident
}

// TypeConstDecl is a type constant (const type T ...).
type TypeConstDecl struct {
	Name     Ident
	Abstract bool
	Span     pos.Span
}

// UseDecl is a trait use inside a class body.
type UseDecl struct {
	Span pos.Span
}

// RequireDecl is a require extends/implements constraint.
type RequireDecl struct {
	Span pos.Span
}

// CategoryDecl covers XHP category and children declarations.
type CategoryDecl struct {
	Span pos.Span
}

func (*MethodDecl) member()        {}
func (*PropertyDecl) member()      {}
func (*AttributeDecl) member()     {}
func (*ConstDecl) member()         {}
func (*AbstractConstDecl) member() {}
func (*TypeConstDecl) member()     {}
func (*UseDecl) member()           {}
func (*RequireDecl) member()       {}
func (*CategoryDecl) member()      {}
