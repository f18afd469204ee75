package syntax

import (
	"strings"

	"github.com/lexcodex/outlinify/pos"
)

// Parse builds the declaration tree for content. The returned tree is always
// usable; diagnostics describe regions the parser had to skip.
func Parse(content string) (*Tree, []Diagnostic) {
	p := &parser{
		toks: lex(content),
		ix:   pos.NewIndex(content),
	}
	decls := p.parseDecls(false)
	return &Tree{Decls: decls}, p.diags
}

type parser struct {
	toks  []token
	i     int
	ix    *pos.Index
	diags []Diagnostic
}

var modifierKeywords = map[string]ModifierKeyword{
	"final":     KeywordFinal,
	"static":    KeywordStatic,
	"abstract":  KeywordAbstract,
	"private":   KeywordPrivate,
	"public":    KeywordPublic,
	"protected": KeywordProtected,
}

var classKindKeywords = map[string]ClassKind{
	"class":     ClassKindClass,
	"interface": ClassKindInterface,
	"trait":     ClassKindTrait,
	"enum":      ClassKindEnum,
}

func (p *parser) cur() token { return p.toks[p.i] }

func (p *parser) peek(n int) token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}

func (p *parser) advance() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) at(text string) bool {
	t := p.cur()
	return t.kind != tokEOF && t.kind != tokString && t.text == text
}

func (p *parser) report(t token, msg string) {
	p.diags = append(p.diags, Diagnostic{Pos: p.ix.PosFor(t.start, t.end), Message: msg})
}

func (p *parser) identOf(t token) Ident {
	return Ident{Name: t.text, Pos: p.ix.PosFor(t.start, t.end)}
}

// parseDecls consumes declarations until EOF, or until an unconsumed "}" when
// insideBrace is set (namespace blocks).
func (p *parser) parseDecls(insideBrace bool) []Decl {
	var decls []Decl
	for {
		t := p.cur()
		if t.kind == tokEOF {
			return decls
		}
		if insideBrace && p.at("}") {
			return decls
		}
		switch {
		case p.at("<<"):
			p.skipUserAttributes()
		case t.kind == tokIdent:
			if d := p.parseTopDecl(&decls); d != nil {
				decls = append(decls, d)
			}
		default:
			// stray punctuation or literals at top level
			p.advance()
		}
	}
}

// parseTopDecl handles one identifier-led top-level construct. Namespace
// blocks append directly to decls and return nil.
func (p *parser) parseTopDecl(decls *[]Decl) Decl {
	t := p.cur()
	switch t.text {
	case "namespace":
		p.advance()
		if p.cur().kind == tokIdent {
			p.advance()
		}
		if p.at(";") {
			p.advance()
			return nil
		}
		if p.at("{") {
			p.advance()
			*decls = append(*decls, p.parseDecls(true)...)
			if p.at("}") {
				p.advance()
			} else {
				p.report(p.cur(), "unterminated namespace block")
			}
			return nil
		}
		end := p.scanStatement()
		return &StmtDecl{Span: p.ix.SpanFor(t.start, end)}
	case "async":
		if p.peek(1).kind == tokIdent && p.peek(1).text == "function" {
			p.advance()
			return p.parseFunction(t.start, true)
		}
		end := p.scanStatement()
		return &StmtDecl{Span: p.ix.SpanFor(t.start, end)}
	case "function":
		return p.parseFunction(t.start, false)
	case "abstract", "final":
		abstract, final := false, false
		for p.at("abstract") || p.at("final") {
			if p.cur().text == "abstract" {
				abstract = true
			} else {
				final = true
			}
			p.advance()
		}
		if kind, ok := classKindKeywords[p.cur().text]; ok && p.cur().kind == tokIdent {
			return p.parseClass(t.start, kind, abstract, final)
		}
		end := p.scanStatement()
		return &StmtDecl{Span: p.ix.SpanFor(t.start, end)}
	case "class", "interface", "trait", "enum":
		return p.parseClass(t.start, classKindKeywords[t.text], false, false)
	default:
		// type aliases, file constants, require statements, bare expressions
		end := p.scanStatement()
		return &StmtDecl{Span: p.ix.SpanFor(t.start, end)}
	}
}

func (p *parser) parseFunction(start int, async bool) Decl {
	p.advance() // function
	if p.at("&") {
		p.advance()
	}
	nameTok := p.cur()
	if nameTok.kind != tokIdent {
		p.report(nameTok, "expected function name")
		end := p.scanStatement()
		return &StmtDecl{Span: p.ix.SpanFor(start, end)}
	}
	p.advance()
	p.skipGenerics()
	end := nameTok.end
	if p.at("(") {
		end = p.skipBalanced("(", ")")
	}
	end = p.scanToBody(end)
	return &FunctionDecl{
		Name:  p.identOf(nameTok),
		Async: async,
		Span:  p.ix.SpanFor(start, end),
	}
}

func (p *parser) parseClass(start int, kind ClassKind, abstract, final bool) Decl {
	p.advance() // class keyword
	nameTok := p.cur()
	if nameTok.kind != tokIdent {
		p.report(nameTok, "expected class name")
		end := p.scanStatement()
		return &StmtDecl{Span: p.ix.SpanFor(start, end)}
	}
	p.advance()
	p.skipGenerics()
	// extends/implements clauses, enum base types
	for !p.at("{") && !p.at(";") && p.cur().kind != tokEOF {
		p.advance()
	}
	end := nameTok.end
	var members []Member
	if p.at("{") {
		p.advance()
		members, end = p.parseMembers()
	} else if p.at(";") {
		end = p.advance().end
	}
	return &ClassDecl{
		Kind:     kind,
		Name:     p.identOf(nameTok),
		Abstract: abstract,
		Final:    final,
		Span:     p.ix.SpanFor(start, end),
		Members:  members,
	}
}

// parseMembers consumes a class-like body through its closing brace and
// returns the members plus the byte offset just past that brace.
func (p *parser) parseMembers() ([]Member, int) {
	var members []Member
	for {
		if p.at("}") {
			return members, p.advance().end
		}
		if p.cur().kind == tokEOF {
			p.report(p.cur(), "unterminated class body")
			return members, p.cur().end
		}
		if p.at("<<") {
			p.skipUserAttributes()
			continue
		}
		if m := p.parseMember(); m != nil {
			members = append(members, m)
		}
	}
}

// parseMember handles one construct inside a class body. Constructs with no
// outline meaning (enum entries, stray tokens) are skipped and return nil.
func (p *parser) parseMember() Member {
	start := p.cur().start
	var modifiers []ModifierKeyword
	async := false
	for {
		t := p.cur()
		if t.kind != tokIdent {
			break
		}
		if kw, ok := modifierKeywords[t.text]; ok {
			modifiers = append(modifiers, kw)
			p.advance()
			continue
		}
		if t.text == "async" {
			async = true
			p.advance()
			continue
		}
		break
	}
	t := p.cur()
	switch {
	case t.kind == tokIdent && t.text == "function":
		return p.parseMethod(start, modifiers, async)
	case t.kind == tokIdent && t.text == "const":
		return p.parseConst(start, modifiers)
	case t.kind == tokIdent && t.text == "attribute":
		return p.parseAttribute()
	case t.kind == tokIdent && t.text == "use":
		p.advance()
		end := p.scanStatement()
		return &UseDecl{Span: p.ix.SpanFor(start, end)}
	case t.kind == tokIdent && t.text == "require":
		p.advance()
		end := p.scanStatement()
		return &RequireDecl{Span: p.ix.SpanFor(start, end)}
	case t.kind == tokIdent && (t.text == "category" || t.text == "children"):
		p.advance()
		end := p.scanStatement()
		return &CategoryDecl{Span: p.ix.SpanFor(start, end)}
	case t.kind == tokIdent && t.text == "var":
		p.advance()
		return p.parseProperty(nil)
	case len(modifiers) > 0 || t.kind == tokVariable:
		return p.parseProperty(modifiers)
	default:
		// enum entries and anything else the outline does not track
		p.scanStatement()
		return nil
	}
}

func (p *parser) parseMethod(start int, modifiers []ModifierKeyword, async bool) Member {
	p.advance() // function
	if p.at("&") {
		p.advance()
	}
	nameTok := p.cur()
	if nameTok.kind != tokIdent {
		p.report(nameTok, "expected method name")
		p.scanStatement()
		return nil
	}
	p.advance()
	p.skipGenerics()
	end := nameTok.end
	if p.at("(") {
		end = p.skipBalanced("(", ")")
	}
	end = p.scanToBody(end)
	return &MethodDecl{
		Name:      p.identOf(nameTok),
		Modifiers: modifiers,
		Async:     async,
		Span:      p.ix.SpanFor(start, end),
	}
}

func (p *parser) parseConst(start int, modifiers []ModifierKeyword) Member {
	p.advance() // const
	abstract := false
	for _, kw := range modifiers {
		if kw == KeywordAbstract {
			abstract = true
		}
	}
	if p.at("type") && p.peek(1).kind == tokIdent {
		p.advance()
		nameTok := p.advance()
		end := p.scanStatement()
		return &TypeConstDecl{
			Name:     p.identOf(nameTok),
			Abstract: abstract,
			Span:     p.ix.SpanFor(start, end),
		}
	}
	if abstract {
		// abstract const int X; the name is the last identifier before ";"
		var nameTok *token
		for p.cur().kind != tokEOF && !p.at(";") && !p.at("}") {
			t := p.advance()
			if t.kind == tokIdent {
				nameTok = &t
			}
		}
		if p.at(";") {
			p.advance()
		}
		if nameTok == nil {
			p.report(p.cur(), "expected constant name")
			return nil
		}
		return &AbstractConstDecl{Name: p.identOf(*nameTok)}
	}
	segments := p.scanList()
	decl := &ConstDecl{}
	for _, seg := range segments {
		entry, ok := constEntryOf(seg, p.ix)
		if ok {
			decl.Entries = append(decl.Entries, entry)
		}
	}
	if len(decl.Entries) == 0 {
		return nil
	}
	return decl
}

// constEntryOf extracts NAME = initializer from one comma segment. The name
// is the last identifier before the "=", which also steps over an optional
// type annotation on the first segment.
func constEntryOf(seg []token, ix *pos.Index) (ConstEntry, bool) {
	eq := -1
	for i, t := range seg {
		if t.kind == tokPunct && t.text == "=" {
			eq = i
			break
		}
	}
	if eq <= 0 {
		return ConstEntry{}, false
	}
	name := -1
	for i := eq - 1; i >= 0; i-- {
		if seg[i].kind == tokIdent {
			name = i
			break
		}
	}
	if name < 0 || eq == len(seg)-1 {
		return ConstEntry{}, false
	}
	return ConstEntry{
		Name: Ident{Name: seg[name].text, Pos: ix.PosFor(seg[name].start, seg[name].end)},
		Span: ix.SpanFor(seg[name].start, seg[len(seg)-1].end),
	}, true
}

func (p *parser) parseAttribute() Member {
	p.advance() // attribute
	segments := p.scanList()
	decl := &AttributeDecl{}
	for _, seg := range segments {
		if v, ok := attributeVarOf(seg, p.ix); ok {
			decl.Vars = append(decl.Vars, v)
		}
	}
	if len(decl.Vars) == 0 {
		return nil
	}
	return decl
}

// attributeVarOf finds the declared name in one attribute segment: the last
// identifier before "=", or the last identifier outright when there is no
// default value.
func attributeVarOf(seg []token, ix *pos.Index) (PropertyVar, bool) {
	limit := len(seg)
	for i, t := range seg {
		if t.kind == tokPunct && t.text == "=" {
			limit = i
			break
		}
	}
	for i := limit - 1; i >= 0; i-- {
		if seg[i].kind == tokIdent && seg[i].text != "required" {
			return PropertyVar{
				Name: seg[i].text,
				Pos:  ix.PosFor(seg[i].start, seg[i].end),
				Span: ix.SpanFor(seg[i].start, seg[len(seg)-1].end),
			}, true
		}
	}
	return PropertyVar{}, false
}

func (p *parser) parseProperty(modifiers []ModifierKeyword) Member {
	segments := p.scanList()
	decl := &PropertyDecl{Modifiers: modifiers}
	for _, seg := range segments {
		for _, t := range seg {
			if t.kind != tokVariable {
				continue
			}
			decl.Vars = append(decl.Vars, PropertyVar{
				Name: strings.TrimPrefix(t.text, "$"),
				Pos:  p.ix.PosFor(t.start, t.end),
				Span: p.ix.SpanFor(t.start, seg[len(seg)-1].end),
			})
			break
		}
	}
	if len(decl.Vars) == 0 {
		return nil
	}
	return decl
}

// scanStatement consumes through the terminating ";" (or a top-level brace
// block, which some statements end with) and returns the end byte offset. It
// stops short of an enclosing "}" so class and namespace bodies stay intact.
func (p *parser) scanStatement() int {
	end := p.cur().start
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			return end
		case t.kind == tokPunct && t.text == ";":
			return p.advance().end
		case t.kind == tokPunct && t.text == "{":
			end = p.skipBalanced("{", "}")
			if p.at(";") {
				return p.advance().end
			}
			return end
		case t.kind == tokPunct && t.text == "}":
			return end
		case t.kind == tokPunct && (t.text == "(" || t.text == "["):
			closer := ")"
			if t.text == "[" {
				closer = "]"
			}
			end = p.skipBalanced(t.text, closer)
		default:
			end = p.advance().end
		}
	}
}

// scanList consumes one declarator list through its ";" and splits it at
// top-level commas. Nested parens, brackets, and braces are kept whole.
func (p *parser) scanList() [][]token {
	var segments [][]token
	var seg []token
	flush := func() {
		if len(seg) > 0 {
			segments = append(segments, seg)
			seg = nil
		}
	}
	depth := 0
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			flush()
			return segments
		case t.kind == tokPunct && t.text == ";" && depth == 0:
			p.advance()
			flush()
			return segments
		case t.kind == tokPunct && t.text == "}" && depth == 0:
			flush()
			return segments
		case t.kind == tokPunct && t.text == "," && depth == 0:
			p.advance()
			flush()
		default:
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
			seg = append(seg, p.advance())
		}
	}
}

// scanToBody consumes a return-type clause until the declaration body "{"
// (which it skips whole) or a terminating ";" for bodyless declarations.
func (p *parser) scanToBody(fallbackEnd int) int {
	end := fallbackEnd
	for {
		t := p.cur()
		switch {
		case t.kind == tokEOF:
			return end
		case t.kind == tokPunct && t.text == "{":
			return p.skipBalanced("{", "}")
		case t.kind == tokPunct && t.text == ";":
			return p.advance().end
		case t.kind == tokPunct && t.text == "}":
			return end
		case t.kind == tokPunct && (t.text == "(" || t.text == "["):
			closer := ")"
			if t.text == "[" {
				closer = "]"
			}
			end = p.skipBalanced(t.text, closer)
		default:
			end = p.advance().end
		}
	}
}

// skipBalanced consumes from the current open token through its matching
// close token and returns the end byte offset of the close.
func (p *parser) skipBalanced(open, close string) int {
	depth := 0
	end := p.cur().end
	for {
		t := p.cur()
		if t.kind == tokEOF {
			p.report(t, "unbalanced "+open)
			return end
		}
		end = p.advance().end
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return end
			}
		}
	}
}

// skipGenerics consumes a <...> type-parameter list when one follows the
// current position. Bails on tokens that cannot occur inside one.
func (p *parser) skipGenerics() {
	if !p.at("<") {
		return
	}
	depth := 0
	for {
		t := p.cur()
		if t.kind == tokEOF {
			return
		}
		if t.kind == tokPunct {
			switch t.text {
			case "<":
				depth++
			case "<<":
				depth += 2
			case ">":
				depth--
			case ">>":
				depth -= 2
			case "{", ";", "(":
				return
			}
		}
		p.advance()
		if depth <= 0 {
			return
		}
	}
}

// skipUserAttributes consumes a <<...>> attribute list.
func (p *parser) skipUserAttributes() {
	depth := 0
	for {
		t := p.cur()
		if t.kind == tokEOF {
			return
		}
		if t.kind == tokPunct {
			switch t.text {
			case "<<":
				depth++
			case ">>":
				depth--
			}
		}
		p.advance()
		if depth <= 0 {
			return
		}
	}
}
