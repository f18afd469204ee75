package syntax

import "strings"

// tokenKind classifies lexer output.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokVariable
	tokNumber
	tokString
	tokPunct
)

// token carries its half-open byte range so positions can be resolved lazily
// through a pos.Index.
type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
}

// multi-character operators, longest first. Maximal munch keeps constructs
// like the lambda arrow from leaking a bare "=" into statement scans.
var operators = []string{
	"<<<", "==>", "===", "!==", "?->", "...",
	"<<", ">>", "==", "!=", "<=", ">=", "=>", "->", "::", "&&", "||", "??", "++", "--",
	"+=", "-=", "*=", "/=", ".=", "%=", "|=", "&=", "^=",
}

// lex tokenizes a Hack-style source file. Comments, whitespace, and open/close
// tags produce no tokens. The lexer never fails; bytes it cannot classify
// become single-character punctuation.
func lex(content string) []token {
	var toks []token
	i := 0
	n := len(content)
	for i < n {
		c := content[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '/' && i+1 < n && content[i+1] == '/':
			i = skipLine(content, i)
		case c == '#':
			i = skipLine(content, i)
		case c == '/' && i+1 < n && content[i+1] == '*':
			i = skipBlockComment(content, i)
		case c == '<' && strings.HasPrefix(content[i:], "<?"):
			// <?hh or <?php open tag
			i += 2
			for i < n && isIdentByte(content[i]) {
				i++
			}
		case c == '?' && strings.HasPrefix(content[i:], "?>"):
			i += 2
		case c == '\'' || c == '"':
			start := i
			i = skipQuoted(content, i)
			toks = append(toks, token{tokString, content[start:i], start, i})
		case c == '$' && i+1 < n && isIdentStartByte(content[i+1]):
			start := i
			i++
			for i < n && isIdentByte(content[i]) {
				i++
			}
			toks = append(toks, token{tokVariable, content[start:i], start, i})
		case isIdentStartByte(c) || c == '\\':
			start := i
			for i < n && (isIdentByte(content[i]) || content[i] == '\\') {
				i++
			}
			toks = append(toks, token{tokIdent, content[start:i], start, i})
		case c >= '0' && c <= '9':
			start := i
			for i < n && (isIdentByte(content[i]) || content[i] == '.') {
				i++
			}
			toks = append(toks, token{tokNumber, content[start:i], start, i})
		default:
			if strings.HasPrefix(content[i:], "<<<") {
				start := i
				i = skipHeredoc(content, i)
				toks = append(toks, token{tokString, content[start:i], start, i})
				continue
			}
			matched := false
			for _, op := range operators {
				if strings.HasPrefix(content[i:], op) {
					toks = append(toks, token{tokPunct, op, i, i + len(op)})
					i += len(op)
					matched = true
					break
				}
			}
			if !matched {
				toks = append(toks, token{tokPunct, string(c), i, i + 1})
				i++
			}
		}
	}
	toks = append(toks, token{tokEOF, "", n, n})
	return toks
}

func skipLine(content string, i int) int {
	for i < len(content) && content[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(content string, i int) int {
	i += 2
	for i+1 < len(content) {
		if content[i] == '*' && content[i+1] == '/' {
			return i + 2
		}
		i++
	}
	return len(content)
}

func skipQuoted(content string, i int) int {
	quote := content[i]
	i++
	for i < len(content) {
		switch content[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	return len(content)
}

// skipHeredoc consumes <<<LABEL ... LABEL; including the nowdoc 'LABEL' form.
func skipHeredoc(content string, i int) int {
	j := i + 3
	for j < len(content) && (content[j] == '\'' || content[j] == '"') {
		j++
	}
	labelStart := j
	for j < len(content) && isIdentByte(content[j]) {
		j++
	}
	label := content[labelStart:j]
	if label == "" {
		return j
	}
	for j < len(content) {
		if content[j] != '\n' {
			j++
			continue
		}
		rest := content[j+1:]
		if strings.HasPrefix(rest, label) {
			return j + 1 + len(label)
		}
		j++
	}
	return len(content)
}

func isIdentStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}
