// Package pos provides source position arithmetic for outline construction.
// A Pos anchors a single token (one line, an inclusive character range); a
// Span covers a whole declaration and may cross lines. Lines and columns are
// 1-based to match editor conventions.
package pos

import "fmt"

// Pos is a single-line character range, typically the location of an
// identifier. CharEnd is inclusive.
type Pos struct {
	Line      int `json:"line"`
	CharStart int `json:"char_start"`
	CharEnd   int `json:"char_end"`
}

// Span is a multi-line source range covering an entire declaration.
type Span struct {
	LineStart int `json:"line_start"`
	CharStart int `json:"char_start"`
	LineEnd   int `json:"line_end"`
	CharEnd   int `json:"char_end"`
}

// String renders a Pos in the human-readable form used by the text dump.
func (p Pos) String() string {
	return fmt.Sprintf("line %d, characters %d-%d", p.Line, p.CharStart, p.CharEnd)
}

// AsSpan widens a Pos into the equivalent single-line Span.
func (p Pos) AsSpan() Span {
	return Span{LineStart: p.Line, CharStart: p.CharStart, LineEnd: p.Line, CharEnd: p.CharEnd}
}

// String renders a Span, collapsing to the short form when it stays on one line.
func (s Span) String() string {
	if s.LineStart == s.LineEnd {
		return fmt.Sprintf("line %d, characters %d-%d", s.LineStart, s.CharStart, s.CharEnd)
	}
	return fmt.Sprintf("line %d, character %d - line %d, character %d",
		s.LineStart, s.CharStart, s.LineEnd, s.CharEnd)
}

// Contains reports whether p lies within s.
func (s Span) Contains(p Pos) bool {
	if p.Line < s.LineStart || p.Line > s.LineEnd {
		return false
	}
	if p.Line == s.LineStart && p.CharStart < s.CharStart {
		return false
	}
	if p.Line == s.LineEnd && p.CharEnd > s.CharEnd {
		return false
	}
	return true
}

// Spanning returns the smallest Span covering both a and b.
func Spanning(a, b Span) Span {
	out := a
	if b.LineStart < out.LineStart ||
		(b.LineStart == out.LineStart && b.CharStart < out.CharStart) {
		out.LineStart = b.LineStart
		out.CharStart = b.CharStart
	}
	if b.LineEnd > out.LineEnd ||
		(b.LineEnd == out.LineEnd && b.CharEnd > out.CharEnd) {
		out.LineEnd = b.LineEnd
		out.CharEnd = b.CharEnd
	}
	return out
}

// Index converts byte offsets within one content string to line/column
// positions. It is built once per parse and shared by every token.
type Index struct {
	// lineStarts[i] is the byte offset where line i+1 begins.
	lineStarts []int
}

// NewIndex scans content and records where each line starts.
func NewIndex(content string) *Index {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{lineStarts: starts}
}

// lineCol resolves a byte offset to a 1-based (line, column) pair.
func (ix *Index) lineCol(offset int) (int, int) {
	lo, hi := 0, len(ix.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - ix.lineStarts[lo] + 1
}

// PosFor converts the half-open byte range [start, end) to a Pos. Callers
// must not split the range across lines; tokens never do.
func (ix *Index) PosFor(start, end int) Pos {
	line, col := ix.lineCol(start)
	width := end - start
	if width < 1 {
		width = 1
	}
	return Pos{Line: line, CharStart: col, CharEnd: col + width - 1}
}

// SpanFor converts the half-open byte range [start, end) to a Span.
func (ix *Index) SpanFor(start, end int) Span {
	startLine, startCol := ix.lineCol(start)
	if end <= start {
		end = start + 1
	}
	endLine, endCol := ix.lineCol(end - 1)
	return Span{LineStart: startLine, CharStart: startCol, LineEnd: endLine, CharEnd: endCol}
}
