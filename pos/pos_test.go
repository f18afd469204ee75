package pos

import "testing"

func TestIndexLineCol(t *testing.T) {
	ix := NewIndex("abc\ndef\n\nghi")
	cases := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{6, 2, 3},
		{8, 3, 1},
		{9, 4, 1},
		{11, 4, 3},
	}
	for _, c := range cases {
		line, col := ix.lineCol(c.offset)
		if line != c.line || col != c.col {
			t.Fatalf("offset %d: got %d:%d, want %d:%d", c.offset, line, col, c.line, c.col)
		}
	}
}

func TestPosForInclusiveEnd(t *testing.T) {
	ix := NewIndex("trait MyTrait {}")
	p := ix.PosFor(6, 13)
	if p.Line != 1 || p.CharStart != 7 || p.CharEnd != 13 {
		t.Fatalf("unexpected pos: %+v", p)
	}
	if p.String() != "line 1, characters 7-13" {
		t.Fatalf("unexpected string: %s", p.String())
	}
}

func TestSpanForMultiline(t *testing.T) {
	content := "class A {\n  public function b() {}\n}"
	ix := NewIndex(content)
	s := ix.SpanFor(0, len(content))
	if s.LineStart != 1 || s.CharStart != 1 || s.LineEnd != 3 || s.CharEnd != 1 {
		t.Fatalf("unexpected span: %+v", s)
	}
	if s.String() != "line 1, character 1 - line 3, character 1" {
		t.Fatalf("unexpected string: %s", s.String())
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{LineStart: 2, CharStart: 5, LineEnd: 4, CharEnd: 3}
	if !s.Contains(Pos{Line: 3, CharStart: 1, CharEnd: 80}) {
		t.Fatal("interior line should be contained")
	}
	if !s.Contains(Pos{Line: 2, CharStart: 5, CharEnd: 9}) {
		t.Fatal("start boundary should be contained")
	}
	if s.Contains(Pos{Line: 2, CharStart: 4, CharEnd: 4}) {
		t.Fatal("before start should not be contained")
	}
	if s.Contains(Pos{Line: 4, CharStart: 2, CharEnd: 7}) {
		t.Fatal("past end should not be contained")
	}
}

func TestSpanning(t *testing.T) {
	a := Span{LineStart: 3, CharStart: 2, LineEnd: 3, CharEnd: 9}
	b := Span{LineStart: 1, CharStart: 5, LineEnd: 6, CharEnd: 1}
	got := Spanning(a, b)
	want := Span{LineStart: 1, CharStart: 5, LineEnd: 6, CharEnd: 1}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got := Spanning(b, a); got != want {
		t.Fatalf("spanning not symmetric: %+v", got)
	}
}
