package syntax

import "testing"

func parseDecls(t *testing.T, src string) []Decl {
	t.Helper()
	tree, _ := Parse(src)
	if tree == nil {
		t.Fatal("nil tree")
	}
	return tree.Decls
}

func TestParseFunction(t *testing.T) {
	decls := parseDecls(t, "<?hh\nfunction foo(int $a, string $b): void {\n  return;\n}\n")
	if len(decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(decls))
	}
	fn, ok := decls[0].(*FunctionDecl)
	if !ok {
		t.Fatalf("expected function, got %T", decls[0])
	}
	if fn.Name.Name != "foo" || fn.Async {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if fn.Name.Pos.Line != 2 || fn.Name.Pos.CharStart != 10 || fn.Name.Pos.CharEnd != 12 {
		t.Fatalf("unexpected name pos: %+v", fn.Name.Pos)
	}
	if fn.Span.LineStart != 2 || fn.Span.LineEnd != 4 {
		t.Fatalf("unexpected span: %+v", fn.Span)
	}
}

func TestParseAsyncFunction(t *testing.T) {
	decls := parseDecls(t, "async function gen(): Awaitable<void> { await g(); }")
	fn, ok := decls[0].(*FunctionDecl)
	if !ok || !fn.Async {
		t.Fatalf("expected async function, got %#v", decls[0])
	}
	if fn.Span.CharStart != 1 {
		t.Fatalf("span should start at async keyword: %+v", fn.Span)
	}
}

func TestParseClassKindsAndFlags(t *testing.T) {
	cases := []struct {
		src      string
		kind     ClassKind
		abstract bool
		final    bool
	}{
		{"class A {}", ClassKindClass, false, false},
		{"abstract class A {}", ClassKindClass, true, false},
		{"final class A {}", ClassKindClass, false, true},
		{"abstract final class A {}", ClassKindClass, true, true},
		{"interface I {}", ClassKindInterface, false, false},
		{"trait T {}", ClassKindTrait, false, false},
		{"enum E: int { A = 1; B = 2; }", ClassKindEnum, false, false},
	}
	for _, c := range cases {
		decls := parseDecls(t, c.src)
		cls, ok := decls[0].(*ClassDecl)
		if !ok {
			t.Fatalf("%q: expected class, got %T", c.src, decls[0])
		}
		if cls.Kind != c.kind || cls.Abstract != c.abstract || cls.Final != c.final {
			t.Fatalf("%q: got kind=%v abstract=%v final=%v", c.src, cls.Kind, cls.Abstract, cls.Final)
		}
	}
}

func TestEnumEntriesProduceNoMembers(t *testing.T) {
	decls := parseDecls(t, "enum Flags: int {\n  FIRST = 1;\n  SECOND = 2;\n}")
	cls := decls[0].(*ClassDecl)
	if len(cls.Members) != 0 {
		t.Fatalf("enum entries should not be members, got %d", len(cls.Members))
	}
}

func TestParseMethodModifiersInSourceOrder(t *testing.T) {
	decls := parseDecls(t, "trait MyTrait {\n  protected static function foo(): int {\n    return 4;\n  }\n}")
	cls := decls[0].(*ClassDecl)
	if cls.Kind != ClassKindTrait || cls.Name.Name != "MyTrait" {
		t.Fatalf("unexpected class: %+v", cls)
	}
	if len(cls.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(cls.Members))
	}
	m := cls.Members[0].(*MethodDecl)
	if m.Name.Name != "foo" || m.Async {
		t.Fatalf("unexpected method: %+v", m)
	}
	want := []ModifierKeyword{KeywordProtected, KeywordStatic}
	if len(m.Modifiers) != 2 || m.Modifiers[0] != want[0] || m.Modifiers[1] != want[1] {
		t.Fatalf("unexpected modifiers: %v", m.Modifiers)
	}
}

func TestParseAsyncMethod(t *testing.T) {
	decls := parseDecls(t, "class A { public static async function genFoo(): Awaitable<int> { return 1; } }")
	m := decls[0].(*ClassDecl).Members[0].(*MethodDecl)
	if !m.Async {
		t.Fatal("expected async method")
	}
	if len(m.Modifiers) != 2 || m.Modifiers[0] != KeywordPublic || m.Modifiers[1] != KeywordStatic {
		t.Fatalf("unexpected modifiers: %v", m.Modifiers)
	}
}

func TestParsePropertyGroup(t *testing.T) {
	decls := parseDecls(t, "class A {\n  private int $x = 3, $y;\n  public $z;\n  var $old;\n}")
	cls := decls[0].(*ClassDecl)
	if len(cls.Members) != 3 {
		t.Fatalf("expected 3 property groups, got %d", len(cls.Members))
	}
	first := cls.Members[0].(*PropertyDecl)
	if len(first.Vars) != 2 || first.Vars[0].Name != "x" || first.Vars[1].Name != "y" {
		t.Fatalf("unexpected vars: %+v", first.Vars)
	}
	if len(first.Modifiers) != 1 || first.Modifiers[0] != KeywordPrivate {
		t.Fatalf("unexpected modifiers: %v", first.Modifiers)
	}
	old := cls.Members[2].(*PropertyDecl)
	if len(old.Modifiers) != 0 || old.Vars[0].Name != "old" {
		t.Fatalf("var-style property mishandled: %+v", old)
	}
}

func TestParseConstGroup(t *testing.T) {
	decls := parseDecls(t, "class A {\n  const int X = 1, Y = 2 + 3;\n}")
	cls := decls[0].(*ClassDecl)
	c := cls.Members[0].(*ConstDecl)
	if len(c.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(c.Entries))
	}
	if c.Entries[0].Name.Name != "X" || c.Entries[1].Name.Name != "Y" {
		t.Fatalf("unexpected names: %+v", c.Entries)
	}
	// span runs from the name through the initializer
	x := c.Entries[0]
	if x.Span.CharStart != x.Name.Pos.CharStart || x.Span.CharEnd <= x.Name.Pos.CharEnd {
		t.Fatalf("const span should cover initializer: %+v", x)
	}
}

func TestParseAbstractConst(t *testing.T) {
	decls := parseDecls(t, "abstract class A {\n  abstract const int BAR;\n}")
	cls := decls[0].(*ClassDecl)
	c, ok := cls.Members[0].(*AbstractConstDecl)
	if !ok {
		t.Fatalf("expected abstract const, got %T", cls.Members[0])
	}
	if c.Name.Name != "BAR" {
		t.Fatalf("unexpected name: %+v", c.Name)
	}
}

func TestParseTypeConst(t *testing.T) {
	decls := parseDecls(t, "abstract class A {\n  abstract const type T;\n  const type U = int;\n}")
	cls := decls[0].(*ClassDecl)
	if len(cls.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(cls.Members))
	}
	tc := cls.Members[0].(*TypeConstDecl)
	if tc.Name.Name != "T" || !tc.Abstract {
		t.Fatalf("unexpected typeconst: %+v", tc)
	}
	tc = cls.Members[1].(*TypeConstDecl)
	if tc.Name.Name != "U" || tc.Abstract {
		t.Fatalf("unexpected typeconst: %+v", tc)
	}
}

func TestParseAttributeMember(t *testing.T) {
	decls := parseDecls(t, "class :my-elem extends :x:element {}\nclass B {\n  attribute int count = 0, string label;\n}")
	var cls *ClassDecl
	for _, d := range decls {
		if c, ok := d.(*ClassDecl); ok && c.Name.Name == "B" {
			cls = c
		}
	}
	if cls == nil {
		t.Fatal("class B not parsed")
	}
	attr := cls.Members[0].(*AttributeDecl)
	if len(attr.Vars) != 2 || attr.Vars[0].Name != "count" || attr.Vars[1].Name != "label" {
		t.Fatalf("unexpected attribute vars: %+v", attr.Vars)
	}
}

func TestParseUseRequireCategory(t *testing.T) {
	src := `class A {
  use SomeTrait;
  require extends Base;
  category %flow;
  public function m(): void {}
}`
	cls := parseDecls(t, src)[0].(*ClassDecl)
	if len(cls.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(cls.Members))
	}
	if _, ok := cls.Members[0].(*UseDecl); !ok {
		t.Fatalf("expected use, got %T", cls.Members[0])
	}
	if _, ok := cls.Members[1].(*RequireDecl); !ok {
		t.Fatalf("expected require, got %T", cls.Members[1])
	}
	if _, ok := cls.Members[2].(*CategoryDecl); !ok {
		t.Fatalf("expected category, got %T", cls.Members[2])
	}
	if _, ok := cls.Members[3].(*MethodDecl); !ok {
		t.Fatalf("expected method, got %T", cls.Members[3])
	}
}

func TestNamespaceBlockAndStatement(t *testing.T) {
	src := `namespace NS;
function a(): void {}
namespace Other {
  function b(): void {}
}`
	decls := parseDecls(t, src)
	var names []string
	for _, d := range decls {
		if fn, ok := d.(*FunctionDecl); ok {
			names = append(names, fn.Name.Name)
		}
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected functions: %v", names)
	}
}

func TestUserAttributesSkipped(t *testing.T) {
	src := `<<Sealed(A::class)>>
class A {
  <<Memoize, Deprecated("old")>>
  public function m(): int { return 1; }
}`
	cls := parseDecls(t, src)[0].(*ClassDecl)
	if len(cls.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(cls.Members))
	}
	if _, ok := cls.Members[0].(*MethodDecl); !ok {
		t.Fatalf("expected method, got %T", cls.Members[0])
	}
}

func TestBestEffortOnBrokenSource(t *testing.T) {
	src := `function broken(
class Still {
  public function here(): void {}
}`
	tree, diags := Parse(src)
	if tree == nil {
		t.Fatal("tree should never be nil")
	}
	if len(diags) == 0 {
		t.Fatal("expected diagnostics for broken source")
	}
}

func TestStringsAndCommentsIgnored(t *testing.T) {
	src := `// class NotReal {}
/* function fake() {} */
function real(): string {
  return "class Fake { } $x";
}
# trait AlsoFake {}
`
	decls := parseDecls(t, src)
	if len(decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(decls))
	}
	fn := decls[0].(*FunctionDecl)
	if fn.Name.Name != "real" {
		t.Fatalf("unexpected name: %s", fn.Name.Name)
	}
}

func TestHeredocIgnored(t *testing.T) {
	src := "function h(): string {\n  return <<<EOT\nclass Fake {}\nEOT;\n}\nfunction tail(): void {}"
	decls := parseDecls(t, src)
	if len(decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(decls))
	}
}
