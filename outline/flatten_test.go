package outline

import "testing"

const flattenFixture = `function first(): void {}
class Outer {
  const HIDDEN = 1;
  public function one(): void {}
  private string $invisible;
  public static function two(): void {}
}
trait Helper {
  protected function assist(): void {}
}
function last(): void {}
`

// Pins forward pre-order: entries come out in source declaration order, a
// container immediately followed by its visible members.
func TestFlattenForwardPreOrder(t *testing.T) {
	entries := Flatten(FromSource(flattenFixture))
	want := []struct {
		name string
		kind string
	}{
		{"first", "function"},
		{"Outer", "class"},
		{"Outer::one", "method"},
		{"Outer::two", "static method"},
		{"Helper", "class"},
		{"Helper::assist", "method"},
		{"last", "function"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(entries), entries)
	}
	for i, w := range want {
		if entries[i].Name != w.name || entries[i].Kind != w.kind {
			t.Fatalf("entry %d: got (%q, %q), want (%q, %q)",
				i, entries[i].Name, entries[i].Kind, w.name, w.kind)
		}
	}
}

func TestFlattenContainersAllBecomeClass(t *testing.T) {
	src := "interface I {}\ntrait T {}\nenum E: int {}\nclass C {}"
	entries := Flatten(FromSource(src))
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Kind != "class" {
			t.Fatalf("container %s flattened to %q, want class", e.Name, e.Kind)
		}
	}
}

func TestFlattenInvisibleKinds(t *testing.T) {
	src := `class A {
  const X = 1;
  abstract const type T;
  private int $p;
}`
	entries := Flatten(FromSource(src))
	if len(entries) != 1 || entries[0].Name != "A" {
		t.Fatalf("properties, consts, and typeconsts must not flatten: %+v", entries)
	}
}

func TestFlattenQualifiedNameJoinsAncestors(t *testing.T) {
	defs := FromSource("class A { public function m(): void {} }")
	// synthesize a nested container to exercise multi-level prefixes
	inner := defs[0]
	forest := []Def{{
		Kind:     KindClass,
		Name:     "Wrapper",
		Pos:      inner.Pos,
		Span:     inner.Span,
		Children: []Def{inner},
	}}
	entries := Flatten(forest)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[2].Name != "Wrapper::A::m" {
		t.Fatalf("qualified name wrong: %q", entries[2].Name)
	}
}

func TestFlattenEmptyForest(t *testing.T) {
	if got := Flatten(nil); len(got) != 0 {
		t.Fatalf("expected no entries, got %+v", got)
	}
}
