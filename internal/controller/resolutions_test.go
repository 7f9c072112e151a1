package controller

import (
	"testing"

	m "github.com/mouse-blink/undefender/internal/model"
)

func sampleTable() m.ResolutionTable {
	table := m.NewResolutionTable()
	table.Blocks[`Z.b("x")`] = "console.log(1);"
	table.Values["Z[1]"] = m.ResolvedValue{Text: `"b"`, Kind: m.KindString}
	table.Values["Z[0]"] = m.ResolvedValue{Text: `"a"`, Kind: m.KindString}
	table.Expressions["(1+2)"] = m.ResolvedValue{Text: "3", Kind: m.KindNumber}

	return table
}

func TestSortedResolutions_OrdersByKindThenFragment(t *testing.T) {
	items := sortedResolutions(sampleTable())

	want := []resolutionItem{
		{kind: m.FragmentAccess, fragment: "Z[0]", replacement: `"a"`},
		{kind: m.FragmentAccess, fragment: "Z[1]", replacement: `"b"`},
		{kind: m.FragmentArithmetic, fragment: "(1+2)", replacement: "3"},
		{kind: m.FragmentBlock, fragment: `Z.b("x")`, replacement: "console.log(1);"},
	}

	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}

	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("items[%d] = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestSortedResolutions_Empty(t *testing.T) {
	if items := sortedResolutions(m.ResolutionTable{}); len(items) != 0 {
		t.Fatalf("sortedResolutions(empty) = %v", items)
	}
}
