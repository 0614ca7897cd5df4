package project

import (
	"testing"

	"stitchbook/internal/catalog"
	"stitchbook/internal/pattern"
)

func sampleComponent() Component {
	row := NewRow(1)
	row.Content.StitchNodeList = pattern.List{pattern.Repeated(catalog.SingleCrochet, 6)}
	return Component{
		Name:  "sleeve",
		Count: 2,
		EndAt: &EndAt{RowIndex: 1, CrochetCount: 3},
		Content: ComponentContent{
			RowList:   []Row{row, NewRow(2), NewRow(3)},
			RowGroups: []RowGroup{},
		},
	}
}

func TestGroupRows(t *testing.T) {
	c := sampleComponent()
	index, ok := c.GroupRows(1, 2, 3)
	if !ok || index != 0 {
		t.Fatalf("expected group 0, got %d (ok=%v)", index, ok)
	}
	if g, found := c.Group(0); !found || g.RepeatCount != 3 {
		t.Fatalf("expected registered group with repeat 3, got %+v", g)
	}
	if c.Content.RowList[0].Grouped() || !c.Content.RowList[2].Grouped() {
		t.Fatalf("unexpected membership after grouping")
	}

	second, ok := c.GroupRows(0, 1, 2)
	if !ok || second != 1 {
		t.Fatalf("expected group 1, got %d", second)
	}
	if *c.Content.RowList[1].GroupIndex != 1 || *c.Content.RowList[2].GroupIndex != 0 {
		t.Fatalf("expected regrouped rows to move to the new group")
	}
	if len(c.Content.RowGroups) != 2 {
		t.Fatalf("expected both groups still referenced, got %d", len(c.Content.RowGroups))
	}

	third, _ := c.GroupRows(0, 2, 1)
	if len(c.Content.RowGroups) != 1 || c.Content.RowGroups[0].Index != third {
		t.Fatalf("expected unreferenced groups pruned, got %+v", c.Content.RowGroups)
	}

	if _, ok := c.GroupRows(2, 1, 1); ok {
		t.Fatalf("expected inverted range to be rejected")
	}
}

func TestExpandComponents(t *testing.T) {
	single := sampleComponent()
	single.Name = "body"
	single.Count = 0
	list := []Component{sampleComponent(), single}

	expanded := ExpandComponents(list, true)
	if len(expanded) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(expanded))
	}
	for i, c := range expanded {
		if c.Count != 1 || c.EndAt != nil {
			t.Fatalf("instance %d: expected count 1 without progress, got %+v", i, c)
		}
	}
	if inst := expanded[1].Instance; inst == nil || *inst != (Instance{BaseIndex: 0, Index: 2, Total: 2}) {
		t.Fatalf("unexpected instance metadata %+v", inst)
	}
	if expanded[2].Instance != nil {
		t.Fatalf("expected no metadata on single components")
	}
	if got := expanded[1].DisplayName(); got != "sleeve #2" {
		t.Fatalf("unexpected display name %q", got)
	}

	expanded[0].Content.RowList[0].Content.StitchNodeList[0].(*pattern.Pattern).Count = 99
	if list[0].Content.RowList[0].Content.StitchNodeList[0].Repeat() != 6 {
		t.Fatalf("expected expansion to deep copy rows")
	}
	if list[0].EndAt == nil {
		t.Fatalf("expected source progress untouched")
	}
}

func TestExpandComponentsKeepsProgress(t *testing.T) {
	expanded := ExpandComponents([]Component{sampleComponent()}, false)
	if expanded[0].EndAt == nil || expanded[1].EndAt.CrochetCount != 3 {
		t.Fatalf("expected progress copied to every instance")
	}
	expanded[0].EndAt.CrochetCount = 1
	if expanded[1].EndAt.CrochetCount != 3 {
		t.Fatalf("expected independent progress markers")
	}
}
