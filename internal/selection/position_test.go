package selection

import (
	"reflect"
	"testing"

	"stitchbook/internal/catalog"
	"stitchbook/internal/pattern"
)

func indices(path Path) []int {
	out := make([]int, len(path))
	for i, r := range path {
		out[i] = r.Index()
	}
	return out
}

func TestFromGeneratedSelectsCompletedFinalNode(t *testing.T) {
	row := []pattern.Node{
		pattern.Repeated(catalog.SingleCrochet, 8),
		pattern.NewStitch(catalog.SingleCrochetIncrease),
	}
	if got := pattern.ListStats(row, 1).Generate; got != 10 {
		t.Fatalf("expected row generate 10, got %d", got)
	}

	path := FromGenerated(row, 10)
	if !reflect.DeepEqual(indices(path), []int{1}) || !path[0].IsSingle() {
		t.Fatalf("expected final node selected, got %v", indices(path))
	}
	if done := ComputeGenerateDone(path, nil, row); done != 10 {
		t.Fatalf("expected 10 generated, got %d", done)
	}
}

func TestLocateFullyCompletesRepeatedNode(t *testing.T) {
	row := []pattern.Node{pattern.Repeated(catalog.SingleCrochet, 10)}
	pos := Locate(row, 10)
	if !reflect.DeepEqual(indices(pos.Path), []int{0}) {
		t.Fatalf("unexpected path %v", indices(pos.Path))
	}
	if !reflect.DeepEqual(pos.Counts, []int{10}) {
		t.Fatalf("expected counts [10], got %v", pos.Counts)
	}
	if done := ComputeGenerateDone(pos.Path, pos.Counts, row); done != 10 {
		t.Fatalf("expected 10 generated, got %d", done)
	}
}

func TestLocateBoundaryStaysInCompletedRepeat(t *testing.T) {
	row := []pattern.Node{
		pattern.NewPattern(3, pattern.NewStitch(catalog.SingleCrochet), pattern.NewStitch(catalog.HalfDoubleCrochet)),
	}
	tests := []struct {
		target int
		path   []int
		counts []int
	}{
		{target: 3, path: []int{0, 0}, counts: []int{2}},
		{target: 4, path: []int{0, 1}, counts: []int{2}},
		{target: 6, path: []int{0, 1}, counts: []int{3}},
	}
	for _, tt := range tests {
		pos := Locate(row, tt.target)
		if !reflect.DeepEqual(indices(pos.Path), tt.path) {
			t.Fatalf("target %d: expected path %v, got %v", tt.target, tt.path, indices(pos.Path))
		}
		if !reflect.DeepEqual(pos.Counts, tt.counts) {
			t.Fatalf("target %d: expected counts %v, got %v", tt.target, tt.counts, pos.Counts)
		}
		if done := ComputeGenerateDone(pos.Path, pos.Counts, row); done != tt.target {
			t.Fatalf("target %d: round trip gave %d", tt.target, done)
		}
	}
}

func TestLocateFallsBackToLastNode(t *testing.T) {
	row := []pattern.Node{
		pattern.NewStitch(catalog.SingleCrochet),
		pattern.Repeated(catalog.SingleCrochet, 3),
	}
	pos := Locate(row, 99)
	if !reflect.DeepEqual(indices(pos.Path), []int{1}) || !reflect.DeepEqual(pos.Counts, []int{3}) {
		t.Fatalf("unexpected fallback %v %v", indices(pos.Path), pos.Counts)
	}
	if done := ComputeGenerateDone(pos.Path, pos.Counts, row); done != 4 {
		t.Fatalf("expected whole row, got %d", done)
	}
}

func TestLocateEmptyList(t *testing.T) {
	pos := Locate(nil, 5)
	if len(pos.Path) != 0 {
		t.Fatalf("expected empty path, got %v", indices(pos.Path))
	}
	if done := ComputeGenerateDone(pos.Path, pos.Counts, nil); done != 0 {
		t.Fatalf("expected 0, got %d", done)
	}
}

func TestLocateRoundTrip(t *testing.T) {
	row := []pattern.Node{
		pattern.Repeated(catalog.SingleCrochet, 3),
		pattern.NewPattern(2,
			pattern.NewStitch(catalog.SingleCrochet),
			pattern.NewBundle(pattern.Stitch{StitchID: catalog.SingleCrochet, Count: 1}, pattern.Stitch{StitchID: catalog.DoubleCrochet, Count: 1}),
		),
		pattern.NewStitch(catalog.HalfDoubleCrochet),
	}
	total := pattern.ListStats(row, 1).Generate
	if total != 10 {
		t.Fatalf("expected generate 10, got %d", total)
	}
	for n := 0; n <= total; n++ {
		pos := Locate(row, n)
		if done := ComputeGenerateDone(pos.Path, pos.Counts, row); done != n {
			t.Fatalf("target %d: round trip gave %d (path %v counts %v)", n, done, indices(pos.Path), pos.Counts)
		}
		if done := ComputeGenerateDone(pos.Path, nil, row); done > total {
			t.Fatalf("target %d: default counts overshoot row: %d", n, done)
		}
	}
}

func TestLocateRoundsUpInsideAtomicStitch(t *testing.T) {
	row := []pattern.Node{
		pattern.NewStitch(catalog.SingleCrochetIncrease),
		pattern.Repeated(catalog.SingleCrochet, 2),
	}
	pos := Locate(row, 1)
	if done := ComputeGenerateDone(pos.Path, pos.Counts, row); done != 2 {
		t.Fatalf("expected the increase to complete, got %d", done)
	}
}

func TestComputeGenerateDoneStopsAtEmptyLevel(t *testing.T) {
	row := []pattern.Node{
		pattern.Repeated(catalog.SingleCrochet, 2),
		pattern.NewPattern(2, pattern.NewStitch(catalog.SingleCrochet), pattern.NewStitch(catalog.SingleCrochet)),
	}
	path := Path{Single(1), None()}
	if done := ComputeGenerateDone(path, []int{2}, row); done != 4 {
		t.Fatalf("expected prior siblings plus one completed repeat, got %d", done)
	}
}

func TestLocateRoundsUpInsideRepeatedIncrease(t *testing.T) {
	row := []pattern.Node{pattern.Repeated(catalog.SingleCrochetIncrease, 3)}
	tests := []struct {
		target int
		done   int
	}{
		{target: 0, done: 0},
		{target: 1, done: 2},
		{target: 2, done: 2},
		{target: 3, done: 4},
		{target: 6, done: 6},
	}
	for _, tt := range tests {
		pos := Locate(row, tt.target)
		if done := ComputeGenerateDone(pos.Path, pos.Counts, row); done != tt.done {
			t.Fatalf("target %d: expected %d, got %d (counts %v)", tt.target, tt.done, done, pos.Counts)
		}
	}
}
