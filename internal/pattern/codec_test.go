package pattern

import (
	"encoding/json"
	"testing"
)

func TestMarshalWritesPersistedShape(t *testing.T) {
	list := List{
		Repeated(4, 2),
		NewBundle(Stitch{StitchID: 4, Count: 1}, Stitch{StitchID: 4, Count: 1}),
		&Pattern{Items: List{NewStitch(7)}, Count: 3, Label: "edge"},
		NewStitch(1),
	}
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[` +
		`{"type":"pattern","pattern":[{"type":"stitch","stitch_id":4}],"count":2,"consume":2,"generate":2},` +
		`{"type":"bundle","bundle":[{"type":"stitch","stitch_id":4},{"type":"stitch","stitch_id":4}],"consume":1,"generate":2,"count":1},` +
		`{"type":"pattern","pattern":[{"type":"stitch","stitch_id":7}],"count":3,"consume":3,"generate":3,"label":"edge"},` +
		`{"type":"stitch","stitch_id":1}` +
		`]`
	if string(data) != want {
		t.Fatalf("unexpected JSON:\n got %s\nwant %s", data, want)
	}
}

func TestMarshalNilListIsEmptyArray(t *testing.T) {
	var list List
	data, err := json.Marshal(struct {
		Items List `json:"items"`
	}{Items: list})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"items":[]}` {
		t.Fatalf("unexpected JSON %s", data)
	}
}

func TestUnmarshalRecomputesAndDegrades(t *testing.T) {
	input := `[
		{"type":"stitch","stitch_id":4,"count":3},
		{"type":"pattern","pattern":[{"type":"stitch","stitch_id":5}],"count":6,"consume":999,"generate":999},
		{"type":"bundle","bundle":[{"type":"stitch","stitch_id":4},{"type":"pattern","pattern":[]}],"consume":0,"generate":7},
		{"type":"mystery","stitch_id":4},
		{"type":"stitch"}
	]`
	var list List
	if err := json.Unmarshal([]byte(input), &list); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 decoded nodes, got %d (%s)", len(list), DescribeList(list))
	}
	if s, ok := list[0].(*Stitch); !ok || s.StitchID != 4 || s.Count != 3 {
		t.Fatalf("unexpected first node %#v", list[0])
	}
	if got := Of(list[1]); got != (Stats{Consume: 6, Generate: 12}) {
		t.Fatalf("stale persisted stats should be ignored, got %+v", got)
	}
	b, ok := list[2].(*Bundle)
	if !ok || len(b.Items) != 1 || b.BaseConsume() != 1 {
		t.Fatalf("unexpected bundle %#v", list[2])
	}
}

func TestCodecRoundTripPreservesShape(t *testing.T) {
	for name, list := range sampleLists() {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(List(list))
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded List
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !Equal(decoded, list) {
				t.Fatalf("round trip changed shape: %s -> %s", DescribeList(list), DescribeList(decoded))
			}
		})
	}
}

func TestUnmarshalNull(t *testing.T) {
	list := List{NewStitch(4)}
	if err := json.Unmarshal([]byte("null"), &list); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if list != nil {
		t.Fatalf("expected nil list, got %v", list)
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{NewStitch(4), "X"},
		{&Stitch{StitchID: 1, Count: 3}, "3ch"},
		{NewStitch(99), "?"},
		{Repeated(10, 4), "4F"},
		{NewBundle(Stitch{StitchID: 4}, Stitch{StitchID: 7, Count: 2}), "(X, T, T)"},
		{&Bundle{Items: []Stitch{{StitchID: 4}}, Consume: 1, Count: 2}, "2(X)"},
		{NewPattern(6, Repeated(4, 2), NewStitch(5)), "[2X, V] * 6"},
	}
	for _, tc := range cases {
		if got := Describe(tc.node); got != tc.want {
			t.Fatalf("Describe: got %q want %q", got, tc.want)
		}
	}
}
