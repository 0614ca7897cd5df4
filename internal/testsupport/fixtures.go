package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"stitchbook/internal/catalog"
	"stitchbook/internal/pattern"
	"stitchbook/internal/project"
)

// SampleProject builds a two-component amigurumi ball: a body worked in
// three rows and a pair of ears declared with count 2.
//
// Body rows generate 6, 12 and 18 stitches. Rows 2 and 3 of the ears form a
// group repeated twice.
func SampleProject(owner string) *project.Project {
	body := project.Component{
		Name:  "body",
		Count: 1,
		Content: project.ComponentContent{
			RowList: []project.Row{
				sampleRow(1, pattern.List{pattern.Repeated(catalog.SingleCrochet, 6)}),
				sampleRow(2, pattern.List{pattern.Repeated(catalog.SingleCrochetIncrease, 6)}),
				sampleRow(3, pattern.List{pattern.NewPattern(6,
					pattern.NewStitch(catalog.SingleCrochet),
					pattern.NewStitch(catalog.SingleCrochetIncrease),
				)}),
			},
			RowGroups: []project.RowGroup{},
		},
	}

	group := 1
	ears := project.Component{
		Name:  "ear",
		Count: 2,
		Content: project.ComponentContent{
			RowList: []project.Row{
				sampleRow(1, pattern.List{pattern.Repeated(catalog.SingleCrochet, 4)}),
				groupedRow(2, &group, pattern.List{pattern.Repeated(catalog.SingleCrochet, 4)}),
				groupedRow(3, &group, pattern.List{pattern.Repeated(catalog.SingleCrochetIncrease, 4)}),
			},
			RowGroups: []project.RowGroup{{Index: group, RepeatCount: 2}},
		},
	}

	p := &project.Project{
		OwnerID:       owner,
		Name:          "Ball",
		CastOn:        0,
		ComponentList: []project.Component{body, ears},
	}
	p.Normalize()
	return p
}

func sampleRow(index int, list pattern.List) project.Row {
	row := project.NewRow(index)
	row.Content.StitchNodeList = list
	project.RefreshRowStats(&row)
	return row
}

func groupedRow(index int, group *int, list pattern.List) project.Row {
	row := sampleRow(index, list)
	g := *group
	row.GroupIndex = &g
	return row
}

// WriteDocument marshals doc as JSON into dir/name and returns the path.
func WriteDocument(t testing.TB, dir, name string, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
