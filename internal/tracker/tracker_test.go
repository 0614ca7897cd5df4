package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stitchbook/internal/catalog"
	"stitchbook/internal/config"
	"stitchbook/internal/pattern"
	"stitchbook/internal/project"
	"stitchbook/internal/selection"
	"stitchbook/internal/store"
	"stitchbook/internal/testsupport"
	"stitchbook/internal/tracker"
)

const owner = testsupport.DefaultOwner

type fixture struct {
	cfg     *config.Config
	svc     *tracker.Service
	project *project.Project
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	f := &fixture{
		cfg: cfg,
		svc: tracker.NewFromConfig(cfg, st, nil),
		now: time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC),
	}
	tracker.SetClock(f.svc, func() time.Time { return f.now })

	p, err := f.svc.CreateProject(context.Background(), owner, testsupport.SampleProject("someone-else"))
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	f.project = p
	return f
}

func (f *fixture) reload(t *testing.T) *project.Project {
	t.Helper()
	p, err := f.svc.Project(context.Background(), owner, f.project.ID)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	return p
}

func TestCreateProjectAssignsOwner(t *testing.T) {
	f := newFixture(t)
	if f.project.OwnerID != owner {
		t.Fatalf("owner = %q, want %q", f.project.OwnerID, owner)
	}
	list, err := f.svc.Projects(context.Background(), owner)
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != f.project.ID {
		t.Fatalf("unexpected project list: %#v", list)
	}
}

func TestAppendStitchAndAdjust(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	position, err := f.svc.AddRow(ctx, owner, f.project.ID, 0)
	if err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	if position != 3 {
		t.Fatalf("new row position = %d, want 3", position)
	}
	ref := tracker.RowRef{Component: 0, Row: position}
	for i := 0; i < 3; i++ {
		if _, err := f.svc.AppendStitch(ctx, owner, f.project.ID, ref, catalog.SingleCrochet, pattern.ModeNormal); err != nil {
			t.Fatalf("AppendStitch failed: %v", err)
		}
	}
	row, err := f.svc.Adjust(ctx, owner, f.project.ID, ref, pattern.Adjust{Variant: catalog.Increase, StitchID: catalog.SingleCrochet})
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if row.Generate() != 4 || row.Content.Generate != 4 {
		t.Fatalf("row generate = %d (cached %d), want 4", row.Generate(), row.Content.Generate)
	}
	if got := pattern.DescribeList(row.Content.StitchNodeList); got == "" {
		t.Fatal("expected a description for the edited row")
	}

	stored := f.reload(t).ComponentList[0].Content.RowList[3]
	if stored.RowIndex != 4 || stored.Content.Generate != 4 {
		t.Fatalf("stored row = index %d generate %d", stored.RowIndex, stored.Content.Generate)
	}
}

func TestSameStitchAppendsBuildBundle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	position, err := f.svc.AddRow(ctx, owner, f.project.ID, 0)
	if err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}
	ref := tracker.RowRef{Component: 0, Row: position}
	for _, id := range []int{catalog.DoubleCrochet, catalog.DoubleCrochet, catalog.Chain} {
		if _, err := f.svc.AppendStitch(ctx, owner, f.project.ID, ref, id, pattern.ModeSameStitch); err != nil {
			t.Fatalf("AppendStitch failed: %v", err)
		}
	}
	row := f.reload(t).ComponentList[0].Content.RowList[position]
	if len(row.Content.StitchNodeList) != 1 {
		t.Fatalf("expected a single bundle, got %d nodes", len(row.Content.StitchNodeList))
	}
	if row.Content.Consume != 1 || row.Content.Generate != 3 {
		t.Fatalf("bundle stats = %d/%d, want 1/3", row.Content.Consume, row.Content.Generate)
	}

	canonical, err := f.svc.CanonicalizeRow(ctx, owner, f.project.ID, ref)
	if err != nil {
		t.Fatalf("CanonicalizeRow failed: %v", err)
	}
	if canonical.Content.Generate != 3 {
		t.Fatalf("canonicalize changed stats: %d", canonical.Content.Generate)
	}
}

func TestEditErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
		want error
	}{
		{"unknown stitch", func() error {
			_, err := f.svc.AppendStitch(ctx, owner, f.project.ID, tracker.RowRef{}, 99, pattern.ModeNormal)
			return err
		}, tracker.ErrUnknownStitch},
		{"component out of range", func() error {
			_, err := f.svc.AddRow(ctx, owner, f.project.ID, 5)
			return err
		}, tracker.ErrOutOfRange},
		{"row out of range", func() error {
			return f.svc.SetRowCount(ctx, owner, f.project.ID, tracker.RowRef{Component: 0, Row: 9}, 2)
		}, tracker.ErrOutOfRange},
		{"bad group", func() error {
			_, err := f.svc.GroupRows(ctx, owner, f.project.ID, 0, 2, 1, 2)
			return err
		}, tracker.ErrOutOfRange},
		{"missing project", func() error {
			_, err := f.svc.AddRow(ctx, owner, "absent", 0)
			return err
		}, store.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSetRowCountRenumbers(t *testing.T) {
	f := newFixture(t)
	if err := f.svc.SetRowCount(context.Background(), owner, f.project.ID, tracker.RowRef{Component: 0, Row: 0}, 2); err != nil {
		t.Fatalf("SetRowCount failed: %v", err)
	}
	rows := f.reload(t).ComponentList[0].Content.RowList
	want := []int{1, 3, 4}
	for i, r := range rows {
		if r.RowIndex != want[i] {
			t.Fatalf("row %d index = %d, want %d", i, r.RowIndex, want[i])
		}
	}
}

func TestGroupRows(t *testing.T) {
	f := newFixture(t)
	index, err := f.svc.GroupRows(context.Background(), owner, f.project.ID, 0, 1, 2, 3)
	if err != nil {
		t.Fatalf("GroupRows failed: %v", err)
	}
	body := f.reload(t).ComponentList[0]
	group, ok := body.Group(index)
	if !ok || group.RepeatCount != 3 {
		t.Fatalf("group %d missing or wrong repeat: %+v", index, group)
	}
	if body.Content.RowList[0].Grouped() || !body.Content.RowList[1].Grouped() || !body.Content.RowList[2].Grouped() {
		t.Fatal("unexpected group membership")
	}
}

func TestEditFailsWhileLocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	release, err := store.NewLocker(f.cfg.LockDir(), 0).Acquire(ctx, "project", f.project.ID)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer release()

	_, err = f.svc.AppendStitch(ctx, owner, f.project.ID, tracker.RowRef{}, catalog.SingleCrochet, pattern.ModeNormal)
	if !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestImportProjectCanonicalizesRows(t *testing.T) {
	f := newFixture(t)
	doc := []byte(`
name: Coaster
cast_on: 1
component_list:
  - name: disc
    count: 1
    content:
      row_list:
        - row_index: 1
          count: 1
          content:
            stitch_node_list:
              - type: bundle
                consume: 1
                count: 1
                bundle:
                  - {type: stitch, stitch_id: 4}
                  - {type: stitch, stitch_id: 4}
      row_groups: []
`)
	p, err := f.svc.ImportProject(context.Background(), owner, doc, project.FormatYAML)
	if err != nil {
		t.Fatalf("ImportProject failed: %v", err)
	}
	list := p.ComponentList[0].Content.RowList[0].Content.StitchNodeList
	if len(list) != 1 {
		t.Fatalf("expected one node, got %d", len(list))
	}
	s, ok := list[0].(*pattern.Stitch)
	if !ok || s.StitchID != catalog.SingleCrochetIncrease {
		t.Fatalf("expected increase stitch, got %#v", list[0])
	}
	if p.ID == f.project.ID || p.OwnerID != owner {
		t.Fatalf("import must create a new owned project: %#v", p)
	}
}

func TestExportProjectReimports(t *testing.T) {
	f := newFixture(t)
	for _, format := range []project.Format{project.FormatJSON, project.FormatYAML} {
		exported, data, err := f.svc.ExportProject(context.Background(), owner, f.project.ID, format)
		if err != nil {
			t.Fatalf("%s: ExportProject failed: %v", format, err)
		}
		if exported.ID != f.project.ID {
			t.Fatalf("%s: exported %q, want %q", format, exported.ID, f.project.ID)
		}
		copied, err := f.svc.ImportProject(context.Background(), owner, data, format)
		if err != nil {
			t.Fatalf("%s: ImportProject failed: %v", format, err)
		}
		if copied.ID == f.project.ID || copied.Name != f.project.Name || len(copied.ComponentList) != 2 {
			t.Fatalf("%s: unexpected copy %#v", format, copied)
		}
		if got := copied.ComponentList[0].Content.RowList[2].Stats().Generate; got != 18 {
			t.Fatalf("%s: body row 3 generate = %d, want 18", format, got)
		}
	}

	if _, _, err := f.svc.ExportProject(context.Background(), "intruder", f.project.ID, project.FormatJSON); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner, got %v", err)
	}
}

func TestRecordProgressFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.StartRecord(ctx, owner, f.project.ID)
	if err != nil {
		t.Fatalf("StartRecord failed: %v", err)
	}
	if len(rec.ComponentList) != 3 || len(rec.TimeSlots) != 0 {
		t.Fatalf("unexpected new record: %d components, %d slots", len(rec.ComponentList), len(rec.TimeSlots))
	}

	rec, err = f.svc.AdvanceStitches(ctx, owner, rec.ID, 0, 2, 5)
	if err != nil {
		t.Fatalf("AdvanceStitches failed: %v", err)
	}
	body := rec.ComponentList[0]
	if body.EndAt == nil || body.EndAt.RowIndex != 2 || body.EndAt.CrochetCount != 6 {
		t.Fatalf("end_at = %+v, want row 2 count 6", body.EndAt)
	}
	if len(rec.TimeSlots) != 1 {
		t.Fatalf("expected one time slot, got %d", len(rec.TimeSlots))
	}
	snapshot := rec.TimeSlots[0].EndAtList
	if len(snapshot) != 3 || snapshot[0] == nil || snapshot[0].CrochetCount != 6 || snapshot[1] != nil {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	f.now = f.now.Add(10 * time.Minute)
	pos, err := selection.Parse("1x4/2", f.project.ComponentList[0].Content.RowList[2].Content.StitchNodeList)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	rec, err = f.svc.Advance(ctx, owner, rec.ID, tracker.Mark{Component: 0, Row: 3, Position: pos})
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := rec.ComponentList[0].EndAt; got.RowIndex != 3 || got.CrochetCount != 12 {
		t.Fatalf("end_at = %+v, want row 3 count 12", got)
	}
	if len(rec.TimeSlots) != 1 || !rec.TimeSlots[0].End.Equal(f.now) {
		t.Fatalf("expected the slot to be extended to %v: %+v", f.now, rec.TimeSlots)
	}

	f.now = f.now.Add(2 * time.Hour)
	rec, err = f.svc.AdvanceStitches(ctx, owner, rec.ID, 2, 5, 8)
	if err != nil {
		t.Fatalf("AdvanceStitches ear failed: %v", err)
	}
	if len(rec.TimeSlots) != 2 {
		t.Fatalf("expected a new slot after a long pause, got %d", len(rec.TimeSlots))
	}

	report, err := f.svc.Progress(ctx, owner, rec.ID)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	want := []tracker.ComponentProgress{
		{Name: "body", Generated: 30, Total: 36, Percent: 83},
		{Name: "ear #1", Generated: 0, Total: 28, Percent: 0},
		{Name: "ear #2", Generated: 28, Total: 28, Percent: 100},
	}
	for i, w := range want {
		got := report[i]
		if got.Name != w.Name || got.Generated != w.Generated || got.Total != w.Total || got.Percent != w.Percent {
			t.Fatalf("component %d: got %+v, want %+v", i, got, w)
		}
	}

	loc, err := f.svc.Locate(ctx, owner, rec.ID, 0)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if loc.Row == nil {
		t.Fatal("expected a located row")
	}
	if text := selection.Format(loc.Position, loc.Row.Content.StitchNodeList); text != "1x4/2" {
		t.Fatalf("located position = %q, want 1x4/2", text)
	}

	empty, err := f.svc.Locate(ctx, owner, rec.ID, 1)
	if err != nil || empty.Row != nil || empty.EndAt != nil {
		t.Fatalf("expected no location for untouched component: %+v %v", empty, err)
	}
}

func TestAdvanceRejectsMissingRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec, err := f.svc.StartRecord(ctx, owner, f.project.ID)
	if err != nil {
		t.Fatalf("StartRecord failed: %v", err)
	}
	if _, err := f.svc.AdvanceStitches(ctx, owner, rec.ID, 1, 6, 1); !errors.Is(err, tracker.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := f.svc.DeleteRecord(ctx, owner, rec.ID); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	if _, err := f.svc.Record(ctx, owner, rec.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
