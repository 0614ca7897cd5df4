package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stitchbook/internal/logging"
	"stitchbook/internal/progress"
	"stitchbook/internal/project"
	"stitchbook/internal/selection"
	"stitchbook/internal/store"
)

// Mark places progress inside one component: the 1-based row occurrence and
// a selection within that row's stitch list.
type Mark struct {
	Component int
	Row       int
	Position  selection.Position
}

// StartRecord begins tracking a new copy of the owner's project. Components
// declared with count > 1 become one component per instance.
func (s *Service) StartRecord(ctx context.Context, owner, projectID string) (*project.Record, error) {
	p, err := s.store.GetProject(ctx, owner, projectID)
	if err != nil {
		return nil, err
	}
	rec := project.NewRecord(*p)
	rec.ID = uuid.NewString()
	if err := s.store.SetRecord(ctx, &rec); err != nil {
		return nil, err
	}
	ctx = recordContext(ctx, owner, rec.ID)
	s.logger.InfoContext(ctx, "record started",
		logging.String(logging.FieldEventType, "record_started"),
		logging.String(logging.FieldProject, projectID),
		logging.Int("components", len(rec.ComponentList)),
	)
	return &rec, nil
}

// Record returns the owner's record.
func (s *Service) Record(ctx context.Context, owner, id string) (*project.Record, error) {
	return s.store.GetRecord(ctx, owner, id)
}

// Records lists the owner's records, most recently worked first.
func (s *Service) Records(ctx context.Context, owner string) ([]store.RecordSummary, error) {
	return s.store.ListRecordSummaries(ctx, owner)
}

// RecordsForProject lists the records started from one project.
func (s *Service) RecordsForProject(ctx context.Context, owner, projectID string) ([]*project.Record, error) {
	return s.store.ListRecordsByProject(ctx, owner, projectID)
}

// DeleteRecord removes the owner's record.
func (s *Service) DeleteRecord(ctx context.Context, owner, id string) error {
	ctx = recordContext(ctx, owner, id)
	return s.withLock(ctx, lockKindRecord, id, func() error {
		if err := s.store.DeleteRecord(ctx, owner, id); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "record deleted", logging.String(logging.FieldEventType, "record_deleted"))
		return nil
	})
}

// Advance moves a component's end_at to mark. The crochet count is the
// stitches generated up to the marked selection, clamped to the row. The
// current time slot is extended, or a new one opened after a long pause, and
// snapshots every component's progress.
func (s *Service) Advance(ctx context.Context, owner, recordID string, mark Mark) (*project.Record, error) {
	return s.advance(ctx, owner, recordID, mark.Component, mark.Row, func(row *project.Row) int {
		return selection.ComputeGenerateDone(mark.Position.Path, mark.Position.Counts, row.Content.StitchNodeList)
	})
}

// AdvanceStitches is Advance with the position given as stitches generated
// within the row. The count snaps to the end of the stitch holding it.
func (s *Service) AdvanceStitches(ctx context.Context, owner, recordID string, component, row, stitches int) (*project.Record, error) {
	return s.advance(ctx, owner, recordID, component, row, func(r *project.Row) int {
		list := r.Content.StitchNodeList
		if len(list) == 0 {
			return stitches
		}
		pos := selection.Locate(list, stitches)
		return selection.ComputeGenerateDone(pos.Path, pos.Counts, list)
	})
}

func (s *Service) advance(ctx context.Context, owner, recordID string, component, rowOccurrence int, done func(*project.Row) int) (*project.Record, error) {
	ctx = recordContext(ctx, owner, recordID)
	var (
		saved  *project.Record
		endAt  project.EndAt
		opened bool
	)
	err := s.withLock(ctx, lockKindRecord, recordID, func() error {
		rec, err := s.store.GetRecord(ctx, owner, recordID)
		if err != nil {
			return err
		}
		c, err := componentAt(rec.ComponentList, component)
		if err != nil {
			return err
		}
		row, ok := progress.LocateRow(c, rowOccurrence)
		if !ok {
			return outOfRange("row", rowOccurrence)
		}
		endAt = project.EndAt{
			RowIndex:     rowOccurrence,
			CrochetCount: progress.ClampCrochetCount(done(row), row.Generate()),
		}
		c.EndAt = &endAt

		var slots []project.TimeSlot
		slots, opened = stampTimeSlot(rec, s.now())
		merged, err := s.store.MergeRecord(ctx, owner, recordID, store.RecordPatch{
			ComponentList: &rec.ComponentList,
			TimeSlots:     &slots,
		})
		if err != nil {
			return err
		}
		saved = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "record advanced",
		logging.String(logging.FieldEventType, "record_advanced"),
		logging.Int("component", component+1),
		logging.Int("row", endAt.RowIndex),
		logging.Int("crochet_count", endAt.CrochetCount),
		logging.Bool("new_session", opened),
	)
	return saved, nil
}

// stampTimeSlot extends the last time slot to now, or opens a new one when
// there is none or the last ended more than sessionGap ago, and snapshots
// every component's end_at into it.
func stampTimeSlot(rec *project.Record, now time.Time) ([]project.TimeSlot, bool) {
	slots := append([]project.TimeSlot(nil), rec.TimeSlots...)
	opened := false
	last := len(slots) - 1
	if last < 0 || now.Sub(slotEnd(slots[last])) > sessionGap {
		slots = append(slots, project.TimeSlot{Start: now})
		last = len(slots) - 1
		opened = true
	}
	slots[last].End = now
	slots[last].EndAtList = rec.EndAtSnapshot()
	return slots, opened
}

func slotEnd(slot project.TimeSlot) time.Time {
	if slot.End.IsZero() {
		return slot.Start
	}
	return slot.End
}
