package tracker

import (
	"context"

	"stitchbook/internal/progress"
	"stitchbook/internal/project"
	"stitchbook/internal/selection"
)

// ComponentProgress summarizes one component of a record.
type ComponentProgress struct {
	Name      string         `json:"name"`
	EndAt     *project.EndAt `json:"end_at"`
	Generated int            `json:"generated"`
	Total     int            `json:"total"`
	Percent   int            `json:"percent"`
}

// Location resolves a component's end_at to the row and the selection
// inside it.
type Location struct {
	Component string             `json:"component"`
	EndAt     *project.EndAt     `json:"end_at"`
	Row       *project.Row       `json:"row,omitempty"`
	Position  selection.Position `json:"position"`
}

// Progress reports completion for every component of the owner's record.
func (s *Service) Progress(ctx context.Context, owner, recordID string) ([]ComponentProgress, error) {
	rec, err := s.store.GetRecord(ctx, owner, recordID)
	if err != nil {
		return nil, err
	}
	out := make([]ComponentProgress, 0, len(rec.ComponentList))
	for i := range rec.ComponentList {
		c := &rec.ComponentList[i]
		out = append(out, ComponentProgress{
			Name:      c.DisplayName(),
			EndAt:     c.EndAt,
			Generated: progress.Generated(c),
			Total:     progress.TotalGenerate(c),
			Percent:   progress.Percent(c),
		})
	}
	return out, nil
}

// Locate maps a component's end_at back onto its row. A component without
// progress yields a Location with no row.
func (s *Service) Locate(ctx context.Context, owner, recordID string, component int) (Location, error) {
	rec, err := s.store.GetRecord(ctx, owner, recordID)
	if err != nil {
		return Location{}, err
	}
	c, err := componentAt(rec.ComponentList, component)
	if err != nil {
		return Location{}, err
	}
	loc := Location{Component: c.DisplayName(), EndAt: c.EndAt}
	if c.EndAt == nil {
		return loc, nil
	}
	row, ok := progress.LocateRow(c, c.EndAt.RowIndex)
	if !ok {
		return loc, nil
	}
	clone := row.Clone()
	loc.Row = &clone
	loc.Position = selection.Locate(row.Content.StitchNodeList, c.EndAt.CrochetCount)
	return loc, nil
}
