package tracker

import (
	"context"
	"errors"
	"fmt"

	"stitchbook/internal/catalog"
	"stitchbook/internal/logging"
	"stitchbook/internal/pattern"
	"stitchbook/internal/project"
)

// RowRef addresses one row by its 0-based component and row-list positions.
type RowRef struct {
	Component int
	Row       int
}

// CreateProject stores p for owner under a fresh id.
func (s *Service) CreateProject(ctx context.Context, owner string, p *project.Project) (*project.Project, error) {
	if p == nil {
		return nil, errors.New("create project: nil project")
	}
	p.ID = ""
	p.OwnerID = owner
	p.Normalize()
	id, err := s.store.CreateProject(ctx, p)
	if err != nil {
		return nil, err
	}
	ctx = projectContext(ctx, owner, id)
	s.logger.InfoContext(ctx, "project created",
		logging.String(logging.FieldEventType, "project_created"),
		logging.String("name", p.Name),
		logging.Int("components", len(p.ComponentList)),
	)
	return p, nil
}

// ImportProject decodes a project document and stores it as a new project.
// Every row is canonicalized on the way in.
func (s *Service) ImportProject(ctx context.Context, owner string, data []byte, format project.Format) (*project.Project, error) {
	p, err := project.DecodeProject(data, format)
	if err != nil {
		return nil, fmt.Errorf("import project: %w", err)
	}
	for c := range p.ComponentList {
		rows := p.ComponentList[c].Content.RowList
		for r := range rows {
			rows[r].Canonicalize()
		}
	}
	return s.CreateProject(ctx, owner, p)
}

// Project returns the owner's project.
func (s *Service) Project(ctx context.Context, owner, id string) (*project.Project, error) {
	return s.store.GetProject(ctx, owner, id)
}

// Projects lists the owner's projects, most recently updated first.
func (s *Service) Projects(ctx context.Context, owner string) ([]*project.Project, error) {
	return s.store.ListProjects(ctx, owner)
}

// ExportProject renders the owner's project as an importable document.
func (s *Service) ExportProject(ctx context.Context, owner, id string, format project.Format) (*project.Project, []byte, error) {
	p, err := s.store.GetProject(ctx, owner, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := project.EncodeProject(p, format)
	if err != nil {
		return nil, nil, err
	}
	s.logger.DebugContext(projectContext(ctx, owner, id), "project exported",
		logging.String(logging.FieldEventType, "project_exported"),
		logging.String("format", string(format)),
		logging.Int("bytes", len(data)),
	)
	return p, data, nil
}

// DeleteProject removes the owner's project. Records started from it stay.
func (s *Service) DeleteProject(ctx context.Context, owner, id string) error {
	ctx = projectContext(ctx, owner, id)
	return s.withLock(ctx, lockKindProject, id, func() error {
		if err := s.store.DeleteProject(ctx, owner, id); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "project deleted", logging.String(logging.FieldEventType, "project_deleted"))
		return nil
	})
}

// AppendStitch adds a stitch to the end of one row.
func (s *Service) AppendStitch(ctx context.Context, owner, projectID string, ref RowRef, stitchID int, mode pattern.Mode) (project.Row, error) {
	if _, ok := catalog.Lookup(stitchID); !ok {
		return project.Row{}, fmt.Errorf("append stitch %d: %w", stitchID, ErrUnknownStitch)
	}
	return s.editRow(ctx, owner, projectID, ref, "stitch_appended", func(row *project.Row) {
		row.Content.StitchNodeList = pattern.AppendStitch(row.Content.StitchNodeList, stitchID, mode)
	}, logging.Int("stitch_id", stitchID), logging.String("mode", mode.String()))
}

// Adjust turns the row's last stitch into an increase or decrease.
func (s *Service) Adjust(ctx context.Context, owner, projectID string, ref RowRef, adj pattern.Adjust) (project.Row, error) {
	if _, ok := catalog.Lookup(adj.StitchID); !ok {
		return project.Row{}, fmt.Errorf("adjust stitch %d: %w", adj.StitchID, ErrUnknownStitch)
	}
	return s.editRow(ctx, owner, projectID, ref, "stitch_adjusted", func(row *project.Row) {
		row.Content.StitchNodeList = pattern.ApplyAdjust(row.Content.StitchNodeList, adj)
	}, logging.Int("stitch_id", adj.StitchID), logging.String("variant", adj.Variant.String()))
}

// CanonicalizeRow rewrites one row into canonical form.
func (s *Service) CanonicalizeRow(ctx context.Context, owner, projectID string, ref RowRef) (project.Row, error) {
	return s.editRow(ctx, owner, projectID, ref, "row_canonicalized", func(row *project.Row) {
		row.Canonicalize()
	})
}

// AddRow appends an empty row to a component and returns its position.
func (s *Service) AddRow(ctx context.Context, owner, projectID string, component int) (int, error) {
	position := 0
	_, err := s.editProject(ctx, owner, projectID, "row_added", func(p *project.Project) error {
		c, err := componentAt(p.ComponentList, component)
		if err != nil {
			return err
		}
		position = c.AddRow()
		return nil
	}, logging.Int("component", component+1))
	return position, err
}

// SetRowCount sets how many times a row is worked and renumbers the rows
// after it.
func (s *Service) SetRowCount(ctx context.Context, owner, projectID string, ref RowRef, count int) error {
	_, err := s.editProject(ctx, owner, projectID, "row_count_set", func(p *project.Project) error {
		c, err := componentAt(p.ComponentList, ref.Component)
		if err != nil {
			return err
		}
		if !c.SetRowCount(ref.Row, count) {
			return outOfRange("row", ref.Row+1)
		}
		return nil
	}, logging.Int("row", ref.Row+1), logging.Int("count", count))
	return err
}

// GroupRows repeats rows first..last (0-based, inclusive) of a component as a
// unit and returns the new group index.
func (s *Service) GroupRows(ctx context.Context, owner, projectID string, component, first, last, repeat int) (int, error) {
	index := 0
	_, err := s.editProject(ctx, owner, projectID, "rows_grouped", func(p *project.Project) error {
		c, err := componentAt(p.ComponentList, component)
		if err != nil {
			return err
		}
		var ok bool
		index, ok = c.GroupRows(first, last, repeat)
		if !ok {
			return fmt.Errorf("group rows %d-%d x%d: %w", first+1, last+1, repeat, ErrOutOfRange)
		}
		return nil
	}, logging.Int("first", first+1), logging.Int("last", last+1), logging.Int("repeat", repeat))
	return index, err
}

func (s *Service) editRow(ctx context.Context, owner, projectID string, ref RowRef, event string, fn func(*project.Row), attrs ...logging.Attr) (project.Row, error) {
	var edited project.Row
	attrs = append(attrs, logging.Int("component", ref.Component+1), logging.Int("row", ref.Row+1))
	_, err := s.editProject(ctx, owner, projectID, event, func(p *project.Project) error {
		row, err := rowAt(p.ComponentList, ref)
		if err != nil {
			return err
		}
		fn(row)
		project.RefreshRowStats(row)
		edited = row.Clone()
		return nil
	}, attrs...)
	return edited, err
}

// editProject loads the project under its lock, applies fn and saves the
// normalized result.
func (s *Service) editProject(ctx context.Context, owner, projectID, event string, fn func(*project.Project) error, attrs ...logging.Attr) (*project.Project, error) {
	ctx = projectContext(ctx, owner, projectID)
	var saved *project.Project
	err := s.withLock(ctx, lockKindProject, projectID, func() error {
		p, err := s.store.GetProject(ctx, owner, projectID)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		p.Normalize()
		if err := s.store.UpdateProject(ctx, p); err != nil {
			return err
		}
		saved = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	attrs = append(attrs, logging.String(logging.FieldEventType, event))
	s.logger.InfoContext(ctx, "project updated", logging.Args(attrs...)...)
	return saved, nil
}

func componentAt(list []project.Component, index int) (*project.Component, error) {
	if index < 0 || index >= len(list) {
		return nil, outOfRange("component", index+1)
	}
	return &list[index], nil
}

func rowAt(list []project.Component, ref RowRef) (*project.Row, error) {
	c, err := componentAt(list, ref.Component)
	if err != nil {
		return nil, err
	}
	if ref.Row < 0 || ref.Row >= len(c.Content.RowList) {
		return nil, outOfRange("row", ref.Row+1)
	}
	return &c.Content.RowList[ref.Row], nil
}
