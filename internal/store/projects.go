package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"stitchbook/internal/project"
)


// CreateProject inserts p, assigning an id when it has none. Timestamps are
// always set by the store.
func (s *Store) CreateProject(ctx context.Context, p *project.Project) (string, error) {
	if p == nil {
		return "", errors.New("create project: nil project")
	}
	if err := require(p.OwnerID, ErrMissingOwner); err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	doc, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal project: %w", err)
	}
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, owner_id, name, document_json, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.OwnerID, p.Name, string(doc), formatTime(now), formatTime(now),
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("insert project: %w", err)
	}
	return p.ID, nil
}

// GetProject fetches the owner's project by id.
func (s *Store) GetProject(ctx context.Context, owner, id string) (*project.Project, error) {
	if err := require(owner, ErrMissingOwner); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := require(id, ErrMissingProject); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	var doc string
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT document_json FROM projects WHERE owner_id = ? AND id = ?`, owner, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return decodeProject(doc)
}

// UpdateProject replaces the stored document. The stored created_at always
// wins over the caller's value.
func (s *Store) UpdateProject(ctx context.Context, p *project.Project) error {
	if p == nil {
		return errors.New("update project: nil project")
	}
	if err := require(p.OwnerID, ErrMissingOwner); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if err := require(p.ID, ErrMissingProject); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var createdRaw string
		err := tx.QueryRowContext(ctx,
			`SELECT created_at FROM projects WHERE owner_id = ? AND id = ?`, p.OwnerID, p.ID,
		).Scan(&createdRaw)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
		}
		if err != nil {
			return err
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			p.CreatedAt = created
		}
		p.UpdatedAt = s.now()

		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal project: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE projects SET name = ?, document_json = ?, updated_at = ? WHERE owner_id = ? AND id = ?`,
			p.Name, string(doc), formatTime(p.UpdatedAt), p.OwnerID, p.ID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// DeleteProject removes the owner's project. Records made from it are kept.
func (s *Store) DeleteProject(ctx context.Context, owner, id string) error {
	if err := require(owner, ErrMissingOwner); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := require(id, ErrMissingProject); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	var affected int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE owner_id = ? AND id = ?`, owner, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete project %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListProjects returns the owner's projects, most recently updated first.
func (s *Store) ListProjects(ctx context.Context, owner string) ([]*project.Project, error) {
	if err := require(owner, ErrMissingOwner); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT document_json FROM projects WHERE owner_id = ? ORDER BY updated_at DESC, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p, err := decodeProject(doc)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func decodeProject(doc string) (*project.Project, error) {
	p, err := project.DecodeProject([]byte(doc), project.FormatJSON)
	if err != nil {
		return nil, err
	}
	return p, nil
}
