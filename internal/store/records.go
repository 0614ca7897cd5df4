package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stitchbook/internal/project"
)

// RecordSummary is the listing view of a record.
type RecordSummary struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	LatestStart time.Time `json:"latest_start,omitzero"`
}

// RecordPatch names the record fields MergeRecord replaces. Nil fields are
// left unchanged.
type RecordPatch struct {
	ProjectName   *string
	ComponentList *[]project.Component
	TimeSlots     *[]project.TimeSlot
}

// SetRecord writes the whole record document. created_at is kept when the
// caller supplies one and set to now otherwise.
func (s *Store) SetRecord(ctx context.Context, r *project.Record) error {
	if r == nil {
		return errors.New("set record: nil record")
	}
	if err := require(r.OwnerID, ErrMissingOwner); err != nil {
		return fmt.Errorf("set record: %w", err)
	}
	if err := require(r.ID, ErrMissingRecord); err != nil {
		return fmt.Errorf("set record: %w", err)
	}
	now := s.now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return writeRecord(ctx, tx, r)
	})
	if err != nil {
		return fmt.Errorf("set record: %w", err)
	}
	return nil
}

// GetRecord fetches the owner's record and expands any components still
// declaring count > 1.
func (s *Store) GetRecord(ctx context.Context, owner, id string) (*project.Record, error) {
	if err := require(owner, ErrMissingOwner); err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if err := require(id, ErrMissingRecord); err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	var doc string
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT document_json FROM records WHERE owner_id = ? AND id = ?`, owner, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return project.DecodeRecord([]byte(doc), project.FormatJSON)
}

// MergeRecord replaces the fields set in patch and never touches created_at.
func (s *Store) MergeRecord(ctx context.Context, owner, id string, patch RecordPatch) (*project.Record, error) {
	if err := require(owner, ErrMissingOwner); err != nil {
		return nil, fmt.Errorf("merge record: %w", err)
	}
	if err := require(id, ErrMissingRecord); err != nil {
		return nil, fmt.Errorf("merge record: %w", err)
	}
	var merged *project.Record
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var doc string
		err := tx.QueryRowContext(ctx,
			`SELECT document_json FROM records WHERE owner_id = ? AND id = ?`, owner, id,
		).Scan(&doc)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("record %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		r, err := project.DecodeRecord([]byte(doc), project.FormatJSON)
		if err != nil {
			return err
		}
		if patch.ProjectName != nil {
			r.ProjectName = *patch.ProjectName
		}
		if patch.ComponentList != nil {
			r.ComponentList = *patch.ComponentList
		}
		if patch.TimeSlots != nil {
			r.TimeSlots = *patch.TimeSlots
		}
		r.UpdatedAt = s.now()
		merged = r
		return writeRecord(ctx, tx, r)
	})
	if err != nil {
		return nil, fmt.Errorf("merge record: %w", err)
	}
	return merged, nil
}

// DeleteRecord removes the owner's record.
func (s *Store) DeleteRecord(ctx context.Context, owner, id string) error {
	if err := require(owner, ErrMissingOwner); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if err := require(id, ErrMissingRecord); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	var affected int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM records WHERE owner_id = ? AND id = ?`, owner, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete record %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListRecordsByProject returns the owner's records for one project, newest
// first time slot first. Records without time slots come last.
func (s *Store) ListRecordsByProject(ctx context.Context, owner, projectID string) ([]*project.Record, error) {
	if err := require(owner, ErrMissingOwner); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if err := require(projectID, ErrMissingProject); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT document_json FROM records WHERE owner_id = ? AND project_id = ?
         ORDER BY first_start_ms DESC, id`, owner, projectID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*project.Record
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r, err := project.DecodeRecord([]byte(doc), project.FormatJSON)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListRecordSummaries returns every record of the owner, most recently
// worked first.
func (s *Store) ListRecordSummaries(ctx context.Context, owner string) ([]RecordSummary, error) {
	if err := require(owner, ErrMissingOwner); err != nil {
		return nil, fmt.Errorf("list record summaries: %w", err)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, project_id, project_name, latest_start_ms FROM records WHERE owner_id = ?
         ORDER BY latest_start_ms DESC, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("list record summaries: %w", err)
	}
	defer rows.Close()

	var summaries []RecordSummary
	for rows.Next() {
		var (
			summary  RecordSummary
			latestMS int64
		)
		if err := rows.Scan(&summary.ID, &summary.ProjectID, &summary.ProjectName, &latestMS); err != nil {
			return nil, fmt.Errorf("scan record summary: %w", err)
		}
		if latestMS > 0 {
			summary.LatestStart = time.UnixMilli(latestMS).UTC()
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func writeRecord(ctx context.Context, tx *sql.Tx, r *project.Record) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (
            id, owner_id, project_id, project_name, document_json,
            created_at, updated_at, first_start_ms, latest_start_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (owner_id, id) DO UPDATE SET
            project_id = excluded.project_id,
            project_name = excluded.project_name,
            document_json = excluded.document_json,
            updated_at = excluded.updated_at,
            first_start_ms = excluded.first_start_ms,
            latest_start_ms = excluded.latest_start_ms`,
		r.ID, r.OwnerID, r.ProjectID, r.ProjectName, string(doc),
		formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
		unixMillis(r.FirstStart()), unixMillis(r.LatestStart()),
	)
	return err
}
