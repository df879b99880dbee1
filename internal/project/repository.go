package project

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	SaveClips(ctx context.Context, records []ClipRecord) error
	LoadClips(ctx context.Context) ([]ClipRecord, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// SaveClips replaces the stored clip set with the given snapshot in one
// transaction. The position column preserves insertion order per track.
func (r *SQLiteRepository) SaveClips(ctx context.Context, records []ClipRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM clips"); err != nil {
		return fmt.Errorf("clear clips: %w", err)
	}

	for i, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO clips (id, name, file_path, track_index, start_time, duration, in_point, out_point, color, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.Name, rec.FilePath, rec.TrackIndex, rec.StartTime, rec.Duration, rec.InPoint, rec.OutPoint, rec.Color, i)
		if err != nil {
			return fmt.Errorf("insert clip %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) LoadClips(ctx context.Context) ([]ClipRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, file_path, track_index, start_time, duration, in_point, out_point, color
		FROM clips ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ClipRecord
	for rows.Next() {
		var rec ClipRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.FilePath, &rec.TrackIndex,
			&rec.StartTime, &rec.Duration, &rec.InPoint, &rec.OutPoint, &rec.Color); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
