package assets

import (
	"context"
	"database/sql"
	"time"
)

type Repository interface {
	Create(ctx context.Context, asset *Asset) error
	Get(ctx context.Context, id string) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
	Delete(ctx context.Context, id string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a *Asset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (id, name, file_path, kind, duration_ms, width, height, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.FilePath, string(a.Kind), a.DurationMs, a.Width, a.Height, a.SizeBytes, a.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Asset, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, file_path, kind, duration_ms, width, height, size_bytes, created_at
		FROM assets WHERE id = ?
	`, id)

	var a Asset
	var kind, createdAt string
	err := row.Scan(&a.ID, &a.Name, &a.FilePath, &kind, &a.DurationMs, &a.Width, &a.Height, &a.SizeBytes, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Kind = Kind(kind)
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &a, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*Asset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, file_path, kind, duration_ms, width, height, size_bytes, created_at
		FROM assets ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Asset
	for rows.Next() {
		var a Asset
		var kind, createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.FilePath, &kind, &a.DurationMs, &a.Width, &a.Height, &a.SizeBytes, &createdAt); err != nil {
			return nil, err
		}
		a.Kind = Kind(kind)
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM assets WHERE id = ?", id)
	return err
}
