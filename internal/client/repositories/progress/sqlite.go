package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/learnkit/internal/client/models"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ Repository = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Save(ctx context.Context, p models.Progress) error {
	return r.save(ctx, r.db, p)
}

func (r *SQLiteRepository) save(ctx context.Context, db dbtx, p models.Progress) error {
	if p.CourseID == "" {
		return errors.New("progress snapshot without course id")
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode progress[%s]: %w", p.CourseID, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO progress_snapshots (course_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(course_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, p.CourseID, payload, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save progress[%s]: %w", p.CourseID, err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, ps []models.Progress) error {
	return withTx(ctx, r.db, func(ctx context.Context, tx dbtx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM progress_snapshots`); err != nil {
			return fmt.Errorf("failed to clear progress: %w", err)
		}
		for _, p := range ps {
			if err := r.save(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Get(ctx context.Context, courseID string) (*Snapshot, error) {
	var (
		payload   []byte
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, updated_at FROM progress_snapshots WHERE course_id = ?`, courseID,
	).Scan(&payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress[%s]: %w", courseID, err)
	}

	s, err := decodeSnapshot(payload, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode progress[%s]: %w", courseID, err)
	}
	return &s, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT course_id, payload, updated_at FROM progress_snapshots ORDER BY course_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var result []Snapshot
	for rows.Next() {
		var (
			courseID  string
			payload   []byte
			updatedAt int64
		)
		if err := rows.Scan(&courseID, &payload, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		s, err := decodeSnapshot(payload, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to decode progress[%s]: %w", courseID, err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate progress rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress_snapshots`); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

func decodeSnapshot(payload []byte, updatedAt int64) (Snapshot, error) {
	var p models.Progress
	if err := json.Unmarshal(payload, &p); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Progress: p, UpdatedAt: time.UnixMilli(updatedAt)}, nil
}

// withTx commits when fn succeeds and rolls back otherwise. Panics are
// rethrown after the rollback.
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbtx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
