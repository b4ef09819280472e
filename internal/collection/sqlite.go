package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/dbx"
)

// SQLiteRepository implements Repository on the local sqlite database.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts the capsule's wire JSON by id in a single statement, so a
// revision replaces the previous representation atomically.
func (r *SQLiteRepository) Save(ctx context.Context, c *capsule.Capsule) error {
	body, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize capsule: %w", err)
	}

	query := `INSERT INTO capsules (id, body, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET body = excluded.body
	`
	if _, err := r.db.ExecContext(ctx, query, c.ID, string(body), c.Metadata.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert capsule: %w", err)
	}
	return nil
}

// GetByID returns a single capsule.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*capsule.Capsule, error) {
	query := `SELECT body FROM capsules WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to read capsule: %w", err)
	}
	return capsule.Unmarshal([]byte(body))
}

// GetAll lists the gallery, newest first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*capsule.Capsule, error) {
	query := `SELECT body FROM capsules ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select capsules: %w", err)
	}
	defer rows.Close()

	var result []*capsule.Capsule
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		c, err := capsule.Unmarshal([]byte(body))
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a capsule from the gallery.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM capsules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete capsule: %w", err)
	}
	return nil
}
