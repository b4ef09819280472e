package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// Put upserts the sealed record by capsule id.
func (r *SQLiteRepository) Put(ctx context.Context, rec *Record) error {
	query := `INSERT INTO vaults (capsule_id, payload, nonce)
			VALUES (?, ?, ?)
			ON CONFLICT(capsule_id) DO UPDATE SET payload = excluded.payload,
				nonce = excluded.nonce
	`
	_, err := r.db.ExecContext(ctx, query, rec.CapsuleID, rec.Payload, rec.Nonce)
	if err != nil {
		return fmt.Errorf("failed to upsert vault record: %w", err)
	}
	return nil
}

// Get returns the sealed record for a capsule id.
func (r *SQLiteRepository) Get(ctx context.Context, capsuleID string) (*Record, error) {
	query := `SELECT capsule_id, payload, nonce FROM vaults WHERE capsule_id = ?`
	row := r.db.QueryRowContext(ctx, query, capsuleID)

	rec := &Record{}
	if err := row.Scan(&rec.CapsuleID, &rec.Payload, &rec.Nonce); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to read vault record: %w", err)
	}
	return rec, nil
}

// Delete removes the record for a capsule id, if present.
func (r *SQLiteRepository) Delete(ctx context.Context, capsuleID string) error {
	query := `DELETE FROM vaults WHERE capsule_id = ?`
	if _, err := r.db.ExecContext(ctx, query, capsuleID); err != nil {
		return fmt.Errorf("failed to delete vault record: %w", err)
	}
	return nil
}
