package offers

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

func (r *SQLiteRepository) Add(ctx context.Context, o *Offer) error {
	query := `INSERT INTO offers (id, capsule_id, field, label, amount, currency, from_party, created_at, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.CapsuleID, o.Field, o.Label, o.Amount, o.Currency, o.From, o.CreatedAt, string(o.Status))
	if err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Offer, error) {
	query := `SELECT id, capsule_id, field, label, amount, currency, from_party, created_at, status
			FROM offers WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)
	o, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to read offer: %w", err)
	}
	return o, nil
}

func (r *SQLiteRepository) ListByCapsule(ctx context.Context, capsuleID string) ([]*Offer, error) {
	query := `SELECT id, capsule_id, field, label, amount, currency, from_party, created_at, status
			FROM offers WHERE capsule_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, capsuleID)
	if err != nil {
		return nil, fmt.Errorf("failed to select offers: %w", err)
	}
	defer rows.Close()

	var result []*Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE offers SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanOffer(row scannable) (*Offer, error) {
	var o Offer
	var status string
	err := row.Scan(&o.ID, &o.CapsuleID, &o.Field, &o.Label, &o.Amount, &o.Currency, &o.From, &o.CreatedAt, &status)
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	return &o, nil
}
