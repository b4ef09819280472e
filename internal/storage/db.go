package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/veilcam/veilcam/internal/collection"
	"github.com/veilcam/veilcam/internal/dbx"
	"github.com/veilcam/veilcam/internal/migrations"
	"github.com/veilcam/veilcam/internal/offers"
	"github.com/veilcam/veilcam/internal/vault"

	_ "modernc.org/sqlite"
)

// Repositories bundles the sqlite-backed repositories sharing one database.
type Repositories struct {
	Collection collection.Repository
	Vault      vault.Repository
	Offers     offers.Repository
	Keyring    *KeyringRepository
	DB         *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the local database, migrates it and wires the
// repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	repos := &Repositories{
		Collection: collection.NewSQLiteRepository(db),
		Vault:      vault.NewSQLiteRepository(db),
		Offers:     offers.NewSQLiteRepository(db),
		Keyring:    NewKeyringRepository(db),
		DB:         db,
	}
	return repos, nil
}

// DeleteCapsule removes a capsule and its vault row in one transaction, so a
// crash cannot leave a vault for a capsule that no longer exists.
func (r *Repositories) DeleteCapsule(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := collection.NewSQLiteRepository(tx).Delete(ctx, id); err != nil {
			return err
		}
		return vault.NewSQLiteRepository(tx).Delete(ctx, id)
	})
}
