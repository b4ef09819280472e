package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/cryptox"
	"github.com/veilcam/veilcam/internal/dbx"
	"github.com/veilcam/veilcam/internal/randx"
)

// ErrWrongPassphrase is returned by Unlock when the derived key does not
// match the stored verifier.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// KeyringRepository holds the single-row key derivation record: the KDF salt
// and a verifier hash of the master key. The master key itself is never
// persisted.
type KeyringRepository struct {
	db dbx.DBTX
}

// NewKeyringRepository returns a new KeyringRepository bound to the given DBTX.
func NewKeyringRepository(db dbx.DBTX) *KeyringRepository {
	return &KeyringRepository{db: db}
}

func (r *KeyringRepository) load(ctx context.Context) (salt, verifier []byte, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT kdf_salt, verifier FROM keyring WHERE id = 1`)
	if err := row.Scan(&salt, &verifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, fmt.Errorf("failed to read keyring: %w", err)
	}
	return salt, verifier, nil
}

// Initialized reports whether a passphrase has been set up.
func (r *KeyringRepository) Initialized(ctx context.Context) (bool, error) {
	_, _, err := r.load(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Init derives the master key from a fresh salt, stores salt and verifier and
// returns the key. It fails if the keyring is already initialized.
func (r *KeyringRepository) Init(ctx context.Context, passphrase []byte) ([]byte, error) {
	salt := randx.MakeRandByteArray(16)
	key := cryptox.DeriveMasterKey(passphrase, salt)
	verifier := cryptox.MakeVerifier(key)

	_, err := r.db.ExecContext(ctx, `INSERT INTO keyring (id, kdf_salt, verifier) VALUES (1, ?, ?)`, salt, verifier)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyring: %w", err)
	}
	return key, nil
}

// Unlock re-derives the master key from the stored salt and checks it against
// the verifier.
func (r *KeyringRepository) Unlock(ctx context.Context, passphrase []byte) ([]byte, error) {
	salt, verifier, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	key := cryptox.DeriveMasterKey(passphrase, salt)
	if !bytes.Equal(cryptox.MakeVerifier(key), verifier) {
		cryptox.WipeByteArray(key)
		return nil, ErrWrongPassphrase
	}
	return key, nil
}
