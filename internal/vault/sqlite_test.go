package vault

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/cryptox"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE vaults (
  capsule_id TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  nonce BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSQLiteRepository_PutGetDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	rec := &Record{CapsuleID: "cap_1", Payload: []byte("sealed"), Nonce: []byte("nonce000000")}
	require.NoError(t, r.Put(ctx, rec))

	got, err := r.Get(ctx, "cap_1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// upsert replaces
	rec2 := &Record{CapsuleID: "cap_1", Payload: []byte("sealed2"), Nonce: []byte("nonce000001")}
	require.NoError(t, r.Put(ctx, rec2))
	got, err = r.Get(ctx, "cap_1")
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed2"), got.Payload)

	require.NoError(t, r.Delete(ctx, "cap_1"))
	_, err = r.Get(ctx, "cap_1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// deleting an absent record is not an error
	assert.NoError(t, r.Delete(ctx, "cap_1"))
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestService_SealOpenRoundTrip(t *testing.T) {
	db := setupDB(t)
	key := cryptox.DeriveMasterKey([]byte("pass"), []byte("salt"))
	s := NewService(NewSQLiteRepository(db), key)
	ctx := context.Background()

	v := &capsule.Vault{
		CapsuleID:      "cap_2",
		Commitments:    map[capsule.Field]string{capsule.FieldImageHash: "123"},
		Salts:          map[capsule.Field]string{capsule.FieldImageHash: "998877"},
		OriginalValues: map[capsule.Field]string{capsule.FieldImageHash: "abc123"},
	}
	require.NoError(t, s.Put(ctx, v))

	// plaintext must not appear in storage
	rec, err := NewSQLiteRepository(db).Get(ctx, "cap_2")
	require.NoError(t, err)
	assert.NotContains(t, string(rec.Payload), "abc123")

	got, err := s.Get(ctx, "cap_2")
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestService_WrongKeyFailsToOpen(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	k1 := cryptox.DeriveMasterKey([]byte("pass"), []byte("salt"))
	k2 := cryptox.DeriveMasterKey([]byte("wrong"), []byte("salt"))

	s1 := NewService(NewSQLiteRepository(db), k1)
	require.NoError(t, s1.Put(ctx, &capsule.Vault{CapsuleID: "cap_3"}))

	s2 := NewService(NewSQLiteRepository(db), k2)
	_, err := s2.Get(ctx, "cap_3")
	assert.Error(t, err)
}
