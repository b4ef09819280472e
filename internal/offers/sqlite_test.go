package offers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilcam/veilcam/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE offers (
  id TEXT PRIMARY KEY,
  capsule_id TEXT NOT NULL,
  field TEXT NOT NULL,
  label TEXT NOT NULL,
  amount REAL NOT NULL,
  currency TEXT NOT NULL,
  from_party TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  status TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSQLiteRepository_AddGetList(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	o1 := &Offer{ID: "o1", CapsuleID: "cap_1", Field: "location_city", Label: "Exact city",
		Amount: 5, Currency: "USD", From: "DataBuyer Inc", CreatedAt: 1000, Status: StatusPending}
	o2 := &Offer{ID: "o2", CapsuleID: "cap_1", Field: "date_exact", Label: "Exact timestamp",
		Amount: 12.5, Currency: "USD", From: "Insurer", CreatedAt: 2000, Status: StatusPending}
	require.NoError(t, r.Add(ctx, o1))
	require.NoError(t, r.Add(ctx, o2))

	got, err := r.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, o1, got)

	_, err = r.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := r.ListByCapsule(ctx, "cap_1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o2", list[0].ID)

	list, err = r.ListByCapsule(ctx, "cap_other")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteRepository_UpdateStatus(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	o := &Offer{ID: "o1", CapsuleID: "cap_1", Field: "location_city", Label: "Exact city",
		Amount: 5, Currency: "USD", From: "DataBuyer Inc", CreatedAt: 1000, Status: StatusPending}
	require.NoError(t, r.Add(ctx, o))

	require.NoError(t, r.UpdateStatus(ctx, "o1", StatusAccepted))
	got, err := r.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, got.Status)

	assert.ErrorIs(t, r.UpdateStatus(ctx, "missing", StatusAccepted), common.ErrorNotFound)
}

func TestService_PlaceAndResolve(t *testing.T) {
	db := setupDB(t)
	s := NewService(NewSQLiteRepository(db))
	ctx := context.Background()

	o, err := s.Place(ctx, "cap_1", "location_city", "Exact city", "DataBuyer Inc", 5, "USD")
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, StatusPending, o.Status)

	require.NoError(t, s.Accept(ctx, o.ID))

	// a resolved offer cannot be resolved again
	err = s.Reject(ctx, o.ID)
	assert.ErrorIs(t, err, common.ErrorOfferNotPending)
	err = s.Accept(ctx, o.ID)
	assert.ErrorIs(t, err, common.ErrorOfferNotPending)

	list, err := s.List(ctx, "cap_1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StatusAccepted, list[0].Status)
}

func TestService_RejectStaysRejected(t *testing.T) {
	db := setupDB(t)
	s := NewService(NewSQLiteRepository(db))
	ctx := context.Background()

	o, err := s.Place(ctx, "cap_1", "device_info", "Device details", "Forensics", 0, "USD")
	require.NoError(t, err)

	require.NoError(t, s.Reject(ctx, o.ID))
	assert.ErrorIs(t, s.Accept(ctx, o.ID), common.ErrorOfferNotPending)
}
