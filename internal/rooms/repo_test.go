package rooms

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRoomsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	rooms := `
CREATE TABLE IF NOT EXISTS rooms (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL,
  image_url TEXT,
  amenities TEXT,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	logs := `
CREATE TABLE IF NOT EXISTS room_booking_logs (
  id TEXT PRIMARY KEY,
  room_id TEXT NOT NULL,
  room_name TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(rooms).Error)
	require.NoError(t, conn.Exec(logs).Error)
	// Tests share the in-memory database; start each run from a clean catalog.
	require.NoError(t, conn.Exec(`DELETE FROM rooms`).Error)
	require.NoError(t, conn.Exec(`DELETE FROM room_booking_logs`).Error)

	return conn
}

func seedRoom(t *testing.T, repo *Repository, name, description, amenities string) *uuid.UUID {
	t.Helper()
	room, err := repo.Create(context.Background(), CreateRoomDTO{
		Name:        name,
		Description: description,
		Price:       decimal.NewFromInt(150),
		Amenities:   amenities,
	})
	require.NoError(t, err)
	return &room.ID
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := NewRepository(setupRoomsTestDB(t))
	ctx := context.Background()

	id := seedRoom(t, repo, "Ocean Suite", "Sea view suite", "wifi,minibar")
	room, err := repo.FindByID(ctx, *id)
	require.NoError(t, err)
	assert.Equal(t, "Ocean Suite", room.Name)
	assert.True(t, room.IsAvailable)
}

func TestRepositoryListAllInsertionOrder(t *testing.T) {
	repo := NewRepository(setupRoomsTestDB(t))
	ctx := context.Background()

	first := seedRoom(t, repo, "Economy", "Basic room", "")
	require.NoError(t, repo.db.Exec(`UPDATE rooms SET created_at = ? WHERE id = ?`,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), first).Error)
	second := seedRoom(t, repo, "Deluxe", "Big room", "")
	require.NoError(t, repo.db.Exec(`UPDATE rooms SET created_at = ? WHERE id = ?`,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), second).Error)

	items, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, *first, items[0].ID)
	assert.Equal(t, *second, items[1].ID)
}

func TestRepositorySearchMatchesAllTextColumns(t *testing.T) {
	repo := NewRepository(setupRoomsTestDB(t))
	ctx := context.Background()

	byName := seedRoom(t, repo, "Panorama Loft", "Top floor", "wifi")
	byDescription := seedRoom(t, repo, "Standard", "panorama windows", "tv")
	byAmenities := seedRoom(t, repo, "Budget", "Small", "panorama balcony")
	seedRoom(t, repo, "Garden Room", "Ground floor", "patio")

	items, err := repo.Search(ctx, "PANORAMA")
	require.NoError(t, err)
	require.Len(t, items, 3)

	found := map[uuid.UUID]bool{}
	for _, item := range items {
		found[item.ID] = true
	}
	assert.True(t, found[*byName] && found[*byDescription] && found[*byAmenities])
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	repo := NewRepository(setupRoomsTestDB(t))
	ctx := context.Background()

	id := seedRoom(t, repo, "Old Name", "Desc", "")
	name := "New Name"
	price := decimal.NewFromInt(275)
	unavailable := false
	require.NoError(t, repo.Update(ctx, *id, UpdateRoomDTO{
		Name:        &name,
		Price:       &price,
		IsAvailable: &unavailable,
	}))

	room, err := repo.FindByID(ctx, *id)
	require.NoError(t, err)
	assert.Equal(t, "New Name", room.Name)
	assert.True(t, price.Equal(room.Price))
	assert.False(t, room.IsAvailable)

	require.NoError(t, repo.Delete(ctx, *id))
	_, err = repo.FindByID(ctx, *id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryLogBooking(t *testing.T) {
	conn := setupRoomsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	id := seedRoom(t, repo, "Logged Room", "Desc", "")
	require.NoError(t, repo.LogBooking(ctx, *id, "Logged Room"))

	var count int64
	require.NoError(t, conn.Raw(
		`SELECT COUNT(*) FROM room_booking_logs WHERE room_id = ?`, id,
	).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}
