package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBookingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	bookings := `
CREATE TABLE IF NOT EXISTS bookings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  room_id TEXT NOT NULL,
  guest_name TEXT NOT NULL,
  guest_email TEXT NOT NULL,
  guest_phone TEXT,
  check_in_date DATETIME NOT NULL,
  check_out_date DATETIME NOT NULL,
  num_guests INTEGER NOT NULL DEFAULT 1,
  total_price NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  special_requests TEXT,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(bookings).Error)

	return conn
}

func insertBooking(t *testing.T, repo *Repository, userID uuid.UUID, checkIn time.Time, createdAt time.Time) uuid.UUID {
	t.Helper()
	booking, err := repo.Create(context.Background(), CreateBookingDTO{
		UserID:       userID,
		RoomID:       uuid.New(),
		GuestName:    "Guest",
		GuestEmail:   "guest@example.com",
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 2),
		TotalPrice:   decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	require.NoError(t, repo.db.Exec(
		`UPDATE bookings SET created_at = ? WHERE id = ?`, createdAt, booking.ID,
	).Error)
	return booking.ID
}

func TestRepositoryCreateDefaults(t *testing.T) {
	conn := setupBookingsTestDB(t)
	repo := NewRepository(conn)

	booking, err := repo.Create(context.Background(), CreateBookingDTO{
		UserID:       uuid.New(),
		RoomID:       uuid.New(),
		GuestName:    "Defaults",
		GuestEmail:   "defaults@example.com",
		CheckInDate:  time.Now().AddDate(0, 0, 7),
		CheckOutDate: time.Now().AddDate(0, 0, 9),
		TotalPrice:   decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.BookingStatusPending, booking.Status)
	assert.Equal(t, 1, booking.NumGuests)

	reloaded, err := repo.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, reloaded.ID)
}

func TestRepositoryCreateAllowsOverlappingStays(t *testing.T) {
	conn := setupBookingsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	roomID := uuid.New()
	checkIn := time.Now().AddDate(0, 0, 10)
	for i := 0; i < 2; i++ {
		_, err := repo.Create(ctx, CreateBookingDTO{
			UserID:       uuid.New(),
			RoomID:       roomID,
			GuestName:    "Overlap",
			GuestEmail:   "overlap@example.com",
			CheckInDate:  checkIn,
			CheckOutDate: checkIn.AddDate(0, 0, 3),
			TotalPrice:   decimal.NewFromInt(150),
		})
		require.NoError(t, err, "the store accepts double bookings")
	}
}

func TestRepositoryListByUserNewestFirst(t *testing.T) {
	conn := setupBookingsTestDB(t)
	repo := NewRepository(conn)
	userID := uuid.New()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	oldest := insertBooking(t, repo, userID, base.AddDate(0, 1, 0), base)
	middle := insertBooking(t, repo, userID, base.AddDate(0, 0, 10), base.Add(time.Hour))
	newest := insertBooking(t, repo, userID, base.AddDate(0, 2, 0), base.Add(2*time.Hour))

	// Another user's booking must not leak in.
	insertBooking(t, repo, uuid.New(), base, base)

	items, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, newest, items[0].ID)
	assert.Equal(t, middle, items[1].ID)
	assert.Equal(t, oldest, items[2].ID)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	conn := setupBookingsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	id := insertBooking(t, repo, uuid.New(), time.Now().AddDate(0, 0, 5), time.Now())
	require.NoError(t, repo.UpdateStatus(ctx, id, enums.BookingStatusConfirmed))

	reloaded, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enums.BookingStatusConfirmed, reloaded.Status)
}
