package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"romi-backend/config"
	"romi-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Uint64

// newTestDB opens a fresh named in-memory SQLite database per test. The name
// keeps connections from the pool pointed at the same database without
// leaking state between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:romi_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// resetBilling restores the default billing configuration after a test that
// mutates it.
func resetBilling(t *testing.T) {
	t.Helper()
	saved := config.Billing
	t.Cleanup(func() { config.Billing = saved })
}

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func mustCreateRoom(t *testing.T, db *gorm.DB, number string, price float64, capacity int) models.Room {
	t.Helper()
	room := models.Room{
		RoomNumber:  number,
		Type:        models.RoomTypeAC,
		Category:    models.RoomCategoryStandard,
		Price:       price,
		Capacity:    capacity,
		IsAvailable: true,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room %s: %v", number, err)
	}
	return room
}

func mustCreateBooking(t *testing.T, db *gorm.DB, room models.Room, checkIn, checkOut time.Time, status string) models.Booking {
	t.Helper()
	booking := models.Booking{
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		Rooms:         []models.BookingRoom{{RoomID: room.ID}},
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Adults:        1,
		Status:        status,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return booking
}
