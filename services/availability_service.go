package services

import (
	"fmt"
	"time"

	"romi-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityService answers date-range availability questions for rooms.
// It is read-only; booking creation lives in BookingService.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries (aEnd == bStart) do not
// overlap: a guest may check in the day another checks out.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// blockingStatuses are the booking statuses that occupy a room. Cancelled and
// Checked-Out bookings never block new reservations.
var blockingStatuses = []string{
	models.BookingPending,
	models.BookingConfirmed,
	models.BookingCheckedIn,
}

// conflictQuery selects booking_rooms rows whose booking blocks [checkIn,
// checkOut). The date predicate is the SQL form of Overlaps.
func conflictQuery(tx *gorm.DB, checkIn, checkOut time.Time) *gorm.DB {
	return tx.Table("booking_rooms").
		Joins("JOIN bookings ON bookings.id = booking_rooms.booking_id").
		Where("bookings.status IN ?", blockingStatuses).
		Where("bookings.check_in < ? AND ? < bookings.check_out", checkOut, checkIn).
		Where("bookings.deleted_at IS NULL").
		Where("booking_rooms.deleted_at IS NULL")
}

// bookedRoomIDs returns the distinct room ids blocked for the range. When
// lock is set and the dialect supports it, the matched rows are read FOR
// UPDATE so a concurrent booking attempt serializes behind the caller's
// transaction.
func bookedRoomIDs(tx *gorm.DB, checkIn, checkOut time.Time, roomIDs []uint, lock bool) ([]uint, error) {
	q := conflictQuery(tx, checkIn, checkOut)
	if len(roomIDs) > 0 {
		q = q.Where("booking_rooms.room_id IN ?", roomIDs)
	}
	if lock && tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ids []uint
	if err := q.Distinct("booking_rooms.room_id").Pluck("booking_rooms.room_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to query conflicting bookings: %w", err)
	}
	return ids, nil
}

// HasConflict reports whether any room in roomIDs already has a blocking
// booking overlapping [checkIn, checkOut).
func (s *AvailabilityService) HasConflict(roomIDs []uint, checkIn, checkOut time.Time) (bool, error) {
	ids, err := bookedRoomIDs(s.DB, checkIn, checkOut, roomIDs, false)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// RoomAvailability is a room annotated with its computed availability for the
// requested range. The embedded administrative IsAvailable flag is shadowed
// by the computed one in JSON output, matching what callers expect.
type RoomAvailability struct {
	models.Room
	IsAvailable bool `json:"isAvailable"`
}

// CheckAvailability returns every room, optionally filtered by type,
// annotated with whether it is free for [checkIn, checkOut). Blocked rooms
// are annotated rather than dropped so the caller decides how to present
// them.
func (s *AvailabilityService) CheckAvailability(checkIn, checkOut time.Time, roomType string) ([]RoomAvailability, error) {
	q := s.DB.Model(&models.Room{})
	if roomType != "" {
		q = q.Where("type = ?", roomType)
	}

	var rooms []models.Room
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	bookedIDs, err := bookedRoomIDs(s.DB, checkIn, checkOut, nil, false)
	if err != nil {
		return nil, err
	}
	booked := make(map[uint]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	out := make([]RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		_, taken := booked[room.ID]
		out = append(out, RoomAvailability{Room: room, IsAvailable: !taken})
	}
	return out, nil
}
