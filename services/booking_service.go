package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"romi-backend/config"
	"romi-backend/models"

	"gorm.io/gorm"
)

// BookingService owns booking creation (conflict check, capacity validation,
// pricing) and the staff-driven status flow.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// Nights is the billing unit count for a stay: the number of days between
// check-in and check-out, rounding any partial day up. A stay ending mid-day
// still counts as a full night.
func Nights(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

type CreateBookingInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	RoomIDs  []uint
	CheckIn  time.Time
	CheckOut time.Time

	Adults   int
	Children int

	IncludeRoomService bool
	Package            string
	SpecialRequests    string
}

func (in *CreateBookingInput) validate() error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return &ValidationError{Message: "customerName is required"}
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return &ValidationError{Message: "customerPhone is required"}
	}
	if len(in.RoomIDs) == 0 {
		return &ValidationError{Message: "at least one room is required"}
	}
	if !in.CheckOut.After(in.CheckIn) {
		return &ValidationError{Message: "checkOut must be after checkIn"}
	}
	if in.Adults < 0 || in.Children < 0 {
		return &ValidationError{Message: "adults and children must not be negative"}
	}
	return nil
}

// Create validates, prices, and persists a booking. All checks happen before
// the insert; a validation failure writes nothing. The conflict check runs
// inside the same transaction as the insert, with a locking read on MySQL,
// so two concurrent requests for the same room serialize instead of
// double-booking.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Adults == 0 {
		in.Adults = 1
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		blocked, err := bookedRoomIDs(tx, in.CheckIn, in.CheckOut, in.RoomIDs, true)
		if err != nil {
			return err
		}
		if len(blocked) > 0 {
			return &ConflictError{Message: "room(s) not available for selected dates"}
		}

		var rooms []models.Room
		if err := tx.Where("id IN ?", in.RoomIDs).Find(&rooms).Error; err != nil {
			return fmt.Errorf("failed to resolve rooms: %w", err)
		}
		// Duplicate ids resolve to fewer rooms than requested and fail here
		// too, which keeps the total honest.
		if len(rooms) != len(in.RoomIDs) {
			return &NotFoundError{Message: "one or more rooms not found"}
		}

		totalCapacity := 0
		nightlyRate := 0.0
		byID := make(map[uint]models.Room, len(rooms))
		for _, room := range rooms {
			totalCapacity += room.Capacity
			nightlyRate += room.Price
			byID[room.ID] = room
		}

		persons := in.Adults + in.Children
		if persons > totalCapacity {
			return &ValidationError{
				Message: fmt.Sprintf("total persons (%d) exceeds room capacity (%d)", persons, totalCapacity),
			}
		}

		nights := Nights(in.CheckIn, in.CheckOut)

		bookingRooms := make([]models.BookingRoom, 0, len(in.RoomIDs))
		for _, id := range in.RoomIDs {
			bookingRooms = append(bookingRooms, models.BookingRoom{RoomID: id})
		}

		booking = models.Booking{
			CustomerName:       strings.TrimSpace(in.CustomerName),
			CustomerPhone:      strings.TrimSpace(in.CustomerPhone),
			CustomerEmail:      strings.TrimSpace(in.CustomerEmail),
			Rooms:              bookingRooms,
			CheckIn:            in.CheckIn,
			CheckOut:           in.CheckOut,
			Adults:             in.Adults,
			Children:           in.Children,
			IncludeRoomService: in.IncludeRoomService,
			Package:            in.Package,
			SpecialRequests:    in.SpecialRequests,
			Status:             models.BookingPending,
			TotalAmount:        float64(nights) * nightlyRate,
			InvoiceGenerated:   false,
		}

		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		for i := range booking.Rooms {
			booking.Rooms[i].Room = byID[booking.Rooms[i].RoomID]
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &booking, nil
}

func (s *BookingService) GetAll() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Rooms").
		Preload("Rooms.Room").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	for i := range list {
		if list[i].Rooms == nil {
			list[i].Rooms = []models.BookingRoom{}
		}
	}
	return list, nil
}

// GetByPhone is the customer-facing lookup: anyone who knows the phone number
// sees that customer's bookings.
func (s *BookingService) GetByPhone(phone string) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Rooms.Room").
		Where("customer_phone = ?", strings.TrimSpace(phone)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings by phone: %w", err)
	}
	return list, nil
}

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Rooms.Room").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "booking not found"}
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// UpdateStatus sets the booking status. Transitions follow the staff flow
// Pending -> Confirmed -> Checked-In -> Checked-Out with Cancelled reachable
// from any pre-terminal state; the table is only enforced when strict
// transitions are configured, matching the legacy permissive behavior by
// default.
func (s *BookingService) UpdateStatus(id uint, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown booking status %q", status)}
	}

	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if config.Billing.StrictTransitions && booking.Status != status &&
		!models.BookingTransitionAllowed(booking.Status, status) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("cannot change booking status from %s to %s", booking.Status, status),
		}
	}

	if err := s.DB.Model(booking).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = status
	return booking, nil
}

// Update applies staff edits to a booking. TotalAmount is fixed at creation
// and only changes when the caller provides it explicitly.
func (s *BookingService) Update(id uint, fields map[string]interface{}) (*models.Booking, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update booking: %w", err)
		}
	}
	return s.GetByID(id)
}
