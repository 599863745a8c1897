package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. Checked-Out and Cancelled are terminal.
const (
	BookingPending    = "Pending"
	BookingConfirmed  = "Confirmed"
	BookingCheckedIn  = "Checked-In"
	BookingCheckedOut = "Checked-Out"
	BookingCancelled  = "Cancelled"
)

// bookingTransitions is the guarded state machine for staff-driven status
// updates. The legacy behavior allowed any overwrite; the table is only
// enforced when strict transitions are enabled (see config.Billing).
var bookingTransitions = map[string][]string{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn: {BookingCheckedOut, BookingCancelled},
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// BookingTransitionAllowed reports whether from -> to is a legal transition.
func BookingTransitionAllowed(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerName  string `json:"customerName" gorm:"size:255"`
	CustomerPhone string `json:"customerPhone" gorm:"size:32;index"`
	CustomerEmail string `json:"customerEmail,omitempty" gorm:"size:150"`

	// Always the multi-room shape: one BookingRoom row per reserved room,
	// in the order the customer selected them.
	Rooms []BookingRoom `gorm:"foreignKey:BookingID" json:"rooms"`

	// [CheckIn, CheckOut): check-in inclusive, check-out exclusive.
	CheckIn  time.Time `json:"checkIn" gorm:"index"`
	CheckOut time.Time `json:"checkOut" gorm:"index"`

	Adults   int `json:"adults" gorm:"default:1"`
	Children int `json:"children" gorm:"default:0"`

	IncludeRoomService bool   `json:"includeRoomService" gorm:"default:false"`
	Package            string `json:"package,omitempty" gorm:"size:255"`
	SpecialRequests    string `json:"specialRequests,omitempty" gorm:"type:text"`

	Status           string  `json:"status" gorm:"size:20;default:Pending;index"`
	TotalAmount      float64 `json:"totalAmount"`
	InvoiceGenerated bool    `json:"invoiceGenerated" gorm:"default:false"`
}

// BookingRoom links a booking to one of its rooms.
type BookingRoom struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingID uint `gorm:"index;column:booking_id" json:"bookingId"`
	RoomID    uint `gorm:"index;column:room_id" json:"roomId"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
