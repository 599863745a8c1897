package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room types and categories accepted by the API.
const (
	RoomTypeAC    = "AC"
	RoomTypeNonAC = "Non-AC"

	RoomCategoryStandard = "Standard"
	RoomCategoryDeluxe   = "Deluxe"
	RoomCategorySuite    = "Suite"
	RoomCategoryFamily   = "Family"
)

type Room struct {
	gorm.Model

	RoomNumber  string  `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Type        string  `json:"type" gorm:"size:20"`
	Category    string  `json:"category" gorm:"size:20;default:Standard"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity" gorm:"default:2"`

	Amenities datatypes.JSON `json:"amenities,omitempty"`
	Images    datatypes.JSON `json:"images,omitempty"`
	Packages  datatypes.JSON `json:"packages,omitempty"`

	// Administrative flag set by staff; date-based availability is computed
	// against bookings, not stored here. No column default: GORM drops
	// zero-valued fields that carry one, which would turn an explicit false
	// into true. The API default lives in the create handler.
	IsAvailable bool `json:"isAvailable"`
}

func ValidRoomType(t string) bool {
	return t == RoomTypeAC || t == RoomTypeNonAC
}

func ValidRoomCategory(c string) bool {
	switch c {
	case RoomCategoryStandard, RoomCategoryDeluxe, RoomCategorySuite, RoomCategoryFamily:
		return true
	}
	return false
}
