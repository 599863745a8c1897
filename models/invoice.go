package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvoiceTypeRoom       = "Room"
	InvoiceTypeRestaurant = "Restaurant"
)

type Invoice struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Human-readable sequential number, e.g. ROMI-00042. Assigned once at
	// creation; the unique index is what makes concurrent numbering safe.
	InvoiceNumber string `json:"invoiceNumber" gorm:"uniqueIndex;size:20"`

	Type string `json:"type" gorm:"size:20;index"`

	// Exactly one of BookingID/OrderID is set, matching Type. The matching
	// association is populated on single-invoice lookups for the print view.
	BookingID *uint    `gorm:"index" json:"bookingId,omitempty"`
	Booking   *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	OrderID   *uint    `gorm:"index" json:"orderId,omitempty"`
	Order     *Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	CustomerName  string `json:"customerName" gorm:"size:255"`
	CustomerPhone string `json:"customerPhone" gorm:"size:32"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Discount    float64 `json:"discount"`
	TotalAmount float64 `json:"totalAmount"`

	IsPaid bool   `json:"isPaid" gorm:"default:false"`
	Notes  string `json:"notes,omitempty" gorm:"type:text"`
}

// InvoiceItem is one billable row: Total is always Quantity * UnitPrice.
type InvoiceItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	InvoiceID uint `gorm:"index;column:invoice_id" json:"invoiceId"`

	Description string  `json:"description" gorm:"size:255"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}
