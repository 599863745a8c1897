package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderTypeTakeaway    = "Takeaway"
	OrderTypeRoomService = "Room Service"
	OrderTypeDineIn      = "Dine In"

	OrderPending   = "Pending"
	OrderConfirmed = "Confirmed"
	OrderPreparing = "Preparing"
	OrderReady     = "Ready"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

// orderTransitions is the linear happy path; Cancelled is reachable from any
// non-terminal state.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderDelivered, OrderCancelled},
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func ValidOrderType(t string) bool {
	return t == OrderTypeTakeaway || t == OrderTypeRoomService || t == OrderTypeDineIn
}

func OrderTransitionAllowed(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerName  string `json:"customerName" gorm:"size:255"`
	CustomerPhone string `json:"customerPhone" gorm:"size:32;index"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	OrderType   string  `json:"orderType" gorm:"size:20;default:Takeaway"`
	Status      string  `json:"status" gorm:"size:20;default:Pending;index"`
	TotalAmount float64 `json:"totalAmount"`
	Notes       string  `json:"notes,omitempty" gorm:"type:text"`
}

// OrderItem snapshots the menu item's name and price at order time so later
// menu edits never change what the customer agreed to pay.
type OrderItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderID    uint  `gorm:"index;column:order_id" json:"orderId"`
	MenuItemID *uint `gorm:"index;column:menu_item_id" json:"menuItemId,omitempty"`

	Name     string  `json:"name" gorm:"size:255"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity" gorm:"default:1"`
}
