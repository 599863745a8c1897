package services

import (
	"errors"
	"fmt"
	"math"

	"romi-backend/config"
	"romi-backend/models"

	"gorm.io/gorm"
)

// InvoiceService derives billing documents from bookings and orders and owns
// the ROMI-NNNNN number sequence.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

// roundHalfUp rounds to the nearest whole currency unit, halves away from
// zero. Used for the defaulted tax so the amount is deterministic across
// platforms.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// nextInvoiceNumber derives the next sequential number from the current row
// count, soft-deleted invoices included so numbers are never reused. The
// unique index on invoice_number plus the retry in create() covers the
// count-then-assign race under concurrent creation.
func nextInvoiceNumber(tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.Unscoped().Model(&models.Invoice{}).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count invoices: %w", err)
	}
	return fmt.Sprintf("%s%0*d", config.Billing.InvoicePrefix, config.Billing.InvoiceNumberWidth, count+1), nil
}

// create persists an invoice, retrying with a fresh number if a concurrent
// writer took the one we derived. extra runs inside the same transaction for
// side effects that must land with the invoice (e.g. flagging the booking).
func (s *InvoiceService) create(invoice *models.Invoice, extra func(tx *gorm.DB) error) error {
	const maxAttempts = 5

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		lastErr = s.DB.Transaction(func(tx *gorm.DB) error {
			number, err := nextInvoiceNumber(tx)
			if err != nil {
				return err
			}
			invoice.InvoiceNumber = number

			if err := tx.Create(invoice).Error; err != nil {
				return fmt.Errorf("failed to create invoice: %w", err)
			}
			if extra != nil {
				return extra(tx)
			}
			return nil
		})
		if lastErr == nil {
			return nil
		}
		if isDuplicateKeyErr(lastErr) {
			invoice.ID = 0
			invoice.InvoiceNumber = ""
			for i := range invoice.Items {
				invoice.Items[i].ID = 0
				invoice.Items[i].InvoiceID = 0
			}
			continue
		}
		return lastErr
	}
	return fmt.Errorf("failed to allocate invoice number after %d attempts: %w", maxAttempts, lastErr)
}

// billingTotals applies the shared subtotal/tax/discount arithmetic.
func billingTotals(items []models.InvoiceItem, tax, discount *float64) (subtotal, taxAmt, discountAmt, total float64) {
	for _, item := range items {
		subtotal += item.Total
	}
	if tax != nil {
		taxAmt = *tax
	} else {
		taxAmt = roundHalfUp(subtotal * config.Billing.TaxRate)
	}
	if discount != nil {
		discountAmt = *discount
	}
	total = subtotal + taxAmt - discountAmt
	return subtotal, taxAmt, discountAmt, total
}

type RoomInvoiceInput struct {
	BookingID         uint
	Tax               *float64
	Discount          *float64
	RoomServiceCharge *float64
	Notes             string
}

// CreateRoomInvoice bills a booking: one line per room for the full stay,
// plus a Room Service line when the booking opted in. Persisting the invoice
// and flagging the booking happen in one transaction.
func (s *InvoiceService) CreateRoomInvoice(in RoomInvoiceInput) (*models.Invoice, error) {
	var booking models.Booking
	if err := s.DB.Preload("Rooms.Room").First(&booking, in.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "booking not found"}
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}

	if config.Billing.InvoiceOncePerBooking && booking.InvoiceGenerated {
		return nil, &ConflictError{Message: "an invoice was already generated for this booking"}
	}

	nights := Nights(booking.CheckIn, booking.CheckOut)

	items := make([]models.InvoiceItem, 0, len(booking.Rooms)+1)
	for _, br := range booking.Rooms {
		room := br.Room
		items = append(items, models.InvoiceItem{
			Description: fmt.Sprintf("%s Room (%s) - %d night(s)", room.Type, room.RoomNumber, nights),
			Quantity:    nights,
			UnitPrice:   room.Price,
			Total:       room.Price * float64(nights),
		})
	}

	if booking.IncludeRoomService {
		charge := config.Billing.RoomServiceCharge
		if in.RoomServiceCharge != nil {
			charge = *in.RoomServiceCharge
		}
		items = append(items, models.InvoiceItem{
			Description: "Room Service",
			Quantity:    1,
			UnitPrice:   charge,
			Total:       charge,
		})
	}

	subtotal, tax, discount, total := billingTotals(items, in.Tax, in.Discount)

	bookingID := booking.ID
	invoice := &models.Invoice{
		Type:          models.InvoiceTypeRoom,
		BookingID:     &bookingID,
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      discount,
		TotalAmount:   total,
		Notes:         in.Notes,
	}

	err := s.create(invoice, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("invoice_generated", true).Error; err != nil {
			return fmt.Errorf("failed to flag booking as invoiced: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

type RestaurantBillInput struct {
	OrderID  uint
	Tax      *float64
	Discount *float64
	Notes    string
}

// CreateRestaurantBill bills an order from its captured line items. The
// source order is not modified.
func (s *InvoiceService) CreateRestaurantBill(in RestaurantBillInput) (*models.Invoice, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, in.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "order not found"}
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	items := make([]models.InvoiceItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.InvoiceItem{
			Description: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Total:       item.Price * float64(item.Quantity),
		})
	}

	subtotal, tax, discount, total := billingTotals(items, in.Tax, in.Discount)

	orderID := order.ID
	invoice := &models.Invoice{
		Type:          models.InvoiceTypeRestaurant,
		OrderID:       &orderID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      discount,
		TotalAmount:   total,
		Notes:         in.Notes,
	}

	if err := s.create(invoice, nil); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) GetAll(invoiceType string) ([]models.Invoice, error) {
	q := s.DB.Preload("Items").Order("created_at DESC")
	if invoiceType != "" {
		q = q.Where("type = ?", invoiceType)
	}
	var list []models.Invoice
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}
	return list, nil
}

// GetByID loads one invoice with its source booking or order populated, the
// shape the print view renders from.
func (s *InvoiceService) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.DB.Preload("Items").
		Preload("Booking.Rooms.Room").
		Preload("Order.Items").
		First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "invoice not found"}
		}
		return nil, fmt.Errorf("failed to retrieve invoice: %w", err)
	}
	return &invoice, nil
}

// MarkPaid flips the paid flag forward. There is no unpay operation.
func (s *InvoiceService) MarkPaid(id uint) (*models.Invoice, error) {
	invoice, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice.IsPaid {
		return invoice, nil
	}
	if err := s.DB.Model(invoice).Update("is_paid", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	invoice.IsPaid = true
	return invoice, nil
}

// Update edits the mutable invoice fields: notes, and the paid flag in the
// forward direction only.
func (s *InvoiceService) Update(id uint, isPaid *bool, notes *string) (*models.Invoice, error) {
	invoice, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if isPaid != nil && !*isPaid && invoice.IsPaid {
		return nil, &ValidationError{Message: "a paid invoice cannot be marked unpaid"}
	}

	fields := map[string]interface{}{}
	if isPaid != nil && *isPaid {
		fields["is_paid"] = true
	}
	if notes != nil {
		fields["notes"] = *notes
	}
	if len(fields) > 0 {
		if err := s.DB.Model(invoice).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update invoice: %w", err)
		}
	}
	return s.GetByID(id)
}
