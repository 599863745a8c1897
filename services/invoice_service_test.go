package services

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"romi-backend/config"
	"romi-backend/models"
)

var invoiceNumberRe = regexp.MustCompile(`^ROMI-\d{5}$`)

func TestCreateRoomInvoice(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	invoices := NewInvoiceService(db)

	room := mustCreateRoom(t, db, "R301", 4000, 2)

	booking, err := bookings.Create(CreateBookingInput{
		CustomerName:       "Asha Rao",
		CustomerPhone:      "9876543210",
		RoomIDs:            []uint{room.ID},
		CheckIn:            d(2024, 6, 1),
		CheckOut:           d(2024, 6, 3),
		Adults:             2,
		IncludeRoomService: true,
	})
	if err != nil {
		t.Fatalf("Create booking: %v", err)
	}

	invoice, err := invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID})
	if err != nil {
		t.Fatalf("CreateRoomInvoice() error: %v", err)
	}

	// 2 nights x 4000 plus the default 500 room service charge.
	if invoice.Subtotal != 8500 {
		t.Errorf("Subtotal = %v, want 8500", invoice.Subtotal)
	}
	if invoice.Tax != 850 {
		t.Errorf("Tax = %v, want 850", invoice.Tax)
	}
	if invoice.Discount != 0 {
		t.Errorf("Discount = %v, want 0", invoice.Discount)
	}
	if invoice.TotalAmount != 9350 {
		t.Errorf("TotalAmount = %v, want 9350", invoice.TotalAmount)
	}
	if !invoiceNumberRe.MatchString(invoice.InvoiceNumber) {
		t.Errorf("InvoiceNumber = %q, want ROMI-NNNNN", invoice.InvoiceNumber)
	}
	if invoice.Type != models.InvoiceTypeRoom {
		t.Errorf("Type = %q, want %q", invoice.Type, models.InvoiceTypeRoom)
	}
	if invoice.BookingID == nil || *invoice.BookingID != booking.ID {
		t.Errorf("BookingID = %v, want %d", invoice.BookingID, booking.ID)
	}

	if len(invoice.Items) != 2 {
		t.Fatalf("invoice has %d items, want 2", len(invoice.Items))
	}
	wantDesc := "AC Room (R301) - 2 night(s)"
	if invoice.Items[0].Description != wantDesc {
		t.Errorf("item description = %q, want %q", invoice.Items[0].Description, wantDesc)
	}
	if invoice.Items[0].Quantity != 2 || invoice.Items[0].UnitPrice != 4000 || invoice.Items[0].Total != 8000 {
		t.Errorf("room line = %+v, want qty 2 x 4000 = 8000", invoice.Items[0])
	}
	if invoice.Items[1].Description != "Room Service" || invoice.Items[1].Total != 500 {
		t.Errorf("room service line = %+v, want Room Service / 500", invoice.Items[1])
	}

	// Billing a booking flags it.
	fresh, err := bookings.GetByID(booking.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if !fresh.InvoiceGenerated {
		t.Error("booking.InvoiceGenerated was not set after invoicing")
	}
}

func TestCreateRoomInvoiceWithoutRoomService(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	invoices := NewInvoiceService(db)

	room := mustCreateRoom(t, db, "R302", 5000, 2)
	booking, err := bookings.Create(CreateBookingInput{
		CustomerName:  "Ravi Kumar",
		CustomerPhone: "9000000001",
		RoomIDs:       []uint{room.ID},
		CheckIn:       d(2024, 6, 1),
		CheckOut:      d(2024, 6, 4),
		Adults:        2,
	})
	if err != nil {
		t.Fatalf("Create booking: %v", err)
	}

	invoice, err := invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID})
	if err != nil {
		t.Fatalf("CreateRoomInvoice() error: %v", err)
	}
	if len(invoice.Items) != 1 {
		t.Fatalf("invoice has %d items, want 1 (no room service line)", len(invoice.Items))
	}
	if invoice.Subtotal != 15000 || invoice.Tax != 1500 || invoice.TotalAmount != 16500 {
		t.Errorf("totals = %v/%v/%v, want 15000/1500/16500",
			invoice.Subtotal, invoice.Tax, invoice.TotalAmount)
	}
}

func TestCreateRoomInvoiceOverrides(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	invoices := NewInvoiceService(db)

	room := mustCreateRoom(t, db, "R303", 4000, 2)
	booking, err := bookings.Create(CreateBookingInput{
		CustomerName:       "Meera Iyer",
		CustomerPhone:      "9000000002",
		RoomIDs:            []uint{room.ID},
		CheckIn:            d(2024, 6, 1),
		CheckOut:           d(2024, 6, 3),
		Adults:             2,
		IncludeRoomService: true,
	})
	if err != nil {
		t.Fatalf("Create booking: %v", err)
	}

	tax := 120.0
	discount := 300.0
	serviceCharge := 750.0
	invoice, err := invoices.CreateRoomInvoice(RoomInvoiceInput{
		BookingID:         booking.ID,
		Tax:               &tax,
		Discount:          &discount,
		RoomServiceCharge: &serviceCharge,
		Notes:             "corporate rate",
	})
	if err != nil {
		t.Fatalf("CreateRoomInvoice() error: %v", err)
	}

	// 8000 rooms + 750 service, explicit tax and discount applied verbatim.
	if invoice.Subtotal != 8750 {
		t.Errorf("Subtotal = %v, want 8750", invoice.Subtotal)
	}
	if invoice.Tax != 120 || invoice.Discount != 300 {
		t.Errorf("Tax/Discount = %v/%v, want 120/300", invoice.Tax, invoice.Discount)
	}
	if invoice.TotalAmount != 8570 {
		t.Errorf("TotalAmount = %v, want 8570", invoice.TotalAmount)
	}
	if invoice.Notes != "corporate rate" {
		t.Errorf("Notes = %q, want %q", invoice.Notes, "corporate rate")
	}
}

func TestCreateRoomInvoiceOncePerBooking(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	invoices := NewInvoiceService(db)

	room := mustCreateRoom(t, db, "R304", 4000, 2)
	booking, err := bookings.Create(CreateBookingInput{
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		RoomIDs:       []uint{room.ID},
		CheckIn:       d(2024, 6, 1),
		CheckOut:      d(2024, 6, 2),
		Adults:        1,
	})
	if err != nil {
		t.Fatalf("Create booking: %v", err)
	}

	if _, err := invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID}); err != nil {
		t.Fatalf("first invoice: %v", err)
	}

	// Default config allows re-billing.
	if _, err := invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID}); err != nil {
		t.Fatalf("second invoice with default config: %v", err)
	}

	resetBilling(t)
	config.Billing.InvoiceOncePerBooking = true

	_, err = invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID})
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("got %v, want ConflictError when once-per-booking is on", err)
	}
}

func TestInvoiceNumbersAreSequential(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	invoices := NewInvoiceService(db)

	room := mustCreateRoom(t, db, "R305", 4000, 4)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		booking, err := bookings.Create(CreateBookingInput{
			CustomerName:  "Serial Guest",
			CustomerPhone: "9000000010",
			RoomIDs:       []uint{room.ID},
			CheckIn:       d(2024, 6, 1+2*i),
			CheckOut:      d(2024, 6, 2+2*i),
			Adults:        1,
		})
		if err != nil {
			t.Fatalf("Create booking %d: %v", i, err)
		}
		invoice, err := invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID})
		if err != nil {
			t.Fatalf("CreateRoomInvoice %d: %v", i, err)
		}

		want := fmt.Sprintf("ROMI-%05d", i+1)
		if invoice.InvoiceNumber != want {
			t.Errorf("invoice %d number = %q, want %q", i, invoice.InvoiceNumber, want)
		}
		if seen[invoice.InvoiceNumber] {
			t.Errorf("invoice number %q issued twice", invoice.InvoiceNumber)
		}
		seen[invoice.InvoiceNumber] = true
	}
}

func TestCreateRestaurantBill(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	invoices := NewInvoiceService(db)

	dal := models.MenuItem{Name: "Dal Tadka", Category: "Curries", Price: 220, IsAvailable: true}
	naan := models.MenuItem{Name: "Butter Naan", Category: "Specials", Price: 60, IsAvailable: true}
	if err := db.Create(&dal).Error; err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	if err := db.Create(&naan).Error; err != nil {
		t.Fatalf("create menu item: %v", err)
	}

	order, err := orders.Create(CreateOrderInput{
		CustomerName:  "Vikram Shah",
		CustomerPhone: "9000000020",
		Items: []OrderItemInput{
			{MenuItemID: dal.ID, Quantity: 2},
			{MenuItemID: naan.ID, Quantity: 4},
		},
		OrderType: models.OrderTypeDineIn,
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	invoice, err := invoices.CreateRestaurantBill(RestaurantBillInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("CreateRestaurantBill() error: %v", err)
	}

	// 2x220 + 4x60 = 680, 10% tax rounds to 68.
	if invoice.Subtotal != 680 {
		t.Errorf("Subtotal = %v, want 680", invoice.Subtotal)
	}
	if invoice.Tax != 68 {
		t.Errorf("Tax = %v, want 68", invoice.Tax)
	}
	if invoice.TotalAmount != 748 {
		t.Errorf("TotalAmount = %v, want 748", invoice.TotalAmount)
	}
	if invoice.Type != models.InvoiceTypeRestaurant {
		t.Errorf("Type = %q, want %q", invoice.Type, models.InvoiceTypeRestaurant)
	}
	if invoice.OrderID == nil || *invoice.OrderID != order.ID {
		t.Errorf("OrderID = %v, want %d", invoice.OrderID, order.ID)
	}
	if len(invoice.Items) != 2 {
		t.Fatalf("invoice has %d items, want 2", len(invoice.Items))
	}
	if invoice.Items[0].Description != "Dal Tadka" || invoice.Items[0].Total != 440 {
		t.Errorf("line 0 = %+v, want Dal Tadka / 440", invoice.Items[0])
	}

	// The order itself is untouched.
	fresh, err := orders.GetByID(order.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if fresh.Status != order.Status || fresh.TotalAmount != order.TotalAmount {
		t.Errorf("order changed after billing: %+v", fresh)
	}
}

func TestGetInvoiceByIDPopulatesSource(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	orders := NewOrderService(db)
	invoices := NewInvoiceService(db)

	room := mustCreateRoom(t, db, "R308", 4000, 2)
	booking, err := bookings.Create(CreateBookingInput{
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		RoomIDs:       []uint{room.ID},
		CheckIn:       d(2024, 6, 1),
		CheckOut:      d(2024, 6, 2),
		Adults:        1,
	})
	if err != nil {
		t.Fatalf("Create booking: %v", err)
	}
	roomInvoice, err := invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID})
	if err != nil {
		t.Fatalf("CreateRoomInvoice() error: %v", err)
	}

	got, err := invoices.GetByID(roomInvoice.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Booking == nil || got.Booking.ID != booking.ID {
		t.Fatalf("room invoice lookup did not populate the booking: %+v", got.Booking)
	}
	if len(got.Booking.Rooms) != 1 || got.Booking.Rooms[0].Room.RoomNumber != "R308" {
		t.Errorf("booking rooms not populated: %+v", got.Booking.Rooms)
	}
	if got.Order != nil {
		t.Errorf("room invoice must not carry an order, got %+v", got.Order)
	}

	tea := models.MenuItem{Name: "Masala Chai", Category: "Beverages", Price: 40, IsAvailable: true}
	if err := db.Create(&tea).Error; err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	order, err := orders.Create(CreateOrderInput{
		CustomerName:  "Vikram Shah",
		CustomerPhone: "9000000020",
		Items:         []OrderItemInput{{MenuItemID: tea.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}
	bill, err := invoices.CreateRestaurantBill(RestaurantBillInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("CreateRestaurantBill() error: %v", err)
	}

	got, err = invoices.GetByID(bill.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Order == nil || got.Order.ID != order.ID {
		t.Fatalf("restaurant bill lookup did not populate the order: %+v", got.Order)
	}
	if len(got.Order.Items) != 1 || got.Order.Items[0].Name != "Masala Chai" {
		t.Errorf("order items not populated: %+v", got.Order.Items)
	}
	if got.Booking != nil {
		t.Errorf("restaurant bill must not carry a booking, got %+v", got.Booking)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{84.4, 84}, {84.5, 85}, {84.6, 85}, {0, 0}, {0.49, 0}, {1234.5, 1235},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMarkPaid(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	invoices := NewInvoiceService(db)

	room := mustCreateRoom(t, db, "R306", 4000, 2)
	booking, err := bookings.Create(CreateBookingInput{
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		RoomIDs:       []uint{room.ID},
		CheckIn:       d(2024, 6, 1),
		CheckOut:      d(2024, 6, 2),
		Adults:        1,
	})
	if err != nil {
		t.Fatalf("Create booking: %v", err)
	}
	invoice, err := invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID})
	if err != nil {
		t.Fatalf("CreateRoomInvoice() error: %v", err)
	}
	if invoice.IsPaid {
		t.Fatal("new invoice must start unpaid")
	}

	paid, err := invoices.MarkPaid(invoice.ID)
	if err != nil {
		t.Fatalf("MarkPaid() error: %v", err)
	}
	if !paid.IsPaid {
		t.Error("MarkPaid() did not set IsPaid")
	}

	// Paying twice is a no-op, not an error.
	if _, err := invoices.MarkPaid(invoice.ID); err != nil {
		t.Errorf("second MarkPaid() error: %v", err)
	}

	// Payment is forward-only.
	unpaid := false
	_, err = invoices.Update(invoice.ID, &unpaid, nil)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("un-paying: got %v, want ValidationError", err)
	}

	notes := "settled in cash"
	updated, err := invoices.Update(invoice.ID, nil, &notes)
	if err != nil {
		t.Fatalf("Update(notes) error: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("Notes = %q, want %q", updated.Notes, notes)
	}

	var notFoundErr *NotFoundError
	if _, err := invoices.MarkPaid(9999); !errors.As(err, &notFoundErr) {
		t.Errorf("MarkPaid(missing): got %v, want NotFoundError", err)
	}
}

func TestGetAllInvoicesFilter(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	orders := NewOrderService(db)
	invoices := NewInvoiceService(db)

	room := mustCreateRoom(t, db, "R307", 4000, 2)
	booking, err := bookings.Create(CreateBookingInput{
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		RoomIDs:       []uint{room.ID},
		CheckIn:       d(2024, 6, 1),
		CheckOut:      d(2024, 6, 2),
		Adults:        1,
	})
	if err != nil {
		t.Fatalf("Create booking: %v", err)
	}
	if _, err := invoices.CreateRoomInvoice(RoomInvoiceInput{BookingID: booking.ID}); err != nil {
		t.Fatalf("CreateRoomInvoice() error: %v", err)
	}

	tea := models.MenuItem{Name: "Masala Chai", Category: "Beverages", Price: 40, IsAvailable: true}
	if err := db.Create(&tea).Error; err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	order, err := orders.Create(CreateOrderInput{
		CustomerName:  "Vikram Shah",
		CustomerPhone: "9000000020",
		Items:         []OrderItemInput{{MenuItemID: tea.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}
	if _, err := invoices.CreateRestaurantBill(RestaurantBillInput{OrderID: order.ID}); err != nil {
		t.Fatalf("CreateRestaurantBill() error: %v", err)
	}

	all, err := invoices.GetAll("")
	if err != nil {
		t.Fatalf("GetAll() error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAll() returned %d invoices, want 2", len(all))
	}

	roomOnly, err := invoices.GetAll(models.InvoiceTypeRoom)
	if err != nil {
		t.Fatalf("GetAll(Room) error: %v", err)
	}
	if len(roomOnly) != 1 || roomOnly[0].Type != models.InvoiceTypeRoom {
		t.Errorf("GetAll(Room) = %+v, want one room invoice", roomOnly)
	}
}
