package config

import (
	"os"
	"strconv"
	"strings"
)

// BillingConfig collects the billing constants that used to live as
// literals: the defaulted tax rate, the fallback room-service charge, and
// the invoice number shape.
type BillingConfig struct {
	// TaxRate is applied to the subtotal when no explicit tax is supplied.
	TaxRate float64

	// RoomServiceCharge is the flat charge added when a booking includes
	// room service and the caller does not override it.
	RoomServiceCharge float64

	InvoicePrefix      string
	InvoiceNumberWidth int

	// InvoiceOncePerBooking rejects a second room invoice for the same
	// booking. Off by default: the legacy flow allowed duplicates.
	InvoiceOncePerBooking bool

	// StrictTransitions enforces the booking/order status state machines.
	// Off by default: the legacy flow let staff overwrite any status.
	StrictTransitions bool
}

// Billing holds the active billing configuration. LoadBilling overrides the
// defaults from the environment.
var Billing = defaultBilling()

func defaultBilling() BillingConfig {
	return BillingConfig{
		TaxRate:            0.10,
		RoomServiceCharge:  500,
		InvoicePrefix:      "ROMI-",
		InvoiceNumberWidth: 5,
	}
}

func LoadBilling() {
	b := defaultBilling()
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv("TAX_RATE")), 64); err == nil && v >= 0 {
		b.TaxRate = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv("ROOM_SERVICE_CHARGE")), 64); err == nil && v >= 0 {
		b.RoomServiceCharge = v
	}
	if v := strings.TrimSpace(os.Getenv("INVOICE_PREFIX")); v != "" {
		b.InvoicePrefix = v
	}
	b.InvoiceOncePerBooking = envBool("INVOICE_ONCE_PER_BOOKING")
	b.StrictTransitions = envBool("STRICT_STATUS_TRANSITIONS")
	Billing = b
}

func envBool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "true")
}
