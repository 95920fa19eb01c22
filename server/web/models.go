package web

import (
	"slices"
	"time"

	"github.com/topi314/cobot-tools/server/cobot"
)

const maxBookingHistory = 5

const unknownResource = "Unbekannt"

// MemberBundle is everything the support desk widget shows for one member,
// pre-formatted for display.
type MemberBundle struct {
	ID                      string            `json:"id"`
	Name                    string            `json:"name"`
	Email                   string            `json:"email"`
	Phone                   string            `json:"phone"`
	Address                 string            `json:"address"`
	IsCanceled              bool              `json:"isCanceled"`
	Status                  string            `json:"status"`
	MemberSince             string            `json:"memberSince"`
	PlanName                string            `json:"planName"`
	PlanPrice               string            `json:"planPrice"`
	LastInvoice             *InvoiceSummary   `json:"lastInvoice"`
	NextInvoice             *InvoiceSummary   `json:"nextInvoice"`
	LastBooking             *BookingSummary   `json:"lastBooking"`
	BookingHistory          []string          `json:"bookingHistory"`
	TotalBookingsLast30Days int               `json:"totalBookingsLast30Days"`
	UpcomingBookings        int               `json:"upcomingBookings"`
	CustomFields            map[string]string `json:"customFields"`
}

func newMemberBundle(membership cobot.Membership, customFields []cobot.CustomField, invoices []cobot.Invoice, pastBookings []cobot.Booking, futureBookings []cobot.Booking, f *Formatter) MemberBundle {
	isCanceled := !membership.CanceledTo.IsZero()
	status := "Aktiv"
	if isCanceled {
		status = "Gekündigt zum " + f.Date(membership.CanceledTo.Time)
	}

	var lastInvoice *InvoiceSummary
	if invoice := latestInvoice(invoices); invoice != nil {
		lastInvoice = newInvoiceSummary(*invoice, f)
	}
	var nextInvoice *InvoiceSummary
	if invoice := nextDueInvoice(invoices); invoice != nil {
		nextInvoice = newInvoiceSummary(*invoice, f)
	}

	past := sortBookings(pastBookings)
	var lastBooking *BookingSummary
	if len(past) > 0 {
		lastBooking = newBookingSummary(past[0])
	}

	fields := make(map[string]string, len(customFields))
	for _, field := range customFields {
		// an empty value means the field is not configured for this member
		if field.Value == "" {
			continue
		}
		fields[field.Label] = field.Value
	}

	return MemberBundle{
		ID:                      membership.ID,
		Name:                    membership.Name,
		Email:                   membership.Email,
		Phone:                   membership.Phone,
		Address:                 FormatAddress(membership.Address),
		IsCanceled:              isCanceled,
		Status:                  status,
		MemberSince:             f.Date(membership.ConfirmedAt.Time),
		PlanName:                membership.Plan.Name,
		PlanPrice:               f.Amount(membership.Plan.TotalPricePerCycle),
		LastInvoice:             lastInvoice,
		NextInvoice:             nextInvoice,
		LastBooking:             lastBooking,
		BookingHistory:          bookingHistory(sortBookings(slices.Concat(pastBookings, futureBookings)), f),
		TotalBookingsLast30Days: len(pastBookings),
		UpcomingBookings:        len(futureBookings),
		CustomFields:            fields,
	}
}

type PaidStatus string

const (
	PaidStatusPaid       PaidStatus = "paid"
	PaidStatusWrittenOff PaidStatus = "written_off"
	PaidStatusOpen       PaidStatus = "open"
	PaidStatusUnknown    PaidStatus = "unknown"
)

func newPaidStatus(raw string) PaidStatus {
	switch raw {
	case "paid":
		return PaidStatusPaid
	case "written_off":
		return PaidStatusWrittenOff
	case "open", "pending":
		return PaidStatusOpen
	default:
		return PaidStatusUnknown
	}
}

type InvoiceSummary struct {
	Amount     string     `json:"amount"`
	CreatedAt  string     `json:"createdAt"`
	DueDate    string     `json:"dueDate"`
	Paid       bool       `json:"paid"`
	PaidStatus PaidStatus `json:"paidStatus"`
}

func newInvoiceSummary(invoice cobot.Invoice, f *Formatter) *InvoiceSummary {
	return &InvoiceSummary{
		Amount:     f.Amount(invoice.TotalAmount),
		CreatedAt:  f.Date(invoice.CreatedAt.Time),
		DueDate:    f.Date(invoice.DueDate.Time),
		Paid:       invoice.Paid,
		PaidStatus: newPaidStatus(invoice.PaidStatus),
	}
}

type BookingSummary struct {
	Resource string    `json:"resource"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}

func newBookingSummary(booking cobot.Booking) *BookingSummary {
	return &BookingSummary{
		Resource: booking.Resource.Name,
		From:     booking.From.Time,
		To:       booking.To.Time,
	}
}

// latestInvoice picks the most recently created invoice. The sort is stable,
// so invoices sharing a created_at keep their provider order and the first
// one wins.
func latestInvoice(invoices []cobot.Invoice) *cobot.Invoice {
	if len(invoices) == 0 {
		return nil
	}

	sorted := slices.Clone(invoices)
	slices.SortStableFunc(sorted, func(a, b cobot.Invoice) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return &sorted[0]
}

// nextDueInvoice picks the unpaid invoice with the earliest due date. Unpaid
// means the provider reports paid_status "open" or "pending", everything
// else, written off included, does not count.
func nextDueInvoice(invoices []cobot.Invoice) *cobot.Invoice {
	var next *cobot.Invoice
	for i, invoice := range invoices {
		if invoice.PaidStatus != "open" && invoice.PaidStatus != "pending" {
			continue
		}
		if next == nil || invoice.DueDate.Before(next.DueDate.Time) {
			next = &invoices[i]
		}
	}
	return next
}

func sortBookings(bookings []cobot.Booking) []cobot.Booking {
	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(a, b cobot.Booking) int {
		return b.From.Compare(a.From.Time)
	})
	return sorted
}

// bookingHistory renders the newest bookings as "<resource> am <date>" lines
// for the widget, capped at maxBookingHistory entries.
func bookingHistory(bookings []cobot.Booking, f *Formatter) []string {
	history := make([]string, 0, min(len(bookings), maxBookingHistory))
	for _, booking := range bookings[:min(len(bookings), maxBookingHistory)] {
		resource := booking.Resource.Name
		if resource == "" {
			resource = unknownResource
		}
		history = append(history, resource+" am "+f.Date(booking.From.Time))
	}
	return history
}
