package notifications

import (
	"context"

	"dmaxcricket/pkg/model"
)

const (
	ChannelEmail     = "email"
	ChannelMessaging = "messaging"

	EventBookingSubmitted = "booking.submitted"
	EventBookingConfirmed = "booking.confirmed"
)

// BookingSummary is the flattened view of a booking group that notification
// consumers render into operator alerts and customer confirmations.
type BookingSummary struct {
	ProofRef      string  `json:"proof_ref"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	TotalPaid     float64 `json:"total_paid"`
	SlotCount     int     `json:"slot_count"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail string  `json:"customer_email"`
}

// Notifier hands booking events to the external notification pipeline.
// Implementations are fire-and-forget: callers log failures and move on, a
// lost notification never fails the booking it describes.
type Notifier interface {
	NotifyOperator(ctx context.Context, summary *BookingSummary) error
	NotifyCustomer(ctx context.Context, channel string, contact string, summary *BookingSummary) error
}

// SummaryFromGroup flattens a booking group and its customer into the
// notification payload.
func SummaryFromGroup(group *model.BookingGroup, customer *model.Customer) *BookingSummary {
	summary := &BookingSummary{
		ProofRef:  group.ProofRef,
		Date:      group.Date,
		StartTime: group.StartTime,
		EndTime:   group.EndTime,
		TotalPaid: group.TotalPaid,
		SlotCount: group.SlotCount,
	}
	if customer != nil {
		summary.CustomerName = customer.Name
		summary.CustomerPhone = customer.Phone
		summary.CustomerEmail = customer.Email
	}
	return summary
}
