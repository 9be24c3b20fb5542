package model

import (
	"time"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"

	PaymentStatusPending            = "pending"
	PaymentStatusManualVerification = "paid_manual_verification"
	PaymentStatusVerified           = "paid_verified"
	PaymentStatusRejected           = "rejected"
)

// Booking is one reserved hour. Multi-hour reservations are a group of rows
// sharing the same ProofRef; operator actions apply to the whole group.
type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerID    string    `json:"customer_id" bson:"customer_id" validate:"required,mongodb"`
	SlotID        string    `json:"slot_id" bson:"slot_id" validate:"required,mongodb"`
	Date          string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string    `json:"start_time" bson:"start_time" validate:"required,datetime=15:04"`
	EndTime       string    `json:"end_time" bson:"end_time" validate:"required,datetime=15:04"`
	SlotPrice     float64   `json:"slot_price" bson:"slot_price" validate:"required,gt=0"`
	PaidAmount    float64   `json:"paid_amount" bson:"paid_amount" validate:"required,gt=0"`
	ProofRef      string    `json:"proof_ref" bson:"proof_ref" validate:"required,min=8,max=200"`
	PaymentStatus string    `json:"payment_status" bson:"payment_status" validate:"required,oneof=pending paid_manual_verification paid_verified rejected"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed rejected"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type BookingRequest struct {
	SessionID    string  `json:"session_id" validate:"required,min=8,max=128"`
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Phone        string  `json:"phone" validate:"required,len=10,numeric"`
	Email        string  `json:"email" validate:"required,email,max=254"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string  `json:"end_time" validate:"required,datetime=15:04"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	ProofRef     string  `json:"proof_ref" validate:"required,min=8,max=200"`
	PaymentToken string  `json:"payment_token" validate:"required"`
}

// BookingGroup is the aggregate view of all rows sharing a proof reference,
// used for operator responses and customer notifications.
type BookingGroup struct {
	ProofRef   string    `json:"proof_ref"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	TotalPaid  float64   `json:"total_paid"`
	Status     string    `json:"status"`
	SlotCount  int       `json:"slot_count"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}
