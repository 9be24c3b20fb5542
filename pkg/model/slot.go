package model

import (
	"time"
)

type Slot struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Date      string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime string    `json:"start_time" bson:"start_time" validate:"required,datetime=15:04"`
	EndTime   string    `json:"end_time" bson:"end_time" validate:"required,datetime=15:04"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// SlotAvailability is a Slot decorated with its booked/locked state for a day view.
type SlotAvailability struct {
	Slot  `bson:",inline"`
	Taken bool `json:"taken" bson:"-"`
}

type SlotGenerateRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	RangeStart string `json:"range_start" validate:"required,datetime=15:04"`
	RangeEnd   string `json:"range_end" validate:"required,datetime=15:04"`
}
