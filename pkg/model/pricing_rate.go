package model

import "time"

type PricingRate struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	DurationHours int       `json:"duration_hours" bson:"duration_hours" validate:"required,min=1,max=24"`
	Price         float64   `json:"price" bson:"price" validate:"required,gt=0"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Quote is the priced view of a requested time range.
type Quote struct {
	Hours      int     `json:"hours"`
	HourlyRate float64 `json:"hourly_rate"`
	Total      float64 `json:"total"`
	Weekend    bool    `json:"weekend"`
}
