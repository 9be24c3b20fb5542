package model

import (
	"time"
)

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusRejected  = "rejected"
)

type Tournament struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Description string    `json:"description" bson:"description" validate:"required,max=2000"`
	EventDate   string    `json:"event_date" bson:"event_date" validate:"required,datetime=2006-01-02"`
	EntryFee    float64   `json:"entry_fee" bson:"entry_fee" validate:"gte=0"`
	ImageRef    string    `json:"image_ref,omitempty" bson:"image_ref,omitempty" validate:"omitempty,max=200"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// TournamentSummary is the listing view: the tournament plus how many teams
// have registered for it.
type TournamentSummary struct {
	Tournament        `bson:",inline"`
	RegistrationCount int64 `json:"registration_count" bson:"registration_count"`
}

type TournamentRegistration struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TournamentID string    `json:"tournament_id" bson:"tournament_id" validate:"required,mongodb"`
	TeamName     string    `json:"team_name" bson:"team_name" validate:"required,min=2,max=100"`
	CaptainName  string    `json:"captain_name" bson:"captain_name" validate:"required,min=2,max=100"`
	CaptainPhone string    `json:"captain_phone" bson:"captain_phone" validate:"required,len=10,numeric"`
	Players      []string  `json:"players,omitempty" bson:"players,omitempty"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed rejected"`
	RegisteredAt time.Time `json:"registered_at" bson:"registered_at" validate:"omitempty"`
}

type TournamentRegistrationRequest struct {
	TournamentID string   `json:"tournament_id" validate:"required"`
	TeamName     string   `json:"team_name" validate:"required,min=2,max=100"`
	CaptainName  string   `json:"captain_name" validate:"required,min=2,max=100"`
	CaptainPhone string   `json:"captain_phone" validate:"required"`
	Players      []string `json:"players" validate:"omitempty,max=25,dive,max=100"`
}
