package model

import (
	"time"
)

type ContactMessage struct {
	ID      string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string    `json:"name" bson:"name"`
	Email   string    `json:"email" bson:"email"`
	Message string    `json:"message" bson:"message"`
	SentAt  time.Time `json:"sent_at" bson:"sent_at"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,min=2,max=2000"`
}
