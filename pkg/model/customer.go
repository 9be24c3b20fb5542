package model

import "time"

type Customer struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,len=10,numeric"`
	Email     string    `json:"email" bson:"email" validate:"required,email,max=254"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
