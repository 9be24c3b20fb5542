package model

import "time"

// SlotLock is an advisory hold a browsing session takes on a slot while the
// customer completes payment. At most one live lock exists per slot; expired
// locks are swept lazily by every lock-touching path.
type SlotLock struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	SlotID    string    `bson:"slot_id" json:"slot_id"`
	SessionID string    `bson:"session_id" json:"session_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type SlotLockRequest struct {
	SessionID string `json:"session_id" validate:"required,min=8,max=128"`
}
