package models

import "time"

// Feedback is a free-text message submitted by a user.
// AdminReply is reserved for replies; no endpoint writes it yet.
type Feedback struct {
	ID         int64     `bson:"_id" json:"id"`
	Message    string    `bson:"message" json:"message"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	AdminReply *string   `bson:"admin_reply,omitempty" json:"admin_reply"`
	User       string    `bson:"user" json:"user"`
}
