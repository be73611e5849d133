package models

import "time"

// Todo is a single task item owned by an opaque username.
type Todo struct {
	ID          int64     `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Completed   bool      `bson:"completed" json:"completed"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	User        string    `bson:"user" json:"user"` // empty when the record has no owner
}
