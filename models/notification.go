package models

import "time"

// Notification target types
const (
	NotificationTargetGlobal = "G"
	NotificationTargetAll    = "everyone"
)

// Notification is a message shown to platform users
type Notification struct {
	ID         string    `db:"id"`
	Title      string    `db:"title"`
	Message    string    `db:"message"`
	CreatedAt  time.Time `db:"created_at"`
	CreatedBy  string    `db:"created_by"`
	TargetType string    `db:"type"`
	Target     string    `db:"target"`
	Status     int       `db:"status"`
}
