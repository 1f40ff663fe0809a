package models

import "time"

// Recurrence values accepted by the add-periodic command.
const (
	RecurrenceDaily  = "daily"
	RecurrenceWeekly = "weekly"
)

type Reminder struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	FireAt     string    `json:"fire_at"` // HH:MM, 24-hour, local clock
	Message    string    `json:"message"`
	Periodic   bool      `json:"periodic"`
	Recurrence string    `json:"recurrence,omitempty"` // daily or weekly when periodic
	LastFired  string    `json:"last_fired,omitempty"` // minute key of the last delivery
	CreatedAt  time.Time `json:"created_at"`
}

// DispatchEvent is broadcast on the ops event feed when a reminder fires.
type DispatchEvent struct {
	ReminderID int64  `json:"reminder_id"`
	UserID     string `json:"user_id"`
	Periodic   bool   `json:"periodic"`
	FiredAt    string `json:"fired_at"` // minute key
}

const (
	WSTypeDispatch = "dispatch"
)
