// AngelaMos | 2026
// entity.go

package notification

import "time"

const (
	StatusSent      = "sent"
	StatusScheduled = "scheduled"
)

// Notification is an admin broadcast. Recipients is the user count at
// send time; Opened is a client-reported read counter.
type Notification struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Type         string     `json:"type"`
	Target       string     `json:"target"`
	Status       string     `json:"status"`
	SentAt       *time.Time `json:"sentAt"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	Recipients   int        `json:"recipients"`
	Opened       int        `json:"opened"`
}
