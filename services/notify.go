package services

import "time"

// Outbound event types.
const (
	EventCourseCompleted     = "course.completed"
	EventCertificateIssued   = "certificate.issued"
	EventCertificateRejected = "certificate.rejected"
)

// Event is an outbound notification. Delivery is fire-and-forget; the engine
// only guarantees each event is emitted once.
type Event struct {
	Type        string    `json:"type"`
	UserID      uint      `json:"user_id"`
	CourseID    uint      `json:"course_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	CourseTitle string    `json:"course_title"`
	Code        string    `json:"verification_code,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Notifier receives engine events. Implementations decide transport and may
// deliver asynchronously; Notify must not block the caller for long.
type Notifier interface {
	Notify(event Event)
}

// NopNotifier drops all events.
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
