package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CLASS_SCHEDULED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Class lifecycle event codes.
const (
	TypeClassRequested      = "CLASS_REQUESTED"
	TypeClassScheduled      = "CLASS_SCHEDULED"
	TypeClassRejected       = "CLASS_REJECTED"
	TypeClassAwaitingReview = "CLASS_AWAITING_REVIEW"
	TypeClassReviewed       = "CLASS_REVIEWED"
)

// BaseEvent is the plain implementation used across the app.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewClassEvent builds a lifecycle event for one class. Both participant ids
// ride along so consumers can notify either side without a second lookup.
func NewClassEvent(eventType string, classId, professorId, studentId int64) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"class_id":     classId,
			"professor_id": professorId,
			"student_id":   studentId,
		},
		OccurredAt: time.Now(),
	}
}
