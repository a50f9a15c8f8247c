package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// Sinks can route or retain categories differently.
type EventCategory string

// CategoryCompliance covers events with legal or regulatory significance,
// such as adding a person to the employee directory.
const CategoryCompliance EventCategory = "compliance"

// Event is emitted from domain logic to capture key actions. It is
// transport-agnostic and deliberately carries no personal data: the subject
// is referenced by ID only.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	SubjectID string        `json:"subject_id"`
	RequestID string        `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	EventEmployeeCreated AuditEvent = "employee_created"
)

// Store is an append-only audit sink.
type Store interface {
	Append(ctx context.Context, event Event) error
}
