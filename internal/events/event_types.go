package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionStarted EventType = "session_started"
	EventSessionEnded   EventType = "session_ended"
)

// EndReason records why a session ended.
type EndReason string

const (
	// ReasonLogout is an explicit user action.
	ReasonLogout EndReason = "logout"
	// ReasonExpired means the credential's expiry claim is no longer in the future.
	ReasonExpired EndReason = "expired"
	// ReasonInvalid means the stored credential failed structural decode.
	ReasonInvalid EndReason = "invalid"
	// ReasonRejected means the backend refused the credential on an API call.
	ReasonRejected EndReason = "rejected"
)

// Event represents a session lifecycle transition. Components that render
// session-dependent state subscribe instead of forcing a full reload.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
	Reason    EndReason   `json:"reason,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSessionStarted builds a session_started event.
func NewSessionStarted(subjectID string, role domain.Role) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventSessionStarted,
		SubjectID: subjectID,
		Role:      role,
		Timestamp: time.Now(),
	}
}

// NewSessionEnded builds a session_ended event. SubjectID may be empty when
// the credential never decoded.
func NewSessionEnded(subjectID string, reason EndReason) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventSessionEnded,
		SubjectID: subjectID,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}
