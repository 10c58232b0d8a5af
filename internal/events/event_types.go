package events

import (
	"time"

	"github.com/spec-kit/interview-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInterviewCreated       EventType = "interview_created"
	EventInterviewStarted       EventType = "interview_started"
	EventInterviewStatusChanged EventType = "interview_status_changed"
	EventInterviewDeleted       EventType = "interview_deleted"
)

// Event represents a domain event emitted by services. Actor is the external
// identity that triggered the mutation.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	InterviewID string      `json:"interview_id"`
	Actor       string      `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// InterviewCreatedPayload payload.
type InterviewCreatedPayload struct {
	Title          string                 `json:"title"`
	StartTime      time.Time              `json:"start_time"`
	Status         domain.InterviewStatus `json:"status"`
	CandidateID    string                 `json:"candidate_id"`
	InterviewerIDs []string               `json:"interviewer_ids"`
}

// InterviewStartedPayload payload. StartedEarly is derived at emit time so
// consumers need not re-fetch the record.
type InterviewStartedPayload struct {
	CandidateID     string    `json:"candidate_id"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	ActualStartTime time.Time `json:"actual_start_time"`
	StartedEarly    bool      `json:"started_early"`
}

// InterviewStatusChangedPayload payload.
type InterviewStatusChangedPayload struct {
	OldStatus domain.InterviewStatus `json:"old_status"`
	NewStatus domain.InterviewStatus `json:"new_status"`
}

// InterviewDeletedPayload payload.
type InterviewDeletedPayload struct {
	Title       string `json:"title"`
	CandidateID string `json:"candidate_id"`
}
