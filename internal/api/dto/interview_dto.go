package dto

import "time"

// CreateInterviewRequest payload for scheduling an interview.
type CreateInterviewRequest struct {
	Title          string    `json:"title" validate:"required"`
	Description    *string   `json:"description,omitempty"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	Status         string    `json:"status" validate:"required"`
	StreamCallID   string    `json:"stream_call_id" validate:"required"`
	CandidateID    string    `json:"candidate_id" validate:"required"`
	InterviewerIDs []string  `json:"interviewer_ids" validate:"required,min=1"`
}

// UpdateStatusRequest payload for status transitions.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// InterviewResponse is the interview shape returned to clients, including
// the derived early-start and display fields.
type InterviewResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	ActualStartTime *time.Time `json:"actual_start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Status          string     `json:"status"`
	IsStarted       bool       `json:"is_started"`
	StreamCallID    string     `json:"stream_call_id"`
	CandidateID     string     `json:"candidate_id"`
	InterviewerIDs  []string   `json:"interviewer_ids"`
	StartedEarly    bool       `json:"started_early"`
	HasStartedEarly bool       `json:"has_started_early"`
	MeetingState    string     `json:"meeting_state"`
	CreatedAt       time.Time  `json:"created_at"`

	Candidate    *UserResponse  `json:"candidate,omitempty"`
	Interviewers []UserResponse `json:"interviewers,omitempty"`
}

// CategoryGroup is one dashboard bucket.
type CategoryGroup struct {
	Category   string              `json:"category"`
	Interviews []InterviewResponse `json:"interviews"`
}
