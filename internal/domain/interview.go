package domain

import "time"

// InterviewStatus enumerates lifecycle states for interviews.
type InterviewStatus string

const (
	InterviewStatusScheduled  InterviewStatus = "scheduled"
	InterviewStatusInProgress InterviewStatus = "in-progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
	InterviewStatusSucceeded  InterviewStatus = "succeeded"
	InterviewStatusFailed     InterviewStatus = "failed"
)

// Valid reports whether the status is a known value.
func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusInProgress, InterviewStatusCompleted,
		InterviewStatusSucceeded, InterviewStatusFailed:
		return true
	}
	return false
}

// IsOutcome reports whether the status is an interviewer judgment.
func (s InterviewStatus) IsOutcome() bool {
	return s == InterviewStatusSucceeded || s == InterviewStatusFailed
}

// Interview is the aggregate for a scheduled session between one candidate
// and one or more interviewers. StreamCallID correlates the record to the
// external conferencing session and is immutable after creation.
type Interview struct {
	ID              string
	Title           string
	Description     *string
	StartTime       time.Time
	ActualStartTime *time.Time
	EndTime         *time.Time
	Status          InterviewStatus
	IsStarted       bool
	StreamCallID    string
	CandidateID     string
	InterviewerIDs  []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasInterviewer reports whether the identity is one of the interviewers.
func (i *Interview) HasInterviewer(identity string) bool {
	for _, id := range i.InterviewerIDs {
		if id == identity {
			return true
		}
	}
	return false
}

// CanView reports whether the identity may read the interview. Empty
// identity means unauthenticated and always fails.
func (i *Interview) CanView(identity string) bool {
	if i == nil || identity == "" {
		return false
	}
	return identity == i.CandidateID || i.HasInterviewer(identity)
}

// CanUpdateStatus reports whether the identity may change the status. The
// rule is the same as CanView; outcome statuses carry an additional
// interviewer-only check, see CanJudgeOutcome.
func (i *Interview) CanUpdateStatus(identity string) bool {
	return i.CanView(identity)
}

// CanStart reports whether the identity may start the interview. Candidates
// cannot start their own interview.
func (i *Interview) CanStart(identity string) bool {
	if i == nil || identity == "" {
		return false
	}
	return i.HasInterviewer(identity)
}

// CanDelete reports whether the identity may delete the interview.
func (i *Interview) CanDelete(identity string) bool {
	if i == nil || identity == "" {
		return false
	}
	return i.HasInterviewer(identity)
}

// CanJudgeOutcome reports whether the identity may record a succeeded/failed
// judgment. Only interviewers may, even though CanUpdateStatus is broader.
func (i *Interview) CanJudgeOutcome(identity string) bool {
	if i == nil || identity == "" {
		return false
	}
	return i.HasInterviewer(identity)
}

// StartedEarly reports the historical fact that the session began ahead of
// its scheduled time. It is derived on every read, never stored.
func (i *Interview) StartedEarly() bool {
	return i.IsStarted && i.ActualStartTime != nil && i.ActualStartTime.Before(i.StartTime)
}

// HasStartedEarly reports the live fact that the session is running ahead of
// schedule right now. It becomes false once the wall clock passes the
// scheduled start, independent of ActualStartTime.
func (i *Interview) HasStartedEarly(now time.Time) bool {
	return i.IsStarted && i.Status != InterviewStatusCompleted && now.Before(i.StartTime)
}

// liveWindow is how long after the scheduled start an unstarted interview is
// still presented as live rather than completed.
const liveWindow = time.Hour

// MeetingState is the derived display state of an interview.
type MeetingState string

const (
	MeetingStateUpcoming  MeetingState = "upcoming"
	MeetingStateLive      MeetingState = "live"
	MeetingStateCompleted MeetingState = "completed"
)

// MeetingStateAt derives the display state at the given instant.
func (i *Interview) MeetingStateAt(now time.Time) MeetingState {
	switch i.Status {
	case InterviewStatusCompleted, InterviewStatusSucceeded, InterviewStatusFailed:
		return MeetingStateCompleted
	}
	if i.IsStarted {
		return MeetingStateLive
	}
	if now.Before(i.StartTime) {
		return MeetingStateUpcoming
	}
	if now.Before(i.StartTime.Add(liveWindow)) {
		return MeetingStateLive
	}
	return MeetingStateCompleted
}

var allowedTransitions = map[InterviewStatus][]InterviewStatus{
	// scheduled->completed is a deliberate loose edge: status and
	// IsStarted/ActualStartTime are tracked independently, so an interview
	// may be completed without ever having been marked started.
	InterviewStatusScheduled:  {InterviewStatusInProgress, InterviewStatusCompleted},
	InterviewStatusInProgress: {InterviewStatusCompleted},
	// completed->completed re-stamps EndTime; the transition is not
	// idempotent on purpose.
	InterviewStatusCompleted: {InterviewStatusCompleted, InterviewStatusSucceeded, InterviewStatusFailed},
	InterviewStatusSucceeded: {},
	InterviewStatusFailed:    {},
}

// CanTransition reports whether the status change is an allowed edge.
func CanTransition(current, next InterviewStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
