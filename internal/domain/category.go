package domain

import "time"

// Category names a dashboard bucket. Every interview lands in exactly one.
type Category string

const (
	CategorySucceeded Category = "succeeded"
	CategoryFailed    Category = "failed"
	CategoryCompleted Category = "completed"
	CategoryLive      Category = "live"
	CategoryUpcoming  Category = "upcoming"
)

// Categories returns buckets in presentation order.
func Categories() []Category {
	return []Category{CategoryLive, CategoryUpcoming, CategoryCompleted, CategorySucceeded, CategoryFailed}
}

// CategoryAt assigns the interview to its bucket at the given instant.
// Outcome statuses take precedence, then the derived meeting state.
func (i *Interview) CategoryAt(now time.Time) Category {
	switch i.Status {
	case InterviewStatusSucceeded:
		return CategorySucceeded
	case InterviewStatusFailed:
		return CategoryFailed
	case InterviewStatusCompleted:
		return CategoryCompleted
	}
	switch i.MeetingStateAt(now) {
	case MeetingStateLive:
		return CategoryLive
	case MeetingStateUpcoming:
		return CategoryUpcoming
	}
	return CategoryCompleted
}
