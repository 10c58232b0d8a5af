package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/events"
	"github.com/spec-kit/interview-service/internal/observability"
	"github.com/spec-kit/interview-service/internal/repository"
	apperrors "github.com/spec-kit/interview-service/pkg/util"
)

// InterviewService coordinates the interview lifecycle and viewer-scoped
// queries. Identity is the caller's external id; an empty identity means the
// caller is unauthenticated.
type InterviewService struct {
	interviews repository.InterviewRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// InterviewDependencies bundles collaborators for the interview service.
type InterviewDependencies struct {
	InterviewRepo repository.InterviewRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
	Metrics       *observability.Metrics
}

// InterviewCreateInput describes interview creation payload.
type InterviewCreateInput struct {
	Title          string
	Description    *string
	StartTime      time.Time
	Status         domain.InterviewStatus
	StreamCallID   string
	CandidateID    string
	InterviewerIDs []string
}

// EnrichedInterview is an interview joined with resolved directory entries.
// Participants missing from the directory are dropped from the enrichment,
// never failing the query.
type EnrichedInterview struct {
	domain.Interview
	Candidate    *domain.User
	Interviewers []domain.User
}

// NewInterviewService constructs the service.
func NewInterviewService(deps InterviewDependencies) *InterviewService {
	return &InterviewService{
		interviews: deps.InterviewRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// ListAll returns every interview the viewer may see, enriched. An
// unauthenticated viewer gets an empty slice, not an error.
func (s *InterviewService) ListAll(ctx context.Context, identity string) ([]EnrichedInterview, error) {
	return s.listVisible(ctx, identity)
}

// ListMine returns the viewer's own interviews, enriched. Visibility is
// membership-based, so the result matches ListAll for the same viewer.
func (s *InterviewService) ListMine(ctx context.Context, identity string) ([]EnrichedInterview, error) {
	return s.listVisible(ctx, identity)
}

func (s *InterviewService) listVisible(ctx context.Context, identity string) ([]EnrichedInterview, error) {
	if identity == "" {
		return []EnrichedInterview{}, nil
	}
	all, err := s.interviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Interview, 0, len(all))
	for _, interview := range all {
		if interview.CanView(identity) {
			visible = append(visible, interview)
		}
	}
	return s.enrich(ctx, visible)
}

// enrich resolves participants with a single batched directory lookup and
// preserves the input interview ordering.
func (s *InterviewService) enrich(ctx context.Context, interviews []domain.Interview) ([]EnrichedInterview, error) {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, interview := range interviews {
		for _, id := range append([]string{interview.CandidateID}, interview.InterviewerIDs...) {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	users, err := s.users.GetByExternalIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	userMap := make(map[string]domain.User, len(users))
	for _, user := range users {
		userMap[user.ExternalID] = user
	}

	result := make([]EnrichedInterview, 0, len(interviews))
	for _, interview := range interviews {
		enriched := EnrichedInterview{Interview: interview}
		if candidate, ok := userMap[interview.CandidateID]; ok {
			enriched.Candidate = &candidate
		}
		for _, id := range interview.InterviewerIDs {
			if interviewer, ok := userMap[id]; ok {
				enriched.Interviewers = append(enriched.Interviewers, interviewer)
			}
		}
		result = append(result, enriched)
	}
	return result, nil
}

// GetByStreamCallID looks an interview up by its conferencing session token.
// Callers the guard rejects get nil rather than an error, hiding whether the
// record exists.
func (s *InterviewService) GetByStreamCallID(ctx context.Context, streamCallID, identity string) (*domain.Interview, error) {
	if identity == "" {
		return nil, nil
	}
	interview, err := s.interviews.GetByStreamCallID(ctx, streamCallID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if !interview.CanView(identity) {
		return nil, nil
	}
	return interview, nil
}

// Create schedules a new interview. Any authenticated identity may create;
// the status is caller-supplied but must be a known value.
func (s *InterviewService) Create(ctx context.Context, identity string, input InterviewCreateInput) (*domain.Interview, error) {
	if identity == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !input.Status.Valid() {
		return nil, apperrors.NewValidationError("unknown interview status", map[string]any{"status": input.Status})
	}
	for _, id := range input.InterviewerIDs {
		if id == input.CandidateID {
			return nil, apperrors.NewValidationError("candidate cannot also be an interviewer", nil)
		}
	}

	interview := &domain.Interview{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		StartTime:      input.StartTime,
		Status:         input.Status,
		IsStarted:      false,
		StreamCallID:   input.StreamCallID,
		CandidateID:    input.CandidateID,
		InterviewerIDs: input.InterviewerIDs,
	}
	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventInterviewCreated,
		InterviewID: interview.ID,
		Actor:       identity,
		Payload: events.InterviewCreatedPayload{
			Title:          interview.Title,
			StartTime:      interview.StartTime,
			Status:         interview.Status,
			CandidateID:    interview.CandidateID,
			InterviewerIDs: interview.InterviewerIDs,
		},
	})
	return interview, nil
}

// Start marks the interview as running. Only interviewers may start; a
// second start is a no-op returning the current record, so the original
// actual start timestamp survives.
func (s *InterviewService) Start(ctx context.Context, identity, id string) (*domain.Interview, error) {
	if identity == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	interview, err := s.getInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !interview.CanStart(identity) {
		return nil, apperrors.NewForbidden("only interviewers can start an interview")
	}
	if interview.IsStarted {
		return interview, nil
	}

	now := time.Now()
	oldStatus := interview.Status
	interview.IsStarted = true
	interview.Status = domain.InterviewStatusInProgress
	interview.ActualStartTime = &now
	if err := s.interviews.Update(ctx, interview); err != nil {
		return nil, err
	}
	s.recordTransition(oldStatus, interview.Status)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventInterviewStarted,
		InterviewID: interview.ID,
		Actor:       identity,
		Payload: events.InterviewStartedPayload{
			CandidateID:     interview.CandidateID,
			ScheduledStart:  interview.StartTime,
			ActualStartTime: now,
			StartedEarly:    interview.StartedEarly(),
		},
	})
	return interview, nil
}

// UpdateStatus applies a status transition. Candidates and interviewers may
// update status, but the outcome judgments (succeeded/failed) are restricted
// to interviewers. Setting "completed" stamps EndTime with the mutation
// time, including on a repeated call.
func (s *InterviewService) UpdateStatus(ctx context.Context, identity, id string, status domain.InterviewStatus) (*domain.Interview, error) {
	if identity == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown interview status", map[string]any{"status": status})
	}
	interview, err := s.getInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !interview.CanUpdateStatus(identity) {
		return nil, apperrors.NewForbidden("not a participant of this interview")
	}
	if status.IsOutcome() && !interview.CanJudgeOutcome(identity) {
		return nil, apperrors.NewForbidden("only interviewers can record an outcome")
	}
	if !domain.CanTransition(interview.Status, status) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": interview.Status,
			"to":   status,
		})
	}

	oldStatus := interview.Status
	if status == domain.InterviewStatusCompleted {
		now := time.Now()
		interview.EndTime = &now
	}
	interview.Status = status
	if err := s.interviews.Update(ctx, interview); err != nil {
		return nil, err
	}
	s.recordTransition(oldStatus, status)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventInterviewStatusChanged,
		InterviewID: interview.ID,
		Actor:       identity,
		Payload: events.InterviewStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return interview, nil
}

// Delete removes the interview unconditionally, regardless of its status.
func (s *InterviewService) Delete(ctx context.Context, identity, id string) error {
	if identity == "" {
		return apperrors.NewUnauthorized("authentication required")
	}
	interview, err := s.getInterview(ctx, id)
	if err != nil {
		return err
	}
	if !interview.CanDelete(identity) {
		return apperrors.NewForbidden("only interviewers can delete an interview")
	}
	if err := s.interviews.Delete(ctx, interview.ID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventInterviewDeleted,
		InterviewID: interview.ID,
		Actor:       identity,
		Payload: events.InterviewDeletedPayload{
			Title:       interview.Title,
			CandidateID: interview.CandidateID,
		},
	})
	return nil
}

// GroupByCategory partitions interviews into dashboard buckets. The buckets
// are exhaustive and non-overlapping: every interview lands in exactly one.
func GroupByCategory(interviews []EnrichedInterview, now time.Time) map[domain.Category][]EnrichedInterview {
	grouped := make(map[domain.Category][]EnrichedInterview)
	for _, interview := range interviews {
		category := interview.CategoryAt(now)
		grouped[category] = append(grouped[category], interview)
	}
	return grouped
}

func (s *InterviewService) getInterview(ctx context.Context, id string) (*domain.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("interview", map[string]any{"id": id})
		}
		return nil, err
	}
	return interview, nil
}

func (s *InterviewService) recordTransition(from, to domain.InterviewStatus) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveTransition(string(from), string(to))
}

func (s *InterviewService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
