package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interview-service/internal/api/dto"
	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/service"
	apperrors "github.com/spec-kit/interview-service/pkg/util"
)

// InterviewsHandler manages interview endpoints.
type InterviewsHandler struct {
	service *service.InterviewService
}

// NewInterviewsHandler constructs handler.
func NewInterviewsHandler(interviewService *service.InterviewService) *InterviewsHandler {
	return &InterviewsHandler{service: interviewService}
}

// List GET /interviews.
func (h *InterviewsHandler) List(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	interviews, err := h.service.ListAll(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": enrichedResponses(interviews, time.Now())})
}

// ListMine GET /interviews/mine.
func (h *InterviewsHandler) ListMine(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	interviews, err := h.service.ListMine(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": enrichedResponses(interviews, time.Now())})
}

// ListGrouped GET /interviews/grouped.
func (h *InterviewsHandler) ListGrouped(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	interviews, err := h.service.ListAll(c.UserContext(), identity)
	if err != nil {
		return err
	}
	now := time.Now()
	grouped := service.GroupByCategory(interviews, now)

	groups := make([]dto.CategoryGroup, 0, len(grouped))
	for _, category := range domain.Categories() {
		bucket, ok := grouped[category]
		if !ok {
			continue
		}
		groups = append(groups, dto.CategoryGroup{
			Category:   string(category),
			Interviews: enrichedResponses(bucket, now),
		})
	}
	return c.JSON(fiber.Map{"data": groups})
}

// GetBySessionToken GET /interviews/session/:token. A hidden or missing
// record yields null, never a distinct error.
func (h *InterviewsHandler) GetBySessionToken(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	interview, err := h.service.GetByStreamCallID(c.UserContext(), c.Params("token"), identity)
	if err != nil {
		return err
	}
	if interview == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": interviewResponse(interview, time.Now())})
}

// Create POST /interviews.
func (h *InterviewsHandler) Create(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	var req dto.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.InterviewCreateInput{
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		Status:         domain.InterviewStatus(req.Status),
		StreamCallID:   req.StreamCallID,
		CandidateID:    req.CandidateID,
		InterviewerIDs: req.InterviewerIDs,
	}
	interview, err := h.service.Create(c.UserContext(), identity, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": interviewResponse(interview, time.Now())})
}

// Start POST /interviews/:id/start.
func (h *InterviewsHandler) Start(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	interview, err := h.service.Start(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": interviewResponse(interview, time.Now())})
}

// UpdateStatus PATCH /interviews/:id/status.
func (h *InterviewsHandler) UpdateStatus(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	interview, err := h.service.UpdateStatus(c.UserContext(), identity, c.Params("id"), domain.InterviewStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": interviewResponse(interview, time.Now())})
}

// Delete DELETE /interviews/:id.
func (h *InterviewsHandler) Delete(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	if err := h.service.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func interviewResponse(interview *domain.Interview, now time.Time) dto.InterviewResponse {
	return dto.InterviewResponse{
		ID:              interview.ID,
		Title:           interview.Title,
		Description:     interview.Description,
		StartTime:       interview.StartTime,
		ActualStartTime: interview.ActualStartTime,
		EndTime:         interview.EndTime,
		Status:          string(interview.Status),
		IsStarted:       interview.IsStarted,
		StreamCallID:    interview.StreamCallID,
		CandidateID:     interview.CandidateID,
		InterviewerIDs:  interview.InterviewerIDs,
		StartedEarly:    interview.StartedEarly(),
		HasStartedEarly: interview.HasStartedEarly(now),
		MeetingState:    string(interview.MeetingStateAt(now)),
		CreatedAt:       interview.CreatedAt,
	}
}

func enrichedResponses(interviews []service.EnrichedInterview, now time.Time) []dto.InterviewResponse {
	items := make([]dto.InterviewResponse, 0, len(interviews))
	for i := range interviews {
		resp := interviewResponse(&interviews[i].Interview, now)
		if interviews[i].Candidate != nil {
			candidate := userResponse(interviews[i].Candidate)
			resp.Candidate = &candidate
		}
		for j := range interviews[i].Interviewers {
			resp.Interviewers = append(resp.Interviewers, userResponse(&interviews[i].Interviewers[j]))
		}
		items = append(items, resp)
	}
	return items
}
