package http

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/interview-service/internal/api/http/handlers"
	"github.com/spec-kit/interview-service/internal/auth"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/service"
)

type stubInterviewRepo struct {
	interviews []domain.Interview
}

func (r *stubInterviewRepo) Create(_ context.Context, interview *domain.Interview) error {
	interview.ID = "int-new"
	interview.CreatedAt = time.Now()
	r.interviews = append(r.interviews, *interview)
	return nil
}

func (r *stubInterviewRepo) Update(_ context.Context, interview *domain.Interview) error {
	for i := range r.interviews {
		if r.interviews[i].ID == interview.ID {
			r.interviews[i] = *interview
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubInterviewRepo) Delete(_ context.Context, id string) error {
	for i := range r.interviews {
		if r.interviews[i].ID == id {
			r.interviews = append(r.interviews[:i], r.interviews[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubInterviewRepo) GetByID(_ context.Context, id string) (*domain.Interview, error) {
	for i := range r.interviews {
		if r.interviews[i].ID == id {
			copied := r.interviews[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubInterviewRepo) GetByStreamCallID(_ context.Context, streamCallID string) (*domain.Interview, error) {
	for i := range r.interviews {
		if r.interviews[i].StreamCallID == streamCallID {
			copied := r.interviews[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubInterviewRepo) ListAll(_ context.Context) ([]domain.Interview, error) {
	return append([]domain.Interview{}, r.interviews...), nil
}

type stubUserRepo struct {
	users map[string]domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = "usr-" + user.ExternalID
	r.users[user.ExternalID] = *user
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, externalID string, role domain.UserRole) error {
	user, ok := r.users[externalID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	r.users[externalID] = user
	return nil
}

func (r *stubUserRepo) GetByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	user, ok := r.users[externalID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *stubUserRepo) GetByExternalIDs(_ context.Context, externalIDs []string) ([]domain.User, error) {
	result := []domain.User{}
	for _, id := range externalIDs {
		if user, ok := r.users[id]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	result := []domain.User{}
	for _, user := range r.users {
		result = append(result, user)
	}
	return result, nil
}

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	interviewRepo := &stubInterviewRepo{interviews: []domain.Interview{{
		ID:             "int-1",
		Title:          "Backend screen",
		StartTime:      time.Now().Add(time.Hour),
		Status:         domain.InterviewStatusScheduled,
		StreamCallID:   "call-abc",
		CandidateID:    "cand-1",
		InterviewerIDs: []string{"ivr-1"},
	}}}
	userRepo := &stubUserRepo{users: map[string]domain.User{
		"cand-1": {ID: "usr-cand-1", ExternalID: "cand-1", Name: "Casey", Email: "casey@example.com", Role: domain.RoleCandidate},
		"ivr-1":  {ID: "usr-ivr-1", ExternalID: "ivr-1", Name: "Iris", Email: "iris@example.com", Role: domain.RoleInterviewer},
	}}

	interviewService := service.NewInterviewService(service.InterviewDependencies{
		InterviewRepo: interviewRepo,
		UserRepo:      userRepo,
	})
	userService := service.NewUserService(userRepo)

	tokenManager := auth.NewTokenManager("test-secret")
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("interview-service", "test", nil, nil),
		Interviews:     handlers.NewInterviewsHandler(interviewService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: authMiddleware,
	})
	return app, tokenManager
}

func bearerFor(t *testing.T, tokens *auth.TokenManager, externalID string) string {
	t.Helper()
	token, err := tokens.GenerateToken(externalID, nil, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	return "Bearer " + token
}

func decodeBody(t *testing.T, resp *nethttp.Response) map[string]json.RawMessage {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return body
}

func TestListInterviewsRoute(t *testing.T) {
	t.Run("unauthenticated request gets an empty list", func(t *testing.T) {
		app, _ := newTestApp(t)
		req := httptest.NewRequest(nethttp.MethodGet, "/interviews/", nil)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if string(body["data"]) != "[]" {
			t.Errorf("data = %s, want []", body["data"])
		}
	})

	t.Run("participant sees the enriched interview", func(t *testing.T) {
		app, tokens := newTestApp(t)
		req := httptest.NewRequest(nethttp.MethodGet, "/interviews/", nil)
		req.Header.Set("Authorization", bearerFor(t, tokens, "cand-1"))

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(body["data"], &items); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("got %d interviews, want 1", len(items))
		}
		if string(items[0]["meeting_state"]) != `"upcoming"` {
			t.Errorf("meeting_state = %s, want upcoming", items[0]["meeting_state"])
		}
		if items[0]["candidate"] == nil {
			t.Error("candidate enrichment missing")
		}
	})
}

func TestSessionTokenRoute(t *testing.T) {
	t.Run("non-participant gets null data", func(t *testing.T) {
		app, tokens := newTestApp(t)
		req := httptest.NewRequest(nethttp.MethodGet, "/interviews/session/call-abc", nil)
		req.Header.Set("Authorization", bearerFor(t, tokens, "stranger"))

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if string(body["data"]) != "null" {
			t.Errorf("data = %s, want null", body["data"])
		}
	})

	t.Run("participant gets the record", func(t *testing.T) {
		app, tokens := newTestApp(t)
		req := httptest.NewRequest(nethttp.MethodGet, "/interviews/session/call-abc", nil)
		req.Header.Set("Authorization", bearerFor(t, tokens, "ivr-1"))

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		body := decodeBody(t, resp)
		var data map[string]json.RawMessage
		if err := json.Unmarshal(body["data"], &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if string(data["id"]) != `"int-1"` {
			t.Errorf("id = %s, want int-1", data["id"])
		}
	})
}

func TestMutationRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(nethttp.MethodPost, "/interviews/int-1/start", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	var errBody map[string]json.RawMessage
	if err := json.Unmarshal(body["error"], &errBody); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if string(errBody["code"]) != `"UNAUTHORIZED"` {
		t.Errorf("code = %s, want UNAUTHORIZED", errBody["code"])
	}
}

func TestCreateInterviewRoute(t *testing.T) {
	t.Run("missing fields fail validation", func(t *testing.T) {
		app, tokens := newTestApp(t)
		req := httptest.NewRequest(nethttp.MethodPost, "/interviews/", strings.NewReader(`{"title":"No candidate"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearerFor(t, tokens, "ivr-1"))

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != nethttp.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("valid payload creates the interview", func(t *testing.T) {
		app, tokens := newTestApp(t)
		payload := `{
			"title": "System design",
			"start_time": "2026-09-01T15:00:00Z",
			"status": "scheduled",
			"stream_call_id": "call-def",
			"candidate_id": "cand-1",
			"interviewer_ids": ["ivr-1"]
		}`
		req := httptest.NewRequest(nethttp.MethodPost, "/interviews/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearerFor(t, tokens, "ivr-1"))

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != nethttp.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		var data map[string]json.RawMessage
		if err := json.Unmarshal(body["data"], &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if string(data["is_started"]) != "false" {
			t.Errorf("is_started = %s, want false", data["is_started"])
		}
	})
}

func TestUserRoutes(t *testing.T) {
	t.Run("sync returns no content", func(t *testing.T) {
		app, _ := newTestApp(t)
		payload := `{"name":"Nora","email":"nora@example.com","external_id":"ext-nora"}`
		req := httptest.NewRequest(nethttp.MethodPost, "/users/sync", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != nethttp.StatusNoContent {
			t.Fatalf("status = %d, want 204", resp.StatusCode)
		}
	})

	t.Run("unknown user lookup yields null data", func(t *testing.T) {
		app, _ := newTestApp(t)
		req := httptest.NewRequest(nethttp.MethodGet, "/users/ext-missing", nil)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if string(body["data"]) != "null" {
			t.Errorf("data = %s, want null", body["data"])
		}
	})

	t.Run("onboard rejects an unknown role", func(t *testing.T) {
		app, _ := newTestApp(t)
		payload := `{"name":"Nora","email":"nora@example.com","external_id":"ext-nora","role":"admin"}`
		req := httptest.NewRequest(nethttp.MethodPost, "/users/onboard", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != nethttp.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}
