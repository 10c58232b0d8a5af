package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/repository"
	apperrors "github.com/spec-kit/interview-service/pkg/util"
)

// UserService maintains the user directory. Entries are created by the
// post-auth sync call and never deleted here.
type UserService struct {
	users repository.UserRepository
}

// UserSyncInput describes the post-sign-in sync payload.
type UserSyncInput struct {
	Name       string
	Email      string
	ExternalID string
	Image      *string
}

// UserOnboardInput describes the explicit onboarding payload.
type UserOnboardInput struct {
	Name       string
	Email      string
	ExternalID string
	Image      *string
	Role       domain.UserRole
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Sync creates a directory entry on first sign-in. An existing entry is left
// untouched; the default role is candidate.
func (s *UserService) Sync(ctx context.Context, input UserSyncInput) error {
	existing, err := s.users.GetByExternalID(ctx, input.ExternalID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing != nil {
		return nil
	}

	user := &domain.User{
		ExternalID: input.ExternalID,
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Image:      input.Image,
		Role:       domain.RoleCandidate,
	}
	return s.users.Create(ctx, user)
}

// UpsertWithRole creates the entry or overwrites the role of an existing one.
// This is the only path that upgrades a candidate to interviewer.
func (s *UserService) UpsertWithRole(ctx context.Context, input UserOnboardInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown user role", map[string]any{"role": input.Role})
	}

	existing, err := s.users.GetByExternalID(ctx, input.ExternalID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		if err := s.users.UpdateRole(ctx, input.ExternalID, input.Role); err != nil {
			return nil, err
		}
		existing.Role = input.Role
		return existing, nil
	}

	user := &domain.User{
		ExternalID: input.ExternalID,
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Image:      input.Image,
		Role:       input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every directory entry.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAll(ctx)
}

// GetByExternalID resolves a single entry; a missing entry yields nil, not
// an error.
func (s *UserService) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
