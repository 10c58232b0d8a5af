package service

import (
	"context"
	"testing"

	"github.com/spec-kit/interview-service/internal/domain"
)

func TestSync(t *testing.T) {
	ctx := context.Background()

	t.Run("first sign-in creates a candidate entry", func(t *testing.T) {
		repo := &fakeUserRepo{users: map[string]domain.User{}}
		svc := NewUserService(repo)

		err := svc.Sync(ctx, UserSyncInput{
			Name:       "  Nora  ",
			Email:      "nora@example.com",
			ExternalID: "ext-nora",
		})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		stored, ok := repo.users["ext-nora"]
		if !ok {
			t.Fatal("entry not created")
		}
		if stored.Role != domain.RoleCandidate {
			t.Errorf("role = %s, want candidate", stored.Role)
		}
		if stored.Name != "Nora" {
			t.Errorf("name = %q, want trimmed %q", stored.Name, "Nora")
		}
	})

	t.Run("repeated sync leaves the entry untouched", func(t *testing.T) {
		repo := &fakeUserRepo{users: map[string]domain.User{
			"ext-nora": {ExternalID: "ext-nora", Name: "Nora", Email: "nora@example.com", Role: domain.RoleInterviewer},
		}}
		svc := NewUserService(repo)

		err := svc.Sync(ctx, UserSyncInput{
			Name:       "Nora Changed",
			Email:      "new@example.com",
			ExternalID: "ext-nora",
		})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		stored := repo.users["ext-nora"]
		if stored.Name != "Nora" || stored.Email != "nora@example.com" || stored.Role != domain.RoleInterviewer {
			t.Errorf("existing entry mutated by sync: %+v", stored)
		}
	})
}

func TestUpsertWithRole(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown role is rejected", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{users: map[string]domain.User{}})
		_, err := svc.UpsertWithRole(ctx, UserOnboardInput{ExternalID: "ext-1", Role: "admin"})
		if code := domainErrorCode(t, err); code != "VALIDATION_FAILED" {
			t.Errorf("code = %s, want VALIDATION_FAILED", code)
		}
	})

	t.Run("creates a new entry with the given role", func(t *testing.T) {
		repo := &fakeUserRepo{users: map[string]domain.User{}}
		svc := NewUserService(repo)

		user, err := svc.UpsertWithRole(ctx, UserOnboardInput{
			Name:       "Iris",
			Email:      "iris@example.com",
			ExternalID: "ext-iris",
			Role:       domain.RoleInterviewer,
		})
		if err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
		if user.Role != domain.RoleInterviewer {
			t.Errorf("role = %s, want interviewer", user.Role)
		}
		if _, ok := repo.users["ext-iris"]; !ok {
			t.Error("entry not persisted")
		}
	})

	t.Run("overwrites the role of an existing entry", func(t *testing.T) {
		repo := &fakeUserRepo{users: map[string]domain.User{
			"ext-iris": {ExternalID: "ext-iris", Name: "Iris", Email: "iris@example.com", Role: domain.RoleCandidate},
		}}
		svc := NewUserService(repo)

		user, err := svc.UpsertWithRole(ctx, UserOnboardInput{
			Name:       "Ignored",
			Email:      "ignored@example.com",
			ExternalID: "ext-iris",
			Role:       domain.RoleInterviewer,
		})
		if err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
		if user.Role != domain.RoleInterviewer {
			t.Errorf("returned role = %s, want interviewer", user.Role)
		}
		stored := repo.users["ext-iris"]
		if stored.Role != domain.RoleInterviewer {
			t.Errorf("stored role = %s, want interviewer", stored.Role)
		}
		if stored.Name != "Iris" {
			t.Errorf("profile fields must not change on role upsert, name = %q", stored.Name)
		}
	})
}

func TestGetByExternalID(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUserRepo{users: map[string]domain.User{
		"ext-iris": {ExternalID: "ext-iris", Name: "Iris", Role: domain.RoleInterviewer},
	}}
	svc := NewUserService(repo)

	t.Run("known entry", func(t *testing.T) {
		user, err := svc.GetByExternalID(ctx, "ext-iris")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if user == nil || user.Name != "Iris" {
			t.Errorf("unexpected user %+v", user)
		}
	})

	t.Run("missing entry yields nil without error", func(t *testing.T) {
		user, err := svc.GetByExternalID(ctx, "ext-nope")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if user != nil {
			t.Errorf("expected nil, got %+v", user)
		}
	})
}
