package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/interview-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")
	role := domain.RoleInterviewer

	token, err := tm.GenerateToken("ext-1", &role, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "ext-1" {
		t.Errorf("subject = %q, want ext-1", claims.Subject)
	}
	if claims.Role == nil || *claims.Role != domain.RoleInterviewer {
		t.Errorf("role = %v, want interviewer", claims.Role)
	}
}

func TestParseTokenRejections(t *testing.T) {
	tm := NewTokenManager("test-secret")

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret")
		token, err := other.GenerateToken("ext-1", nil, time.Hour)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if _, err := tm.ParseToken(token); err == nil {
			t.Error("expected signature error")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := tm.GenerateToken("ext-1", nil, -time.Minute)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if _, err := tm.ParseToken(token); err == nil {
			t.Error("expected expiry error")
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := tm.GenerateToken("", nil, time.Hour)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if _, err := tm.ParseToken(token); err == nil {
			t.Error("expected missing-subject error")
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := tm.ParseToken("not.a.jwt"); err == nil {
			t.Error("expected parse error")
		}
	})
}
