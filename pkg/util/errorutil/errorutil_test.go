package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		if ToDomainError(nil) != nil {
			t.Fatal("nil produced an error")
		}
	})

	t.Run("domain error is returned as-is", func(t *testing.T) {
		err := NewLeaveNotFound()
		domainErr := ToDomainError(err)
		if domainErr.Kind != KindLeaveNotFound || domainErr.HTTPStatus != http.StatusNotFound {
			t.Fatalf("unexpected conversion: %+v", domainErr)
		}
	})

	t.Run("wrapped domain error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", NewAlreadyClockedIn())
		if got := ToDomainError(err).Kind; got != KindAlreadyClockedIn {
			t.Fatalf("got kind %s, want %s", got, KindAlreadyClockedIn)
		}
	})

	t.Run("unknown errors become internal and hide detail", func(t *testing.T) {
		err := errors.New("pq: relation does not exist")
		domainErr := ToDomainError(err)
		if domainErr.Kind != KindInternal {
			t.Fatalf("got kind %s, want %s", domainErr.Kind, KindInternal)
		}
		if domainErr.Message != "internal server error" {
			t.Fatalf("storage detail leaked: %q", domainErr.Message)
		}
	})
}

func TestKindOf(t *testing.T) {
	if got := KindOf(NewUsernameTaken()); got != KindUsernameAlreadyTaken {
		t.Fatalf("got %s, want %s", got, KindUsernameAlreadyTaken)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Fatalf("got %s for a plain error, want empty", got)
	}
	if !IsKind(NewNotClockedIn(), KindNotClockedIn) {
		t.Fatal("IsKind missed a matching kind")
	}
}

func TestSecuritySensitiveMessages(t *testing.T) {
	invalid := ToDomainError(NewInvalidCredentials())
	notAdmin := ToDomainError(NewNotAnAdmin())
	if invalid.Message != notAdmin.Message {
		t.Fatalf("admin rejection message %q differs from %q", notAdmin.Message, invalid.Message)
	}
	if invalid.Kind == notAdmin.Kind {
		t.Fatal("kinds should stay distinct for internal consumers")
	}
}
