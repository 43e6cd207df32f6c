package token

import (
	"errors"
	"testing"
	"time"

	errs "memgame/internal/errors"
)

func TestGenerateAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)
	userID := "user-123"

	tok, err := m.Generate(userID)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	gotUserID, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", -1*time.Second)

	tok, err := m.Generate("u1")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = m.Verify(tok)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if !errors.Is(err, errs.ErrTokenInvalid) {
		t.Fatalf("expected errs.ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewManager("right-secret", time.Hour).Generate("u2")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = NewManager("wrong-secret", time.Hour).Verify(tok)
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewManager("k", time.Hour).Verify("not.a.jwt")
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestGenerate_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)

	first, err := m.Generate("u3")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	second, err := m.Generate("u3")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens for repeated sign-ins")
	}
}
