package sealer

import (
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	token, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	if err := s.Verify(token, 5*time.Minute); err != nil {
		t.Errorf("fresh token should verify, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	issued := time.Now().UTC().Add(-6 * time.Minute)
	token, err := s.issueAt(issued)
	if err != nil {
		t.Fatalf("issueAt() failed: %v", err)
	}

	if err := s.Verify(token, 5*time.Minute); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired for a 6-minute-old token, got %v", err)
	}
}

func TestVerify_ExactBoundary(t *testing.T) {
	s, _ := New("")

	now := time.Now().UTC()
	token, err := s.issueAt(now.Add(-5 * time.Minute))
	if err != nil {
		t.Fatalf("issueAt() failed: %v", err)
	}

	// At precisely maxAge the token is still acceptable.
	if err := s.verifyAt(token, 5*time.Minute, now); err != nil {
		t.Errorf("token at exactly maxAge should verify, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	s, _ := New("")

	token, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	tampered := []byte(token)
	tampered[len(tampered)-1] ^= 0x01

	if err := s.Verify(string(tampered), 5*time.Minute); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	s, _ := New("")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"too short", "YWJj"},
		{"random bytes", "aGVsbG8gd29ybGQgdGhpcyBpcyBub3QgYSB0b2tlbg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Verify(tt.token, 5*time.Minute); err != ErrTokenInvalid {
				t.Errorf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestNew_BadKey(t *testing.T) {
	if _, err := New("not-base64!"); err == nil {
		t.Error("expected error for undecodable key")
	}

	// Decodes fine but wrong length.
	if _, err := New("YWJj"); err == nil {
		t.Error("expected error for short key")
	}
}
