package session

import (
	"testing"
	"time"

	"github.com/staffdesk/staffdesk/config"
)

func testManager(ttl time.Duration) *Manager {
	return NewManager(&config.SessionConfig{
		Secret: "test-secret",
		TTL:    ttl,
	})
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	m := testManager(time.Hour)

	token, err := m.Issue("dana@example.com", "upstream-tok")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Email != "dana@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.UpstreamToken != "upstream-tok" {
		t.Errorf("UpstreamToken = %q", claims.UpstreamToken)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := testManager(time.Hour).Issue("a@b.c", "tok")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := NewManager(&config.SessionConfig{Secret: "different", TTL: time.Hour})
	if _, err := other.Validate(token); err == nil {
		t.Error("token signed with another secret must not validate")
	}
}

func TestValidate_Expired(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.Issue("a@b.c", "tok")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Validate(token); err == nil {
		t.Error("expired token must not validate")
	}
}

func TestValidate_Garbage(t *testing.T) {
	if _, err := testManager(time.Hour).Validate("not-a-jwt"); err == nil {
		t.Error("garbage must not validate")
	}
}
