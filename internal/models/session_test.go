package models

import (
	"testing"
	"time"
)

func TestSessionNeedsTokenRefresh(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"zero expiry", time.Time{}, true},
		{"already expired", time.Now().Add(-time.Hour), true},
		{"expires inside the refresh window", time.Now().Add(2 * time.Minute), true},
		{"plenty of time left", time.Now().Add(time.Hour), false},
	}

	for _, tt := range tests {
		s := Session{TokenExpiry: tt.expiry}
		if got := s.NeedsTokenRefresh(); got != tt.want {
			t.Errorf("%s: NeedsTokenRefresh = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSessionHasActiveUser(t *testing.T) {
	pending := Session{GoogleID: "g-123"}
	if pending.HasActiveUser() {
		t.Error("session without a username should not have an active user")
	}

	linked := Session{GoogleID: "g-123", Username: "ada"}
	if !linked.HasActiveUser() {
		t.Error("session with a completed profile should have an active user")
	}
}
