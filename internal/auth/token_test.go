package auth_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/VishnuSankarIP/todo-client/internal/auth"
)

func tempStore(t *testing.T) auth.Store {
	t.Helper()
	t.Setenv(auth.EnvVar, "")
	return auth.Store{Path: filepath.Join(t.TempDir(), "credentials.json")}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := tempStore(t)

	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	if err := s.Set("Bearer abc123", &exp); err != nil {
		t.Fatalf("set: %v", err)
	}

	ti, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ti == nil {
		t.Fatal("expected stored token")
	}
	if ti.Token != "abc123" {
		t.Errorf("bearer prefix not stripped: %q", ti.Token)
	}
	if ti.Source != "file" {
		t.Errorf("source = %q", ti.Source)
	}
	if ti.ExpiresAt == nil || !ti.ExpiresAt.Equal(exp) {
		t.Errorf("expires = %v, want %v", ti.ExpiresAt, exp)
	}
}

func TestGetWhenLoggedOut(t *testing.T) {
	s := tempStore(t)

	ti, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ti != nil {
		t.Errorf("expected nil token, got %+v", ti)
	}
	if got := s.Token(); got != "" {
		t.Errorf("Token() = %q", got)
	}
}

func TestEnvOverride(t *testing.T) {
	s := auth.Store{Path: filepath.Join(t.TempDir(), "credentials.json")}
	t.Setenv(auth.EnvVar, "bearer env-token")

	ti, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ti == nil || ti.Token != "env-token" || ti.Source != "env" {
		t.Errorf("env override not applied: %+v", ti)
	}
}

func TestSetRejectsEmptyToken(t *testing.T) {
	s := tempStore(t)
	if err := s.Set("   ", nil); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := tempStore(t)
	if err := s.Set("abc", nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Errorf("second delete: %v", err)
	}
	if got := s.Token(); got != "" {
		t.Errorf("token survived delete: %q", got)
	}
}
