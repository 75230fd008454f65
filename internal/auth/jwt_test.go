// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"contenthub/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "jwt@test.local",
		Role:  models.RoleEditor,
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewManager("secret", time.Hour); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, _ := NewManager("test-secret", time.Hour)
	user := testUser()

	token, err := m.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	identity, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if identity.UserID != user.ID {
		t.Errorf("user id: got %s, want %s", identity.UserID, user.ID)
	}
	if identity.Email != user.Email {
		t.Errorf("email: got %q, want %q", identity.Email, user.Email)
	}
	if identity.Role != models.RoleEditor {
		t.Errorf("role: got %q", identity.Role)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	m, _ := NewManager("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.VerifyToken(tok); err != ErrInvalidToken {
			t.Errorf("token %q: got %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	m1, _ := NewManager("secret-one", time.Hour)
	m2, _ := NewManager("secret-two", time.Hour)

	token, _ := m1.GenerateToken(testUser())
	if _, err := m2.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	m, _ := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}
