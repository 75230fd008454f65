// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"contenthub/internal/models"
)

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user, err := s.Create("Test User", "create@test.local", "testpass123", models.RoleEditor, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if user.Email != "create@test.local" {
		t.Errorf("email: got %q, want %q", user.Email, "create@test.local")
	}
	if user.Role != models.RoleEditor {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleEditor)
	}
	if !user.IsActive {
		t.Error("expected new user to be active")
	}
	if user.PasswordHash == "" {
		t.Error("expected non-empty password hash")
	}
	if user.PasswordHash == "testpass123" {
		t.Error("password hash must not be plaintext")
	}
	if !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", user.PasswordHash[:4])
	}
}

func TestUserStoreFindByEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	// Not found case.
	user, err := s.FindByEmail("nobody@test.local")
	if err != nil {
		t.Fatalf("FindByEmail (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for non-existent user")
	}

	created := seedUser(t, db, "findme@test.local", models.RoleAuthor)

	user, err = s.FindByEmail("findme@test.local")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", user.ID, created.ID)
	}
}

func TestUserStoreFindByID(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	// Not found.
	user, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for random UUID")
	}

	created := seedUser(t, db, "byid@test.local", models.RoleAdmin)
	user, err = s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Email != "byid@test.local" {
		t.Errorf("email: got %q, want %q", user.Email, "byid@test.local")
	}
}

func TestUserStoreList(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	seedUser(t, db, "alice@test.local", models.RoleEditor)
	seedUser(t, db, "bob@test.local", models.RoleAuthor)
	seedUser(t, db, "carol@test.local", models.RoleAuthor)

	users, err := s.List("", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("expected 3 users, got %d", len(users))
	}

	// Search filters on name or email substring.
	users, err = s.List("bob", "")
	if err != nil {
		t.Fatalf("List search: %v", err)
	}
	if len(users) != 1 || users[0].Email != "bob@test.local" {
		t.Errorf("search bob: got %d users", len(users))
	}

	// Role filter.
	users, err = s.List("", "author")
	if err != nil {
		t.Fatalf("List role: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("role author: expected 2 users, got %d", len(users))
	}

	// "all" disables the role filter.
	users, err = s.List("", "all")
	if err != nil {
		t.Fatalf("List role=all: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("role all: expected 3 users, got %d", len(users))
	}
}

func TestUserStorePostCount(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	author := seedUser(t, db, "author@test.local", models.RoleAuthor)
	seedPost(t, db, "One", "one", models.PostStatusDraft, author.ID, nil)
	seedPost(t, db, "Two", "two", models.PostStatusPublished, author.ID, nil)

	user, err := s.FindByID(author.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user.PostCount != 2 {
		t.Errorf("post count: got %d, want 2", user.PostCount)
	}
}

func TestUserStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := seedUser(t, db, "update@test.local", models.RoleAuthor)

	bio := "a short bio"
	user.Name = "Renamed"
	user.Role = models.RoleEditor
	user.Bio = &bio
	user.IsActive = false

	if err := s.Update(user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := s.FindByID(user.ID)
	if got.Name != "Renamed" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Role != models.RoleEditor {
		t.Errorf("role: got %q", got.Role)
	}
	if got.Bio == nil || *got.Bio != bio {
		t.Errorf("bio: got %v", got.Bio)
	}
	if got.IsActive {
		t.Error("expected user to be deactivated")
	}
}

func TestUserStoreUpdatePassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := seedUser(t, db, "newpass@test.local", models.RoleAuthor)

	if err := s.UpdatePassword(user.ID, "brand-new-pass"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	got, _ := s.FindByID(user.ID)
	if !s.CheckPassword(got, "brand-new-pass") {
		t.Error("expected new password to verify")
	}
	if s.CheckPassword(got, "testpass123") {
		t.Error("expected old password to stop verifying")
	}
}

func TestUserStoreUpdateProfile(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := seedUser(t, db, "profile@test.local", models.RoleAuthor)

	// Only the name, bio untouched.
	name := "New Name"
	if err := s.UpdateProfile(user.ID, &name, nil); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, _ := s.FindByID(user.ID)
	if got.Name != "New Name" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Bio != nil {
		t.Errorf("bio: got %v, want nil", got.Bio)
	}

	// Only the bio.
	bio := "writer of things"
	if err := s.UpdateProfile(user.ID, nil, &bio); err != nil {
		t.Fatalf("UpdateProfile bio: %v", err)
	}

	got, _ = s.FindByID(user.ID)
	if got.Name != "New Name" {
		t.Errorf("name changed unexpectedly: %q", got.Name)
	}
	if got.Bio == nil || *got.Bio != bio {
		t.Errorf("bio: got %v", got.Bio)
	}
}

func TestUserStoreEmailTaken(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := seedUser(t, db, "taken@test.local", models.RoleAuthor)

	taken, err := s.EmailTaken("taken@test.local", uuid.Nil)
	if err != nil {
		t.Fatalf("EmailTaken: %v", err)
	}
	if !taken {
		t.Error("expected email to be taken")
	}

	// The owner itself is excluded.
	taken, _ = s.EmailTaken("taken@test.local", user.ID)
	if taken {
		t.Error("expected email not taken when excluding the owner")
	}

	taken, _ = s.EmailTaken("free@test.local", uuid.Nil)
	if taken {
		t.Error("expected unused email to be free")
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := seedUser(t, db, "checkpass@test.local", models.RoleEditor)

	if !s.CheckPassword(user, "testpass123") {
		t.Error("expected CheckPassword to return true for correct password")
	}
	if s.CheckPassword(user, "wrong-password") {
		t.Error("expected CheckPassword to return false for wrong password")
	}
	if s.CheckPassword(user, "") {
		t.Error("expected CheckPassword to return false for empty password")
	}
}

func TestUserStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := seedUser(t, db, "deleteme@test.local", models.RoleAuthor)

	if err := s.Delete(user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, _ := s.FindByID(user.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestUserStoreDeleteCascadesPosts(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	author := seedUser(t, db, "cascade@test.local", models.RoleAuthor)
	post := seedPost(t, db, "Orphan", "orphan", models.PostStatusDraft, author.ID, nil)

	if err := s.Delete(author.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := NewPostStore(db).FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected post removed by cascade")
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	seedUser(t, db, "dupe@test.local", models.RoleEditor)

	_, err := s.Create("Second", "dupe@test.local", "pass123", models.RoleEditor, nil)
	if err == nil {
		t.Error("expected error for duplicate email, got nil")
	}
}
