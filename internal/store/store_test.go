// store_test.go provides a shared test database helper for all store tests.
// Each test gets its own SQLite file under t.TempDir(), so tests are hermetic
// and need no cleanup between runs.
package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"contenthub/internal/database"
	"contenthub/internal/models"
)

// testDB opens a fresh SQLite database in a temp directory and runs all
// migrations. The file is removed with the temp dir when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Connect(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser inserts a user and returns it.
func seedUser(t *testing.T, db *sql.DB, email string, role models.Role) *models.User {
	t.Helper()
	u, err := NewUserStore(db).Create("Test User", email, "testpass123", role, nil)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

// seedCategory inserts a category and returns it.
func seedCategory(t *testing.T, db *sql.DB, name, slug string) *models.Category {
	t.Helper()
	c, err := NewCategoryStore(db).Create(&models.Category{
		Name:  name,
		Slug:  slug,
		Color: models.DefaultCategoryColor,
	})
	if err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	return c
}

// seedPost inserts a post authored by the given user, optionally filed under
// a category.
func seedPost(t *testing.T, db *sql.DB, title, slug string, status models.PostStatus, author uuid.UUID, category *uuid.UUID) *models.Post {
	t.Helper()
	p, err := NewPostStore(db).Create(&models.Post{
		Title:      title,
		Slug:       slug,
		Content:    "body of " + title,
		Status:     status,
		AuthorID:   author,
		CategoryID: category,
	})
	if err != nil {
		t.Fatalf("seed post %s: %v", title, err)
	}
	return p
}

// categoryCount reads the denormalized post_count column directly.
func categoryCount(t *testing.T, db *sql.DB, id uuid.UUID) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT post_count FROM categories WHERE id = ?`, id).Scan(&n); err != nil {
		t.Fatalf("read post_count: %v", err)
	}
	return n
}
