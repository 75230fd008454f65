// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test environment gets its own SQLite file and upload directory under
// t.TempDir(), so tests are hermetic.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/pressly/goose/v3"

	"contenthub/internal/auth"
	"contenthub/internal/database"
	"contenthub/internal/middleware"
	"contenthub/internal/models"
	"contenthub/internal/storage"
	"contenthub/internal/store"
)

// testEnv bundles the stores and handler groups under test.
type testEnv struct {
	db     *sql.DB
	tokens *auth.Manager
	files  *storage.Local

	users      *store.UserStore
	categories *store.CategoryStore
	posts      *store.PostStore
	media      *store.MediaStore

	Auth       *Auth
	Posts      *Posts
	Categories *Categories
	Users      *Users
	Media      *Media
	Dashboard  *Dashboard
}

// newTestEnv builds a fully wired handler stack over a fresh database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	files, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	tokens, err := auth.NewManager("handler-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	env := &testEnv{
		db:         db,
		tokens:     tokens,
		files:      files,
		users:      store.NewUserStore(db),
		categories: store.NewCategoryStore(db),
		posts:      store.NewPostStore(db),
		media:      store.NewMediaStore(db),
	}
	env.Auth = NewAuth(env.users, tokens)
	env.Posts = NewPosts(env.posts)
	env.Categories = NewCategories(env.categories)
	env.Users = NewUsers(env.users)
	env.Media = NewMedia(env.media, files)
	env.Dashboard = NewDashboard(store.NewDashboardStore(db))

	return env
}

// createUser inserts a user through the store.
func (env *testEnv) createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	u, err := env.users.Create("Test User", email, "testpass123", role, nil)
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

// createCategory inserts a category through the store.
func (env *testEnv) createCategory(t *testing.T, name, slug string) *models.Category {
	t.Helper()
	c, err := env.categories.Create(&models.Category{
		Name:  name,
		Slug:  slug,
		Color: models.DefaultCategoryColor,
	})
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return c
}

// createPost inserts a post through the store.
func (env *testEnv) createPost(t *testing.T, title, slug string, author *models.User) *models.Post {
	t.Helper()
	p, err := env.posts.Create(&models.Post{
		Title:    title,
		Slug:     slug,
		Status:   models.PostStatusDraft,
		AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return p
}

// jsonReq builds a request with a JSON body.
func jsonReq(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser attaches the user's identity to the request context, the same way
// the Authenticate middleware does.
func asUser(req *http.Request, user *models.User) *http.Request {
	identity := &auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
	return req.WithContext(context.WithValue(req.Context(), middleware.IdentityKey, identity))
}

// withParam injects a chi URL parameter into the request context.
func withParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody parses the recorded JSON response body.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return body
}
