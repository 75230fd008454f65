// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contenthub/internal/middleware"
	"contenthub/internal/models"
	"contenthub/internal/slug"
	"contenthub/internal/store"
)

// Posts groups the post CRUD handlers.
type Posts struct {
	posts *store.PostStore
}

// NewPosts creates a new Posts handler group.
func NewPosts(posts *store.PostStore) *Posts {
	return &Posts{posts: posts}
}

// List returns a filtered, sorted page of posts with pagination totals.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.ListFilter{
		Page:   queryInt(q.Get("page"), 1),
		Limit:  queryInt(q.Get("limit"), 10),
		Status: q.Get("status"),
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}

	if category := q.Get("category"); category != "" {
		id, err := uuid.Parse(category)
		if err != nil {
			respondError(w, badRequest("Invalid category id."))
			return
		}
		filter.Category = &id
	}

	posts, pagination, err := h.posts.List(filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"posts":      posts,
		"pagination": pagination,
	})
}

// Get returns a single post with its author and category display fields.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("Post not found."))
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		respondError(w, notFound("Post not found."))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"post": post})
}

type createPostRequest struct {
	Title      string     `json:"title" validate:"required,min=3,max=200"`
	Content    string     `json:"content"`
	Excerpt    string     `json:"excerpt"`
	CoverImage *string    `json:"cover_image"`
	Status     string     `json:"status" validate:"omitempty,oneof=draft published archived"`
	CategoryID *uuid.UUID `json:"category_id"`
}

// Create inserts a new post authored by the caller. The slug derives from
// the title, disambiguated with a timestamp suffix on collision.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())

	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	status := models.PostStatus(req.Status)
	if status == "" {
		status = models.PostStatusDraft
	}

	postSlug, err := h.uniqueSlug(req.Title, uuid.Nil)
	if err != nil {
		respondError(w, err)
		return
	}

	post, err := h.posts.Create(&models.Post{
		Title:      req.Title,
		Slug:       postSlug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Status:     status,
		AuthorID:   identity.UserID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"post":    post,
		"message": "Post created successfully.",
	})
}

type updatePostRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=3,max=200"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	CoverImage *string `json:"cover_image"`
	Status     *string `json:"status" validate:"omitempty,oneof=draft published archived"`
	// nil keeps the current category, "" clears it, a UUID re-files the post.
	CategoryID *string `json:"category_id"`
}

// Update applies a partial edit. The slug is recomputed only when the title
// changed and the fresh slug collides with a different post; published_at
// follows the transition rule enforced by the store.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("Post not found."))
		return
	}

	var req updatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	existing, err := h.posts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondError(w, notFound("Post not found."))
		return
	}

	next := *existing

	if req.Title != nil && *req.Title != existing.Title {
		next.Title = *req.Title
		next.Slug, err = h.uniqueSlug(*req.Title, id)
		if err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Content != nil {
		next.Content = *req.Content
	}
	if req.Excerpt != nil {
		next.Excerpt = *req.Excerpt
	}
	if req.CoverImage != nil {
		next.CoverImage = req.CoverImage
	}
	if req.Status != nil {
		next.Status = models.PostStatus(*req.Status)
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			next.CategoryID = nil
		} else {
			cid, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				respondError(w, badRequest("Invalid category id."))
				return
			}
			next.CategoryID = &cid
		}
	}

	if err := h.posts.Update(&next, existing); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"post":    post,
		"message": "Post updated successfully.",
	})
}

// Delete removes a post and releases its category counter.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("Post not found."))
		return
	}

	existing, err := h.posts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondError(w, notFound("Post not found."))
		return
	}

	if err := h.posts.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully."})
}

// uniqueSlug derives a slug from the title, appending a timestamp suffix
// when the plain slug is already used by a different post.
func (h *Posts) uniqueSlug(title string, exclude uuid.UUID) (string, error) {
	s := slug.Generate(title)
	taken, err := h.posts.SlugTaken(s, exclude)
	if err != nil {
		return "", err
	}
	if taken {
		s = slug.Timestamped(s)
	}
	return s, nil
}

// queryInt parses a positive integer query value, falling back on absence
// or garbage.
func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
