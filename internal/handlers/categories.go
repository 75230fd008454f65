// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contenthub/internal/models"
	"contenthub/internal/slug"
	"contenthub/internal/store"
)

// Categories groups the category CRUD handlers.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List returns every category with both the denormalized post_count and the
// live join count.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// Get returns a single category.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("Category not found."))
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if category == nil {
		respondError(w, notFound("Category not found."))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"category": category})
}

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// Create inserts a new category. The slug derives from the name,
// disambiguated with a timestamp suffix on collision.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	catSlug, err := h.uniqueSlug(req.Name, uuid.Nil)
	if err != nil {
		respondError(w, err)
		return
	}

	color := models.DefaultCategoryColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}

	category, err := h.categories.Create(&models.Category{
		Name:        req.Name,
		Slug:        catSlug,
		Description: req.Description,
		Color:       color,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"category": category,
		"message":  "Category created successfully.",
	})
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// Update applies a partial edit. The slug is recomputed only when the name
// changed; a collision with a different category gets the timestamp suffix.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("Category not found."))
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	existing, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondError(w, notFound("Category not found."))
		return
	}

	next := *existing

	if req.Name != nil && *req.Name != existing.Name {
		next.Name = *req.Name
		next.Slug, err = h.uniqueSlug(*req.Name, id)
		if err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Description != nil {
		next.Description = req.Description
	}
	if req.Color != nil && *req.Color != "" {
		next.Color = *req.Color
	}

	if err := h.categories.Update(&next); err != nil {
		respondError(w, err)
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"message":  "Category updated successfully.",
	})
}

// Delete detaches every referencing post, then removes the category.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("Category not found."))
		return
	}

	existing, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondError(w, notFound("Category not found."))
		return
	}

	if err := h.categories.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully."})
}

// uniqueSlug derives a slug from the name, appending a timestamp suffix
// when the plain slug is already used by a different category.
func (h *Categories) uniqueSlug(name string, exclude uuid.UUID) (string, error) {
	s := slug.Generate(name)
	taken, err := h.categories.SlugTaken(s, exclude)
	if err != nil {
		return "", err
	}
	if taken {
		s = slug.Timestamped(s)
	}
	return s, nil
}
