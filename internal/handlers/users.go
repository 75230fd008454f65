// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contenthub/internal/middleware"
	"contenthub/internal/models"
	"contenthub/internal/store"
)

// Users groups the admin-only user management handlers.
type Users struct {
	users *store.UserStore
}

// NewUsers creates a new Users handler group.
func NewUsers(users *store.UserStore) *Users {
	return &Users{users: users}
}

// List returns users filtered by search term and role.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	role := r.URL.Query().Get("role")

	users, err := h.users.List(search, role)
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Get returns a single user.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("User not found."))
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondError(w, notFound("User not found."))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

type createUserRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"omitempty,oneof=admin editor author"`
	Bio      *string `json:"bio"`
}

// Create inserts a new user with the given role (author by default).
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	existing, err := h.users.FindByEmail(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing != nil {
		respondError(w, conflict("A user with this email already exists."))
		return
	}

	role := models.RoleAuthor
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	user, err := h.users.Create(req.Name, req.Email, req.Password, role, req.Bio)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"user":    user,
		"message": "User created successfully.",
	})
}

type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin editor author"`
	Bio      *string `json:"bio"`
	IsActive *bool   `json:"is_active"`
}

// Update applies a partial edit to a user. A new email is checked against the
// rest of the table first; a new password is rehashed.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("User not found."))
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	existing, err := h.users.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondError(w, notFound("User not found."))
		return
	}

	if req.Email != nil && *req.Email != existing.Email {
		taken, err := h.users.EmailTaken(*req.Email, id)
		if err != nil {
			respondError(w, err)
			return
		}
		if taken {
			respondError(w, conflict("This email is already in use."))
			return
		}
	}

	next := *existing
	if req.Name != nil {
		next.Name = *req.Name
	}
	if req.Email != nil {
		next.Email = *req.Email
	}
	if req.Role != nil {
		next.Role = models.Role(*req.Role)
	}
	if req.Bio != nil {
		next.Bio = req.Bio
	}
	if req.IsActive != nil {
		next.IsActive = *req.IsActive
	}

	if err := h.users.Update(&next); err != nil {
		respondError(w, err)
		return
	}

	if req.Password != nil && *req.Password != "" {
		if err := h.users.UpdatePassword(id, *req.Password); err != nil {
			respondError(w, err)
			return
		}
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"message": "User updated successfully.",
	})
}

// Delete removes a user. Admins cannot delete their own account.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, notFound("User not found."))
		return
	}

	identity := middleware.IdentityFromCtx(r.Context())
	if identity != nil && identity.UserID == id {
		respondError(w, badRequest("You cannot delete your own account."))
		return
	}

	existing, err := h.users.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondError(w, notFound("User not found."))
		return
	}

	if err := h.users.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully."})
}
