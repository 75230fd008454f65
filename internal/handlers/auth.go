// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"contenthub/internal/auth"
	"contenthub/internal/middleware"
	"contenthub/internal/models"
	"contenthub/internal/store"
)

// Auth groups login, registration, and profile handlers.
type Auth struct {
	users  *store.UserStore
	tokens *auth.Manager
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *auth.Manager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login verifies credentials and issues a token. The failure message never
// reveals whether the email exists.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondError(w, unauthorized("Invalid email or password."))
		return
	}
	if !user.IsActive {
		respondError(w, forbidden("Your account has been deactivated."))
		return
	}
	if !a.users.CheckPassword(user, req.Password) {
		respondError(w, unauthorized("Invalid email or password."))
		return
	}

	token, err := a.tokens.GenerateToken(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a new account. The role is always author; elevated roles
// are granted only through the admin user endpoints.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	existing, err := a.users.FindByEmail(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing != nil {
		respondError(w, conflict("An account with this email already exists."))
		return
	}

	user, err := a.users.Create(req.Name, req.Email, req.Password, models.RoleAuthor, nil)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := a.tokens.GenerateToken(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Me returns the caller's own record. Tokens are not revoked on deletion,
// so the row may be gone even though the token verified.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())

	user, err := a.users.FindByID(identity.UserID)
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

type profileRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=100"`
	Bio             *string `json:"bio"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword" validate:"omitempty,min=6"`
}

// UpdateProfile applies the caller's own name/bio changes and, when a new
// password is supplied, verifies the current one before rehashing.
func (a *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())

	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !checkRequest(w, &req) {
		return
	}

	user, err := a.users.FindByID(identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondError(w, notFound("User not found."))
		return
	}

	if req.NewPassword != nil && *req.NewPassword != "" {
		if req.CurrentPassword == nil || *req.CurrentPassword == "" {
			respondError(w, badRequest("Current password is required to set a new password."))
			return
		}
		if !a.users.CheckPassword(user, *req.CurrentPassword) {
			respondError(w, unauthorized("Current password is incorrect."))
			return
		}
		if err := a.users.UpdatePassword(user.ID, *req.NewPassword); err != nil {
			respondError(w, err)
			return
		}
	}

	if req.Name != nil || req.Bio != nil {
		if err := a.users.UpdateProfile(user.ID, req.Name, req.Bio); err != nil {
			respondError(w, err)
			return
		}
	}

	updated, err := a.users.FindByID(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user":    updated,
		"message": "Profile updated successfully.",
	})
}
