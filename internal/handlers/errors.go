// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Debug controls whether internal error detail is attached to 500 responses.
// Set once at startup from the environment; production keeps the generic
// message only.
var Debug bool

// apiError is a request failure with a user-facing message and HTTP status.
type apiError struct {
	status int
	msg    string
}

func (e *apiError) Error() string { return e.msg }

func badRequest(msg string) error   { return &apiError{http.StatusBadRequest, msg} }
func unauthorized(msg string) error { return &apiError{http.StatusUnauthorized, msg} }
func forbidden(msg string) error    { return &apiError{http.StatusForbidden, msg} }
func notFound(msg string) error     { return &apiError{http.StatusNotFound, msg} }
func conflict(msg string) error     { return &apiError{http.StatusConflict, msg} }

// respondError translates any error into the JSON error taxonomy.
// SQLite constraint violations that escaped the handlers map to 409/400;
// everything else unknown becomes a 500 with a generic message.
func respondError(w http.ResponseWriter, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		respondJSON(w, apiErr.status, map[string]string{"error": apiErr.msg})
		return
	}

	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			respondJSON(w, http.StatusConflict, map[string]string{"error": "A record with this value already exists."})
			return
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Referenced record does not exist."})
			return
		}
	}

	slog.Error("request failed", "error", err)

	body := map[string]string{"error": "Internal server error"}
	if Debug {
		body["detail"] = err.Error()
	}
	respondJSON(w, http.StatusInternalServerError, body)
}
