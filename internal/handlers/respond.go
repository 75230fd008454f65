// Package handlers implements the REST controllers for the ContentHub API.
// Each handler group wraps the stores it needs, translates HTTP input into
// store calls, and shapes JSON responses.
package handlers

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// maxBodySize bounds JSON request bodies (10 MB, matching the client limit).
const maxBodySize = 10 << 20

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads and decodes the request body into dst. The body size
// is bounded; any decode failure is reported as a BadRequest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("Invalid request body.")
	}
	return nil
}
