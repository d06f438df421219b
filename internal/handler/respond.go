package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joestump/vite/internal/links"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error" example:"Not a valid URL"`
}

// EncodeResponse is the body of a successful /encode reply.
type EncodeResponse struct {
	URL string `json:"url" example:"https://vite.lol/1"`
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": message} with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// publicMessage maps resolver errors to the messages shown to clients.
// ok is false for errors that are not the caller's fault.
func publicMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, links.ErrEmptyValue):
		return "No URL or text provided", true
	case errors.Is(err, links.ErrEmptyURL):
		return "No URL provided", true
	case errors.Is(err, links.ErrInvalidURL):
		return "Not a valid URL", true
	case errors.Is(err, links.ErrNotFound):
		return "No such shortened URL found", true
	case errors.Is(err, links.ErrSelfReference):
		return "Cannot shorten a shortened URL", true
	}
	return "Internal server error", false
}
