// Package api exposes the HTTP handlers for the exercise tracker.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"example.com/exercisetracker/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux. The root pattern catches every
// unmatched path and answers 404, matching the original API's behaviour.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/exercise/new-user", h.createUser)
	mux.HandleFunc("/api/exercise/users", h.listUsers)
	mux.HandleFunc("/api/exercise/add", h.addExercise)
	mux.HandleFunc("/api/exercise/log", h.getLog)
	mux.HandleFunc("/healthz", healthz)
	mux.HandleFunc("/", notFound)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, "not found")
}

// createUser handles POST /api/exercise/new-user with form field username.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		notFound(w, r)
		return
	}

	username := r.PostFormValue("username")

	user, err := h.service.CreateUser(r.Context(), username)
	if err != nil {
		var validation *domain.ValidationError
		switch {
		case errors.As(err, &validation):
			writeText(w, http.StatusBadRequest, validation.Message)
		case errors.Is(err, domain.ErrDuplicateUsername):
			writeText(w, http.StatusBadRequest, "This username is already taken.")
		default:
			serverError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, CreateUserResponse{
		Username: user.Username,
		ID:       user.ID,
	})
}

// listUsers handles GET /api/exercise/users.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		notFound(w, r)
		return
	}

	refs, err := h.service.ListUsers(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refs)
}

// addExercise handles POST /api/exercise/add with form fields userId,
// description, duration and an optional date. An unknown user answers with
// the {"error": ...} body on a success status; that shape is part of the
// published contract.
func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		notFound(w, r)
		return
	}

	userID := r.PostFormValue("userId")
	description := r.PostFormValue("description")
	rawDuration := r.PostFormValue("duration")

	if description == "" {
		writeText(w, http.StatusBadRequest, "Description is required")
		return
	}
	if rawDuration == "" {
		writeText(w, http.StatusBadRequest, "Duration is required")
		return
	}
	duration, err := strconv.Atoi(rawDuration)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Duration must be a number")
		return
	}

	user, err := h.service.AddExercise(r.Context(), userID, description, duration, r.PostFormValue("date"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeJSON(w, http.StatusOK, map[string]string{"error": "A user not found"})
			return
		}
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AddExerciseResponse{
		Username: user.Username,
		Exercise: user.Exercise,
	})
}

// getLog handles GET /api/exercise/log with query params userId, from, to
// and limit. from/to pass through as raw strings and are compared
// lexicographically against the stored dates; an unparseable limit is
// ignored, both mirroring the original API.
func (h *Handler) getLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		notFound(w, r)
		return
	}

	query := r.URL.Query()
	userID := query.Get("userId")
	from := query.Get("from")
	to := query.Get("to")

	var limit *int
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = &parsed
		}
	}

	view, err := h.service.GetLog(r.Context(), userID, from, to, limit)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeJSON(w, http.StatusOK, map[string]string{"Error": "User not found."})
			return
		}
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LogResponse{
		Username:      view.Username,
		TotalExercise: view.TotalCount,
		Exercise:      view.Entries,
	})
}

// CreateUserResponse is the body for POST /api/exercise/new-user.
type CreateUserResponse struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// AddExerciseResponse returns the full updated log after an append.
type AddExerciseResponse struct {
	Username string         `json:"username"`
	Exercise []domain.Entry `json:"exercise"`
}

// LogResponse packages a filtered log view. TotalExercise counts the entries
// actually returned, after truncation.
type LogResponse struct {
	Username      string         `json:"username"`
	TotalExercise int            `json:"totalExercise"`
	Exercise      []domain.Entry `json:"exercise"`
}

func serverError(w http.ResponseWriter, err error) {
	log.Printf("store fault: %v", err)
	writeText(w, http.StatusInternalServerError, "Internal Server Error")
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
