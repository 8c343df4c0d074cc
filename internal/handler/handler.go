// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/Shivanand-hulikatti/activity-signup/internal/repository"
	"github.com/Shivanand-hulikatti/activity-signup/internal/service"
	"github.com/go-chi/chi/v5"
)

// ActivityHandler holds all HTTP handlers for the activity sign-up API.
type ActivityHandler struct {
	svc    *service.ActivityService
	logger *slog.Logger
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(svc *service.ActivityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, logger: logger}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func (h *ActivityHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write json response", "error", err)
	}
}

func (h *ActivityHandler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, model.ErrorResponse{Detail: msg})
}

// respondError maps service and store errors onto HTTP statuses.
func (h *ActivityHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, r, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, repository.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, "Activity not found")
	case errors.Is(err, repository.ErrAlreadySignedUp):
		h.writeError(w, r, http.StatusBadRequest, "Student is already signed up for this activity")
	case errors.Is(err, repository.ErrNotRegistered):
		h.writeError(w, r, http.StatusBadRequest, "Student is not registered for this activity")
	case errors.Is(err, repository.ErrActivityFull):
		h.writeError(w, r, http.StatusBadRequest, "Activity is full")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// signupRequest reads the activity route parameter and email query parameter.
// chi leaves route parameters escaped when the URL carries a RawPath
// (e.g. a name containing %2F), so those are unescaped here.
func signupRequest(r *http.Request) (model.SignupRequest, error) {
	name := chi.URLParam(r, "activityName")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return model.SignupRequest{}, &service.ValidationError{Msg: "invalid activity name"}
		}
		name = unescaped
	}
	return model.SignupRequest{
		ActivityName: name,
		Email:        r.URL.Query().Get("email"),
	}, nil
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// ListActivities handles GET /activities
// Returns an object mapping activity name to details and roster.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.ListActivities(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// Empty object and arrays rather than null for client compatibility.
	if catalog == nil {
		catalog = model.Catalog{}
	}
	for name, a := range catalog {
		if a.Participants == nil {
			a.Participants = []string{}
			catalog[name] = a
		}
	}

	h.writeJSON(w, r, http.StatusOK, catalog)
}

// Signup handles POST /activities/{activityName}/signup?email=
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, err := signupRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "participant signed up", "activity", req.ActivityName)
	h.writeJSON(w, r, http.StatusOK, resp)
}

// Unregister handles POST and DELETE /activities/{activityName}/unregister?email=
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	req, err := signupRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp, err := h.svc.Unregister(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "participant unregistered", "activity", req.ActivityName)
	h.writeJSON(w, r, http.StatusOK, resp)
}

// ─── Front-end ────────────────────────────────────────────────────────────────

// RedirectToIndex handles GET /
func RedirectToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

// Index serves index.html directly; http.FileServer would redirect
// /index.html requests to the directory.
func Index(assets fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(assets, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func (h *ActivityHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
