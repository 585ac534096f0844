// Package api exposes the HTTP handlers for activity records.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"example.com/activitytrack/internal/domain"
	"example.com/activitytrack/internal/store"
)

// Handler coordinates HTTP requests with the domain service. It serves two
// route families over the same operations: the flat /activities family
// (update id in the body, delete id as a query parameter) and the /v1 family
// (id in the path).
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/v1/activities", h.v1Activities)
	mux.HandleFunc("/v1/activity", h.v1Activity)
	mux.HandleFunc("/v1/activity/", h.v1ActivityByID)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listActivities(w, r)
	case http.MethodPost:
		h.createActivity(w, r)
	case http.MethodPut:
		h.updateFromBody(w, r)
	case http.MethodDelete:
		h.deleteByQuery(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) v1Activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	h.listActivities(w, r)
}

func (h *Handler) v1Activity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	h.createActivity(w, r)
}

func (h *Handler) v1ActivityByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/activity/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_request", "id required")
		return
	}

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		h.updateActivity(w, r, id, r.Body)
	case http.MethodDelete:
		h.deleteActivity(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// createRequest is the payload for POST /activities and POST /v1/activity.
// A done field in the body is ignored: new activities always start not-done.
type createRequest struct {
	Title string  `json:"title"`
	Date  *string `json:"date"`
	Notes string  `json:"notes"`
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	created, err := h.service.Create(r.Context(), domain.CreateInput{
		Title: req.Title,
		Date:  req.Date,
		Notes: req.Notes,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateFromBody(w http.ResponseWriter, r *http.Request) {
	id, patch, err := decodePatch(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id required")
		return
	}
	h.applyPatch(w, r, id, patch)
}

func (h *Handler) updateActivity(w http.ResponseWriter, r *http.Request, id string, body io.Reader) {
	_, patch, err := decodePatch(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	h.applyPatch(w, r, id, patch)
}

func (h *Handler) applyPatch(w http.ResponseWriter, r *http.Request, id string, patch domain.Patch) {
	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteByQuery(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id required")
		return
	}
	h.deleteActivity(w, r, id)
}

func (h *Handler) deleteActivity(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decodePatch reads a partial-update body, keeping track of which fields were
// present so absent fields stay untouched while an explicit "date": null
// clears the stored date. A top-level id, when present, is returned for the
// body-addressed update route.
func decodePatch(body io.Reader) (string, domain.Patch, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return "", domain.Patch{}, err
	}

	var id string
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", domain.Patch{}, err
		}
	}

	var patch domain.Patch
	if raw, ok := fields["title"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", domain.Patch{}, err
		}
		patch.Title = &v
	}
	if raw, ok := fields["date"]; ok {
		patch.DateSet = true
		if string(raw) != "null" {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return "", domain.Patch{}, err
			}
			patch.Date = &v
		}
	}
	if raw, ok := fields["notes"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", domain.Patch{}, err
		}
		patch.Notes = &v
	}
	if raw, ok := fields["done"]; ok {
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", domain.Patch{}, err
		}
		patch.Done = &v
	}
	return id, patch, nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var derr *store.DecodeError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "validation_failed", verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "activity not found")
	case errors.As(err, &derr):
		writeError(w, http.StatusInternalServerError, "decode_failed", "persisted data is malformed")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
